package repository

import "errors"

// ErrNotFound is returned in place of gorm.ErrRecordNotFound.
var ErrNotFound = errors.New("record not found")
