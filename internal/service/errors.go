package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrValidation         = errors.New("validation failed")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrItemNotFound       = errors.New("item not found")
	ErrTotalMismatch      = errors.New("declared total does not match cart")
	ErrStorage            = errors.New("storage failure")
	ErrSKUExists          = errors.New("SKU already exists")
	ErrCategoryExists     = errors.New("category already exists")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrSupplierNotFound   = errors.New("supplier not found")
	ErrTransactionMissing = errors.New("transaction not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
)

// StockError names the cart line that stopped a checkout. It matches
// ErrInsufficientStock or ErrItemNotFound through errors.Is.
type StockError struct {
	Kind      error
	ItemID    uint
	ItemName  string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	if errors.Is(e.Kind, ErrItemNotFound) {
		return fmt.Sprintf("item %d not found", e.ItemID)
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.ItemName, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error {
	return e.Kind
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// domainErrors pass through classify unchanged; anything else is a storage fault.
var domainErrors = []error{
	ErrEmptyCart,
	ErrValidation,
	ErrInsufficientStock,
	ErrItemNotFound,
	ErrTotalMismatch,
	ErrSKUExists,
	ErrCategoryExists,
	ErrCategoryNotFound,
	ErrSupplierNotFound,
	ErrTransactionMissing,
	ErrInvalidCredentials,
	ErrUserNotFound,
	ErrUsernameExists,
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range domainErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	if errors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
