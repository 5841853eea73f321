package model

// Category is referenced by Item.Category by name only.
type Category struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Color string `gorm:"type:varchar(20)" json:"color"`
	Icon  string `gorm:"type:varchar(50)" json:"icon"`
}

func (Category) TableName() string {
	return "categories"
}

// DefaultCategories are seeded into an empty categories table.
var DefaultCategories = []Category{
	{Name: "Electronics", Color: "#3b82f6", Icon: "Headphones"},
	{Name: "Furniture", Color: "#8b5cf6", Icon: "Armchair"},
	{Name: "Clothing", Color: "#ec4899", Icon: "Shirt"},
	{Name: "Groceries", Color: "#10b981", Icon: "Apple"},
	{Name: "Other", Color: "#64748b", Icon: "Box"},
}

type Supplier struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Contact string `gorm:"type:varchar(100)" json:"contact"`
	Email   string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
