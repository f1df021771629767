package models

// Category groups products.
type Category struct {
	Model
	Name   string `gorm:"size:255;not null" json:"name" validate:"required"`
	Status bool   `json:"status"`
}

// Size is a product size option.
type Size struct {
	Model
	Name   string `gorm:"size:255;not null" json:"name" validate:"required"`
	Status bool   `json:"status"`
}

// Color is a product color option.
type Color struct {
	Model
	Name   string `gorm:"size:255;not null" json:"name" validate:"required"`
	Status bool   `json:"status"`
}

// Country is used by billing and shipping addresses.
type Country struct {
	Model
	Name   string `gorm:"size:255;not null" json:"name" validate:"required"`
	Status bool   `json:"status"`
}

// Tag labels blog posts.
type Tag struct {
	Model
	Name   string `gorm:"size:255;not null" json:"name" validate:"required"`
	Status bool   `json:"status"`
}

// Example is a minimal resource kept as a template for new admin screens.
type Example struct {
	Model
	Name   string `gorm:"size:255;not null" json:"name" validate:"required"`
	Status bool   `json:"status"`
}

// OrderStatus is a step of the order workflow, e.g. "Pending" or "Shipped".
type OrderStatus struct {
	Model
	Name string `gorm:"size:255;not null" json:"name" validate:"required"`
	// Status defaults to true when omitted.
	Status *bool `gorm:"default:true" json:"status"`
}

// TableName keeps the table name of the original collection.
func (OrderStatus) TableName() string {
	return "order_statuses"
}

// BlogCategory groups blog posts.
type BlogCategory struct {
	Model
	Name            string `gorm:"size:255;not null" json:"name" validate:"required"`
	Slug            string `gorm:"size:255" json:"slug"`
	MetaTitle       string `gorm:"size:255" json:"meta_title"`
	MetaKeyword     string `gorm:"size:255" json:"meta_keyword"`
	MetaDescription string `gorm:"size:500" json:"meta_description"`
	Status          bool   `json:"status"`
}
