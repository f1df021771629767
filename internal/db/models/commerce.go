package models

import "time"

// Currency an order is placed in.
type Currency struct {
	Model
	Title  string  `gorm:"size:100;not null" json:"title" validate:"required"`
	Code   string  `gorm:"size:10;not null" json:"code" validate:"required"`
	Value  float64 `json:"value"`
	Symbol string  `gorm:"size:10" json:"symbol"`
	Status bool    `json:"status"`
}

// Coupon grants a discount on an order. Codes are unique.
type Coupon struct {
	Model
	Name      string     `gorm:"size:255;not null" json:"name" validate:"required"`
	Code      string     `gorm:"size:100;uniqueIndex;not null" json:"code" validate:"required"`
	Type      string     `gorm:"size:20" json:"type"`
	Discount  float64    `json:"discount"`
	DateStart *time.Time `json:"date_start"`
	DateEnd   *time.Time `json:"date_end"`
	Status    *bool      `gorm:"default:true" json:"status"`
}

// Tax is applied to product prices. Names are unique.
type Tax struct {
	Model
	Name   string  `gorm:"size:255;uniqueIndex;not null" json:"name" validate:"required"`
	Rate   float64 `json:"rate" validate:"required"`
	Type   string  `gorm:"size:20" json:"type"`
	Status bool    `json:"status"`
}

// Product is a catalogue item. Quantity is the stock level and may go negative.
type Product struct {
	Model
	ProductName      string    `gorm:"size:255;not null" json:"product_name" validate:"required"`
	Slug             string    `gorm:"size:255;index" json:"slug"`
	Price            float64   `json:"price" validate:"required"`
	Quantity         int       `json:"quantity" validate:"required"`
	SoldIndividual   bool      `json:"sold_individual"`
	TaxID            uint64    `gorm:"index" json:"tax_id" validate:"required"`
	Tax              *Tax      `gorm:"foreignKey:TaxID" json:"taxData,omitempty"`
	ModelNumber      string    `gorm:"column:model;size:255" json:"model" validate:"required"`
	SizeID           uint64    `json:"size_id"`
	Size             *Size     `gorm:"foreignKey:SizeID" json:"size,omitempty"`
	ColorID          uint64    `json:"color_id"`
	Color            *Color    `gorm:"foreignKey:ColorID" json:"color,omitempty"`
	CategoryID       uint64    `gorm:"index" json:"category_id" validate:"required"`
	Category         *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	FeaturedImage    string    `gorm:"size:255" json:"featured_image"`
	AdditionalImages []string  `gorm:"serializer:json;type:text" json:"additional_images"`
	Description      string    `gorm:"type:text" json:"description"`
	ShortDescription string    `gorm:"type:text" json:"short_description"`
	Features         string    `gorm:"type:text" json:"features"`
	Conditions       string    `gorm:"type:text" json:"conditions"`
	ReturnPolicy     string    `gorm:"type:text" json:"return_policy"`
	IsFeatured       bool      `json:"is_featured"`
	IsActive         bool      `json:"is_active"`

	// DeletedImages lists additional images an edit removes. Never stored.
	DeletedImages []string `gorm:"-" json:"deletedImages,omitempty"`
}

// Images returns every stored image file of the product.
func (p *Product) Images() []string {
	out := make([]string, 0, len(p.AdditionalImages)+1)
	if p.FeaturedImage != "" {
		out = append(out, p.FeaturedImage)
	}

	return append(out, p.AdditionalImages...)
}
