// Package models contains database model definitions.
//
// JSON names follow the wire format the admin and storefront clients
// already speak, so some are snake_case and some camelCase.
package models

import "time"

// Model is embedded by every record served through the admin api.
type Model struct {
	// ID is the unique identifier of the record.
	ID uint64 `gorm:"primaryKey" json:"_id"`
	// CreatedAt is the default sort key of every list.
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Base gives generic code access to the embedded Model.
func (m *Model) Base() *Model {
	return m
}

// All returns every model in migration order.
func All() []any {
	return []any{
		&Setting{},
		&Role{},
		&RolePermission{},
		&User{},
		&Customer{},
		&Category{},
		&Size{},
		&Color{},
		&Country{},
		&Currency{},
		&Coupon{},
		&Tax{},
		&OrderStatus{},
		&Product{},
		&Order{},
		&Faq{},
		&Service{},
		&BlogCategory{},
		&Tag{},
		&Blog{},
		&Example{},
	}
}
