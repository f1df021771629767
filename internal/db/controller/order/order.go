// Package order places orders and keeps product stock in step with them.
//
// Stock changes are applied one product at a time without a transaction.
// When a step fails the earlier steps stay applied and the error is returned.
package order

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/ajadmin/ajadmin/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrStock wraps every failed stock change.
	ErrStock = errors.New("failed to adjust stock")
)

// Quantity picks the amount of an item that leaves stock.
type Quantity func(item models.OrderItem) int

// ByOrderQuantity is used by the admin screens.
func ByOrderQuantity(item models.OrderItem) int {
	return item.OrderQuantity
}

// ByQuantity is used by the storefront.
func ByQuantity(item models.OrderItem) int {
	return item.Quantity
}

// Next returns the next order number: the number of orders plus one.
func Next(db *gorm.DB) (string, error) {
	if db == nil {
		return "", ErrDBNil
	}

	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to count orders: %w", err)
	}

	return strconv.FormatInt(count+1, 10), nil
}

// Create numbers and inserts o, then takes its items out of stock.
func Create(db *gorm.DB, o *models.Order, qty Quantity) error {
	var err error

	if o.OrderID, err = Next(db); err != nil {
		return err
	}

	o.ID = 0

	if err = db.Omit("Customer", "Currency", "OrderStatus").Create(o).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return Decrement(db, o.OrderItems, qty)
}

// Decrement takes every item out of stock.
func Decrement(db *gorm.DB, items []models.OrderItem, qty Quantity) error {
	for _, item := range items {
		if err := adjust(db, item.ProductID, -qty(item)); err != nil {
			return err
		}
	}

	return nil
}

// Restock puts every item back into stock by its Quantity.
func Restock(db *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		if err := adjust(db, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	return nil
}

func adjust(db *gorm.DB, productID uint64, delta int) error {
	if delta == 0 {
		return nil
	}

	err := db.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta)).Error
	if err != nil {
		return fmt.Errorf("%w of product %d: %w", ErrStock, productID, err)
	}

	return nil
}

// SetStatus moves the order with id to another order status.
func SetStatus(db *gorm.DB, id, statusID uint64) (int64, error) {
	res := db.Model(&models.Order{}).Where("id = ?", id).Update("order_statuses_id", statusID)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update order status: %w", res.Error)
	}

	return res.RowsAffected, nil
}

// ForCustomer returns the orders of a customer, newest first.
func ForCustomer(db *gorm.DB, customerID uint64) ([]models.Order, error) {
	orders := []models.Order{}

	err := db.Where("customer_id = ?", customerID).
		Preload("Currency").
		Preload("OrderStatus").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load orders of customer %d: %w", customerID, err)
	}

	return orders, nil
}
