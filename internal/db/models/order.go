package models

import "time"

// OrderItem is one line of an order.
// Admin screens send the ordered amount as OrderQuantity, the storefront as Quantity.
type OrderItem struct {
	ProductID     uint64  `json:"_id"`
	ProductName   string  `json:"product_name,omitempty"`
	Price         float64 `json:"price,omitempty"`
	Quantity      int     `json:"quantity"`
	OrderQuantity int     `json:"orderQuantity"`
}

// Order is a placed order. OrderID is the human facing order number.
type Order struct {
	Model
	OrderID    string       `gorm:"size:32;uniqueIndex" json:"order_id"`
	CustomerID uint64       `gorm:"index" json:"customer_id" validate:"required"`
	Customer   *CustomerRef `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CurrencyID uint64       `json:"currency_id" validate:"required"`
	Currency   *Currency    `gorm:"foreignKey:CurrencyID" json:"currency,omitempty"`
	OrderItems []OrderItem  `gorm:"serializer:json;type:text" json:"orderItems"`

	PFirstName string `gorm:"size:255" json:"pfirst_name"`
	PLastName  string `gorm:"size:255" json:"plast_name"`
	PCompany   string `gorm:"size:255" json:"pcompany"`
	PAddress1  string `gorm:"size:255" json:"paddress1"`
	PAddress2  string `gorm:"size:255" json:"paddress2"`
	PCity      string `gorm:"size:255" json:"pcity"`
	PPostCode  string `gorm:"size:50" json:"ppost_code"`
	PCountryID uint64 `json:"pcountry_id"`

	SFirstName string `gorm:"size:255" json:"sfirst_name"`
	SLastName  string `gorm:"size:255" json:"slast_name"`
	SCompany   string `gorm:"size:255" json:"scompany"`
	SAddress1  string `gorm:"size:255" json:"saddress1"`
	SAddress2  string `gorm:"size:255" json:"saddress2"`
	SCity      string `gorm:"size:255" json:"scity"`
	SPostCode  string `gorm:"size:50" json:"spost_code"`
	SCountryID uint64 `json:"scountry_id"`

	OrderStatusesID uint64       `json:"order_statuses_id"`
	OrderStatus     *OrderStatus `gorm:"foreignKey:OrderStatusesID" json:"order_status,omitempty"`
	PaymentMethod   string       `gorm:"size:100" json:"payment_method" validate:"required"`
	Comment         string       `gorm:"type:text" json:"comment"`
	CouponID        uint64       `json:"coupon_id"`
	Coupon          string       `gorm:"size:100" json:"coupon"`
	CouponDiscount  string       `gorm:"size:50" json:"couponDiscount"`
	CouponType      string       `gorm:"size:20" json:"couponType"`
	ShippingCost    float64      `json:"shipping_cost"`
	EstDeliveryDate *time.Time   `json:"est_delivery_date"`
	TotalAmount     string       `gorm:"size:50" json:"total_amount" validate:"required"`
	GrandTotal      string       `gorm:"size:50" json:"grand_total" validate:"required"`
	Status          *bool        `gorm:"default:true" json:"status"`

	// OldItemsArr carries the previous items on edit so their stock can be restored. Never stored.
	OldItemsArr []OrderItem `gorm:"-" json:"oldItemsArr,omitempty"`
}
