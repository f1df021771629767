package models

// Customer is a storefront account. Email is stored lower-case and unique.
type Customer struct {
	Model
	FirstName        string `gorm:"size:255;not null" json:"first_name" validate:"required"`
	LastName         string `gorm:"size:255" json:"last_name"`
	Email            string `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required"`
	PhoneNo          string `gorm:"size:50" json:"phone_no" validate:"required"`
	Password         string `gorm:"size:255" json:"password,omitempty" validate:"required"`
	ProfileImage     string `gorm:"size:255" json:"profileImage"`
	BillingFirstName string `gorm:"size:255" json:"billing_first_name"`
	BillingLastName  string `gorm:"size:255" json:"billing_last_name"`
	BillingCompany   string `gorm:"size:255" json:"billing_company"`
	BillingAddress1  string `gorm:"size:255" json:"billing_address1"`
	BillingAddress2  string `gorm:"size:255" json:"billing_address2"`
	BillingCity      string `gorm:"size:255" json:"billing_city"`
	BillingPostCode  string `gorm:"size:50" json:"billing_post_code"`
	BillingCountryID uint64 `json:"billing_country_id"`
	IsActive         bool   `json:"isActive"`
	// Token is the most recently issued bearer token.
	Token string `gorm:"type:text" json:"token,omitempty"`
}

// VerifyPassword verifies a plaintext password against the stored hash.
func (c *Customer) VerifyPassword(password string) bool {
	return verifyHash(password, c.Password)
}

// CustomerRef is the public part of a customer, used when customers are joined into other records.
type CustomerRef struct {
	ID        uint64 `json:"_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// TableName points CustomerRef at the customers table.
func (CustomerRef) TableName() string {
	return "customers"
}
