package auth

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ajadmin/ajadmin/internal/db/models"
)

// SuperAdminRole is the name of the role created by Bootstrap.
const SuperAdminRole = "Super Admin"

// LocalProvider handles email and password authentication against the database.
type LocalProvider struct {
	db     *gorm.DB
	tokens *Tokens
}

const whereID = "id = ?"

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB, tokens *Tokens) *LocalProvider {
	return &LocalProvider{
		db:     db,
		tokens: tokens,
	}
}

// AuthenticateUser authenticates a staff user by email.
func (p *LocalProvider) AuthenticateUser(email, password string) (*models.User, error) {
	var user models.User

	err := p.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return &user, nil
}

// AuthenticateCustomer authenticates a storefront customer. Customer emails are stored lower-case.
func (p *LocalProvider) AuthenticateCustomer(email, password string) (*models.Customer, error) {
	var customer models.Customer

	err := p.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	if !customer.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return &customer, nil
}

// IssueUserToken signs a token for the user and stores it as the user's current token.
func (p *LocalProvider) IssueUserToken(user *models.User) (string, error) {
	token, err := p.tokens.Sign(user.ID, user.Email, KindUser)
	if err != nil {
		return "", err
	}

	if err = p.db.Model(&models.User{}).Where(whereID, user.ID).Update("token", token).Error; err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	user.Token = token

	return token, nil
}

// IssueCustomerToken signs a token for the customer and stores it as the customer's current token.
func (p *LocalProvider) IssueCustomerToken(customer *models.Customer) (string, error) {
	token, err := p.tokens.Sign(customer.ID, customer.Email, KindCustomer)
	if err != nil {
		return "", err
	}

	if err = p.db.Model(&models.Customer{}).Where(whereID, customer.ID).Update("token", token).Error; err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	customer.Token = token

	return token, nil
}

// UserByToken finds the staff user whose current token is token.
func (p *LocalProvider) UserByToken(token string) (*models.User, error) {
	var user models.User

	err := p.db.Preload("Role.Permissions").Where("token = ?", token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// ChangePassword changes a user's password after checking the current one.
func (p *LocalProvider) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	var user models.User

	err := p.db.Select("id", "password").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}

	if err != nil {
		return fmt.Errorf("failed to query user: %w", err)
	}

	if !user.VerifyPassword(oldPassword) {
		return ErrInvalidOldPassword
	}

	err = p.db.Model(&models.User{}).Where(whereID, userID).Update("password", models.HashPassword(newPassword)).Error
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// Bootstrap creates the super admin role and user when no staff user exists yet.
// It reports whether anything was created.
func (p *LocalProvider) Bootstrap(name, email, password string) (bool, error) {
	var users int64
	if err := p.db.Model(&models.User{}).Count(&users).Error; err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}

	if users > 0 {
		return false, nil
	}

	if password == "" {
		return false, ErrEmptyBootstrapPassword
	}

	role := models.Role{Name: SuperAdminRole}

	err := p.db.Where(models.Role{Name: SuperAdminRole}).
		Attrs(models.Role{Description: "Can Do Anything"}).
		Omit("Permissions").
		FirstOrCreate(&role).Error
	if err != nil {
		return false, fmt.Errorf("failed to create super admin role: %w", err)
	}

	grants := FullGrants()
	rows := make([]models.RolePermission, len(grants))

	for i, g := range grants {
		rows[i] = models.RolePermission{Module: g.Module, Actions: g.Actions}
	}

	if err = NewService(p.db).ReplaceGrants(role.ID, rows); err != nil {
		return false, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: models.HashPassword(password),
		RoleID:   role.ID,
	}

	if err = p.db.Omit("Role").Create(&user).Error; err != nil {
		return false, fmt.Errorf("failed to create super admin: %w", err)
	}

	return true, nil
}
