// Package customer serves the storefront accounts of the admin api.
package customer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ajadmin/ajadmin/internal/auth"
	dbresource "github.com/ajadmin/ajadmin/internal/db/controller/resource"
	"github.com/ajadmin/ajadmin/internal/db/models"
	"github.com/ajadmin/ajadmin/internal/storage"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/handler/admin/resource"
)

const columnProfileImage = "profile_image"

// Service registers the customer routes.
type Service struct {
	handler.Service
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers the customer resource and its image uploads.
func (s *Service) Init(router fiber.Router, env *handler.Env) error {
	if router == nil || !env.Ready() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return nil
	}

	if err := Resource().Init(router, env); err != nil {
		return err
	}

	router.Post("/uploadCustomerImage",
		resource.SingleImage[models.Customer](env, columnProfileImage, storage.DirApplication, false, nil))
	router.Post("/updateCustomerImage",
		resource.SingleImage[models.Customer](env, columnProfileImage, storage.DirApplication, true, nil))

	return nil
}

// Resource returns the list and CRUD routes of customers.
// Passwords are stored hashed and emails lower-case.
func Resource() *resource.Resource[models.Customer, *models.Customer] {
	return &resource.Resource[models.Customer, *models.Customer]{
		Stem:   "customer",
		Module: auth.ModuleCustomer,
		Table: dbresource.Table{
			Search: []string{"first_name"},
			Omit:   []string{"password", "token"},
		},
		CreateFields: []string{"FirstName", "Email", "Password"},
		UpdateFields: []string{"FirstName", "Email", "PhoneNo"},
		Keep:         []string{columnProfileImage, "token"},
		IDField:      "customer_id",
		BeforeCreate: func(_ *fiber.Ctx, _ *handler.Env, rec *models.Customer) error {
			rec.Email = normalizeEmail(rec.Email)
			rec.Password = models.HashPassword(rec.Password)
			rec.Token = ""

			return nil
		},
		BeforeUpdate: func(_ *fiber.Ctx, env *handler.Env, id uint64, rec *models.Customer) error {
			rec.Email = normalizeEmail(rec.Email)

			hash, err := passwordFor(env.DB, id, rec.Password)
			if err != nil {
				return err
			}

			rec.Password = hash

			return nil
		},
		Images: func(rec *models.Customer) (string, []string) {
			return storage.DirApplication, []string{rec.ProfileImage}
		},
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// passwordFor hashes a new password. An empty one keeps the stored hash.
func passwordFor(db *gorm.DB, id uint64, password string) (string, error) {
	if password != "" {
		return models.HashPassword(password), nil
	}

	var stored models.Customer

	err := db.Select("id", "password").First(&stored, id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to load customer password: %w", err)
	}

	return stored.Password, nil
}
