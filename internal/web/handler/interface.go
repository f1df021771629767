package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ajadmin/ajadmin/internal/auth"
	"github.com/ajadmin/ajadmin/internal/config"
	"github.com/ajadmin/ajadmin/internal/mail"
	"github.com/ajadmin/ajadmin/internal/payment"
	"github.com/ajadmin/ajadmin/internal/storage"
)

// Env carries the collaborators every handler may use.
type Env struct {
	Cfg       *config.Config
	DB        *gorm.DB
	Auth      *auth.Service
	Tokens    *auth.Tokens
	Local     *auth.LocalProvider
	Images    storage.Store
	Mailer    mail.Sender
	Payments  payment.Charger
	Validator *validator.Validate
}

// Ready reports whether the mandatory collaborators are set.
func (e *Env) Ready() bool {
	return e != nil && e.Cfg != nil && e.DB != nil
}

// Service is the interface for a web handler service.
type Service interface {
	Init(router fiber.Router, env *Env) error
}
