// Package user provides handlers for managing staff users (CRUD) and the caller's own profile in admin area.
package user

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ajadmin/ajadmin/internal/auth"
	dbresource "github.com/ajadmin/ajadmin/internal/db/controller/resource"
	"github.com/ajadmin/ajadmin/internal/db/models"
	"github.com/ajadmin/ajadmin/internal/storage"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/handler/admin/resource"
	"github.com/ajadmin/ajadmin/internal/web/response"
)

const (
	columnProfileImage = "profile_image"

	msgPasswordMismatch = "Current Password Does Not Match"
)

// Data is the part of a user the admin panel keeps in its session.
type Data struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	RoleID       uint64 `json:"role_id,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	Token        string `json:"token,omitempty"`
}

// Service provides CRUD operations for users.
type Service struct {
	handler.Service
	env *handler.Env
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(router fiber.Router, env *handler.Env) error {
	if router == nil || !env.Ready() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return nil
	}

	s.env = env

	if err := Resource().Init(router, env); err != nil {
		return err
	}

	router.Post("/uploadUserImage",
		resource.SingleImage[models.User](env, columnProfileImage, storage.DirApplication, false, nil))
	router.Post("/updateUserImage",
		resource.SingleImage[models.User](env, columnProfileImage, storage.DirApplication, true, s.imageUpdated))

	router.Get("/refreshUserPermission", auth.RequireStaff(), s.RefreshPermission)
	router.Get("/getProfile", auth.RequireStaff(), s.Profile)
	router.Put("/profileEdit/:id",
		auth.RequirePermission(env.Auth, auth.ActionUpdate, auth.ModuleUsers),
		s.ProfileEdit,
	)
	router.Put("/passwordEdit/:id",
		auth.RequirePermission(env.Auth, auth.ActionUpdate, auth.ModuleUsers),
		s.PasswordEdit,
	)

	return nil
}

// Resource returns the list and CRUD routes of staff users.
func Resource() *resource.Resource[models.User, *models.User] {
	return &resource.Resource[models.User, *models.User]{
		Stem:   "user",
		Module: auth.ModuleUsers,
		Table: dbresource.Table{
			Search:  []string{"name", "email"},
			Preload: []string{"Role"},
			Omit:    []string{"password", "token"},
		},
		UpdateFields: []string{"Name", "Email", "RoleID"},
		Keep:         []string{columnProfileImage, "token"},
		IDField:      "user_id",
		BeforeCreate: func(_ *fiber.Ctx, _ *handler.Env, rec *models.User) error {
			rec.Password = models.HashPassword(rec.Password)
			rec.Token = ""

			return nil
		},
		BeforeUpdate: func(_ *fiber.Ctx, env *handler.Env, id uint64, rec *models.User) error {
			hash, err := passwordFor(env.DB, id, rec.Password)
			if err != nil {
				return err
			}

			rec.Password = hash

			return nil
		},
		Updated: func(c *fiber.Ctx, env *handler.Env, id uint64, rec *models.User) error {
			var stored models.User
			if err := env.DB.Select("id", columnProfileImage).First(&stored, id).Error; err != nil {
				log.Debug().Err(err).Uint64("id", id).Msg("Edited user not found")
			}

			return response.With(c, response.MsgUpdated, fiber.Map{
				"userData": Data{Name: rec.Name, Email: rec.Email, ProfileImage: stored.ProfileImage},
			})
		},
		Images: func(rec *models.User) (string, []string) {
			return storage.DirApplication, []string{rec.ProfileImage}
		},
	}
}

// passwordFor hashes a new password. An empty one keeps the stored hash.
func passwordFor(db *gorm.DB, id uint64, password string) (string, error) {
	if password != "" {
		return models.HashPassword(password), nil
	}

	var stored models.User

	err := db.Select("id", "password").First(&stored, id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to load user password: %w", err)
	}

	return stored.Password, nil
}

// imageUpdated answers an avatar change with the refreshed session data of the user.
func (s *Service) imageUpdated(c *fiber.Ctx, id uint64, name string) error {
	var stored models.User
	if err := s.env.DB.Select("id", "name", "email", "token").First(&stored, id).Error; err != nil {
		log.Debug().Err(err).Uint64("id", id).Msg("User of updated image not found")
	}

	return response.With(c, response.MsgUpdated, fiber.Map{
		"userData": Data{Name: stored.Name, Email: stored.Email, ProfileImage: name, Token: stored.Token},
	})
}

// RefreshPermission answers the role of the caller with its grants.
func (s *Service) RefreshPermission(c *fiber.Ctx) error {
	userID, _ := auth.UserID(c)

	role, err := s.env.Auth.RoleOf(userID)
	if err != nil {
		log.Error().Err(err).Uint64("userId", userID).Msg("Failed to load role of caller")

		return response.ServerError(c, err)
	}

	return c.JSON(fiber.Map{"status": true, "roleData": role})
}

// Profile answers the user holding the caller's bearer token.
func (s *Service) Profile(c *fiber.Ctx) error {
	user, err := s.env.Local.UserByToken(auth.Token(c))
	if err != nil {
		log.Warn().Err(err).Msg("Profile lookup failed")

		return response.ServerError(c, err)
	}

	user.Password = ""
	user.Token = ""

	return response.Data(c, user)
}

type profileRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required"`
	RoleID uint64 `json:"role_id" validate:"required"`
}

// ProfileEdit changes name, email and role of a user.
func (s *Service) ProfileEdit(c *fiber.Ctx) error {
	id, err := resource.PathID(c)
	if err != nil {
		return response.Fail(c, response.MsgUpdateFailed)
	}

	var req profileRequest
	if err = c.BodyParser(&req); err != nil || s.env.Validator.Struct(&req) != nil {
		return response.InvalidParams(c)
	}

	err = s.env.DB.Model(&models.User{}).Where("id = ?", id).
		Select("name", "email", "role_id").
		Updates(&models.User{Name: req.Name, Email: req.Email, RoleID: req.RoleID}).Error
	if err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("Failed to update profile")

		return response.Fail(c, response.MsgUpdateFailed)
	}

	return response.With(c, response.MsgUpdated, fiber.Map{
		"userData": Data{Name: req.Name, Email: req.Email, RoleID: req.RoleID},
	})
}

type passwordRequest struct {
	Password    string `json:"password" validate:"required"`
	OldPassword string `json:"oldPassword" validate:"required"`
}

// PasswordEdit changes the password of a user after checking the current one.
func (s *Service) PasswordEdit(c *fiber.Ctx) error {
	id, err := resource.PathID(c)
	if err != nil {
		return response.Fail(c, response.MsgUpdateFailed)
	}

	var req passwordRequest
	if err = c.BodyParser(&req); err != nil || s.env.Validator.Struct(&req) != nil {
		return response.InvalidParams(c)
	}

	err = s.env.Local.ChangePassword(id, req.OldPassword, req.Password)

	switch {
	case err == nil:
		log.Info().Uint64("id", id).Msg("Password changed")

		return response.OK(c, response.MsgUpdated)
	case errors.Is(err, auth.ErrInvalidOldPassword):
		return response.Fail(c, msgPasswordMismatch)
	default:
		log.Error().Err(err).Uint64("id", id).Msg("Failed to change password")

		return response.Fail(c, response.MsgUpdateFailed)
	}
}
