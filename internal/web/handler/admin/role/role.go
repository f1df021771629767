// Package role serves the roles of the admin api and their permission grants.
package role

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ajadmin/ajadmin/internal/auth"
	dbresource "github.com/ajadmin/ajadmin/internal/db/controller/resource"
	"github.com/ajadmin/ajadmin/internal/db/models"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/handler/admin/resource"
	"github.com/ajadmin/ajadmin/internal/web/response"
)

// Service registers the role routes.
type Service struct {
	handler.Service
	env *handler.Env
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers the role resource and the role lookup of the user form.
func (s *Service) Init(router fiber.Router, env *handler.Env) error {
	if router == nil || !env.Ready() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return nil
	}

	s.env = env

	if err := Resource().Init(router, env); err != nil {
		return err
	}

	router.Get("/userRoles", s.Roles)

	return nil
}

// Resource returns the list and CRUD routes of roles.
// A role body carries its grants, at most one per module.
func Resource() *resource.Resource[models.Role, *models.Role] {
	return &resource.Resource[models.Role, *models.Role]{
		Stem:   "role",
		Module: auth.ModuleRole,
		Table: dbresource.Table{
			Search:  []string{"name"},
			Preload: []string{"Permissions"},
		},
		BeforeCreate: func(_ *fiber.Ctx, _ *handler.Env, rec *models.Role) error {
			return uniqueModules(rec)
		},
		AfterCreate: func(_ *fiber.Ctx, env *handler.Env, rec *models.Role) error {
			return env.Auth.ReplaceGrants(rec.ID, rec.Permissions)
		},
		BeforeUpdate: func(_ *fiber.Ctx, _ *handler.Env, _ uint64, rec *models.Role) error {
			return uniqueModules(rec)
		},
		AfterUpdate: func(_ *fiber.Ctx, env *handler.Env, id uint64, rec *models.Role) error {
			var found int64
			if err := env.DB.Model(&models.Role{}).Where("id = ?", id).Count(&found).Error; err != nil {
				return fmt.Errorf("failed to look up role: %w", err)
			}

			if found == 0 {
				return nil
			}

			return env.Auth.ReplaceGrants(id, rec.Permissions)
		},
		AfterDelete: func(_ *fiber.Ctx, env *handler.Env, rec *models.Role) {
			if err := env.Auth.ReplaceGrants(rec.ID, nil); err != nil {
				log.Error().Err(err).Uint64("role", rec.ID).Msg("Failed to drop grants of deleted role")
			}
		},
	}
}

func uniqueModules(rec *models.Role) error {
	if module, dup := rec.DuplicateModule(); dup {
		return resource.Rejection("Duplicate permission module: " + module)
	}

	return nil
}

// Roles answers every role.
func (s *Service) Roles(c *fiber.Ctx) error {
	roles := []models.Role{}
	if err := s.env.DB.Order("name").Find(&roles).Error; err != nil {
		log.Error().Err(err).Msg("Failed to list roles")

		return response.ServerError(c, err)
	}

	return response.Data(c, roles)
}
