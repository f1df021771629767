// Package setting serves the key/value shop settings of the admin api.
package setting

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ajadmin/ajadmin/internal/auth"
	dbsetting "github.com/ajadmin/ajadmin/internal/db/controller/setting"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/response"
)

// Service registers the setting routes.
type Service struct {
	handler.Service
	env *handler.Env
}

// Handler is the exported instance.
var Handler = Service{}

// Request is the body of settingEdit.
type Request struct {
	Value string `json:"value"`
}

// Init registers settingList and settingEdit.
func (s *Service) Init(router fiber.Router, env *handler.Env) error {
	if router == nil || !env.Ready() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return nil
	}

	s.env = env

	router.Get("/settingList", auth.RequirePermission(env.Auth, auth.ActionRead, auth.ModuleSetting), s.List)
	router.Put("/settingEdit/:name", auth.RequirePermission(env.Auth, auth.ActionUpdate, auth.ModuleSetting), s.Edit)

	return nil
}

// List answers every setting ordered by name.
func (s *Service) List(c *fiber.Ctx) error {
	settings, err := dbsetting.GetAll(s.env.DB)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list settings")

		return response.ServerError(c, err)
	}

	return response.Data(c, settings)
}

// Edit creates or replaces the value of the named setting.
func (s *Service) Edit(c *fiber.Ctx) error {
	name := c.Params("name")

	var req Request
	if err := c.BodyParser(&req); err != nil || name == "" {
		return response.InvalidParams(c)
	}

	stored, err := dbsetting.Set(s.env.DB, name, req.Value)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("Failed to save setting")

		return response.Fail(c, response.MsgUpdateFailed)
	}

	log.Info().Str("name", name).Msg("Setting saved")

	return response.With(c, response.MsgUpdated, fiber.Map{"data": stored})
}
