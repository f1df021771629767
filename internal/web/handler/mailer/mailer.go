// Package mailer serves the mail endpoint mounted at /api/v1/mail.
package mailer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ajadmin/ajadmin/internal/auth"
	"github.com/ajadmin/ajadmin/internal/mail"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/response"
)

// Path is the route group of the mail endpoint.
const Path = handler.APIPath + "/mail"

// Service is the mail handler service.
type Service struct {
	handler.Service
	env *handler.Env
}

// Handler is the mail handler.
var Handler = Service{}

// Init registers /send behind the identity resolver.
func (s *Service) Init(router fiber.Router, env *handler.Env) error {
	if router == nil || !env.Ready() || env.Mailer == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return nil
	}

	s.env = env

	router.Post("/send", auth.RequireIdentity(env.Tokens), s.Send)

	return nil
}

// Send renders the message template and relays the mail.
func (s *Service) Send(c *fiber.Ctx) error {
	var m mail.Message
	if err := c.BodyParser(&m); err != nil {
		return response.InvalidParams(c)
	}

	if err := s.env.Mailer.Send(c.UserContext(), m); err != nil {
		log.Error().Err(err).Str("to", m.To).Msg("Failed to send mail")

		return response.ServerError(c, err)
	}

	return response.Data(c, "Sent")
}
