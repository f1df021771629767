// Package payment serves the card charge endpoint mounted at /api/v1/payment.
package payment

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ajadmin/ajadmin/internal/web/handler"
)

const (
	// Path is the route group of the payment endpoint.
	Path = handler.APIPath + "/payment"

	msgSuccess = "Payment Successful"
	msgFailed  = "Payment Failed"
)

// Service is the payment handler service.
type Service struct {
	handler.Service
	env *handler.Env
}

// Handler is the payment handler.
var Handler = Service{}

// Request is the body of /charge. Amount is in minor units, ID is the payment method id.
type Request struct {
	Amount int64  `json:"amount"`
	ID     string `json:"id"`
}

// Result is the answer of /charge.
type Result struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// Init registers /charge for GET and POST.
func (s *Service) Init(router fiber.Router, env *handler.Env) error {
	if router == nil || !env.Ready() || env.Payments == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return nil
	}

	s.env = env

	router.Get("/charge", s.Charge)
	router.Post("/charge", s.Charge)

	return nil
}

// Charge confirms a payment of the requested amount.
func (s *Service) Charge(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		log.Debug().Err(err).Msg("Unreadable charge request")

		return c.JSON(Result{Message: msgFailed})
	}

	intent, err := s.env.Payments.Charge(c.UserContext(), req.Amount, req.ID)
	if err != nil {
		log.Error().Err(err).Int64("amount", req.Amount).Msg("Charge failed")

		return c.JSON(Result{Message: msgFailed})
	}

	log.Info().Str("intent", intent).Int64("amount", req.Amount).Msg("Charge succeeded")

	return c.JSON(Result{Message: msgSuccess, Success: true})
}
