package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/ajadmin/ajadmin/internal/web/response"
)

const (
	resultAllow = "allow"
	resultDeny  = "deny"
	resultError = "error"
)

var permissionChecks = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "permission_checks_total",
		Help: "Number of permission checks, differentiated by module, action and result.",
	},
	[]string{"module", "action", "result"},
)

// DenyMessage is the message of a denied permission check.
func DenyMessage(action string) string {
	return "You are trying to " + action + " and do not have the correct permissions."
}

// RequirePermission creates Fiber middleware that requires the caller's role to grant action on module.
// It must run after RequireIdentity.
func RequirePermission(authService *Service, action, module string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := UserID(c)
		if !ok {
			log.Error().Str("permission", module+":"+action).Msg("Permission check without identity")
			permissionChecks.WithLabelValues(module, action, resultError).Inc()

			return response.Unauthorized(c, DenyMessage(action))
		}

		if IdentityKind(c) != KindUser {
			log.Warn().Uint64("customer_id", userID).Str("permission", module+":"+action).
				Msg("Customer token used on a staff route")
			permissionChecks.WithLabelValues(module, action, resultDeny).Inc()

			return response.Unauthorized(c, DenyMessage(action))
		}

		allowed, err := authService.Allowed(userID, action, module)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).Str("permission", module+":"+action).
				Msg("Failed to check permission")
			permissionChecks.WithLabelValues(module, action, resultError).Inc()

			return response.Unauthorized(c, DenyMessage(action))
		}

		if !allowed {
			log.Warn().Uint64("user_id", userID).Str("permission", module+":"+action).
				Msg("User lacks required permission")
			permissionChecks.WithLabelValues(module, action, resultDeny).Inc()

			return response.Unauthorized(c, DenyMessage(action))
		}

		permissionChecks.WithLabelValues(module, action, resultAllow).Inc()

		return c.Next()
	}
}

// RequireStaff creates Fiber middleware that rejects customer tokens. It must run after RequireIdentity.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IdentityKind(c) != KindUser {
			return response.Unauthorized(c, ErrNotStaff.Error())
		}

		return c.Next()
	}
}
