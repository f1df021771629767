package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ajadmin/ajadmin/internal/web/response"
)

// fiber.Locals keys set by RequireIdentity.
const (
	LocalsUserID = "userId"
	LocalsKind   = "identityKind"
	LocalsToken  = "bearerToken"
)

const (
	msgMissingToken = "Unauthorized: a bearer token is required"
	msgInvalidToken = "Unauthorized: the bearer token is invalid or expired"
)

// RequireIdentity creates Fiber middleware that only lets requests with a valid bearer token pass.
func RequireIdentity(tokens *Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := BearerToken(c)
		if err != nil {
			log.Debug().Str("path", c.Path()).Msg("Request without bearer token")

			return response.Unauthorized(c, msgMissingToken)
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Str("ip", c.IP()).Msg("Rejected bearer token")

			return response.Unauthorized(c, msgInvalidToken)
		}

		c.Locals(LocalsUserID, claims.ID)
		c.Locals(LocalsKind, claims.Kind)
		c.Locals(LocalsToken, raw)

		return c.Next()
	}
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(c *fiber.Ctx) (string, error) {
	scheme, token, found := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingBearer
	}

	return strings.TrimSpace(token), nil
}

// UserID returns the caller id stored by RequireIdentity.
func UserID(c *fiber.Ctx) (uint64, bool) {
	id, ok := c.Locals(LocalsUserID).(uint64)

	return id, ok
}

// IdentityKind returns the caller kind stored by RequireIdentity.
func IdentityKind(c *fiber.Ctx) Kind {
	kind, _ := c.Locals(LocalsKind).(Kind)

	return kind
}

// Token returns the raw bearer token stored by RequireIdentity.
func Token(c *fiber.Ctx) string {
	raw, _ := c.Locals(LocalsToken).(string)

	return raw
}
