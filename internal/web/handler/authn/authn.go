// Package authn serves the login and bootstrap endpoints mounted at /api/v1/auth.
package authn

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/rs/zerolog/log"

	"github.com/ajadmin/ajadmin/internal/auth"
	"github.com/ajadmin/ajadmin/internal/config"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/response"
)

const (
	// Path is the route group of the authentication endpoints.
	Path = handler.APIPath + "/auth"

	msgLoggedIn         = "successfully login"
	msgPasswordMismatch = "Password Not Match"
	msgUserCreated      = "User Created"
	msgUserExists       = "User Already Exists"
	msgTooManyRequests  = "Too many login attempts, try again later"

	defaultLimiterMax        = 10
	defaultLimiterExpiration = time.Minute
)

// Service is the authentication handler service.
type Service struct {
	handler.Service
	env *handler.Env

	// Storage keeps the limiter counters. Nil keeps them in memory.
	Storage fiber.Storage
}

// Handler is the authentication handler.
var Handler = Service{}

// Credentials is the body of both login routes.
type Credentials struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Init registers the login routes on router, behind the rate limiter when it is enabled.
func (s *Service) Init(router fiber.Router, env *handler.Env) error {
	if router == nil || !env.Ready() || env.Local == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return nil
	}

	s.env = env

	if env.Cfg.Webserver.Limiter.Enabled {
		router.Use(Limiter(env.Cfg.Webserver.Limiter, s.Storage))
	}

	router.Post("/login", s.Login)
	router.Post("/customerLogin", s.CustomerLogin)
	router.Post("/addUserIfNotExist", s.Bootstrap)

	return nil
}

// Limiter counts requests per client IP.
func Limiter(cfg config.Limiter, store fiber.Storage) fiber.Handler {
	limit := cfg.Max
	if limit < 1 {
		limit = defaultLimiterMax
	}

	expiration := cfg.Expiration.Duration
	if expiration <= 0 {
		expiration = defaultLimiterExpiration
	}

	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: expiration,
		Storage:    store,
		LimitReached: func(c *fiber.Ctx) error {
			log.Warn().Str("ip", c.IP()).Str("path", c.Path()).Msg("Login rate limit reached")

			return c.Status(fiber.StatusTooManyRequests).JSON(response.Envelope{Msg: msgTooManyRequests})
		},
	})
}

func (s *Service) credentials(c *fiber.Ctx) (*Credentials, bool) {
	var in Credentials
	if err := c.BodyParser(&in); err != nil {
		return nil, false
	}

	if err := s.env.Validator.Struct(&in); err != nil {
		return nil, false
	}

	return &in, true
}

// Login authenticates a staff user and answers the token with the user's role.
func (s *Service) Login(c *fiber.Ctx) error {
	in, ok := s.credentials(c)
	if !ok {
		return response.InvalidParams(c)
	}

	user, err := s.env.Local.AuthenticateUser(in.Email, in.Password)
	if err != nil {
		return loginFailed(c, in.Email, err)
	}

	token, err := s.env.Local.IssueUserToken(user)
	if err != nil {
		log.Error().Err(err).Uint64("user", user.ID).Msg("Failed to issue token")

		return response.ServerError(c, err)
	}

	role, err := s.env.Auth.Role(user.RoleID)
	if err != nil && !errors.Is(err, auth.ErrRoleNotFound) {
		log.Error().Err(err).Uint64("user", user.ID).Msg("Failed to load role")

		return response.ServerError(c, err)
	}

	log.Info().Uint64("user", user.ID).Msg("User logged in")

	return c.JSON(fiber.Map{
		"status": true,
		"msg":    msgLoggedIn,
		"token":  token,
		"userData": fiber.Map{
			"name":         user.Name,
			"email":        user.Email,
			"profileImage": user.ProfileImage,
		},
		"roleData": role,
	})
}

// CustomerLogin authenticates a storefront customer.
func (s *Service) CustomerLogin(c *fiber.Ctx) error {
	in, ok := s.credentials(c)
	if !ok {
		return response.InvalidParams(c)
	}

	customer, err := s.env.Local.AuthenticateCustomer(in.Email, in.Password)
	if err != nil {
		return loginFailed(c, in.Email, err)
	}

	token, err := s.env.Local.IssueCustomerToken(customer)
	if err != nil {
		log.Error().Err(err).Uint64("customer", customer.ID).Msg("Failed to issue token")

		return response.ServerError(c, err)
	}

	log.Info().Uint64("customer", customer.ID).Msg("Customer logged in")

	return c.JSON(fiber.Map{
		"status": true,
		"msg":    msgLoggedIn,
		"token":  token,
		"userData": fiber.Map{
			"first_name":   customer.FirstName,
			"last_name":    customer.LastName,
			"email":        customer.Email,
			"profileImage": customer.ProfileImage,
		},
	})
}

func loginFailed(c *fiber.Ctx, email string, err error) error {
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		log.Debug().Str("email", email).Msg("Login for unknown email")

		return response.Fail(c, "User not found (email: "+email+")")
	case errors.Is(err, auth.ErrInvalidPassword):
		log.Debug().Str("email", email).Msg("Login with wrong password")

		return c.JSON(fiber.Map{"status": false, "msg": msgPasswordMismatch, "token": nil})
	default:
		log.Error().Err(err).Msg("Login failed")

		return response.ServerError(c, err)
	}
}

// Bootstrap creates the super admin role and user when there is no staff user yet.
func (s *Service) Bootstrap(c *fiber.Ctx) error {
	b := s.env.Cfg.Bootstrap

	created, err := s.env.Local.Bootstrap(b.Name, b.Email, b.Password)
	if err != nil {
		log.Error().Err(err).Msg("Bootstrap failed")

		return response.ServerError(c, err)
	}

	if !created {
		return response.OK(c, msgUserExists)
	}

	log.Info().Str("email", b.Email).Msg("Super admin created")

	return response.OK(c, msgUserCreated)
}
