// Package web assembles the fiber application: middlewares, route groups and handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/ajadmin/ajadmin/internal/auth"
	"github.com/ajadmin/ajadmin/internal/config"
	fiberlogger "github.com/ajadmin/ajadmin/internal/logger/adapter/fiber"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/handler/admin/catalog"
	"github.com/ajadmin/ajadmin/internal/web/handler/admin/content"
	"github.com/ajadmin/ajadmin/internal/web/handler/admin/customer"
	"github.com/ajadmin/ajadmin/internal/web/handler/admin/order"
	"github.com/ajadmin/ajadmin/internal/web/handler/admin/product"
	"github.com/ajadmin/ajadmin/internal/web/handler/admin/role"
	"github.com/ajadmin/ajadmin/internal/web/handler/admin/setting"
	"github.com/ajadmin/ajadmin/internal/web/handler/admin/user"
	"github.com/ajadmin/ajadmin/internal/web/handler/authn"
	"github.com/ajadmin/ajadmin/internal/web/handler/dashboard"
	"github.com/ajadmin/ajadmin/internal/web/handler/mailer"
	"github.com/ajadmin/ajadmin/internal/web/handler/payment"
	"github.com/ajadmin/ajadmin/internal/web/handler/shop"
	"github.com/ajadmin/ajadmin/internal/web/response"
)

const (
	// CheckAlivePath answers 200 while the service takes traffic and 503 while it shuts down.
	CheckAlivePath = "/checkalive"

	// MetricsPath serves the prometheus metrics.
	MetricsPath = "/metrics"

	defaultPublicPath = "/public"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a termination signal and shuts the server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// group is a route prefix and the services mounted on it.
type group struct {
	prefix   string
	guard    []fiber.Handler
	services []handler.Service
}

// New creates the web service. limiterStorage keeps the login rate limiter counters; nil keeps them in memory.
func New(cfg *config.Config, env *handler.Env, limiterStorage fiber.Storage) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if !env.Ready() {
		panic("env cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			BodyLimit:      cfg.Webserver.BodyLimit,
			ReadTimeout:    cfg.Webserver.ReadTimeout.Duration,
			WriteTimeout:   cfg.Webserver.WriteTimeout.Duration,
			ErrorHandler:   errorHandler,
		},
	)

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	if cfg.Webserver.CleanPath {
		app.Use(cleanPath)
	}

	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{Config: cfg.Log, CheckAliveURI: CheckAlivePath}))
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(cors.New(cors.Config{AllowOrigins: allowOrigins(cfg.Webserver.AllowOrigins)}))
	app.Use(compress.New())

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	if cfg.Storage.Backend == "filesystem" {
		prefix := cfg.Storage.URLPrefix
		if prefix == "" {
			prefix = defaultPublicPath
		}

		app.Static(prefix, cfg.Storage.Path)
	}

	groups := []group{
		{
			prefix: handler.AdminPath,
			guard:  []fiber.Handler{auth.RequireIdentity(env.Tokens)},
			services: []handler.Service{
				&dashboard.Service{},
				&catalog.Service{},
				&product.Service{},
				&content.Service{},
				&customer.Service{},
				&user.Service{},
				&role.Service{},
				&order.Service{},
				&setting.Service{},
			},
		},
		{prefix: authn.Path, services: []handler.Service{&authn.Service{Storage: limiterStorage}}},
		{prefix: shop.Path, services: []handler.Service{&shop.Service{}}},
		{prefix: payment.Path, services: []handler.Service{&payment.Service{}}},
		{prefix: mailer.Path, services: []handler.Service{&mailer.Service{}}},
	}

	for _, g := range groups {
		router := app.Group(g.prefix, g.guard...)

		for _, s := range g.services {
			if err := s.Init(router, env); err != nil {
				log.Fatal().Err(err).Str("group", g.prefix).Msg("Failed to register handler")
			}
		}
	}

	log.Info().Int("groups", len(groups)).Msg("Routes registered")

	return service
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// cleanPath collapses duplicate slashes so "//api//v1" routes like "/api/v1".
func cleanPath(c *fiber.Ctx) error {
	if p := c.Path(); p != "/" {
		c.Path(path.Clean(p))
	}

	return c.Next()
}

func allowOrigins(origins string) string {
	if origins == "" {
		return "*"
	}

	return origins
}

// errorHandler answers unhandled errors with the json envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	return c.Status(code).JSON(response.Envelope{Msg: err.Error()})
}
