package config

import (
	"time"

	"github.com/ajadmin/ajadmin/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	JWT       JWT
	Storage   Storage
	Mail      Mail
	Payment   Payment
	Bootstrap Bootstrap
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool     // use clean path middleware to allow multi slash requests
	DisableRecover bool     // disable recover middleware
	Port           int      // listening port for the webserver
	ShutDownTime   int      // wait time for shutdown
	URL            string   // base url for the webserver
	BodyLimit      int      // max request body size in bytes, image uploads included
	ReadTimeout    Duration // zero means no timeout
	WriteTimeout   Duration
	AllowOrigins   string // comma separated CORS origins, "*" allows any
	Limiter        Limiter
}

// Limiter rate limits the login endpoints.
type Limiter struct {
	Enabled    bool
	Max        int
	Expiration Duration
	Storage    string // "memory" or "db"
}

// JWT holds the bearer token settings. Only the public key is needed to verify tokens.
type JWT struct {
	PrivateKey string // path to the PEM encoded RSA private key
	PublicKey  string // path to the PEM encoded RSA public key
	Issuer     string
	Audience   string
	TTL        Duration
}

// Storage selects where uploaded images live.
type Storage struct {
	Backend   string // "filesystem" or "s3"
	Path      string // filesystem root, served under URLPrefix
	URLPrefix string
	S3        S3
}

// S3 holds the settings of the S3 image backend.
type S3 struct {
	Bucket       string
	Region       string
	Endpoint     string // optional, for S3 compatible services
	Prefix       string
	UsePathStyle bool
}

// Mail holds the outgoing SMTP relay.
type Mail struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string `json:"-" toml:"-"`
	From     string
	FromName string
}

// Payment holds the card processor settings.
type Payment struct {
	SecretKey   string `json:"-" toml:"-"`
	Currency    string
	Description string
}

// Bootstrap describes the first administrator account.
type Bootstrap struct {
	Name     string
	Email    string
	Password string `json:"-" toml:"-"`
}

// Duration wraps time.Duration so it can be written as "168h" in toml and json.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error

	d.Duration, err = time.ParseDuration(string(text))

	return err //nolint:wrapcheck
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
