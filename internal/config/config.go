// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/BurntSushi/toml"
)

const (
	// EnvConfigJSON holds a json document merged over main.toml.
	EnvConfigJSON = "AJADMIN_CONFIG_JSON"

	defaultShutDownTime = 5
	defaultJWTTTL       = 7 * 24 * time.Hour
	defaultAudience     = "ajadmin"
	defaultBodyLimit    = 8 * 1024 * 1024
)

// Secrets are never read from main.toml. They come from the environment or an optional .env file.
type Secrets struct {
	DBPassword        string `env:"AJADMIN_DB_PASSWORD"`
	SMTPPassword      string `env:"SENDGRID_API_KEY"`
	StripeSecretKey   string `env:"STRIPE_SECRET_KEY"`
	BootstrapPassword string `env:"AJADMIN_BOOTSTRAP_PASSWORD"`
	DataDogAPIKey     string `env:"DD_API_KEY"`
}

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	if err = applySecrets(&c, path+".env"); err != nil {
		return c, err
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// applySecrets loads dotEnvFile if it exists and copies the secrets into c.
func applySecrets(c *Config, dotEnvFile string) error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "failed to read .env file")
	}

	var s Secrets
	if err := env.Parse(&s); err != nil {
		return errors.Wrap(err, "failed to read secrets from env")
	}

	c.DB.Password = s.DBPassword
	c.Mail.Password = s.SMTPPassword
	c.Payment.SecretKey = s.StripeSecretKey
	c.Bootstrap.Password = s.BootstrapPassword

	if s.DataDogAPIKey != "" {
		c.Log.DataDog.APIKey = s.DataDogAPIKey
	}

	return nil
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the daemon can not start without and fills in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	// validate access-control-allow-origin
	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	switch c.DB.GormEngine {
	case "mysql", "postgres", "sqlite":
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	if c.JWT.PublicKey == "" {
		return errors.Wrap(ErrEmptyJWTPublicKey, invalidErrMessage)
	}

	switch c.Storage.Backend {
	case "", "filesystem":
		c.Storage.Backend = "filesystem"
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return errors.Wrap(ErrEmptyS3Bucket, invalidErrMessage)
		}
	default:
		return errors.Wrap(ErrUnknownStorageBackend, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.BodyLimit == 0 {
		c.Webserver.BodyLimit = defaultBodyLimit
	}

	if c.JWT.TTL.Duration == 0 {
		c.JWT.TTL.Duration = defaultJWTTTL
	}

	if c.JWT.Audience == "" {
		c.JWT.Audience = defaultAudience
	}

	if c.Storage.Path == "" {
		c.Storage.Path = "public"
	}

	if c.Storage.URLPrefix == "" {
		c.Storage.URLPrefix = "/public"
	}

	if c.Payment.Currency == "" {
		c.Payment.Currency = "usd"
	}

	if c.Bootstrap.Email == "" {
		c.Bootstrap.Email = "superadmin@mail.com"
	}

	if c.Bootstrap.Name == "" {
		c.Bootstrap.Name = "Super Admin"
	}

	return nil
}
