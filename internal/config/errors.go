package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownGormEngine error if config db.gormEngine is not supported.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine must be mysql, postgres or sqlite")

	// ErrEmptyJWTPublicKey error if no public key to verify bearer tokens is configured.
	ErrEmptyJWTPublicKey = errors.New("toml config jwt.publicKey can not be empty")

	// ErrUnknownStorageBackend error if config storage.backend is not supported.
	ErrUnknownStorageBackend = errors.New("toml config storage.backend must be filesystem or s3")

	// ErrEmptyS3Bucket error if the s3 backend is selected without a bucket.
	ErrEmptyS3Bucket = errors.New("toml config storage.s3.bucket can not be empty")
)
