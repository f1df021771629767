// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net/url"

	"github.com/ajadmin/ajadmin/internal/config"
)

// Create builds the mysql Data Source Name from the configuration.
func Create(dbCfg *config.Config) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.Name,
		dbCfg.DB.Extras,
	)

	return out
}

// Postgres builds a postgres connection URI from the configuration.
// DB.Extras is appended as query string, e.g. "sslmode=disable".
func Postgres(dbCfg *config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dbCfg.DB.User, dbCfg.DB.Password),
		Host:     fmt.Sprintf("%s:%d", dbCfg.DB.Host, dbCfg.DB.Port),
		Path:     "/" + dbCfg.DB.Name,
		RawQuery: dbCfg.DB.Extras,
	}

	return u.String()
}
