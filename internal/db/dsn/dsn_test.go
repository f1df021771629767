package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajadmin/ajadmin/internal/config"
)

func TestCreate(t *testing.T) {
	cfg := &config.Config{DB: config.DB{
		User:     "shop",
		Password: "secret",
		Host:     "db",
		Port:     3306,
		Name:     "ajadmin",
		Extras:   "parseTime=True",
	}}

	assert.Equal(t, "shop:secret@tcp(db:3306)/ajadmin?parseTime=True", Create(cfg))
}

func TestPostgres(t *testing.T) {
	cfg := &config.Config{DB: config.DB{
		User:     "shop",
		Password: "p@ss word",
		Host:     "db",
		Port:     5432,
		Name:     "ajadmin",
		Extras:   "sslmode=disable",
	}}

	assert.Equal(t, "postgres://shop:p%40ss%20word@db:5432/ajadmin?sslmode=disable", Postgres(cfg))
}
