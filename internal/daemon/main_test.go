package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajadmin/ajadmin/internal/auth"
	"github.com/ajadmin/ajadmin/internal/config"
	"github.com/ajadmin/ajadmin/internal/db/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()

	privatePEM, publicPEM, err := auth.GenerateKeyPair(2048)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.pem"), privatePEM, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.pem"), publicPEM, 0o600))

	return &config.Config{
		Title: "AJAdmin",
		DB:    config.DB{GormEngine: "sqlite", Path: filepath.Join(dir, "ajadmin.db")},
		JWT: config.JWT{
			PrivateKey: filepath.Join(dir, "private.pem"),
			PublicKey:  filepath.Join(dir, "public.pem"),
			Audience:   "ajadmin",
		},
		Storage:   config.Storage{Backend: "filesystem", Path: filepath.Join(dir, "public")},
		Bootstrap: config.Bootstrap{Name: "Super Admin", Email: "superadmin@mail.com", Password: "secret"},
	}
}

func TestOpenDB(t *testing.T) {
	cfg := testConfig(t)

	db, err := OpenDB(cfg)
	require.NoError(t, err)

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}

	cfg.DB.GormEngine = "oracle"
	_, err = OpenDB(cfg)
	require.ErrorIs(t, err, config.ErrUnknownGormEngine)
}

func TestNewEnv(t *testing.T) {
	cfg := testConfig(t)

	db, err := OpenDB(cfg)
	require.NoError(t, err)

	env, err := NewEnv(context.Background(), cfg, db)
	require.NoError(t, err)
	assert.True(t, env.Ready())
	assert.NotNil(t, env.Mailer)
	assert.NotNil(t, env.Payments)

	token, err := env.Tokens.Sign(1, "a@mail.com", auth.KindUser)
	require.NoError(t, err)

	_, err = env.Tokens.Verify(token)
	require.NoError(t, err)

	cfg.JWT.PublicKey = filepath.Join(t.TempDir(), "missing.pem")
	_, err = NewEnv(context.Background(), cfg, db)
	require.Error(t, err)
}

func TestLimiterStorage(t *testing.T) {
	cfg := testConfig(t)

	assert.Nil(t, LimiterStorage(cfg, nil), "memory is the default")

	cfg.Webserver.Limiter.Storage = "db"
	assert.Nil(t, LimiterStorage(cfg, nil), "sqlite counts in memory")
}

func TestBootstrap(t *testing.T) {
	cfg := testConfig(t)

	created, err := Bootstrap(cfg)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = Bootstrap(cfg)
	require.NoError(t, err)
	assert.False(t, created, "a second run leaves the existing users alone")
}

func TestNewRejectsNilConfig(t *testing.T) {
	_, err := New(context.Background(), nil)
	require.ErrorIs(t, err, errNilConfig)
}
