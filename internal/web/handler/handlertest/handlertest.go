// Package handlertest builds the handler environment used by the api handler tests:
// an in-memory database, signing keys, a temporary image store and request helpers.
package handlertest

import (
	"bytes"
	"crypto/rsa"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ajadmin/ajadmin/internal/auth"
	"github.com/ajadmin/ajadmin/internal/config"
	"github.com/ajadmin/ajadmin/internal/db/models"
	"github.com/ajadmin/ajadmin/internal/storage"
	"github.com/ajadmin/ajadmin/internal/web/handler"
)

// Password is the password of every account created by this package.
const Password = "secret"

var keys = sync.OnceValues(func() (*rsa.PrivateKey, error) { //nolint:gochecknoglobals
	privatePEM, _, err := auth.GenerateKeyPair(2048)
	if err != nil {
		return nil, err
	}

	return jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
})

// NewDB opens a migrated in-memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	return db
}

// NewEnv returns a ready handler environment. Images are stored below a temporary directory.
func NewEnv(t *testing.T) *handler.Env {
	t.Helper()

	key, err := keys()
	require.NoError(t, err)

	db := NewDB(t)
	tokens := auth.NewTokensFromKeys(key, &key.PublicKey, "ajadmin-test", "ajadmin", time.Hour)

	return &handler.Env{
		Cfg: &config.Config{
			Title:     "AJAdmin",
			Bootstrap: config.Bootstrap{Name: "Super Admin", Email: "superadmin@mail.com", Password: Password},
		},
		DB:        db,
		Auth:      auth.NewService(db),
		Tokens:    tokens,
		Local:     auth.NewLocalProvider(db, tokens),
		Images:    storage.NewFileSystem(t.TempDir()),
		Validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// AdminApp mounts services on the admin group behind the identity resolver, the way the server does.
func AdminApp(t *testing.T, env *handler.Env, services ...handler.Service) *fiber.App {
	t.Helper()

	app := fiber.New()
	admin := app.Group(handler.AdminPath, auth.RequireIdentity(env.Tokens))

	for _, s := range services {
		require.NoError(t, s.Init(admin, env))
	}

	return app
}

// Staff stores a user whose role holds grants and returns the user with a signed token.
func Staff(t *testing.T, env *handler.Env, email string, grants ...auth.Grant) (models.User, string) {
	t.Helper()

	role := models.Role{Name: "role-" + email}
	require.NoError(t, env.DB.Omit("Permissions").Create(&role).Error)

	rows := make([]models.RolePermission, len(grants))
	for i, g := range grants {
		rows[i] = models.RolePermission{Module: g.Module, Actions: g.Actions}
	}

	require.NoError(t, env.Auth.ReplaceGrants(role.ID, rows))

	user := models.User{Name: email, Email: email, Password: models.HashPassword(Password), RoleID: role.ID}
	require.NoError(t, env.DB.Omit("Role").Create(&user).Error)

	token, err := env.Local.IssueUserToken(&user)
	require.NoError(t, err)

	return user, token
}

// SuperAdmin stores a user holding every grant and returns its token.
func SuperAdmin(t *testing.T, env *handler.Env) string {
	t.Helper()

	_, token := Staff(t, env, "root@mail.com", auth.FullGrants()...)

	return token
}

// Response is a decoded JSON answer.
type Response struct {
	Code int
	Body map[string]any
}

// Status returns the envelope status.
func (r Response) Status() bool {
	ok, _ := r.Body["status"].(bool)

	return ok
}

// Msg returns the envelope message.
func (r Response) Msg() string {
	msg, _ := r.Body["msg"].(string)

	return msg
}

// Data returns the envelope data as a list.
func (r Response) Data() []any {
	data, _ := r.Body["data"].([]any)

	return data
}

// Call sends a request with an optional JSON body and bearer token.
func Call(t *testing.T, app *fiber.App, method, path, token string, body any) Response {
	t.Helper()

	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	return send(t, app, req, token)
}

// File is one file part of a multipart upload.
type File struct {
	Field   string
	Name    string
	Content string
}

// Upload sends a multipart form with files and plain values.
func Upload(t *testing.T, app *fiber.App, path, token string, values map[string]string, files ...File) Response {
	t.Helper()

	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)

	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}

	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		require.NoError(t, err)

		_, err = part.Write([]byte(f.Content))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())

	return send(t, app, req, token)
}

func send(t *testing.T, app *fiber.App, req *http.Request, token string) Response {
	t.Helper()

	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	out := Response{Code: resp.StatusCode, Body: map[string]any{}}
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out.Body))
	}

	return out
}
