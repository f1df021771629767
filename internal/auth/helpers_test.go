package auth

import (
	"crypto/rsa"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ajadmin/ajadmin/internal/db/models"
)

const testAudience = "ajadmin"

var testKeys = sync.OnceValues(func() (*rsa.PrivateKey, error) { //nolint:gochecknoglobals
	privatePEM, _, err := GenerateKeyPair(2048)
	if err != nil {
		return nil, err
	}

	return jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
})

func newTestTokens(t *testing.T) *Tokens {
	t.Helper()

	key, err := testKeys()
	require.NoError(t, err)

	return NewTokensFromKeys(key, &key.PublicKey, "ajadmin-test", testAudience, time.Hour)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	return db
}

// createStaff stores a role with grants and a user holding it.
func createStaff(t *testing.T, db *gorm.DB, email string, grants ...models.RolePermission) models.User {
	t.Helper()

	role := models.Role{Name: "role-" + email}
	require.NoError(t, db.Omit("Permissions").Create(&role).Error)
	require.NoError(t, NewService(db).ReplaceGrants(role.ID, grants))

	user := models.User{Name: email, Email: email, Password: models.HashPassword("secret"), RoleID: role.ID}
	require.NoError(t, db.Omit("Role").Create(&user).Error)

	return user
}
