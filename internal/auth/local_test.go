package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajadmin/ajadmin/internal/db/models"
)

func TestBootstrap(t *testing.T) {
	db := newTestDB(t)
	provider := NewLocalProvider(db, newTestTokens(t))

	_, err := provider.Bootstrap("Super Admin", "superadmin@mail.com", "")
	require.ErrorIs(t, err, ErrEmptyBootstrapPassword)

	created, err := provider.Bootstrap("Super Admin", "superadmin@mail.com", "s3cret")
	require.NoError(t, err)
	assert.True(t, created)

	user, err := provider.AuthenticateUser("superadmin@mail.com", "s3cret")
	require.NoError(t, err)

	role, err := NewService(db).RoleOf(user.ID)
	require.NoError(t, err)
	assert.Equal(t, SuperAdminRole, role.Name)
	assert.Equal(t, "Can Do Anything", role.Description)
	assert.Len(t, role.Permissions, len(FullGrants()))

	for _, g := range FullGrants() {
		for _, a := range g.Actions {
			assert.True(t, role.Can(a, g.Module), "%s %s", a, g.Module)
		}
	}

	assert.True(t, role.Can(ActionView, ModuleOrders))
	assert.False(t, role.Can(ActionDelete, ModuleSetting))

	created, err = provider.Bootstrap("Super Admin", "superadmin@mail.com", "s3cret")
	require.NoError(t, err)
	assert.False(t, created)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	provider := NewLocalProvider(db, newTestTokens(t))

	createStaff(t, db, "staff@mail.com")

	customer := models.Customer{
		FirstName: "Ann",
		Email:     "ann@mail.com",
		PhoneNo:   "123",
		Password:  models.HashPassword("pw"),
	}
	require.NoError(t, db.Create(&customer).Error)

	_, err := provider.AuthenticateUser("nobody@mail.com", "secret")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = provider.AuthenticateUser("staff@mail.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = provider.AuthenticateUser("staff@mail.com", "secret")
	require.NoError(t, err)

	_, err = provider.AuthenticateCustomer("ANN@mail.com", "pw")
	require.NoError(t, err)

	_, err = provider.AuthenticateCustomer("ann@mail.com", "nope")
	require.ErrorIs(t, err, ErrInvalidPassword)
}

func TestIssueTokens(t *testing.T) {
	db := newTestDB(t)
	tokens := newTestTokens(t)
	provider := NewLocalProvider(db, tokens)

	user := createStaff(t, db, "staff@mail.com", models.RolePermission{Module: ModuleTag, Actions: []string{ActionRead}})

	token, err := provider.IssueUserToken(&user)
	require.NoError(t, err)
	assert.Equal(t, token, user.Token)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.ID)
	assert.Equal(t, KindUser, claims.Kind)

	found, err := provider.UserByToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	require.NotNil(t, found.Role)
	assert.True(t, found.Role.Can(ActionRead, ModuleTag))

	_, err = provider.UserByToken("other")
	require.ErrorIs(t, err, ErrAccountNotFound)

	customer := models.Customer{FirstName: "Ann", Email: "ann@mail.com", PhoneNo: "1", Password: "x"}
	require.NoError(t, db.Create(&customer).Error)

	token, err = provider.IssueCustomerToken(&customer)
	require.NoError(t, err)

	var stored models.Customer
	require.NoError(t, db.First(&stored, customer.ID).Error)
	assert.Equal(t, token, stored.Token)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	provider := NewLocalProvider(db, newTestTokens(t))

	user := createStaff(t, db, "staff@mail.com")

	require.ErrorIs(t, provider.ChangePassword(user.ID, "wrong", "new"), ErrInvalidOldPassword)
	require.ErrorIs(t, provider.ChangePassword(user.ID+10, "secret", "new"), ErrUserNotFound)
	require.NoError(t, provider.ChangePassword(user.ID, "secret", "new"))

	_, err := provider.AuthenticateUser("staff@mail.com", "new")
	require.NoError(t, err)
}
