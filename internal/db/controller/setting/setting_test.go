package setting

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ajadmin/ajadmin/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// Migrate the schema
	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Setting{Name: "shop_name", Value: "AJ Shop"}).Error)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		settingName   string
		expectedError error
		expectedValue string
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			settingName:   "shop_name",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty name",
			dbParam:       db,
			settingName:   "",
			expectedError: ErrSettingNameEmpty,
		},
		{
			name:          "setting not found",
			dbParam:       db,
			settingName:   "nonexistent",
			expectedError: ErrSettingNotFound,
		},
		{
			name:          "successful get",
			dbParam:       db,
			settingName:   "shop_name",
			expectedValue: "AJ Shop",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Get(tc.dbParam, tc.settingName)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedValue, got.Value)
		})
	}
}

func TestSetUpserts(t *testing.T) {
	db := setupTestDB(t)

	created, err := Set(db, "currency", "usd")
	require.NoError(t, err)
	assert.Equal(t, "usd", created.Value)

	updated, err := Set(db, "currency", "eur")
	require.NoError(t, err)
	assert.Equal(t, "eur", updated.Value)
	assert.Equal(t, created.ID, updated.ID)

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = Set(db, "", "x")
	require.ErrorIs(t, err, ErrSettingNameEmpty)

	_, err = Set(nil, "currency", "x")
	require.ErrorIs(t, err, ErrDBNil)
}

func TestGetAll(t *testing.T) {
	db := setupTestDB(t)

	all, err := GetAll(db)
	require.NoError(t, err)
	assert.Empty(t, all)

	for _, name := range []string{"b", "a", "c"} {
		_, err = Set(db, name, name+"-value")
		require.NoError(t, err)
	}

	all, err = GetAll(db)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "c", all[2].Name)
}
