package repository

import (
	"testing"

	"github.com/wdmapp/delivery-map-backend/internal/app/model"
	"github.com/wdmapp/delivery-map-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSettingsTest(t *testing.T) (*gorm.DB, SettingsRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return testDB, NewSettingsRepository(testDB)
}

func TestSettingsRepository_CreateAndFind(t *testing.T) {
	_, repo := setupSettingsTest(t)

	settings := model.DefaultMapSettings(testShop)
	err := repo.Create(&settings)
	require.NoError(t, err)
	assert.NotZero(t, settings.ID)

	found, err := repo.FindByShop(testShop)
	require.NoError(t, err)
	assert.Equal(t, testShop, found.Shop)
	assert.Equal(t, model.MapModeInteractive, found.SameDayMode)
	assert.Equal(t, 11, found.SameDayZoomLevel)
}

func TestSettingsRepository_FindByShop_NotFound(t *testing.T) {
	_, repo := setupSettingsTest(t)

	found, err := repo.FindByShop("no-such-shop.example.com")
	assert.Nil(t, found)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSettingsRepository_Update(t *testing.T) {
	_, repo := setupSettingsTest(t)

	settings := model.DefaultMapSettings(testShop)
	require.NoError(t, repo.Create(&settings))

	settings.SameDayZoomLevel = 13
	settings.ButtonColor = "#ffffff"
	require.NoError(t, repo.Update(&settings))

	found, err := repo.FindByShop(testShop)
	require.NoError(t, err)
	assert.Equal(t, 13, found.SameDayZoomLevel)
	assert.Equal(t, "#ffffff", found.ButtonColor)
}

func TestSettingsRepository_OneRowPerShop(t *testing.T) {
	_, repo := setupSettingsTest(t)

	first := model.DefaultMapSettings(testShop)
	require.NoError(t, repo.Create(&first))

	second := model.DefaultMapSettings(testShop)
	err := repo.Create(&second)
	assert.Error(t, err)
}
