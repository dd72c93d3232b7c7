package repository

import (
	"testing"
	"time"

	"github.com/wdmapp/delivery-map-backend/internal/app/model"
	"github.com/wdmapp/delivery-map-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testShop = "demo-shop.example.com"

func setupPinTest(t *testing.T) (*gorm.DB, PinRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return testDB, NewPinRepository(testDB)
}

func TestPinRepository_Create(t *testing.T) {
	_, repo := setupPinTest(t)

	pin := &model.DeliveryPin{
		Shop:      testShop,
		Title:     "Brooklyn Hub",
		Latitude:  40.6782,
		Longitude: -73.9442,
	}

	err := repo.Create(pin)
	assert.NoError(t, err)
	assert.NotEmpty(t, pin.ID)
}

func TestPinRepository_FindByShop_OrderedNewestFirst(t *testing.T) {
	testDB, repo := setupPinTest(t)

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"First", "Second", "Third"} {
		pin := model.DeliveryPin{
			Shop:      testShop,
			Title:     title,
			Latitude:  40.0,
			Longitude: -74.0,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, testDB.Create(&pin).Error)
	}

	pins, err := repo.FindByShop(testShop)
	require.NoError(t, err)
	require.Len(t, pins, 3)
	assert.Equal(t, "Third", pins[0].Title)
	assert.Equal(t, "Second", pins[1].Title)
	assert.Equal(t, "First", pins[2].Title)
}

func TestPinRepository_FindByShop_Empty(t *testing.T) {
	_, repo := setupPinTest(t)

	pins, err := repo.FindByShop("no-such-shop.example.com")
	assert.NoError(t, err)
	assert.Len(t, pins, 0)
}

func TestPinRepository_FindByShopAndID_TenantIsolation(t *testing.T) {
	_, repo := setupPinTest(t)

	pin := &model.DeliveryPin{
		Shop:      testShop,
		Title:     "Queens Hub",
		Latitude:  40.7282,
		Longitude: -73.7949,
	}
	require.NoError(t, repo.Create(pin))

	// Owner can read it
	found, err := repo.FindByShopAndID(testShop, pin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Queens Hub", found.Title)

	// Another shop cannot, even with the exact id
	found, err = repo.FindByShopAndID("other-shop.example.com", pin.ID)
	assert.Nil(t, found)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPinRepository_Delete(t *testing.T) {
	_, repo := setupPinTest(t)

	pin := &model.DeliveryPin{
		Shop:      testShop,
		Title:     "Bronx Hub",
		Latitude:  40.8448,
		Longitude: -73.8648,
	}
	require.NoError(t, repo.Create(pin))

	err := repo.Delete(testShop, pin.ID)
	assert.NoError(t, err)

	pins, err := repo.FindByShop(testShop)
	require.NoError(t, err)
	assert.Len(t, pins, 0)
}

func TestPinRepository_Delete_NotFound(t *testing.T) {
	_, repo := setupPinTest(t)

	err := repo.Delete(testShop, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPinRepository_Delete_OtherShopsPin(t *testing.T) {
	_, repo := setupPinTest(t)

	pin := &model.DeliveryPin{
		Shop:      testShop,
		Title:     "Staten Island Hub",
		Latitude:  40.5795,
		Longitude: -74.1502,
	}
	require.NoError(t, repo.Create(pin))

	err := repo.Delete("other-shop.example.com", pin.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Pin must survive the cross-tenant attempt
	pins, err := repo.FindByShop(testShop)
	require.NoError(t, err)
	assert.Len(t, pins, 1)
}

func TestPinRepository_BulkCreate(t *testing.T) {
	_, repo := setupPinTest(t)

	pins := []model.DeliveryPin{
		{Shop: testShop, Title: "Hub A", Latitude: 40.1, Longitude: -74.1},
		{Shop: testShop, Title: "Hub B", Latitude: 40.2, Longitude: -74.2},
		{Shop: testShop, Title: "Hub C", Latitude: 40.3, Longitude: -74.3},
	}

	err := repo.BulkCreate(pins, 2)
	assert.NoError(t, err)

	found, err := repo.FindByShop(testShop)
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

func TestPinRepository_PurgeDeletedBefore(t *testing.T) {
	testDB, repo := setupPinTest(t)

	old := &model.DeliveryPin{
		Shop:      testShop,
		Title:     "Old Hub",
		Latitude:  40.0,
		Longitude: -74.0,
	}
	recent := &model.DeliveryPin{
		Shop:      testShop,
		Title:     "Recent Hub",
		Latitude:  40.1,
		Longitude: -74.1,
	}
	require.NoError(t, repo.Create(old))
	require.NoError(t, repo.Create(recent))

	require.NoError(t, repo.Delete(testShop, old.ID))
	require.NoError(t, repo.Delete(testShop, recent.ID))

	// Backdate one soft delete past the retention window
	backdated := time.Now().AddDate(0, 0, -45)
	require.NoError(t, testDB.Unscoped().Model(&model.DeliveryPin{}).
		Where("id = ?", old.ID).
		Update("deleted_at", backdated).Error)

	purged, err := repo.PurgeDeletedBefore(30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var remaining int64
	require.NoError(t, testDB.Unscoped().Model(&model.DeliveryPin{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)
}
