package service

import (
	"testing"

	"github.com/wdmapp/delivery-map-backend/internal/app/model"
	"github.com/wdmapp/delivery-map-backend/internal/app/repository"
	"github.com/wdmapp/delivery-map-backend/internal/db"
	"github.com/wdmapp/delivery-map-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPinServiceTest(t *testing.T) (PinService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	pinRepo := repository.NewPinRepository(testDB)
	return NewPinService(pinRepo), testDB
}

func validPinInput() *PinInput {
	return &PinInput{
		Title:     strPtr("Brooklyn Hub"),
		Latitude:  floatPtr(40.6782),
		Longitude: floatPtr(-73.9442),
	}
}

func TestPinService_CreatePin_AppliesDefaults(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	pin, err := pinService.CreatePin(testShop, validPinInput())
	require.NoError(t, err)

	assert.NotEmpty(t, pin.ID)
	assert.Equal(t, testShop, pin.Shop)
	assert.Equal(t, model.DeliveryModeBoth, pin.DeliveryMode)
	assert.Equal(t, model.DefaultPinColor, pin.Color)
	assert.False(t, pin.HasRadius)
	assert.Nil(t, pin.RadiusDistance)
	assert.Equal(t, util.RadiusUnitKm, pin.RadiusUnit)
	assert.Equal(t, model.DefaultZoneColor, pin.FillColor)
	assert.Equal(t, model.DefaultBorderThickness, pin.BorderThickness)
	assert.Equal(t, model.DefaultFillOpacity, pin.FillOpacity)
}

func TestPinService_CreatePin_WithRadius(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	input := validPinInput()
	input.HasRadius = boolPtr(true)
	input.RadiusDistance = floatPtr(7.5)
	input.RadiusUnit = strPtr(util.RadiusUnitMile)
	input.FillColor = strPtr("#88cc88")

	pin, err := pinService.CreatePin(testShop, input)
	require.NoError(t, err)

	assert.True(t, pin.HasRadius)
	require.NotNil(t, pin.RadiusDistance)
	assert.Equal(t, 7.5, *pin.RadiusDistance)
	assert.Equal(t, util.RadiusUnitMile, pin.RadiusUnit)
	assert.Equal(t, "#88cc88", pin.FillColor)
}

func TestPinService_CreatePin_Validation(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	tests := []struct {
		name    string
		mutate  func(*PinInput)
		wantErr error
	}{
		{"missing title", func(in *PinInput) { in.Title = nil }, ErrTitleRequired},
		{"empty title", func(in *PinInput) { in.Title = strPtr("") }, ErrTitleRequired},
		{"missing latitude", func(in *PinInput) { in.Latitude = nil }, ErrInvalidCoordinates},
		{"latitude out of range", func(in *PinInput) { in.Latitude = floatPtr(91) }, ErrInvalidCoordinates},
		{"longitude out of range", func(in *PinInput) { in.Longitude = floatPtr(-181) }, ErrInvalidCoordinates},
		{"bad delivery mode", func(in *PinInput) { in.DeliveryMode = strPtr("overnight") }, ErrInvalidDeliveryMode},
		{
			"radius enabled without distance",
			func(in *PinInput) { in.HasRadius = boolPtr(true) },
			ErrInvalidRadius,
		},
		{
			"radius enabled with zero distance",
			func(in *PinInput) {
				in.HasRadius = boolPtr(true)
				in.RadiusDistance = floatPtr(0)
			},
			ErrInvalidRadius,
		},
		{
			"radius enabled with negative distance",
			func(in *PinInput) {
				in.HasRadius = boolPtr(true)
				in.RadiusDistance = floatPtr(-3)
			},
			ErrInvalidRadius,
		},
		{
			"bad radius unit",
			func(in *PinInput) {
				in.HasRadius = boolPtr(true)
				in.RadiusDistance = floatPtr(5)
				in.RadiusUnit = strPtr("leagues")
			},
			ErrInvalidRadiusUnit,
		},
		{
			"zero border thickness",
			func(in *PinInput) {
				in.HasRadius = boolPtr(true)
				in.RadiusDistance = floatPtr(5)
				in.BorderThickness = floatPtr(0)
			},
			ErrInvalidThickness,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validPinInput()
			tt.mutate(input)

			pin, err := pinService.CreatePin(testShop, input)
			assert.Nil(t, pin)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPinService_CreatePin_RadiusDisabledIgnoresRadiusFields(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	input := validPinInput()
	input.HasRadius = boolPtr(false)
	input.RadiusDistance = floatPtr(25)
	input.FillColor = strPtr("#123456")

	pin, err := pinService.CreatePin(testShop, input)
	require.NoError(t, err)

	assert.False(t, pin.HasRadius)
	assert.Nil(t, pin.RadiusDistance)
	assert.Equal(t, model.DefaultZoneColor, pin.FillColor)
}

func TestPinService_CreatePin_ClampsOpacity(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	input := validPinInput()
	input.HasRadius = boolPtr(true)
	input.RadiusDistance = floatPtr(5)
	input.FillOpacity = floatPtr(2.5)

	pin, err := pinService.CreatePin(testShop, input)
	require.NoError(t, err)
	assert.Equal(t, 1.0, pin.FillOpacity)
}

func TestPinService_UpdatePin(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	pin, err := pinService.CreatePin(testShop, validPinInput())
	require.NoError(t, err)

	updated, err := pinService.UpdatePin(testShop, pin.ID, &PinInput{
		Title:        strPtr("Renamed Hub"),
		DeliveryMode: strPtr(model.DeliveryModeSameDay),
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed Hub", updated.Title)
	assert.Equal(t, model.DeliveryModeSameDay, updated.DeliveryMode)
	// Untouched fields survive
	assert.Equal(t, 40.6782, updated.Latitude)
}

func TestPinService_UpdatePin_DisablingRadiusResetsZone(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	input := validPinInput()
	input.HasRadius = boolPtr(true)
	input.RadiusDistance = floatPtr(10)
	input.FillColor = strPtr("#abcdef")
	pin, err := pinService.CreatePin(testShop, input)
	require.NoError(t, err)

	updated, err := pinService.UpdatePin(testShop, pin.ID, &PinInput{
		HasRadius: boolPtr(false),
	})
	require.NoError(t, err)

	assert.False(t, updated.HasRadius)
	assert.Nil(t, updated.RadiusDistance)
	assert.Equal(t, model.DefaultZoneColor, updated.FillColor)
	assert.Equal(t, model.DefaultFillOpacity, updated.FillOpacity)
}

func TestPinService_UpdatePin_CrossTenantNotFound(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	pin, err := pinService.CreatePin(testShop, validPinInput())
	require.NoError(t, err)

	updated, err := pinService.UpdatePin("other-shop.example.com", pin.ID, &PinInput{
		Title: strPtr("Hijacked"),
	})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, ErrPinNotFound)

	// The pin is untouched
	pins, err := pinService.ListPins(testShop)
	require.NoError(t, err)
	require.Len(t, pins, 1)
	assert.Equal(t, "Brooklyn Hub", pins[0].Title)
}

func TestPinService_DeletePin(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	pin, err := pinService.CreatePin(testShop, validPinInput())
	require.NoError(t, err)

	err = pinService.DeletePin(testShop, pin.ID)
	assert.NoError(t, err)

	pins, err := pinService.ListPins(testShop)
	require.NoError(t, err)
	assert.Len(t, pins, 0)
}

func TestPinService_DeletePin_NotFound(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	err := pinService.DeletePin(testShop, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrPinNotFound)
}

func TestPinService_CheckCoverage(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	// Same-day zone: 10km around downtown Brooklyn
	input := validPinInput()
	input.DeliveryMode = strPtr(model.DeliveryModeSameDay)
	input.HasRadius = boolPtr(true)
	input.RadiusDistance = floatPtr(10)
	_, err := pinService.CreatePin(testShop, input)
	require.NoError(t, err)

	// A point a couple of km away is covered for same-day only
	coverage, err := pinService.CheckCoverage(testShop, 40.6943, -73.9855)
	require.NoError(t, err)
	assert.True(t, coverage.SameDay)
	assert.False(t, coverage.Scheduled)

	// Los Angeles is far outside the zone
	coverage, err = pinService.CheckCoverage(testShop, 34.0522, -118.2437)
	require.NoError(t, err)
	assert.False(t, coverage.SameDay)
	assert.False(t, coverage.Scheduled)
}

func TestPinService_CheckCoverage_BothMode(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	input := validPinInput()
	input.HasRadius = boolPtr(true)
	input.RadiusDistance = floatPtr(5)
	// DeliveryMode defaults to both
	_, err := pinService.CreatePin(testShop, input)
	require.NoError(t, err)

	coverage, err := pinService.CheckCoverage(testShop, 40.6782, -73.9442)
	require.NoError(t, err)
	assert.True(t, coverage.SameDay)
	assert.True(t, coverage.Scheduled)
}

func TestPinService_CheckCoverage_MileRadius(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	input := validPinInput()
	input.HasRadius = boolPtr(true)
	input.RadiusDistance = floatPtr(5)
	input.RadiusUnit = strPtr(util.RadiusUnitMile)
	_, err := pinService.CreatePin(testShop, input)
	require.NoError(t, err)

	// ~7km away: inside 5 miles (~8.05km) but outside 5km
	coverage, err := pinService.CheckCoverage(testShop, 40.7410, -73.9420)
	require.NoError(t, err)
	assert.True(t, coverage.SameDay)
}

func TestPinService_CheckCoverage_PinsWithoutRadiusDoNotCover(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	_, err := pinService.CreatePin(testShop, validPinInput())
	require.NoError(t, err)

	coverage, err := pinService.CheckCoverage(testShop, 40.6782, -73.9442)
	require.NoError(t, err)
	assert.False(t, coverage.SameDay)
	assert.False(t, coverage.Scheduled)
}

func TestPinService_CheckCoverage_InvalidPoint(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	coverage, err := pinService.CheckCoverage(testShop, 95, 0)
	assert.Nil(t, coverage)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestPinService_ListPins_EmptyShopReturnsEmptySlice(t *testing.T) {
	pinService, _ := setupPinServiceTest(t)

	pins, err := pinService.ListPins(testShop)
	require.NoError(t, err)
	assert.NotNil(t, pins)
	assert.Len(t, pins, 0)
}
