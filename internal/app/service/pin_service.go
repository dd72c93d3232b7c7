package service

import (
	"errors"

	"github.com/wdmapp/delivery-map-backend/internal/app/model"
	"github.com/wdmapp/delivery-map-backend/internal/app/repository"
	"github.com/wdmapp/delivery-map-backend/pkg/logger"
	"github.com/wdmapp/delivery-map-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrPinNotFound         = errors.New("pin not found")
	ErrTitleRequired       = errors.New("pin title is required")
	ErrInvalidCoordinates  = errors.New("latitude must be within -90..90 and longitude within -180..180")
	ErrInvalidRadius       = errors.New("radius distance must be a positive number when a radius is enabled")
	ErrInvalidRadiusUnit   = errors.New("radius unit must be km or miles")
	ErrInvalidDeliveryMode = errors.New("delivery mode must be sameDay, scheduled or both")
	ErrInvalidThickness    = errors.New("border thickness must be a positive number")
)

// PinInput carries pin fields from the admin surface. Nil fields keep their
// stored value on update and take defaults on create.
type PinInput struct {
	Title           *string  `json:"title"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	DeliveryMode    *string  `json:"deliveryMode"`
	Color           *string  `json:"color"`
	HasRadius       *bool    `json:"hasRadius"`
	RadiusDistance  *float64 `json:"radiusDistance"`
	RadiusUnit      *string  `json:"radiusUnit"`
	FillColor       *string  `json:"fillColor"`
	BorderColor     *string  `json:"borderColor"`
	BorderThickness *float64 `json:"borderThickness"`
	FillOpacity     *float64 `json:"fillOpacity"`
}

// CoverageResult reports which delivery tiers cover a geographic point.
// Only pins with a radius zone define coverage.
type CoverageResult struct {
	SameDay   bool `json:"sameDay"`
	Scheduled bool `json:"scheduled"`
}

type PinService interface {
	ListPins(shop string) ([]model.DeliveryPin, error)
	CreatePin(shop string, input *PinInput) (*model.DeliveryPin, error)
	UpdatePin(shop, id string, input *PinInput) (*model.DeliveryPin, error)
	DeletePin(shop, id string) error
	CheckCoverage(shop string, lat, lng float64) (*CoverageResult, error)
}

type pinService struct {
	pinRepo repository.PinRepository
}

func NewPinService(pinRepo repository.PinRepository) PinService {
	return &pinService{
		pinRepo: pinRepo,
	}
}

// ListPins returns a shop's pins newest first. A shop with no pins gets an
// empty slice, not an error.
func (s *pinService) ListPins(shop string) ([]model.DeliveryPin, error) {
	pins, err := s.pinRepo.FindByShop(shop)
	if err != nil {
		return nil, err
	}
	if pins == nil {
		pins = []model.DeliveryPin{}
	}
	return pins, nil
}

func (s *pinService) CreatePin(shop string, input *PinInput) (*model.DeliveryPin, error) {
	if input.Title == nil || *input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.Latitude == nil || input.Longitude == nil ||
		!util.ValidLatitude(*input.Latitude) || !util.ValidLongitude(*input.Longitude) {
		return nil, ErrInvalidCoordinates
	}

	pin := &model.DeliveryPin{
		Shop:            shop,
		Title:           *input.Title,
		Latitude:        *input.Latitude,
		Longitude:       *input.Longitude,
		DeliveryMode:    model.DeliveryModeBoth,
		Color:           model.DefaultPinColor,
		RadiusUnit:      util.RadiusUnitKm,
		FillColor:       model.DefaultZoneColor,
		BorderColor:     model.DefaultZoneColor,
		BorderThickness: model.DefaultBorderThickness,
		FillOpacity:     model.DefaultFillOpacity,
	}

	if err := applyPinInput(pin, input); err != nil {
		return nil, err
	}

	if err := s.pinRepo.Create(pin); err != nil {
		logger.Error("Failed to create pin", err, map[string]interface{}{
			"shop":  shop,
			"title": pin.Title,
		})
		return nil, err
	}

	logger.Info("Pin created", map[string]interface{}{
		"shop":   shop,
		"pin_id": pin.ID,
	})
	return pin, nil
}

// UpdatePin mutates a pin in place. The lookup is scoped by (id, shop); a
// pin owned by another shop reports not-found and is never touched.
func (s *pinService) UpdatePin(shop, id string, input *PinInput) (*model.DeliveryPin, error) {
	pin, err := s.pinRepo.FindByShopAndID(shop, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Pin not found for update", map[string]interface{}{
				"shop":   shop,
				"pin_id": id,
			})
			return nil, ErrPinNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		pin.Title = *input.Title
	}
	if input.Latitude != nil {
		if !util.ValidLatitude(*input.Latitude) {
			return nil, ErrInvalidCoordinates
		}
		pin.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		if !util.ValidLongitude(*input.Longitude) {
			return nil, ErrInvalidCoordinates
		}
		pin.Longitude = *input.Longitude
	}

	if err := applyPinInput(pin, input); err != nil {
		return nil, err
	}

	if err := s.pinRepo.Update(pin); err != nil {
		return nil, err
	}

	logger.Info("Pin updated", map[string]interface{}{
		"shop":   shop,
		"pin_id": pin.ID,
	})
	return pin, nil
}

// DeletePin removes a pin scoped to the owning shop. Deleting an id that is
// absent, or owned by another shop, fails with not-found.
func (s *pinService) DeletePin(shop, id string) error {
	if err := s.pinRepo.Delete(shop, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Pin not found for deletion", map[string]interface{}{
				"shop":   shop,
				"pin_id": id,
			})
			return ErrPinNotFound
		}
		return err
	}

	logger.Info("Pin deleted", map[string]interface{}{
		"shop":   shop,
		"pin_id": id,
	})
	return nil
}

// CheckCoverage tests a point against the shop's radius zones and reports
// which delivery tiers reach it.
func (s *pinService) CheckCoverage(shop string, lat, lng float64) (*CoverageResult, error) {
	if !util.ValidLatitude(lat) || !util.ValidLongitude(lng) {
		return nil, ErrInvalidCoordinates
	}

	pins, err := s.pinRepo.FindByShop(shop)
	if err != nil {
		return nil, err
	}

	result := &CoverageResult{}
	for _, pin := range pins {
		if !pin.HasRadius || pin.RadiusDistance == nil {
			continue
		}

		radiusKm := util.RadiusToKilometers(*pin.RadiusDistance, pin.RadiusUnit)
		if util.CalculateDistance(lat, lng, pin.Latitude, pin.Longitude) > radiusKm {
			continue
		}

		switch pin.DeliveryMode {
		case model.DeliveryModeSameDay:
			result.SameDay = true
		case model.DeliveryModeScheduled:
			result.Scheduled = true
		case model.DeliveryModeBoth:
			result.SameDay = true
			result.Scheduled = true
		}

		if result.SameDay && result.Scheduled {
			break
		}
	}

	return result, nil
}

// applyPinInput applies the optional styling and radius fields shared by
// create and update.
func applyPinInput(pin *model.DeliveryPin, input *PinInput) error {
	if input.DeliveryMode != nil {
		switch *input.DeliveryMode {
		case model.DeliveryModeSameDay, model.DeliveryModeScheduled, model.DeliveryModeBoth:
			pin.DeliveryMode = *input.DeliveryMode
		default:
			return ErrInvalidDeliveryMode
		}
	}
	if input.Color != nil {
		pin.Color = *input.Color
	}

	if input.HasRadius != nil {
		pin.HasRadius = *input.HasRadius
	}

	if !pin.HasRadius {
		// Supplied radius fields are ignored and the zone styling reset,
		// so stale values cannot leak into a later re-enable.
		pin.RadiusDistance = nil
		pin.RadiusUnit = util.RadiusUnitKm
		pin.FillColor = model.DefaultZoneColor
		pin.BorderColor = model.DefaultZoneColor
		pin.BorderThickness = model.DefaultBorderThickness
		pin.FillOpacity = model.DefaultFillOpacity
		return nil
	}

	if input.RadiusDistance != nil {
		pin.RadiusDistance = input.RadiusDistance
	}
	if pin.RadiusDistance == nil || *pin.RadiusDistance <= 0 {
		return ErrInvalidRadius
	}

	if input.RadiusUnit != nil {
		switch *input.RadiusUnit {
		case util.RadiusUnitKm, util.RadiusUnitMile:
			pin.RadiusUnit = *input.RadiusUnit
		default:
			return ErrInvalidRadiusUnit
		}
	}
	if input.FillColor != nil {
		pin.FillColor = *input.FillColor
	}
	if input.BorderColor != nil {
		pin.BorderColor = *input.BorderColor
	}
	if input.BorderThickness != nil {
		if *input.BorderThickness <= 0 {
			return ErrInvalidThickness
		}
		pin.BorderThickness = *input.BorderThickness
	}
	if input.FillOpacity != nil {
		pin.FillOpacity = clampOpacity(*input.FillOpacity)
	}

	return nil
}

func clampOpacity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
