package service

import (
	"encoding/json"
	"errors"

	"github.com/wdmapp/delivery-map-backend/internal/app/model"
	"github.com/wdmapp/delivery-map-backend/internal/app/repository"
	"github.com/wdmapp/delivery-map-backend/pkg/logger"
	"github.com/wdmapp/delivery-map-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidMapMode     = errors.New("map mode must be interactive or custom_tiles")
	ErrInvalidAlignment   = errors.New("button alignment must be left, center or right")
	ErrInvalidShape       = errors.New("button shape must be square, rounded or pill")
	ErrInvalidDefaultMode = errors.New("default mode must be sameDay or scheduled")
	ErrInvalidZoomLevel   = errors.New("zoom level must be zero or greater")
	ErrInvalidCenter      = errors.New("center must be a JSON object with numeric lat and lng")
)

// SettingsPatch carries an admin settings update. Nil fields are left
// untouched; concurrent saves are last-write-wins per field set.
type SettingsPatch struct {
	SameDayMode         *string `json:"sameDayMode"`
	SameDayImageURL     *string `json:"sameDayImageUrl"`
	SameDayGeoJSON      *string `json:"sameDayGeoJson"`
	SameDayZoomLevel    *int    `json:"sameDayZoomLevel"`
	SameDayCenter       *string `json:"sameDayCenter"`
	SameDayTileProvider *string `json:"sameDayTileProvider"`
	SameDayTileAPIKey   *string `json:"sameDayTileApiKey"`

	ScheduledMode         *string `json:"scheduledMode"`
	ScheduledImageURL     *string `json:"scheduledImageUrl"`
	ScheduledGeoJSON      *string `json:"scheduledGeoJson"`
	ScheduledZoomLevel    *int    `json:"scheduledZoomLevel"`
	ScheduledCenter       *string `json:"scheduledCenter"`
	ScheduledTileProvider *string `json:"scheduledTileProvider"`
	ScheduledTileAPIKey   *string `json:"scheduledTileApiKey"`

	ToggleTextSameDay    *string `json:"toggleTextSameDay"`
	ToggleTextScheduled  *string `json:"toggleTextScheduled"`
	ButtonColor          *string `json:"buttonColor"`
	ButtonActiveColor    *string `json:"buttonActiveColor"`
	ButtonInactiveColor  *string `json:"buttonInactiveColor"`
	ButtonAlignment      *string `json:"buttonAlignment"`
	ButtonShape          *string `json:"buttonShape"`
	DefaultMode          *string `json:"defaultMode"`
	ShowDescription      *bool   `json:"showDescription"`
	DescriptionSameDay   *string `json:"descriptionSameDay"`
	DescriptionScheduled *string `json:"descriptionScheduled"`
}

type SettingsService interface {
	GetSettings(shop string) (*model.MapSettings, error)
	GetOrCreateSettings(shop string) (*model.MapSettings, error)
	SaveSettings(shop string, patch *SettingsPatch) (*model.MapSettings, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings resolves a shop's settings for read paths. A shop without a
// stored row gets the complete default record without anything being
// persisted; legacy mode values are rewritten on the returned copy only.
// Every read surface goes through here so they can never drift.
func (s *settingsService) GetSettings(shop string) (*model.MapSettings, error) {
	stored, err := s.settingsRepo.FindByShop(shop)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			defaults := model.DefaultMapSettings(shop)
			return &defaults, nil
		}
		logger.Error("Failed to resolve settings", err, map[string]interface{}{
			"shop": shop,
		})
		return nil, err
	}

	stored.NormalizeLegacyModes()
	return stored, nil
}

// GetOrCreateSettings is the admin first-load path: it persists the default
// row when none exists yet.
func (s *settingsService) GetOrCreateSettings(shop string) (*model.MapSettings, error) {
	stored, err := s.settingsRepo.FindByShop(shop)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		logger.Info("Creating default settings for shop", map[string]interface{}{
			"shop": shop,
		})
		defaults := model.DefaultMapSettings(shop)
		if err := s.settingsRepo.Create(&defaults); err != nil {
			return nil, err
		}
		return &defaults, nil
	}

	stored.NormalizeLegacyModes()
	return stored, nil
}

// SaveSettings upserts a shop's settings: fields present in the patch
// overwrite, everything else is preserved (or defaulted on first save).
func (s *settingsService) SaveSettings(shop string, patch *SettingsPatch) (*model.MapSettings, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	stored, err := s.settingsRepo.FindByShop(shop)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		defaults := model.DefaultMapSettings(shop)
		applyPatch(&defaults, patch)
		if err := s.settingsRepo.Create(&defaults); err != nil {
			return nil, err
		}

		logger.Info("Settings created", map[string]interface{}{
			"shop": shop,
		})
		return &defaults, nil
	}

	applyPatch(stored, patch)
	if err := s.settingsRepo.Update(stored); err != nil {
		return nil, err
	}

	logger.Info("Settings saved", map[string]interface{}{
		"shop": shop,
	})
	return stored, nil
}

func validatePatch(patch *SettingsPatch) error {
	for _, mode := range []*string{patch.SameDayMode, patch.ScheduledMode} {
		if mode == nil {
			continue
		}
		switch *mode {
		case model.MapModeInteractive, model.MapModeCustomTiles, model.MapModeLegacy:
		default:
			return ErrInvalidMapMode
		}
	}

	if patch.ButtonAlignment != nil {
		switch *patch.ButtonAlignment {
		case model.AlignmentLeft, model.AlignmentCenter, model.AlignmentRight:
		default:
			return ErrInvalidAlignment
		}
	}

	if patch.ButtonShape != nil {
		switch *patch.ButtonShape {
		case model.ShapeSquare, model.ShapeRounded, model.ShapePill:
		default:
			return ErrInvalidShape
		}
	}

	if patch.DefaultMode != nil {
		switch *patch.DefaultMode {
		case model.ModeSameDay, model.ModeScheduled:
		default:
			return ErrInvalidDefaultMode
		}
	}

	for _, zoom := range []*int{patch.SameDayZoomLevel, patch.ScheduledZoomLevel} {
		if zoom != nil && *zoom < 0 {
			return ErrInvalidZoomLevel
		}
	}

	for _, center := range []*string{patch.SameDayCenter, patch.ScheduledCenter} {
		if center != nil && !validCenter(*center) {
			return ErrInvalidCenter
		}
	}

	return nil
}

// validCenter checks that the value parses as {"lat":number,"lng":number}
// with both coordinates in range.
func validCenter(raw string) bool {
	var center struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal([]byte(raw), &center); err != nil {
		return false
	}
	if center.Lat == nil || center.Lng == nil {
		return false
	}
	return util.ValidLatitude(*center.Lat) && util.ValidLongitude(*center.Lng)
}

func applyPatch(settings *model.MapSettings, patch *SettingsPatch) {
	if patch.SameDayMode != nil {
		settings.SameDayMode = *patch.SameDayMode
	}
	if patch.SameDayImageURL != nil {
		settings.SameDayImageURL = patch.SameDayImageURL
	}
	if patch.SameDayGeoJSON != nil {
		settings.SameDayGeoJSON = patch.SameDayGeoJSON
	}
	if patch.SameDayZoomLevel != nil {
		settings.SameDayZoomLevel = *patch.SameDayZoomLevel
	}
	if patch.SameDayCenter != nil {
		settings.SameDayCenter = *patch.SameDayCenter
	}
	if patch.SameDayTileProvider != nil {
		settings.SameDayTileProvider = patch.SameDayTileProvider
	}
	if patch.SameDayTileAPIKey != nil {
		settings.SameDayTileAPIKey = patch.SameDayTileAPIKey
	}
	if patch.ScheduledMode != nil {
		settings.ScheduledMode = *patch.ScheduledMode
	}
	if patch.ScheduledImageURL != nil {
		settings.ScheduledImageURL = patch.ScheduledImageURL
	}
	if patch.ScheduledGeoJSON != nil {
		settings.ScheduledGeoJSON = patch.ScheduledGeoJSON
	}
	if patch.ScheduledZoomLevel != nil {
		settings.ScheduledZoomLevel = *patch.ScheduledZoomLevel
	}
	if patch.ScheduledCenter != nil {
		settings.ScheduledCenter = *patch.ScheduledCenter
	}
	if patch.ScheduledTileProvider != nil {
		settings.ScheduledTileProvider = patch.ScheduledTileProvider
	}
	if patch.ScheduledTileAPIKey != nil {
		settings.ScheduledTileAPIKey = patch.ScheduledTileAPIKey
	}
	if patch.ToggleTextSameDay != nil {
		settings.ToggleTextSameDay = *patch.ToggleTextSameDay
	}
	if patch.ToggleTextScheduled != nil {
		settings.ToggleTextScheduled = *patch.ToggleTextScheduled
	}
	if patch.ButtonColor != nil {
		settings.ButtonColor = *patch.ButtonColor
	}
	if patch.ButtonActiveColor != nil {
		settings.ButtonActiveColor = *patch.ButtonActiveColor
	}
	if patch.ButtonInactiveColor != nil {
		settings.ButtonInactiveColor = *patch.ButtonInactiveColor
	}
	if patch.ButtonAlignment != nil {
		settings.ButtonAlignment = *patch.ButtonAlignment
	}
	if patch.ButtonShape != nil {
		settings.ButtonShape = *patch.ButtonShape
	}
	if patch.DefaultMode != nil {
		settings.DefaultMode = *patch.DefaultMode
	}
	if patch.ShowDescription != nil {
		settings.ShowDescription = *patch.ShowDescription
	}
	if patch.DescriptionSameDay != nil {
		settings.DescriptionSameDay = *patch.DescriptionSameDay
	}
	if patch.DescriptionScheduled != nil {
		settings.DescriptionScheduled = *patch.DescriptionScheduled
	}
}
