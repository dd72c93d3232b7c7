package model

import (
	"time"
)

// Map display mode per delivery tier. The legacy stored value "default"
// predates the removal of the static map option and is rewritten to
// "interactive" whenever settings are read.
const (
	MapModeInteractive = "interactive"
	MapModeCustomTiles = "custom_tiles"
	MapModeLegacy      = "default"
)

const (
	AlignmentLeft   = "left"
	AlignmentCenter = "center"
	AlignmentRight  = "right"
)

const (
	ShapeSquare  = "square"
	ShapeRounded = "rounded"
	ShapePill    = "pill"
)

const (
	ModeSameDay   = "sameDay"
	ModeScheduled = "scheduled"
)

// MapSettings holds a shop's delivery map configuration. One row per shop,
// created lazily on first admin load and mutated only through the admin
// write path. JSON field names are the storefront widget's wire contract.
type MapSettings struct {
	ID   uint   `gorm:"primarykey" json:"-"`
	Shop string `gorm:"uniqueIndex;not null" json:"shop"`

	SameDayMode         string  `gorm:"default:interactive" json:"sameDayMode"`
	SameDayImageURL     *string `json:"sameDayImageUrl"`
	SameDayGeoJSON      *string `gorm:"type:text" json:"sameDayGeoJson"`
	SameDayZoomLevel    int     `gorm:"default:11" json:"sameDayZoomLevel"`
	SameDayCenter       string  `gorm:"type:text" json:"sameDayCenter"`
	SameDayTileProvider *string `json:"sameDayTileProvider"`
	SameDayTileAPIKey   *string `json:"sameDayTileApiKey"`

	ScheduledMode         string  `gorm:"default:interactive" json:"scheduledMode"`
	ScheduledImageURL     *string `json:"scheduledImageUrl"`
	ScheduledGeoJSON      *string `gorm:"type:text" json:"scheduledGeoJson"`
	ScheduledZoomLevel    int     `gorm:"default:4" json:"scheduledZoomLevel"`
	ScheduledCenter       string  `gorm:"type:text" json:"scheduledCenter"`
	ScheduledTileProvider *string `json:"scheduledTileProvider"`
	ScheduledTileAPIKey   *string `json:"scheduledTileApiKey"`

	ToggleTextSameDay    string `gorm:"default:Same Day Delivery" json:"toggleTextSameDay"`
	ToggleTextScheduled  string `gorm:"default:Scheduled Delivery" json:"toggleTextScheduled"`
	ButtonColor          string `gorm:"type:varchar(20)" json:"buttonColor"`
	ButtonActiveColor    string `gorm:"type:varchar(20)" json:"buttonActiveColor"`
	ButtonInactiveColor  string `gorm:"type:varchar(20)" json:"buttonInactiveColor"`
	ButtonAlignment      string `gorm:"type:varchar(10)" json:"buttonAlignment"`
	ButtonShape          string `gorm:"type:varchar(10)" json:"buttonShape"`
	DefaultMode          string `gorm:"type:varchar(10)" json:"defaultMode"`
	ShowDescription      bool   `gorm:"default:true" json:"showDescription"`
	DescriptionSameDay   string `gorm:"type:text" json:"descriptionSameDay"`
	DescriptionScheduled string `gorm:"type:text" json:"descriptionScheduled"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (MapSettings) TableName() string {
	return "map_settings"
}

// DefaultMapSettings returns the fully-specified default configuration for a
// shop: same-day centered on NYC at zoom 11, scheduled centered on the
// continental US at zoom 4.
func DefaultMapSettings(shop string) MapSettings {
	return MapSettings{
		Shop:                 shop,
		SameDayMode:          MapModeInteractive,
		SameDayZoomLevel:     11,
		SameDayCenter:        `{"lat":40.7128,"lng":-74.0060}`,
		ScheduledMode:        MapModeInteractive,
		ScheduledZoomLevel:   4,
		ScheduledCenter:      `{"lat":39.8283,"lng":-98.5795}`,
		ToggleTextSameDay:    "Same Day Delivery",
		ToggleTextScheduled:  "Scheduled Delivery",
		ButtonColor:          "#000000",
		ButtonActiveColor:    "#1a73e8",
		ButtonInactiveColor:  "#f1f3f4",
		ButtonAlignment:      AlignmentCenter,
		ButtonShape:          ShapeRounded,
		DefaultMode:          ModeSameDay,
		ShowDescription:      true,
		DescriptionSameDay:   "We deliver same-day within the NYC metropolitan area.",
		DescriptionScheduled: "Scheduled delivery available nationwide.",
	}
}

// NormalizeLegacyModes rewrites legacy "default" mode values to
// "interactive" on the in-memory copy. The stored row is left untouched;
// the rewrite only persists if the admin saves afterwards.
func (s *MapSettings) NormalizeLegacyModes() {
	if s.SameDayMode == MapModeLegacy {
		s.SameDayMode = MapModeInteractive
	}
	if s.ScheduledMode == MapModeLegacy {
		s.ScheduledMode = MapModeInteractive
	}
}
