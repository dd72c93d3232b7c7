package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Which delivery tier a pin applies to.
const (
	DeliveryModeSameDay   = "sameDay"
	DeliveryModeScheduled = "scheduled"
	DeliveryModeBoth      = "both"
)

// Pin field defaults applied when the admin omits them.
const (
	DefaultPinColor        = "#FF0000"
	DefaultZoneColor       = "#5dade2"
	DefaultBorderThickness = 2.0
	DefaultFillOpacity     = 0.25
)

// DeliveryPin is a delivery hub marker on a shop's coverage map, optionally
// carrying a circular radius zone. Listings are always ordered by CreatedAt
// descending.
type DeliveryPin struct {
	ID   string `gorm:"type:varchar(36);primarykey" json:"id"`
	Shop string `gorm:"index;not null" json:"shop"`

	Title        string  `gorm:"not null" json:"title"`
	Latitude     float64 `gorm:"not null" json:"latitude"`
	Longitude    float64 `gorm:"not null" json:"longitude"`
	DeliveryMode string  `gorm:"type:varchar(10);default:both" json:"deliveryMode"`
	Color        string  `gorm:"type:varchar(20)" json:"color"`

	HasRadius       bool     `gorm:"default:false" json:"hasRadius"`
	RadiusDistance  *float64 `json:"radiusDistance"`
	RadiusUnit      string   `gorm:"type:varchar(10);default:km" json:"radiusUnit"`
	FillColor       string   `gorm:"type:varchar(20)" json:"fillColor"`
	BorderColor     string   `gorm:"type:varchar(20)" json:"borderColor"`
	BorderThickness float64  `gorm:"default:2" json:"borderThickness"`
	FillOpacity     float64  `gorm:"default:0.25" json:"fillOpacity"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DeliveryPin) TableName() string {
	return "delivery_pins"
}

// BeforeCreate assigns an opaque id before the pin is stored.
func (p *DeliveryPin) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
