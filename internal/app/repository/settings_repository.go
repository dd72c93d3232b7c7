package repository

import (
	"github.com/wdmapp/delivery-map-backend/internal/app/model"
	"github.com/wdmapp/delivery-map-backend/pkg/logger"
	"gorm.io/gorm"
)

type SettingsRepository interface {
	FindByShop(shop string) (*model.MapSettings, error)
	Create(settings *model.MapSettings) error
	Update(settings *model.MapSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) FindByShop(shop string) (*model.MapSettings, error) {
	logger.Debug("Finding map settings by shop in database", map[string]interface{}{
		"shop": shop,
	})

	var settings model.MapSettings
	err := r.db.Where("shop = ?", shop).First(&settings).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find map settings in database", err, map[string]interface{}{
				"shop": shop,
			})
		}
		return nil, err
	}

	return &settings, nil
}

func (r *settingsRepository) Create(settings *model.MapSettings) error {
	logger.Debug("Creating map settings in database", map[string]interface{}{
		"shop": settings.Shop,
	})

	if err := r.db.Create(settings).Error; err != nil {
		logger.Error("Failed to create map settings in database", err, map[string]interface{}{
			"shop": settings.Shop,
		})
		return err
	}

	logger.Debug("Map settings created in database", map[string]interface{}{
		"shop":        settings.Shop,
		"settings_id": settings.ID,
	})
	return nil
}

func (r *settingsRepository) Update(settings *model.MapSettings) error {
	logger.Debug("Updating map settings in database", map[string]interface{}{
		"shop":        settings.Shop,
		"settings_id": settings.ID,
	})

	if err := r.db.Save(settings).Error; err != nil {
		logger.Error("Failed to update map settings in database", err, map[string]interface{}{
			"shop": settings.Shop,
		})
		return err
	}

	return nil
}
