package repository

import (
	"time"

	"github.com/wdmapp/delivery-map-backend/internal/app/model"
	"github.com/wdmapp/delivery-map-backend/pkg/logger"
	"gorm.io/gorm"
)

type PinRepository interface {
	FindByShop(shop string) ([]model.DeliveryPin, error)
	FindByShopAndID(shop, id string) (*model.DeliveryPin, error)
	Create(pin *model.DeliveryPin) error
	Update(pin *model.DeliveryPin) error
	Delete(shop, id string) error
	BulkCreate(pins []model.DeliveryPin, batchSize int) error
	PurgeDeletedBefore(cutoffDays int) (int64, error)
}

type pinRepository struct {
	db *gorm.DB
}

func NewPinRepository(db *gorm.DB) PinRepository {
	return &pinRepository{db: db}
}

func (r *pinRepository) FindByShop(shop string) ([]model.DeliveryPin, error) {
	logger.Debug("Finding pins by shop in database", map[string]interface{}{
		"shop": shop,
	})

	var pins []model.DeliveryPin
	err := r.db.Where("shop = ?", shop).
		Order("created_at DESC").
		Find(&pins).Error
	if err != nil {
		logger.Error("Failed to find pins by shop in database", err, map[string]interface{}{
			"shop": shop,
		})
		return nil, err
	}

	logger.Debug("Pins found by shop in database", map[string]interface{}{
		"shop":  shop,
		"count": len(pins),
	})
	return pins, nil
}

// FindByShopAndID scopes the lookup by both id and shop so one tenant can
// never read or mutate another tenant's pin.
func (r *pinRepository) FindByShopAndID(shop, id string) (*model.DeliveryPin, error) {
	var pin model.DeliveryPin
	err := r.db.Where("id = ? AND shop = ?", id, shop).First(&pin).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find pin in database", err, map[string]interface{}{
				"shop":   shop,
				"pin_id": id,
			})
		}
		return nil, err
	}
	return &pin, nil
}

func (r *pinRepository) Create(pin *model.DeliveryPin) error {
	logger.Debug("Creating pin in database", map[string]interface{}{
		"shop":  pin.Shop,
		"title": pin.Title,
	})

	if err := r.db.Create(pin).Error; err != nil {
		logger.Error("Failed to create pin in database", err, map[string]interface{}{
			"shop":  pin.Shop,
			"title": pin.Title,
		})
		return err
	}

	logger.Debug("Pin created in database", map[string]interface{}{
		"shop":   pin.Shop,
		"pin_id": pin.ID,
	})
	return nil
}

func (r *pinRepository) Update(pin *model.DeliveryPin) error {
	logger.Debug("Updating pin in database", map[string]interface{}{
		"shop":   pin.Shop,
		"pin_id": pin.ID,
	})

	if err := r.db.Save(pin).Error; err != nil {
		logger.Error("Failed to update pin in database", err, map[string]interface{}{
			"shop":   pin.Shop,
			"pin_id": pin.ID,
		})
		return err
	}

	return nil
}

func (r *pinRepository) Delete(shop, id string) error {
	logger.Debug("Deleting pin from database", map[string]interface{}{
		"shop":   shop,
		"pin_id": id,
	})

	result := r.db.Where("id = ? AND shop = ?", id, shop).Delete(&model.DeliveryPin{})
	if result.Error != nil {
		logger.Error("Failed to delete pin from database", result.Error, map[string]interface{}{
			"shop":   shop,
			"pin_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Pin deleted from database", map[string]interface{}{
		"shop":   shop,
		"pin_id": id,
	})
	return nil
}

// BulkCreate inserts pins in batches. Used by the seed importer.
func (r *pinRepository) BulkCreate(pins []model.DeliveryPin, batchSize int) error {
	if len(pins) == 0 {
		return nil
	}
	return r.db.CreateInBatches(pins, batchSize).Error
}

// PurgeDeletedBefore permanently removes soft-deleted pins older than the
// cutoff. Returns the number of rows purged.
func (r *pinRepository) PurgeDeletedBefore(cutoffDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -cutoffDays)
	result := r.db.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&model.DeliveryPin{})
	if result.Error != nil {
		logger.Error("Failed to purge deleted pins", result.Error, map[string]interface{}{
			"cutoff_days": cutoffDays,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
