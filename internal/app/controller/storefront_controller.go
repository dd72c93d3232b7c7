package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wdmapp/delivery-map-backend/internal/app/model"
	"github.com/wdmapp/delivery-map-backend/internal/app/service"
	"github.com/wdmapp/delivery-map-backend/internal/middleware"
	"github.com/wdmapp/delivery-map-backend/pkg/redis"
)

// StorefrontController serves the unauthenticated read surface. The direct
// API routes and the app-proxy routes are registered on these same handlers,
// so both network paths return identical data by construction.
type StorefrontController struct {
	settingsService service.SettingsService
	pinService      service.PinService
	cacheTTL        time.Duration
}

func NewStorefrontController(settingsService service.SettingsService, pinService service.PinService, cacheTTL time.Duration) *StorefrontController {
	return &StorefrontController{
		settingsService: settingsService,
		pinService:      pinService,
		cacheTTL:        cacheTTL,
	}
}

func settingsCacheKey(shop string) string {
	return fmt.Sprintf("storefront:settings:%s", shop)
}

func pinsCacheKey(shop string) string {
	return fmt.Sprintf("storefront:pins:%s", shop)
}

// GetSettings returns a shop's resolved map settings.
// GET /api/v1/storefront/settings/:shop
// GET /proxy/settings/:shop
func (ctrl *StorefrontController) GetSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shop := c.Param("shop")
	if shop == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Shop parameter is required",
		})
		return
	}

	var cached model.MapSettings
	if redis.GetJSON(c.Request.Context(), settingsCacheKey(shop), &cached) {
		c.JSON(http.StatusOK, gin.H{"settings": cached})
		return
	}

	settings, err := ctrl.settingsService.GetSettings(shop)
	if err != nil {
		// Settings absence has a meaningful default, so an error here is a
		// real backing failure; surface it so the widget can fall back
		// client-side.
		log.Error("Failed to fetch settings for storefront", err, map[string]interface{}{
			"shop": shop,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch settings",
		})
		return
	}

	redis.SetJSON(c.Request.Context(), settingsCacheKey(shop), settings, ctrl.cacheTTL)

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// GetPins returns a shop's pins newest first. A storage failure degrades to
// an empty list with success status: the map widget is non-critical and an
// empty map beats a broken storefront.
// GET /api/v1/storefront/pins/:shop
// GET /proxy/pins/:shop
func (ctrl *StorefrontController) GetPins(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shop := c.Param("shop")
	if shop == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Shop parameter is required",
		})
		return
	}

	var cached []model.DeliveryPin
	if redis.GetJSON(c.Request.Context(), pinsCacheKey(shop), &cached) {
		c.JSON(http.StatusOK, gin.H{"pins": cached})
		return
	}

	pins, err := ctrl.pinService.ListPins(shop)
	if err != nil {
		log.Error("Failed to fetch pins for storefront, returning empty list", err, map[string]interface{}{
			"shop": shop,
		})
		c.JSON(http.StatusOK, gin.H{
			"pins": []model.DeliveryPin{},
		})
		return
	}

	redis.SetJSON(c.Request.Context(), pinsCacheKey(shop), pins, ctrl.cacheTTL)

	c.JSON(http.StatusOK, gin.H{"pins": pins})
}

// GetCoverage reports which delivery tiers reach the given point. Like the
// pins read, a storage failure degrades to "not covered" rather than an
// error: the widget treats both the same way.
// GET /api/v1/storefront/coverage/:shop?lat=..&lng=..
// GET /proxy/coverage/:shop?lat=..&lng=..
func (ctrl *StorefrontController) GetCoverage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shop := c.Param("shop")
	if shop == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Shop parameter is required",
		})
		return
	}

	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "lat and lng query parameters are required",
		})
		return
	}

	coverage, err := ctrl.pinService.CheckCoverage(shop, lat, lng)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCoordinates) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}

		log.Error("Failed to check coverage, reporting not covered", err, map[string]interface{}{
			"shop": shop,
		})
		c.JSON(http.StatusOK, gin.H{
			"coverage": service.CoverageResult{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"coverage": coverage})
}
