package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wdmapp/delivery-map-backend/internal/app/service"
	apperrors "github.com/wdmapp/delivery-map-backend/internal/errors"
	"github.com/wdmapp/delivery-map-backend/internal/middleware"
	"github.com/wdmapp/delivery-map-backend/pkg/redis"
	"github.com/wdmapp/delivery-map-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Admin write actions, discriminated by the request's action field. The
// dispatch switch is exhaustive; anything else is rejected rather than
// falling through to a no-op.
const (
	ActionSave      = "save"
	ActionCreatePin = "createPin"
	ActionUpdatePin = "updatePin"
	ActionDeletePin = "deletePin"
)

// AdminController serves the authenticated dashboard. Every handler is
// scoped to the shop carried by the session token.
type AdminController struct {
	settingsService service.SettingsService
	pinService      service.PinService
}

func NewAdminController(settingsService service.SettingsService, pinService service.PinService) *AdminController {
	return &AdminController{
		settingsService: settingsService,
		pinService:      pinService,
	}
}

type ActionRequest struct {
	Action string          `json:"action" binding:"required"`
	PinID  string          `json:"pinId"`
	Data   json.RawMessage `json:"data"`
}

// GetDashboard returns the shop's settings and pins for the admin UI,
// creating the settings row with defaults on first load.
// GET /api/v1/admin/dashboard
func (ctrl *AdminController) GetDashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shop, ok := middleware.GetShop(c)
	if !ok {
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthShopMissing, "Session is not scoped to a shop")
		return
	}

	settings, err := ctrl.settingsService.GetOrCreateSettings(shop)
	if err != nil {
		log.Error("Failed to load dashboard settings", err, map[string]interface{}{
			"shop": shop,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.SettingsFetchFailed, "Failed to fetch settings")
		return
	}

	pins, err := ctrl.pinService.ListPins(shop)
	if err != nil {
		log.Error("Failed to load dashboard pins", err, map[string]interface{}{
			"shop": shop,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalDatabaseError, "Failed to fetch pins")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": settings,
		"pins":     pins,
		"shop":     shop,
	})
}

// HandleAction dispatches an admin write action.
// POST /api/v1/admin/dashboard/actions
func (ctrl *AdminController) HandleAction(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shop, ok := middleware.GetShop(c)
	if !ok {
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthShopMissing, "Session is not scoped to a shop")
		return
	}

	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid action request", map[string]interface{}{
			"shop":  shop,
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	log.Debug("Dispatching admin action", map[string]interface{}{
		"shop":   shop,
		"action": req.Action,
		"pin_id": req.PinID,
	})

	switch req.Action {
	case ActionSave:
		ctrl.handleSave(c, shop, req.Data)
	case ActionCreatePin:
		ctrl.handleCreatePin(c, shop, req.Data)
	case ActionUpdatePin:
		ctrl.handleUpdatePin(c, shop, req.PinID, req.Data)
	case ActionDeletePin:
		ctrl.handleDeletePin(c, shop, req.PinID)
	default:
		log.Warn("Unknown admin action", map[string]interface{}{
			"shop":   shop,
			"action": req.Action,
		})
		apperrors.BadRequest(c, apperrors.ActionUnknown, fmt.Sprintf("Unknown action %q", req.Action))
	}
}

func (ctrl *AdminController) handleSave(c *gin.Context, shop string, data json.RawMessage) {
	var patch service.SettingsPatch
	if err := json.Unmarshal(data, &patch); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid settings data")
		return
	}

	if _, err := ctrl.settingsService.SaveSettings(shop, &patch); err != nil {
		ctrl.respondSettingsError(c, shop, err)
		return
	}

	redis.Invalidate(c.Request.Context(), settingsCacheKey(shop))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Settings saved",
	})
}

func (ctrl *AdminController) handleCreatePin(c *gin.Context, shop string, data json.RawMessage) {
	var input service.PinInput
	if err := json.Unmarshal(data, &input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid pin data")
		return
	}

	pin, err := ctrl.pinService.CreatePin(shop, &input)
	if err != nil {
		ctrl.respondPinError(c, shop, err)
		return
	}

	redis.Invalidate(c.Request.Context(), pinsCacheKey(shop))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Pin created",
		"pin":     pin,
	})
}

func (ctrl *AdminController) handleUpdatePin(c *gin.Context, shop, pinID string, data json.RawMessage) {
	if pinID == "" {
		apperrors.BadRequest(c, apperrors.ActionPinIDRequired, "Pin id is required")
		return
	}

	var input service.PinInput
	if err := json.Unmarshal(data, &input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid pin data")
		return
	}

	pin, err := ctrl.pinService.UpdatePin(shop, pinID, &input)
	if err != nil {
		ctrl.respondPinError(c, shop, err)
		return
	}

	redis.Invalidate(c.Request.Context(), pinsCacheKey(shop))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Pin updated",
		"pin":     pin,
	})
}

func (ctrl *AdminController) handleDeletePin(c *gin.Context, shop, pinID string) {
	if pinID == "" {
		apperrors.BadRequest(c, apperrors.ActionPinIDRequired, "Pin id is required")
		return
	}

	if err := ctrl.pinService.DeletePin(shop, pinID); err != nil {
		ctrl.respondPinError(c, shop, err)
		return
	}

	redis.Invalidate(c.Request.Context(), pinsCacheKey(shop))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Pin deleted",
	})
}

// GetSettings returns the shop's settings, creating defaults if absent.
// GET /api/v1/admin/settings
func (ctrl *AdminController) GetSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shop, ok := middleware.GetShop(c)
	if !ok {
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthShopMissing, "Session is not scoped to a shop")
		return
	}

	settings, err := ctrl.settingsService.GetOrCreateSettings(shop)
	if err != nil {
		log.Error("Failed to fetch settings", err, map[string]interface{}{
			"shop": shop,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.SettingsFetchFailed, "Failed to fetch settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// SaveSettings applies a settings patch.
// PUT /api/v1/admin/settings
func (ctrl *AdminController) SaveSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shop, ok := middleware.GetShop(c)
	if !ok {
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthShopMissing, "Session is not scoped to a shop")
		return
	}

	var patch service.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		log.Warn("Invalid settings payload", map[string]interface{}{
			"shop":  shop,
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	settings, err := ctrl.settingsService.SaveSettings(shop, &patch)
	if err != nil {
		ctrl.respondSettingsError(c, shop, err)
		return
	}

	redis.Invalidate(c.Request.Context(), settingsCacheKey(shop))

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"settings": settings,
	})
}

// ExportPins streams the shop's pins as an xlsx workbook.
// GET /api/v1/admin/pins/export
func (ctrl *AdminController) ExportPins(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shop, ok := middleware.GetShop(c)
	if !ok {
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthShopMissing, "Session is not scoped to a shop")
		return
	}

	pins, err := ctrl.pinService.ListPins(shop)
	if err != nil {
		log.Error("Failed to fetch pins for export", err, map[string]interface{}{
			"shop": shop,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalDatabaseError, "Failed to fetch pins")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Pins"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Title", "Latitude", "Longitude", "Delivery Mode", "Color", "Has Radius", "Radius Distance", "Radius Unit", "Radius (km)", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, pin := range pins {
		values := []interface{}{
			pin.Title,
			pin.Latitude,
			pin.Longitude,
			pin.DeliveryMode,
			pin.Color,
			pin.HasRadius,
			nil,
			pin.RadiusUnit,
			nil,
			pin.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if pin.RadiusDistance != nil {
			values[6] = *pin.RadiusDistance
			values[8] = util.RadiusToKilometers(*pin.RadiusDistance, pin.RadiusUnit)
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="pins-%s.xlsx"`, shop))

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to write pins export", err, map[string]interface{}{
			"shop": shop,
		})
	}

	log.Info("Pins exported", map[string]interface{}{
		"shop":  shop,
		"count": len(pins),
	})
}

// respondPinError translates pin service errors to HTTP responses. Internal
// failures get a generic message; nothing storage-level leaks to the client.
func (ctrl *AdminController) respondPinError(c *gin.Context, shop string, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrPinNotFound):
		apperrors.NotFound(c, apperrors.PinNotFound, "Pin not found")
	case errors.Is(err, service.ErrTitleRequired):
		apperrors.BadRequest(c, apperrors.ValidationTitleRequired, err.Error())
	case errors.Is(err, service.ErrInvalidCoordinates):
		apperrors.BadRequest(c, apperrors.ValidationInvalidCoords, err.Error())
	case errors.Is(err, service.ErrInvalidRadius):
		apperrors.BadRequest(c, apperrors.ValidationInvalidRadius, err.Error())
	case errors.Is(err, service.ErrInvalidRadiusUnit),
		errors.Is(err, service.ErrInvalidDeliveryMode),
		errors.Is(err, service.ErrInvalidThickness):
		apperrors.BadRequest(c, apperrors.ValidationInvalidEnum, err.Error())
	default:
		log.Error("Pin operation failed", err, map[string]interface{}{
			"shop": shop,
		})
		info := apperrors.ParseStorageError(err, "pin")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
	}
}

func (ctrl *AdminController) respondSettingsError(c *gin.Context, shop string, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrInvalidMapMode),
		errors.Is(err, service.ErrInvalidAlignment),
		errors.Is(err, service.ErrInvalidShape),
		errors.Is(err, service.ErrInvalidDefaultMode):
		apperrors.BadRequest(c, apperrors.ValidationInvalidEnum, err.Error())
	case errors.Is(err, service.ErrInvalidZoomLevel):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
	case errors.Is(err, service.ErrInvalidCenter):
		apperrors.BadRequest(c, apperrors.ValidationInvalidCenter, err.Error())
	default:
		log.Error("Settings save failed", err, map[string]interface{}{
			"shop": shop,
		})
		info := apperrors.ParseStorageError(err, "settings")
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.SettingsSaveFailed, info.Message)
	}
}
