package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/wdmapp/delivery-map-backend/internal/errors"
	"github.com/wdmapp/delivery-map-backend/internal/middleware"
	"github.com/wdmapp/delivery-map-backend/internal/storage"
	"github.com/wdmapp/delivery-map-backend/pkg/logger"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(storage *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: storage,
	}
}

type GeneratePresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// GeneratePresignedURL vends a presigned S3 PUT URL for a custom tile image.
// The admin uploads directly and stores the returned file URL in the map
// settings; no file bytes pass through this backend.
// POST /api/v1/admin/upload/presigned-url
func (ctrl *UploadController) GeneratePresignedURL(c *gin.Context) {
	shop, ok := middleware.GetShop(c)
	if !ok {
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthShopMissing, "Session is not scoped to a shop")
		return
	}

	var req GeneratePresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid presigned URL request", map[string]interface{}{
			"shop":  shop,
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	// Only allow images
	allowedTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/gif",
		"image/webp",
	}
	if err := ctrl.storage.ValidateContentType(req.ContentType, allowedTypes); err != nil {
		logger.Warn("Invalid content type", map[string]interface{}{
			"shop":         shop,
			"content_type": req.ContentType,
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only image files are allowed (JPEG, PNG, GIF, WEBP)")
		return
	}

	response, err := ctrl.storage.GeneratePresignedURL(shop, req.Filename, req.ContentType)
	if err != nil {
		logger.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"shop":         shop,
			"filename":     req.Filename,
			"content_type": req.ContentType,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to generate upload URL")
		return
	}

	logger.Info("Presigned URL generated successfully", map[string]interface{}{
		"shop": shop,
		"key":  response.Key,
	})

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"upload_url": response.UploadURL,
		"file_url":   response.FileURL,
		"key":        response.Key,
	})
}
