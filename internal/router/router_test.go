package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wdmapp/delivery-map-backend/config"
	"github.com/wdmapp/delivery-map-backend/internal/app/controller"
	"github.com/wdmapp/delivery-map-backend/internal/app/repository"
	"github.com/wdmapp/delivery-map-backend/internal/app/service"
	"github.com/wdmapp/delivery-map-backend/internal/db"
	"github.com/wdmapp/delivery-map-backend/internal/middleware"
	"github.com/wdmapp/delivery-map-backend/internal/storage"
	"github.com/wdmapp/delivery-map-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testShop   = "demo-shop.example.com"
	testSecret = "test-secret-key"
)

func setupRouterTest(t *testing.T) *gin.Engine {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	settingsRepo := repository.NewSettingsRepository(testDB)
	pinRepo := repository.NewPinRepository(testDB)
	settingsService := service.NewSettingsService(settingsRepo)
	pinService := service.NewPinService(pinRepo)

	cfg := &config.Config{}
	cfg.Server.GinMode = gin.TestMode
	cfg.JWT.Secret = testSecret
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.Cache.PublicTTL = 60 * time.Second

	r := NewRouter(
		controller.NewStorefrontController(settingsService, pinService, cfg.Cache.PublicTTL),
		controller.NewAdminController(settingsService, pinService),
		controller.NewUploadController(storage.NewS3Storage("us-east-1", "test-bucket", "key", "secret", "")),
		middleware.NewAuthMiddleware(cfg.JWT.Secret),
		cfg,
	)
	return r.Setup()
}

func TestRouter_Health(t *testing.T) {
	router := setupRouterTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestRouter_PublicReadHeaders(t *testing.T) {
	router := setupRouterTest(t)

	paths := []string{
		"/api/v1/storefront/settings/" + testShop,
		"/api/v1/storefront/pins/" + testShop,
		"/proxy/settings/" + testShop,
		"/proxy/pins/" + testShop,
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "public, max-age=60", w.Header().Get("Cache-Control"))
		})
	}
}

func TestRouter_PublicReadPreflight(t *testing.T) {
	router := setupRouterTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/proxy/settings/"+testShop, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_PublicReadsNeedNoAuth(t *testing.T) {
	router := setupRouterTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/proxy/pins/"+testShop, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_AdminRequiresAuth(t *testing.T) {
	router := setupRouterTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AdminWithValidToken(t *testing.T) {
	router := setupRouterTest(t)

	token, err := util.GenerateShopToken(testShop, testSecret, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testShop)
}
