package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The dashboard maps these codes to user-facing messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED" // login required
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid = "AUTH_TOKEN_INVALID"
	AuthShopMissing  = "AUTH_SHOP_MISSING" // session has no shop scope

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationShopRequired  = "VALIDATION_SHOP_REQUIRED" // missing shop param
	ValidationInvalidCoords = "VALIDATION_INVALID_COORDS"
	ValidationInvalidCenter = "VALIDATION_INVALID_CENTER" // center not {lat,lng} JSON
	ValidationInvalidEnum   = "VALIDATION_INVALID_ENUM"
	ValidationInvalidRadius = "VALIDATION_INVALID_RADIUS"
	ValidationTitleRequired = "VALIDATION_TITLE_REQUIRED"

	// ==================== Settings (SETTINGS_) ====================
	SettingsFetchFailed = "SETTINGS_FETCH_FAILED"
	SettingsSaveFailed  = "SETTINGS_SAVE_FAILED"

	// ==================== Pins (PIN_) ====================
	PinNotFound     = "PIN_NOT_FOUND" // absent or owned by another shop
	PinCreateFailed = "PIN_CREATE_FAILED"
	PinUpdateFailed = "PIN_UPDATE_FAILED"
	PinDeleteFailed = "PIN_DELETE_FAILED"

	// ==================== Actions (ACTION_) ====================
	ActionUnknown       = "ACTION_UNKNOWN" // unrecognized action discriminator
	ActionPinIDRequired = "ACTION_PIN_ID_REQUIRED"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
