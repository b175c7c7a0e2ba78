package errors

// Error code constants, CATEGORY_SPECIFIC_DETAIL. The storefront maps
// these codes to user-facing messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Catalog (PRODUCT_) ====================
	ProductNotFound         = "PRODUCT_NOT_FOUND"
	ProductInvalidVariation = "PRODUCT_INVALID_VARIATION"

	// ==================== Cart (CART_) ====================
	CartUnavailable = "CART_UNAVAILABLE"

	// ==================== Orders (ORDER_) ====================
	OrderEmptyCart = "ORDER_EMPTY_CART"
	OrderNotFound  = "ORDER_NOT_FOUND"

	// ==================== Session (SESSION_) ====================
	SessionMissing = "SESSION_MISSING"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
