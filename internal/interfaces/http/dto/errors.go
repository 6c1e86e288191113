package dto

import "net/http"

// Error code categories, mapped to HTTP statuses. Specific domain
// codes are normalized into one of these before status lookup.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeDuplicate         = "DUPLICATE"
	CodeBusinessRule      = "BUSINESS_RULE_VIOLATION"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeInvalidState      = "INVALID_STATE"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
)

var codeCategories = map[string]string{
	"VALIDATION_ERROR":        CodeValidation,
	"INVALID_INPUT":           CodeValidation,
	"INVALID_NAME":            CodeValidation,
	"INVALID_EMAIL":           CodeValidation,
	"INVALID_PHONE":           CodeValidation,
	"INVALID_PASSWORD":        CodeValidation,
	"INVALID_USERNAME":        CodeValidation,
	"INVALID_ROLE":            CodeValidation,
	"INVALID_SKU":             CodeValidation,
	"INVALID_PRICE":           CodeValidation,
	"INVALID_COST":            CodeValidation,
	"INVALID_STOCK":           CodeValidation,
	"INVALID_REORDER_LEVEL":   CodeValidation,
	"INVALID_QUANTITY":        CodeValidation,
	"INVALID_ADDRESS":         CodeValidation,
	"INVALID_AMOUNT":          CodeValidation,
	"INVALID_RANGE":           CodeValidation,
	"INVALID_ADJUST_MODE":     CodeValidation,
	"INVALID_PAYMENT_METHOD":  CodeValidation,
	"INVALID_ORDER_NUMBER":    CodeValidation,
	"INVALID_CUSTOMER":        CodeValidation,
	"INVALID_CUSTOMER_NAME":   CodeValidation,
	"INVALID_PRODUCT":         CodeValidation,
	"INVALID_PRODUCT_NAME":    CodeValidation,
	"INVALID_REASON":          CodeValidation,
	"INVALID_STATUS":          CodeValidation,
	"INVALID_TRANSACTION_TYPE": CodeValidation,
	"INVALID_DELTA":           CodeValidation,

	"UNAUTHORIZED":        CodeUnauthorized,
	"INVALID_CREDENTIALS": CodeUnauthorized,
	"INVALID_TOKEN":       CodeUnauthorized,
	"ACCOUNT_LOCKED":      CodeUnauthorized,
	"ACCOUNT_DISABLED":    CodeUnauthorized,

	"FORBIDDEN":           CodeForbidden,
	"INVALID_OPERATION":   CodeForbidden,
	"NO_CUSTOMER_PROFILE": CodeForbidden,

	"NOT_FOUND":          CodeNotFound,
	"PRODUCT_NOT_FOUND":  CodeNotFound,
	"ORDER_NOT_FOUND":    CodeNotFound,
	"CUSTOMER_NOT_FOUND": CodeNotFound,
	"USER_NOT_FOUND":     CodeNotFound,
	"ITEM_NOT_FOUND":     CodeNotFound,
	"NO_ADDRESS":         CodeNotFound,

	"ALREADY_EXISTS":     CodeDuplicate,
	"DUPLICATE_SKU":      CodeDuplicate,
	"DUPLICATE_EMAIL":    CodeDuplicate,
	"DUPLICATE_USERNAME": CodeDuplicate,
	"DUPLICATE_PRODUCT":  CodeDuplicate,

	"INSUFFICIENT_STOCK":  CodeInsufficientStock,
	"EMPTY_CART":          CodeBusinessRule,
	"CUSTOMER_INACTIVE":   CodeBusinessRule,
	"PRODUCT_UNAVAILABLE": CodeBusinessRule,
	"INVALID_STATE":       CodeInvalidState,

	"CONCURRENT_MODIFICATION": CodeConflict,
	"CONCURRENCY_CONFLICT":    CodeConflict,
}

var categoryStatus = map[string]int{
	CodeValidation:        http.StatusBadRequest,
	CodeUnauthorized:      http.StatusUnauthorized,
	CodeForbidden:         http.StatusForbidden,
	CodeNotFound:          http.StatusNotFound,
	CodeDuplicate:         http.StatusConflict,
	CodeConflict:          http.StatusConflict,
	CodeBusinessRule:      http.StatusUnprocessableEntity,
	CodeInsufficientStock: http.StatusUnprocessableEntity,
	CodeInvalidState:      http.StatusUnprocessableEntity,
	CodeInternal:          http.StatusInternalServerError,
}

// NormalizeErrorCode maps a specific domain error code to its category
func NormalizeErrorCode(code string) string {
	if category, ok := codeCategories[code]; ok {
		return category
	}
	return CodeInternal
}

// GetHTTPStatus returns the HTTP status for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := categoryStatus[NormalizeErrorCode(code)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
