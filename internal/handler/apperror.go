package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidAPIKey      = &AppError{http.StatusForbidden, "INVALID_API_KEY", "Invalid API key"}
	ErrAdminRequired      = &AppError{http.StatusForbidden, "ADMIN_REQUIRED", "Admin privileges required"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrInvalidAmount       = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be a positive number"}
	ErrInvalidKind         = &AppError{http.StatusBadRequest, "INVALID_ADJUSTMENT_TYPE", "Adjustment type must be credit or debit"}
	ErrMissingCustomer     = &AppError{http.StatusBadRequest, "MISSING_CUSTOMER", "Customer id is required"}
	ErrCustomerNotFound    = &AppError{http.StatusNotFound, "CUSTOMER_NOT_FOUND", "Customer not found"}
	ErrInsufficientBalance = &AppError{http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE", "Insufficient wallet balance for this debit"}
	ErrOrderNotFound       = &AppError{http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found"}
	ErrReferralNotFound    = &AppError{http.StatusNotFound, "REFERRAL_NOT_FOUND", "Referral not found"}
	ErrUsernameTaken       = &AppError{http.StatusConflict, "USERNAME_TAKEN", "A customer with a similar name already exists"}
	ErrInvalidStatus       = &AppError{http.StatusBadRequest, "INVALID_STATUS", "Invalid status"}
)
