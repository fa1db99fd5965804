package service

import (
	"net/http"

	apperrors "github.com/goldendrops/storefront/pkg/util/errorutil"
)

// Handler-facing failures. They are returned as-is so errors.Is matches by
// identity.
var (
	ErrDuplicateUser      = apperrors.NewDomainError("DUPLICATE_EMAIL", "User with this email already exists", http.StatusBadRequest, nil)
	ErrDuplicateAdmin     = apperrors.NewDomainError("DUPLICATE_EMAIL", "Admin with this email already exists", http.StatusBadRequest, nil)
	ErrInvalidCredentials = apperrors.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password", http.StatusUnauthorized, nil)
	ErrAccountDeactivated = apperrors.NewDomainError("ACCOUNT_DEACTIVATED", "Your account has been deactivated", http.StatusForbidden, nil)
	ErrAdminSignupClosed  = apperrors.NewDomainError("ADMIN_SIGNUP_DISABLED", "Admin signup is disabled", http.StatusForbidden, nil)
	ErrCategoryInUse      = apperrors.NewDomainError("CATEGORY_IN_USE", "Cannot delete category with existing products", http.StatusBadRequest, nil)
	ErrDuplicateCategory  = apperrors.NewDomainError("DUPLICATE_CATEGORY", "Category with this name already exists", http.StatusBadRequest, nil)
	ErrUnknownCategory    = apperrors.NewDomainError("UNKNOWN_CATEGORY", "Category does not exist", http.StatusBadRequest, nil)
	ErrProductUnavailable = apperrors.NewDomainError("PRODUCT_UNAVAILABLE", "One or more products are unavailable", http.StatusBadRequest, nil)
	ErrInvalidOrderStatus = apperrors.NewDomainError("INVALID_STATUS", "Unknown order status", http.StatusBadRequest, nil)

	ErrUserNotFound     = apperrors.NewDomainError("NOT_FOUND", "User not found", http.StatusNotFound, nil)
	ErrCategoryNotFound = apperrors.NewDomainError("NOT_FOUND", "Category not found", http.StatusNotFound, nil)
	ErrProductNotFound  = apperrors.NewDomainError("NOT_FOUND", "Product not found", http.StatusNotFound, nil)
	ErrOrderNotFound    = apperrors.NewDomainError("NOT_FOUND", "Order not found", http.StatusNotFound, nil)
)
