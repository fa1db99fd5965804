package auth

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/goldendrops/storefront/pkg/util/errorutil"
)

// Guard outcomes. Each rejection is returned wrapped in an
// *errorutil.DomainError carrying the HTTP status; match with errors.Is.
var (
	ErrMissingToken             = errors.New("missing token")
	ErrInvalidOrExpiredToken    = errors.New("invalid or expired token")
	ErrRoleMismatch             = errors.New("role mismatch")
	ErrAccountInactiveOrMissing = errors.New("account inactive or missing")
	ErrAuthentication           = errors.New("authentication error")
)

func missingTokenError() error {
	return apperrors.NewDomainError("MISSING_TOKEN", "Access denied. No token provided.", http.StatusUnauthorized, nil).
		Wrap(ErrMissingToken)
}

// invalidTokenError deliberately does not say whether the token was forged,
// malformed or expired.
func invalidTokenError() error {
	return apperrors.NewDomainError("INVALID_TOKEN", "Invalid or expired token.", http.StatusUnauthorized, nil).
		Wrap(ErrInvalidOrExpiredToken)
}

func roleMismatchError(scope Scope) error {
	return apperrors.NewDomainError("ROLE_MISMATCH", scope.roleMessage, http.StatusForbidden, nil).
		Wrap(ErrRoleMismatch)
}

func accountInactiveError(scope Scope) error {
	return apperrors.NewDomainError("ACCOUNT_INACTIVE", scope.accountMessage, http.StatusForbidden, nil).
		Wrap(ErrAccountInactiveOrMissing)
}

func authenticationError(cause error) error {
	return apperrors.NewDomainError("AUTHENTICATION_ERROR", "Authentication error.", http.StatusInternalServerError, nil).
		Wrap(fmt.Errorf("%w: %w", ErrAuthentication, cause))
}
