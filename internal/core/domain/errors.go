package domain

import "errors"

// Authentication / authorization.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or missing token")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrUserInactive       = errors.New("user is inactive")
)

// Outlet scoping.
var (
	ErrOutletRequired  = errors.New("outlet is required")
	ErrOutletForbidden = errors.New("outlet access denied")
)

// Not found.
var (
	ErrNotFound           = errors.New("not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrOutletNotFound     = errors.New("outlet not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrSaleNotFound       = errors.New("sale not found")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrOfferNotFound      = errors.New("offer not found")
	ErrOnlineSaleNotFound = errors.New("online order not found")
	ErrForecastNotFound   = errors.New("forecast not found")
	ErrReconNotFound      = errors.New("reconciliation not found")
	ErrAccountNotFound    = errors.New("loyalty account not found")
	ErrAPIKeyNotFound     = errors.New("api key not found")
)

// Conflicts.
var (
	ErrConflict           = errors.New("conflict")
	ErrUserExists         = errors.New("user already exists")
	ErrOutletExists       = errors.New("outlet code already exists")
	ErrOfferExists        = errors.New("offer code already exists")
	ErrReconExists        = errors.New("reconciliation already recorded for this date")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
	ErrOfferExhausted     = errors.New("offer usage limit reached")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAPIKeyRevoked      = errors.New("api key has been revoked")
)

// ValidationError reports malformed or incomplete client input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsNotFound reports whether err belongs to the not-found family.
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrUserNotFound, ErrOutletNotFound, ErrCategoryNotFound,
		ErrMenuItemNotFound, ErrOrderNotFound, ErrIngredientNotFound, ErrSaleNotFound,
		ErrExpenseNotFound, ErrOfferNotFound, ErrOnlineSaleNotFound, ErrForecastNotFound,
		ErrReconNotFound, ErrAccountNotFound, ErrAPIKeyNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConflict reports whether err belongs to the conflict family.
func IsConflict(err error) bool {
	for _, target := range []error{
		ErrConflict, ErrUserExists, ErrOutletExists, ErrOfferExists, ErrReconExists,
		ErrInsufficientStock, ErrInsufficientPoints, ErrOfferExhausted, ErrInvalidTransition,
		ErrAPIKeyRevoked,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
