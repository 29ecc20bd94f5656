package orders

import "foodapp/internal/apperr"

var (
	ErrInvalidCart        = apperr.New(apperr.Validation, "invalid_cart", "invalid cart")
	ErrRestaurantNotFound = apperr.New(apperr.NotFound, "restaurant_not_found", "restaurant not found")
	ErrOrderNotFound      = apperr.New(apperr.NotFound, "order_not_found", "order not found")
	ErrInvalidStatus      = apperr.New(apperr.Validation, "invalid_status", "invalid order status")
	ErrInvalidTransition  = apperr.New(apperr.Validation, "invalid_transition", "order status can only move forward")
	ErrNotRestaurantOwner = apperr.New(apperr.Forbidden, "not_restaurant_owner", "order belongs to another restaurant")
	ErrStatusConflict     = apperr.New(apperr.Conflict, "status_conflict", "order status was changed concurrently, reload and retry")
	ErrInvalidMetadata    = apperr.New(apperr.Validation, "invalid_metadata", "checkout session metadata is invalid")
	ErrTotalMismatch      = apperr.New(apperr.Validation, "total_mismatch", "order total does not match its line items")
)
