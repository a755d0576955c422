package service

import "errors"

var (
	// Validation errors: raised before any network call is made.
	ErrNotAuthenticated  = errors.New("customer national id is required")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrUnknownTicketType = errors.New("ticket type does not belong to this event")
	ErrTotalBelowMinimum = errors.New("total amount must be at least 0.50")

	// Flow errors: raised mid-flow against the backend.
	ErrBookingIDMissing      = errors.New("booking id not found in create response")
	ErrCheckoutSessionFailed = errors.New("checkout session creation failed")

	ErrBookingNotFound       = errors.New("booking not found")
	ErrNotBookingOwner       = errors.New("booking belongs to another customer")
	ErrBookingNotEditable    = errors.New("only pending bookings can be edited")
	ErrBookingNotCancellable = errors.New("only pending bookings can be cancelled")

	ErrEventNotFound = errors.New("event not found")
)
