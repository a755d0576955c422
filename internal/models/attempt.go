package models

import "time"

type AttemptState string

const (
	// AttemptValidationFailed: the submission never reached the network.
	AttemptValidationFailed AttemptState = "validation_failed"
	// AttemptBookingFailed: the backend rejected the booking create call.
	AttemptBookingFailed AttemptState = "booking_failed"
	// AttemptOrphaned: the booking was created but no payment session could
	// be obtained. The booking sits Pending on the backend with no payment
	// until the customer retries or an operator intervenes.
	AttemptOrphaned AttemptState = "booking_without_payment_session"
	// AttemptRedirecting: booking and checkout session both created; the
	// caller was handed the payment page URL.
	AttemptRedirecting AttemptState = "redirecting"
)

// BookingAttempt journals one run of the booking submission flow. One row is
// written per attempt, at its terminal state.
type BookingAttempt struct {
	ID           string       `gorm:"primaryKey" json:"id"`
	NationalID   int64        `gorm:"not null;index" json:"national_id"`
	EventID      int          `gorm:"not null" json:"event_id"`
	TicketTypeID int          `json:"ticket_type_id"`
	Quantity     int          `json:"quantity"`
	TotalAmount  string       `json:"total_amount"`
	BookingID    *int         `gorm:"index" json:"booking_id,omitempty"`
	State        AttemptState `gorm:"type:varchar(40);not null;index" json:"state"`
	FailReason   string       `json:"fail_reason,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
