package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

// Booking as served by the remote backend. The national identity number is
// the customer key correlating bookings, payments and support tickets; there
// is no surrogate user id on this record.
type Booking struct {
	BookingID    int           `json:"bookingId"`
	EventID      int           `json:"eventId"`
	TicketTypeID int           `json:"ticketTypeId"`
	NationalID   int64         `json:"nationalId"`
	Quantity     int           `json:"quantity"`
	TotalAmount  string        `json:"totalAmount"`
	Status       BookingStatus `json:"bookingStatus"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Editable reports whether the booking may still be edited or cancelled.
// Only Pending bookings are mutable.
func (b *Booking) Editable() bool {
	return b.Status == BookingPending
}

type Payment struct {
	PaymentID     int           `json:"paymentId"`
	BookingID     int           `json:"bookingId"`
	NationalID    int64         `json:"nationalId"`
	TransactionID string        `json:"transactionId"`
	Amount        string        `json:"amount"`
	Status        PaymentStatus `json:"paymentStatus"`
	Method        string        `json:"paymentMethod"`
	PaymentDate   time.Time     `json:"paymentDate"`
}

type TicketType struct {
	TicketTypeID int     `json:"ticketTypeId"`
	EventID      int     `json:"eventId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
}

type Venue struct {
	VenueID  int    `json:"venueId"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"` // "available" or "booked"
}

type Event struct {
	EventID      int     `json:"eventId"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	VenueID      int     `json:"venueId"`
	Venue        *Venue  `json:"venue,omitempty"`
	Category     string  `json:"category,omitempty"`
	Date         string  `json:"date"` // "2006-01-02"
	Time         string  `json:"time"` // "15:04:05"
	TicketPrice  float64 `json:"ticketPrice"`
	TicketsTotal int     `json:"ticketsTotal"`
	TicketsSold  int     `json:"ticketsSold"`
	Status       string  `json:"status,omitempty"` // backend-authoritative; "cancelled" wins
}

type EventLifecycle string

const (
	EventUpcoming   EventLifecycle = "upcoming"
	EventInProgress EventLifecycle = "in_progress"
	EventEnded      EventLifecycle = "ended"
	EventCancelled  EventLifecycle = "cancelled"
)

// Lifecycle computes the event's lifecycle state at the given instant.
// Cancellation and "ended" from the backend are authoritative. Everything
// else is derived from the event's start time: a start already in the past
// means ended; a start later the same calendar day counts as in progress.
func (e *Event) Lifecycle(now time.Time) EventLifecycle {
	switch e.Status {
	case "cancelled":
		return EventCancelled
	case "ended":
		return EventEnded
	}

	start, err := e.StartTime()
	if err != nil {
		return EventUpcoming
	}

	if start.Before(now) {
		return EventEnded
	}
	if start.Year() == now.Year() && start.YearDay() == now.YearDay() {
		return EventInProgress
	}
	return EventUpcoming
}

func (e *Event) StartTime() (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", e.Date+" "+e.Time)
	if err != nil {
		t, err = time.Parse("2006-01-02 15:04", e.Date+" "+e.Time)
	}
	return t, err
}

type User struct {
	UserID     int    `json:"userId"`
	NationalID int64  `json:"nationalId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Role       string `json:"role"` // "user" or "admin"
}

type Media struct {
	MediaID int    `json:"mediaId"`
	EventID int    `json:"eventId"`
	URL     string `json:"url"`
	Type    string `json:"type,omitempty"`
}

type SupportTicket struct {
	TicketID    int       `json:"ticketId"`
	NationalID  int64     `json:"nationalId"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"` // "Open", "In Progress", "Resolved"
	CreatedAt   time.Time `json:"createdAt"`
}
