package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	NationalID int64  `json:"national_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type SubmitBookingRequest struct {
	EventID      int `json:"event_id"`
	TicketTypeID int `json:"ticket_type_id"`
	Quantity     int `json:"quantity"`
}

type EditBookingRequest struct {
	TicketTypeID int `json:"ticket_type_id"`
	Quantity     int `json:"quantity"`
}

type UpdateVenueStatusRequest struct {
	Status string `json:"status"`
}

type CreateSupportTicketRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

type UpdateSupportTicketStatusRequest struct {
	Status string `json:"status"`
}
