package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Gakenye8741/ticket-gateway/internal/backend"
	"github.com/Gakenye8741/ticket-gateway/internal/cache"
	"github.com/Gakenye8741/ticket-gateway/internal/models"
	"github.com/Gakenye8741/ticket-gateway/internal/session"
	"github.com/Gakenye8741/ticket-gateway/pkg/logger"
)

// BookingView decorates a booking with the actions its status allows. Only
// Pending bookings carry edit/cancel.
type BookingView struct {
	models.Booking
	CanEdit   bool `json:"can_edit"`
	CanCancel bool `json:"can_cancel"`
}

type EditBookingInput struct {
	TicketTypeID int
	Quantity     int
}

type BookingService interface {
	ListForCustomer(ctx context.Context, nationalID int64) ([]BookingView, error)
	Get(ctx context.Context, ident session.Identity, id int) (*BookingView, error)
	Edit(ctx context.Context, ident session.Identity, id int, in EditBookingInput) (*models.Booking, error)
	Cancel(ctx context.Context, ident session.Identity, id int) error
}

type bookingService struct {
	bookings    backend.BookingAPI
	ticketTypes backend.TicketTypeAPI
	cache       cache.TagCache
	cacheTTL    time.Duration
	l           logger.Logger
}

func NewBookingService(
	bookings backend.BookingAPI,
	ticketTypes backend.TicketTypeAPI,
	tagCache cache.TagCache,
	cacheTTL time.Duration,
	l logger.Logger,
) BookingService {
	return &bookingService{
		bookings:    bookings,
		ticketTypes: ticketTypes,
		cache:       tagCache,
		cacheTTL:    cacheTTL,
		l:           l,
	}
}

func toView(b models.Booking) BookingView {
	editable := b.Editable()
	return BookingView{Booking: b, CanEdit: editable, CanCancel: editable}
}

func (s *bookingService) ListForCustomer(ctx context.Context, nationalID int64) ([]BookingView, error) {
	key := "national-id:" + strconv.FormatInt(nationalID, 10)

	var bookings []models.Booking
	hit, err := s.cache.Get(ctx, cache.TagBookings, key, &bookings)
	if err != nil {
		s.l.Warn("booking cache read failed", "error", err)
	}
	if !hit {
		bookings, err = s.bookings.ListBookingsByNationalID(ctx, nationalID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, cache.TagBookings, key, bookings, s.cacheTTL); err != nil {
			s.l.Warn("booking cache write failed", "error", err)
		}
	}

	views := make([]BookingView, len(bookings))
	for i, b := range bookings {
		views[i] = toView(b)
	}
	return views, nil
}

func (s *bookingService) Get(ctx context.Context, ident session.Identity, id int) (*BookingView, error) {
	booking, err := s.ownedBooking(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	view := toView(*booking)
	return &view, nil
}

// Edit changes quantity and/or ticket type on a Pending booking and
// recomputes the total from the new selection's unit price.
func (s *bookingService) Edit(ctx context.Context, ident session.Identity, id int, in EditBookingInput) (*models.Booking, error) {
	booking, err := s.ownedBooking(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	if !booking.Editable() {
		return nil, ErrBookingNotEditable
	}
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	ticketTypes, err := s.ticketTypes.ListTicketTypesByEventID(ctx, booking.EventID)
	if err != nil {
		return nil, fmt.Errorf("load ticket types: %w", err)
	}
	var selected *models.TicketType
	for i := range ticketTypes {
		if ticketTypes[i].TicketTypeID == in.TicketTypeID {
			selected = &ticketTypes[i]
			break
		}
	}
	if selected == nil {
		return nil, ErrUnknownTicketType
	}

	total := float64(in.Quantity) * selected.Price
	if total < MinimumPayableTotal {
		return nil, ErrTotalBelowMinimum
	}

	req := backend.UpdateBookingRequest{
		Status:       models.BookingPending,
		Quantity:     in.Quantity,
		TotalAmount:  FormatAmount(total),
		TicketTypeID: selected.TicketTypeID,
		EventID:      booking.EventID,
		NationalID:   booking.NationalID,
	}
	if err := s.bookings.UpdateBooking(ctx, id, req); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	booking.Quantity = in.Quantity
	booking.TicketTypeID = selected.TicketTypeID
	booking.TotalAmount = req.TotalAmount
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, ident session.Identity, id int) error {
	booking, err := s.ownedBooking(ctx, ident, id)
	if err != nil {
		return err
	}
	if !booking.Editable() {
		return ErrBookingNotCancellable
	}

	if err := s.bookings.CancelBooking(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *bookingService) ownedBooking(ctx context.Context, ident session.Identity, id int) (*models.Booking, error) {
	booking, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		if apiErr, ok := err.(*backend.APIError); ok && apiErr.StatusCode == 404 {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.NationalID != ident.NationalID && !ident.IsAdmin() {
		return nil, ErrNotBookingOwner
	}
	return booking, nil
}

func (s *bookingService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateTag(ctx, cache.TagBookings); err != nil {
		s.l.Warn("booking cache invalidation failed", "error", err)
	}
}
