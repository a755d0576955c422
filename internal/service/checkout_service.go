package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/Gakenye8741/ticket-gateway/internal/backend"
	"github.com/Gakenye8741/ticket-gateway/internal/cache"
	"github.com/Gakenye8741/ticket-gateway/internal/models"
	"github.com/Gakenye8741/ticket-gateway/internal/repository"
	"github.com/Gakenye8741/ticket-gateway/internal/session"
	"github.com/Gakenye8741/ticket-gateway/pkg/logger"
	"github.com/google/uuid"
)

// MinimumPayableTotal is the smallest chargeable total in major currency
// units; the payment processor rejects anything below it.
const MinimumPayableTotal = 0.50

type SubmitInput struct {
	EventID      int
	TicketTypeID int
	Quantity     int
	// Origin of the storefront page, used to build the success/cancel
	// redirect URLs. Falls back to the configured public origin when empty.
	Origin string
}

type SubmitResult struct {
	Booking     *models.Booking `json:"booking"`
	CheckoutURL string          `json:"checkout_url"`
	AttemptID   string          `json:"attempt_id"`
}

type CheckoutService interface {
	Submit(ctx context.Context, ident session.Identity, in SubmitInput) (*SubmitResult, error)
}

type checkoutService struct {
	bookings    backend.BookingAPI
	payments    backend.PaymentAPI
	ticketTypes backend.TicketTypeAPI
	attempts    repository.AttemptRepository
	cache       cache.TagCache
	currency    string
	origin      string
	cacheTTL    time.Duration
	l           logger.Logger
}

func NewCheckoutService(
	bookings backend.BookingAPI,
	payments backend.PaymentAPI,
	ticketTypes backend.TicketTypeAPI,
	attempts repository.AttemptRepository,
	tagCache cache.TagCache,
	currency, origin string,
	cacheTTL time.Duration,
	l logger.Logger,
) CheckoutService {
	return &checkoutService{
		bookings:    bookings,
		payments:    payments,
		ticketTypes: ticketTypes,
		attempts:    attempts,
		cache:       tagCache,
		currency:    currency,
		origin:      origin,
		cacheTTL:    cacheTTL,
		l:           l,
	}
}

// Submit runs one booking attempt end to end: validate the selection, create
// the booking, create the payment checkout session. Booking creation always
// completes (success or failure) before session creation is attempted, and
// exactly one session creation happens per attempt. A session failure leaves
// the created booking Pending with no payment; that orphaned state is
// journaled, never silently compensated.
func (s *checkoutService) Submit(ctx context.Context, ident session.Identity, in SubmitInput) (*SubmitResult, error) {
	attempt := &models.BookingAttempt{
		ID:           uuid.New().String(),
		NationalID:   ident.NationalID,
		EventID:      in.EventID,
		TicketTypeID: in.TicketTypeID,
		Quantity:     in.Quantity,
	}

	if ident.NationalID == 0 {
		return nil, s.failValidation(ctx, attempt, ErrNotAuthenticated)
	}
	if in.Quantity < 1 {
		return nil, s.failValidation(ctx, attempt, ErrInvalidQuantity)
	}

	ticketType, err := s.findTicketType(ctx, in.EventID, in.TicketTypeID)
	if err != nil {
		return nil, s.failValidation(ctx, attempt, err)
	}

	total := float64(in.Quantity) * ticketType.Price
	attempt.TotalAmount = FormatAmount(total)
	if total < MinimumPayableTotal {
		return nil, s.failValidation(ctx, attempt, ErrTotalBelowMinimum)
	}

	created, err := s.createBooking(ctx, ident, in, ticketType, total)
	if err != nil {
		s.journal(ctx, attempt, models.AttemptBookingFailed, err.Error())
		return nil, err
	}
	bookingID := created.BookingID
	attempt.BookingID = &bookingID

	checkoutURL, err := s.createSession(ctx, ident, bookingID, total, in.Origin)
	if err != nil {
		// The booking exists and stays Pending with no payment session.
		s.journal(ctx, attempt, models.AttemptOrphaned, err.Error())
		return nil, err
	}

	s.journal(ctx, attempt, models.AttemptRedirecting, "")
	return &SubmitResult{Booking: created, CheckoutURL: checkoutURL, AttemptID: attempt.ID}, nil
}

// findTicketType resolves the selected ticket type from the set belonging to
// the target event, through the tag cache.
func (s *checkoutService) findTicketType(ctx context.Context, eventID, ticketTypeID int) (*models.TicketType, error) {
	key := "event:" + strconv.Itoa(eventID)

	var ticketTypes []models.TicketType
	hit, err := s.cache.Get(ctx, cache.TagTicketTypes, key, &ticketTypes)
	if err != nil {
		s.l.Warn("ticket type cache read failed", "event_id", eventID, "error", err)
	}
	if !hit {
		ticketTypes, err = s.ticketTypes.ListTicketTypesByEventID(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("load ticket types: %w", err)
		}
		if err := s.cache.Set(ctx, cache.TagTicketTypes, key, ticketTypes, s.cacheTTL); err != nil {
			s.l.Warn("ticket type cache write failed", "event_id", eventID, "error", err)
		}
	}

	for i := range ticketTypes {
		if ticketTypes[i].TicketTypeID == ticketTypeID {
			return &ticketTypes[i], nil
		}
	}
	return nil, ErrUnknownTicketType
}

func (s *checkoutService) createBooking(ctx context.Context, ident session.Identity, in SubmitInput, tt *models.TicketType, total float64) (*models.Booking, error) {
	resp, err := s.bookings.CreateBooking(ctx, backend.CreateBookingRequest{
		NationalID:     ident.NationalID,
		EventID:        in.EventID,
		TicketTypeID:   tt.TicketTypeID,
		TicketTypeName: tt.Name,
		Quantity:       in.Quantity,
		TotalAmount:    FormatAmount(total),
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := s.cache.InvalidateTag(ctx, cache.TagBookings); err != nil {
		s.l.Warn("booking cache invalidation failed", "error", err)
	}

	created := resp.Created()
	if created == nil || created.BookingID == 0 {
		return nil, ErrBookingIDMissing
	}
	return created, nil
}

func (s *checkoutService) createSession(ctx context.Context, ident session.Identity, bookingID int, total float64, origin string) (string, error) {
	if origin == "" {
		origin = s.origin
	}

	resp, err := s.payments.CreateCheckoutSession(ctx, backend.CreateCheckoutSessionRequest{
		Amount:     MinorUnits(total),
		NationalID: ident.NationalID,
		BookingID:  bookingID,
		Currency:   s.currency,
		SuccessURL: origin + "/success",
		CancelURL:  origin + "/cancel",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCheckoutSessionFailed, err)
	}
	if resp.URL == "" {
		return "", ErrCheckoutSessionFailed
	}
	return resp.URL, nil
}

func (s *checkoutService) failValidation(ctx context.Context, attempt *models.BookingAttempt, cause error) error {
	s.journal(ctx, attempt, models.AttemptValidationFailed, cause.Error())
	return cause
}

// journal records the attempt's terminal state. A journal write failure must
// not fail the flow itself.
func (s *checkoutService) journal(ctx context.Context, attempt *models.BookingAttempt, state models.AttemptState, reason string) {
	attempt.State = state
	attempt.FailReason = reason
	if err := s.attempts.Create(ctx, attempt); err != nil {
		s.l.Error("failed to journal booking attempt", "attempt_id", attempt.ID, "state", state, "error", err)
	}
}

// FormatAmount renders a major-unit total the way the backend expects it: a
// plain decimal string without trailing zeros.
func FormatAmount(total float64) string {
	return strconv.FormatFloat(total, 'f', -1, 64)
}

// MinorUnits converts a major-unit total to integer minor units (cents).
func MinorUnits(total float64) int64 {
	return int64(math.Round(total * 100))
}
