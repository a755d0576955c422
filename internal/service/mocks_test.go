package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/Gakenye8741/ticket-gateway/internal/backend"
	"github.com/Gakenye8741/ticket-gateway/internal/models"
)

// --- Mock BookingAPI ---

type mockBookingAPI struct {
	listFn           func(ctx context.Context) ([]models.Booking, error)
	getFn            func(ctx context.Context, id int) (*models.Booking, error)
	listByNationalFn func(ctx context.Context, nationalID int64) ([]models.Booking, error)
	createFn         func(ctx context.Context, req backend.CreateBookingRequest) (*backend.CreateBookingResponse, error)
	updateFn         func(ctx context.Context, id int, req backend.UpdateBookingRequest) error
	cancelFn         func(ctx context.Context, id int) error
}

func (m *mockBookingAPI) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return m.listFn(ctx)
}
func (m *mockBookingAPI) GetBooking(ctx context.Context, id int) (*models.Booking, error) {
	return m.getFn(ctx, id)
}
func (m *mockBookingAPI) ListBookingsByNationalID(ctx context.Context, nationalID int64) ([]models.Booking, error) {
	return m.listByNationalFn(ctx, nationalID)
}
func (m *mockBookingAPI) ListBookingsByEventID(ctx context.Context, eventID int) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingAPI) CreateBooking(ctx context.Context, req backend.CreateBookingRequest) (*backend.CreateBookingResponse, error) {
	return m.createFn(ctx, req)
}
func (m *mockBookingAPI) UpdateBooking(ctx context.Context, id int, req backend.UpdateBookingRequest) error {
	return m.updateFn(ctx, id, req)
}
func (m *mockBookingAPI) UpdateBookingStatus(ctx context.Context, id int, status models.BookingStatus) error {
	return nil
}
func (m *mockBookingAPI) CancelBooking(ctx context.Context, id int) error {
	return m.cancelFn(ctx, id)
}
func (m *mockBookingAPI) DeleteBooking(ctx context.Context, id int) error { return nil }

// --- Mock PaymentAPI ---

type mockPaymentAPI struct {
	listByNationalFn func(ctx context.Context, nationalID int64) ([]models.Payment, error)
	createSessionFn  func(ctx context.Context, req backend.CreateCheckoutSessionRequest) (*backend.CreateCheckoutSessionResponse, error)
}

func (m *mockPaymentAPI) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return nil, nil
}
func (m *mockPaymentAPI) GetPayment(ctx context.Context, id int) (*models.Payment, error) {
	return nil, nil
}
func (m *mockPaymentAPI) ListPaymentsByBookingID(ctx context.Context, bookingID int) ([]models.Payment, error) {
	return nil, nil
}
func (m *mockPaymentAPI) ListPaymentsByNationalID(ctx context.Context, nationalID int64) ([]models.Payment, error) {
	return m.listByNationalFn(ctx, nationalID)
}
func (m *mockPaymentAPI) ListPaymentsByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error) {
	return nil, nil
}
func (m *mockPaymentAPI) CreateCheckoutSession(ctx context.Context, req backend.CreateCheckoutSessionRequest) (*backend.CreateCheckoutSessionResponse, error) {
	return m.createSessionFn(ctx, req)
}

// --- Mock TicketTypeAPI ---

type mockTicketTypeAPI struct {
	listByEventFn func(ctx context.Context, eventID int) ([]models.TicketType, error)
}

func (m *mockTicketTypeAPI) ListTicketTypes(ctx context.Context) ([]models.TicketType, error) {
	return nil, nil
}
func (m *mockTicketTypeAPI) GetTicketType(ctx context.Context, id int) (*models.TicketType, error) {
	return nil, nil
}
func (m *mockTicketTypeAPI) ListTicketTypesByEventID(ctx context.Context, eventID int) ([]models.TicketType, error) {
	return m.listByEventFn(ctx, eventID)
}
func (m *mockTicketTypeAPI) CreateTicketType(ctx context.Context, req backend.CreateTicketTypeRequest) (*models.TicketType, error) {
	return nil, nil
}
func (m *mockTicketTypeAPI) UpdateTicketType(ctx context.Context, id int, req backend.UpdateTicketTypeRequest) error {
	return nil
}
func (m *mockTicketTypeAPI) DeleteTicketType(ctx context.Context, id int) error { return nil }

// --- Mock EventAPI ---

type mockEventAPI struct {
	listFn             func(ctx context.Context) ([]models.Event, error)
	getFn              func(ctx context.Context, id int) (*models.Event, error)
	searchByTitleFn    func(ctx context.Context, title string) ([]models.Event, error)
	searchByCategoryFn func(ctx context.Context, category string) ([]models.Event, error)
	updateFn           func(ctx context.Context, id int, req backend.UpdateEventRequest) error
}

func (m *mockEventAPI) ListEvents(ctx context.Context) ([]models.Event, error) {
	return m.listFn(ctx)
}
func (m *mockEventAPI) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	return m.getFn(ctx, id)
}
func (m *mockEventAPI) SearchEventsByTitle(ctx context.Context, title string) ([]models.Event, error) {
	return m.searchByTitleFn(ctx, title)
}
func (m *mockEventAPI) SearchEventsByCategory(ctx context.Context, category string) ([]models.Event, error) {
	return m.searchByCategoryFn(ctx, category)
}
func (m *mockEventAPI) CreateEvent(ctx context.Context, req backend.CreateEventRequest) (*models.Event, error) {
	return nil, nil
}
func (m *mockEventAPI) UpdateEvent(ctx context.Context, id int, req backend.UpdateEventRequest) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, req)
	}
	return nil
}
func (m *mockEventAPI) DeleteEvent(ctx context.Context, id int) error { return nil }

// --- Mock VenueAPI ---

type mockVenueAPI struct {
	listFn   func(ctx context.Context) ([]models.Venue, error)
	updateFn func(ctx context.Context, id int, req backend.UpdateVenueRequest) error
}

func (m *mockVenueAPI) ListVenues(ctx context.Context) ([]models.Venue, error) {
	return m.listFn(ctx)
}
func (m *mockVenueAPI) GetVenue(ctx context.Context, id int) (*models.Venue, error) {
	return nil, nil
}
func (m *mockVenueAPI) CreateVenue(ctx context.Context, req backend.CreateVenueRequest) (*models.Venue, error) {
	return nil, nil
}
func (m *mockVenueAPI) UpdateVenue(ctx context.Context, id int, req backend.UpdateVenueRequest) error {
	return m.updateFn(ctx, id, req)
}
func (m *mockVenueAPI) DeleteVenue(ctx context.Context, id int) error { return nil }

// --- Mock AttemptRepository ---

type mockAttemptRepo struct {
	mu       sync.Mutex
	attempts []models.BookingAttempt
}

func (m *mockAttemptRepo) Create(ctx context.Context, attempt *models.BookingAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, *attempt)
	return nil
}
func (m *mockAttemptRepo) FindByID(ctx context.Context, id string) (*models.BookingAttempt, error) {
	return nil, nil
}
func (m *mockAttemptRepo) FindByNationalID(ctx context.Context, nationalID int64) ([]models.BookingAttempt, error) {
	return nil, nil
}
func (m *mockAttemptRepo) FindByState(ctx context.Context, state models.AttemptState) ([]models.BookingAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.BookingAttempt
	for _, a := range m.attempts {
		if a.State == state {
			out = append(out, a)
		}
	}
	return out, nil
}
func (m *mockAttemptRepo) FindOrphans(ctx context.Context) ([]models.BookingAttempt, error) {
	return m.FindByState(ctx, models.AttemptOrphaned)
}

func (m *mockAttemptRepo) last() *models.BookingAttempt {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.attempts) == 0 {
		return nil
	}
	return &m.attempts[len(m.attempts)-1]
}

// --- In-memory TagCache ---

type memoryCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, tag, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[tag+"|"+key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (m *memoryCache) Set(ctx context.Context, tag, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[tag+"|"+key] = raw
	return nil
}

func (m *memoryCache) InvalidateTag(ctx context.Context, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if strings.HasPrefix(k, tag+"|") {
			delete(m.entries, k)
		}
	}
	m.invalidated = append(m.invalidated, tag)
	return nil
}

// --- Mock Publisher ---

type mockPublisher struct {
	mu        sync.Mutex
	published []BookingConfirmedMessage
	err       error
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	if m.err != nil {
		return m.err
	}
	msg, ok := payload.(BookingConfirmedMessage)
	if !ok {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, msg)
	return nil
}
