package checkout

import (
	"context"
	"sync"

	"bookify/models"
	"bookify/services/provider"

	"go.uber.org/zap"
)

// MockProviderClient implements provider.Client for testing. Variations and
// Locations seed the lookup responses; BookingErrs maps a service variation id
// to a forced CreateBooking failure.
type MockProviderClient struct {
	mu sync.Mutex

	Variations map[string]*models.ServiceVariation
	Locations  map[string]*models.Location

	VariationErr error
	LocationErr  error
	BookingErrs  map[string]error

	CreatedBookings []models.CreateBookingRequest
	bookingSeq      int
}

func (m *MockProviderClient) ListLocations(_ context.Context, _ string) ([]models.Location, error) {
	var out []models.Location
	for _, loc := range m.Locations {
		out = append(out, *loc)
	}
	return out, nil
}

func (m *MockProviderClient) ListStaff(_ context.Context, _ string) ([]models.Staff, error) {
	return nil, nil
}

func (m *MockProviderClient) SearchServiceCatalog(_ context.Context, _ string) ([]models.ServiceVariation, error) {
	var out []models.ServiceVariation
	for _, v := range m.Variations {
		out = append(out, *v)
	}
	return out, nil
}

func (m *MockProviderClient) SearchAvailability(_ context.Context, _ models.AvailabilityQuery) ([]models.AvailabilitySlot, error) {
	return nil, nil
}

func (m *MockProviderClient) GetServiceVariation(_ context.Context, id string) (*models.ServiceVariation, error) {
	if m.VariationErr != nil {
		return nil, m.VariationErr
	}
	v, ok := m.Variations[id]
	if !ok {
		return nil, &provider.Error{Op: "GetServiceVariation", Status: 404, Err: provider.ErrNotFound}
	}
	cp := *v
	return &cp, nil
}

func (m *MockProviderClient) GetLocation(_ context.Context, id string) (*models.Location, error) {
	if m.LocationErr != nil {
		return nil, m.LocationErr
	}
	loc, ok := m.Locations[id]
	if !ok {
		return nil, &provider.Error{Op: "GetLocation", Status: 404, Err: provider.ErrNotFound}
	}
	cp := *loc
	return &cp, nil
}

func (m *MockProviderClient) CreateBooking(_ context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.BookingErrs[req.ServiceVariationID]; ok && err != nil {
		return nil, err
	}
	m.CreatedBookings = append(m.CreatedBookings, req)
	m.bookingSeq++
	return &models.Booking{
		ID:        "booking-" + req.ServiceVariationID,
		Location:  models.LocationRef{ID: req.LocationID},
		StartTime: req.StartTime,
	}, nil
}

func (m *MockProviderClient) ListBookings(_ context.Context, _ string) ([]models.Booking, error) {
	return nil, nil
}

func (m *MockProviderClient) CancelBooking(_ context.Context, id string) (string, error) {
	return id, nil
}

// MockPaymentProcessor captures intent requests.
type MockPaymentProcessor struct {
	Intent *PaymentIntent
	Err    error

	Amount   int64
	Currency string
}

func (m *MockPaymentProcessor) CreateIntent(_ context.Context, amount int64, currency, sessionID string) (*PaymentIntent, error) {
	m.Amount = amount
	m.Currency = currency
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Intent != nil {
		return m.Intent, nil
	}
	return &PaymentIntent{
		ID:       "pi_" + sessionID,
		Amount:   amount,
		Currency: currency,
	}, nil
}

// newTestService wires a DefaultCheckoutService against a mock provider with a
// small seeded catalog.
func newTestService(mock *MockProviderClient) *DefaultCheckoutService {
	return &DefaultCheckoutService{
		Provider: mock,
		Store:    NewSessionStore(),
		Payments: &MockPaymentProcessor{},
		Currency: "USD",
		TaxRate:  0.10,
		Logger:   zap.NewNop(),
	}
}

func seededProvider() *MockProviderClient {
	return &MockProviderClient{
		Variations: map[string]*models.ServiceVariation{
			"var-haircut": {
				ID:              "var-haircut",
				ServiceID:       "svc-hair",
				Name:            "Haircut",
				Price:           5000,
				DurationSeconds: 1800,
			},
			"var-massage": {
				ID:              "var-massage",
				ServiceID:       "svc-spa",
				Name:            "Massage",
				Price:           3000,
				DurationSeconds: 3600,
			},
		},
		Locations: map[string]*models.Location{
			"loc-1": {ID: "loc-1", Name: "Downtown", Status: "active"},
		},
	}
}
