package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"bookify/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const catalogCacheTTL = 1 * time.Hour

// RestClient talks to the booking provider's REST API. Service variation and
// location lookups are cached by id: always in-process, and additionally in
// Redis when a cache client is supplied.
type RestClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Logger  *zap.Logger
	Cache   *redis.Client

	mu         sync.RWMutex
	locations  map[string]models.Location
	variations map[string]models.ServiceVariation
}

// NewRestClient constructs a provider client. cache may be nil.
func NewRestClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger, cache *redis.Client) *RestClient {
	return &RestClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTP:       &http.Client{Timeout: timeout},
		Logger:     logger,
		Cache:      cache,
		locations:  make(map[string]models.Location),
		variations: make(map[string]models.ServiceVariation),
	}
}

// --- wire types ---

type wireLocation struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Address     *models.Address    `json:"address,omitempty"`
	Timezone    string             `json:"timezone"`
	Status      string             `json:"status"`
	Coordinates *models.Coordinate `json:"coordinates,omitempty"`
	Description string             `json:"description,omitempty"`
}

type wireStaff struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Status      string   `json:"status"`
	LocationIDs []string `json:"locationIds,omitempty"`
}

type wireVariation struct {
	ID              string `json:"id"`
	Name            string `json:"name,omitempty"`
	PriceAmount     *int64 `json:"priceAmount,omitempty"`
	Currency        string `json:"currency,omitempty"`
	DurationSeconds int    `json:"durationSeconds"`
}

type wireService struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Variations  []wireVariation `json:"variations"`
}

type wireAvailability struct {
	StartAt         time.Time `json:"startAt"`
	DurationMinutes int       `json:"durationMinutes"`
	LocationID      string    `json:"locationId"`
	StaffID         string    `json:"staffId,omitempty"`
	StaffName       string    `json:"staffName,omitempty"`
}

type wireBooking struct {
	ID              string                  `json:"id"`
	LocationID      string                  `json:"locationId"`
	StartAt         time.Time               `json:"startAt"`
	DurationMinutes int                     `json:"durationMinutes"`
	CustomerNote    string                  `json:"customerNote,omitempty"`
	Segments        []models.BookingSegment `json:"segments,omitempty"`
}

// --- transport ---

func (c *RestClient) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &Error{Op: op, Status: resp.StatusCode, Err: ErrNotFound}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("remote error: %s", string(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// --- catalog and directory operations ---

func (c *RestClient) ListLocations(ctx context.Context, query string) ([]models.Location, error) {
	var payload struct {
		Locations []wireLocation `json:"locations"`
	}
	if err := c.do(ctx, "list locations", http.MethodGet, "/v1/locations", nil, &payload); err != nil {
		return nil, err
	}

	locations := make([]models.Location, 0, len(payload.Locations))
	for _, wl := range payload.Locations {
		if wl.Status != "active" {
			continue
		}
		loc := models.Location(wl)
		locations = append(locations, loc)
		c.cacheLocation(loc)
	}

	return filterOrAll(locations, query, func(l models.Location) string {
		text := l.Name
		if l.Address != nil {
			text += " " + l.Address.City + " " + l.Address.AddressLine1
		}
		return text
	}), nil
}

func (c *RestClient) ListStaff(ctx context.Context, query string) ([]models.Staff, error) {
	var payload struct {
		Staff []wireStaff `json:"staff"`
	}
	if err := c.do(ctx, "list staff", http.MethodGet, "/v1/staff", nil, &payload); err != nil {
		return nil, err
	}

	// Resolve location names for the staff's assigned locations; a failed
	// lookup degrades to an id-only reference.
	staff := make([]models.Staff, 0, len(payload.Staff))
	for _, ws := range payload.Staff {
		if ws.Status != "active" {
			continue
		}
		refs := make([]models.LocationRef, 0, len(ws.LocationIDs))
		for _, id := range ws.LocationIDs {
			refs = append(refs, c.locationRef(ctx, id))
		}
		staff = append(staff, models.Staff{
			ID:        ws.ID,
			FirstName: ws.FirstName,
			LastName:  ws.LastName,
			Email:     ws.Email,
			Phone:     ws.Phone,
			Status:    ws.Status,
			Locations: refs,
		})
	}

	return filterOrAll(staff, query, func(s models.Staff) string {
		return s.FirstName + " " + s.LastName + " " + s.Email
	}), nil
}

func (c *RestClient) SearchServiceCatalog(ctx context.Context, query string) ([]models.ServiceVariation, error) {
	var payload struct {
		Services []wireService `json:"services"`
	}
	if err := c.do(ctx, "search service catalog", http.MethodGet, "/v1/catalog/services", nil, &payload); err != nil {
		return nil, err
	}

	var variations []models.ServiceVariation
	for _, svc := range payload.Services {
		for _, wv := range svc.Variations {
			v := buildVariation(svc, wv)
			variations = append(variations, v)
			c.cacheVariation(v)
		}
	}

	return filterOrAll(variations, query, func(v models.ServiceVariation) string {
		return v.Name
	}), nil
}

func buildVariation(svc wireService, wv wireVariation) models.ServiceVariation {
	name := svc.Name
	if wv.Name != "" {
		name = svc.Name + " - " + wv.Name
	}
	v := models.ServiceVariation{
		ID:              wv.ID,
		ServiceID:       svc.ID,
		Name:            name,
		Description:     svc.Description,
		DisplayPrice:    "Price varies",
		DurationSeconds: wv.DurationSeconds,
	}
	if wv.PriceAmount != nil {
		v.Price = *wv.PriceAmount
		v.DisplayPrice = formatDisplayPrice(*wv.PriceAmount, wv.Currency)
	}
	return v
}

// formatDisplayPrice is the only place minor units become a decimal string.
func formatDisplayPrice(amount int64, currency string) string {
	if currency == "" || currency == "USD" {
		return fmt.Sprintf("$%d.%02d", amount/100, amount%100)
	}
	return fmt.Sprintf("%d.%02d %s", amount/100, amount%100, currency)
}

func (c *RestClient) SearchAvailability(ctx context.Context, q models.AvailabilityQuery) ([]models.AvailabilitySlot, error) {
	var payload struct {
		Availabilities []wireAvailability `json:"availabilities"`
	}
	if err := c.do(ctx, "search availability", http.MethodPost, "/v1/availability/search", q, &payload); err != nil {
		return nil, err
	}

	slots := make([]models.AvailabilitySlot, 0, len(payload.Availabilities))
	for _, wa := range payload.Availabilities {
		loc := c.locationRef(ctx, wa.LocationID)
		slots = append(slots, models.AvailabilitySlot{
			StartTime: wa.StartAt,
			EndTime:   wa.StartAt.Add(time.Duration(wa.DurationMinutes) * time.Minute),
			Staff: models.StaffSummary{
				ID:          wa.StaffID,
				Name:        wa.StaffName,
				AvailableAt: []models.LocationRef{loc},
			},
			Location: loc,
		})
	}
	return slots, nil
}

func (c *RestClient) GetServiceVariation(ctx context.Context, id string) (*models.ServiceVariation, error) {
	c.mu.RLock()
	if v, ok := c.variations[id]; ok {
		c.mu.RUnlock()
		return &v, nil
	}
	c.mu.RUnlock()

	if v := cacheGet[models.ServiceVariation](ctx, c.Cache, "catalog:variation:"+id); v != nil {
		c.cacheVariation(*v)
		return v, nil
	}

	var payload struct {
		Service   wireService   `json:"service"`
		Variation wireVariation `json:"variation"`
	}
	if err := c.do(ctx, "get service variation", http.MethodGet, "/v1/catalog/variations/"+id, nil, &payload); err != nil {
		return nil, err
	}
	v := buildVariation(payload.Service, payload.Variation)
	c.cacheVariation(v)
	return &v, nil
}

func (c *RestClient) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	c.mu.RLock()
	if loc, ok := c.locations[id]; ok {
		c.mu.RUnlock()
		return &loc, nil
	}
	c.mu.RUnlock()

	if loc := cacheGet[models.Location](ctx, c.Cache, "catalog:location:"+id); loc != nil {
		c.cacheLocation(*loc)
		return loc, nil
	}

	var payload struct {
		Location wireLocation `json:"location"`
	}
	if err := c.do(ctx, "get location", http.MethodGet, "/v1/locations/"+id, nil, &payload); err != nil {
		return nil, err
	}
	loc := models.Location(payload.Location)
	c.cacheLocation(loc)
	return &loc, nil
}

// --- booking operations ---

func (c *RestClient) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	body := struct {
		IdempotencyKey string `json:"idempotencyKey"`
		models.CreateBookingRequest
	}{
		IdempotencyKey:       uuid.New().String(),
		CreateBookingRequest: req,
	}

	var payload struct {
		Booking wireBooking `json:"booking"`
	}
	if err := c.do(ctx, "create booking", http.MethodPost, "/v1/bookings", body, &payload); err != nil {
		return nil, err
	}
	b := c.buildBooking(ctx, payload.Booking)
	return &b, nil
}

func (c *RestClient) ListBookings(ctx context.Context, query string) ([]models.Booking, error) {
	var payload struct {
		Bookings []wireBooking `json:"bookings"`
	}
	if err := c.do(ctx, "list bookings", http.MethodGet, "/v1/bookings", nil, &payload); err != nil {
		return nil, err
	}

	bookings := make([]models.Booking, 0, len(payload.Bookings))
	for _, wb := range payload.Bookings {
		bookings = append(bookings, c.buildBooking(ctx, wb))
	}

	return filterOrAll(bookings, query, func(b models.Booking) string {
		text := b.Location.Name
		for _, seg := range b.Segments {
			text += " " + seg.ServiceName + " " + seg.StaffName
		}
		return text
	}), nil
}

func (c *RestClient) CancelBooking(ctx context.Context, id string) (string, error) {
	if err := c.do(ctx, "cancel booking", http.MethodPost, "/v1/bookings/"+id+"/cancel", nil, nil); err != nil {
		return "", err
	}
	return fmt.Sprintf("Booking %s has been cancelled successfully.", id), nil
}

func (c *RestClient) buildBooking(ctx context.Context, wb wireBooking) models.Booking {
	return models.Booking{
		ID:              wb.ID,
		Location:        c.locationRef(ctx, wb.LocationID),
		StartTime:       wb.StartAt,
		DurationMinutes: wb.DurationMinutes,
		Segments:        wb.Segments,
		CustomerNotes:   wb.CustomerNote,
	}
}

// locationRef resolves a location id to an id+name reference, degrading to a
// blank name when the lookup fails.
func (c *RestClient) locationRef(ctx context.Context, id string) models.LocationRef {
	if id == "" {
		return models.LocationRef{}
	}
	loc, err := c.GetLocation(ctx, id)
	if err != nil {
		c.Logger.Warn("location lookup failed, using bare reference",
			zap.String("locationId", id), zap.Error(err))
		return models.LocationRef{ID: id}
	}
	return models.LocationRef{ID: loc.ID, Name: loc.Name}
}

// --- caches ---

func (c *RestClient) cacheLocation(loc models.Location) {
	c.mu.Lock()
	c.locations[loc.ID] = loc
	c.mu.Unlock()
	cacheSet(c.Cache, "catalog:location:"+loc.ID, loc)
}

func (c *RestClient) cacheVariation(v models.ServiceVariation) {
	c.mu.Lock()
	c.variations[v.ID] = v
	c.mu.Unlock()
	cacheSet(c.Cache, "catalog:variation:"+v.ID, v)
}

func cacheGet[T any](ctx context.Context, cache *redis.Client, key string) *T {
	if cache == nil {
		return nil
	}
	raw, err := cache.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return &out
}

func cacheSet(cache *redis.Client, key string, value any) {
	if cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	cache.Set(context.Background(), key, raw, catalogCacheTTL)
}
