package models

import "time"

// Coordinate holds geographic coordinates.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address is a physical address.
type Address struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode,omitempty"`
	Country      string `json:"country"`
}

// Location is a service location with full details.
type Location struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Address     *Address    `json:"address,omitempty"`
	Timezone    string      `json:"timezone"`
	Status      string      `json:"status"`
	Coordinates *Coordinate `json:"coordinates,omitempty"`
	Description string      `json:"description,omitempty"`
}

// StaffSummary is a minimal staff reference.
type StaffSummary struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	FirstName   string        `json:"firstName,omitempty"`
	LastName    string        `json:"lastName,omitempty"`
	AvailableAt []LocationRef `json:"availableAt,omitempty"`
}

// Staff is a full staff member record.
type Staff struct {
	ID        string        `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Email     string        `json:"email,omitempty"`
	Phone     string        `json:"phone,omitempty"`
	Status    string        `json:"status"`
	Locations []LocationRef `json:"locations,omitempty"`
}

// ServiceVariation is a bookable service variation from the provider catalog.
// Price is in integer minor currency units; DisplayPrice is the only decimal
// formatted money value in the system.
type ServiceVariation struct {
	ID              string `json:"id"`
	ServiceID       string `json:"serviceId"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	DisplayPrice    string `json:"displayPrice"`
	Price           int64  `json:"price"`
	DurationSeconds int    `json:"durationSeconds"`
}

// AvailabilitySlot is an open appointment slot returned by an availability
// search.
type AvailabilitySlot struct {
	StartTime time.Time    `json:"startTime"`
	EndTime   time.Time    `json:"endTime"`
	Staff     StaffSummary `json:"staff"`
	Location  LocationRef  `json:"location"`
}

// AvailabilityQuery filters an availability search.
type AvailabilityQuery struct {
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	LocationID         string    `json:"locationId,omitempty"`
	StaffID            string    `json:"staffId,omitempty"`
	ServiceVariationID string    `json:"serviceVariationId,omitempty"`
}
