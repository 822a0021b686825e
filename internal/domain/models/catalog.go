package models

// TourPackage is a multi-day itinerary sold as one trip-level item.
type TourPackage struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Duration    uint     `json:"duration"` // days
	Locations   []string `json:"locations,omitempty"`
	BasePrice   int64    `json:"base_price"` // minor units
	Currency    string   `json:"currency"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Transport   bool     `json:"transport"` // priced with a vehicle component
	IsActive    bool     `json:"is_active"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// HotelRoom is a bookable room type priced per night per room.
type HotelRoom struct {
	ID            string `json:"id"`
	HotelName     string `json:"hotel_name"`
	Location      string `json:"location"`
	Category      string `json:"category"` // Standard, Premium, Luxury
	PricePerNight int64  `json:"price_per_night"`
	Currency      string `json:"currency"`
	IsActive      bool   `json:"is_active"`
}

// AddOn covers per-pax extras: activities, excursions, optional services.
type AddOn struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
	IsActive    bool   `json:"is_active"`
}

// PackagePayload binds package create/update requests.
type PackagePayload struct {
	Name        string   `json:"name" binding:"required"`
	Duration    uint     `json:"duration" binding:"required"`
	Locations   []string `json:"locations"`
	BasePrice   int64    `json:"base_price" binding:"required"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Transport   *bool    `json:"transport"`
}
