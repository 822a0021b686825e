package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "travelbackend/internal/config"
	"travelbackend/internal/domain/models"
	"travelbackend/internal/pricing"
)

// CatalogRepository is the engine's item lookup over the catalog tables. Each
// call is a single point-in-time read; the engine never re-reads a row
// mid-calculation.
type CatalogRepository struct {
	DB *sql.DB
}

func (r CatalogRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Item dispatches on kind to the right table and normalizes the row into the
// engine's view. Inactive rows are invisible, same as a missing id.
func (r CatalogRepository) Item(kind pricing.ItemKind, id string) (pricing.Item, error) {
	switch kind {
	case pricing.ItemPackage:
		return r.packageItem(id)
	case pricing.ItemHotelRoom:
		return r.hotelRoomItem(id)
	case pricing.ItemActivity:
		return r.perPaxItem("activities", kind, id)
	case pricing.ItemAddOn:
		return r.perPaxItem("addons", kind, id)
	default:
		return pricing.Item{}, pricing.ItemNotFoundError{Kind: kind, ID: id}
	}
}

func (r CatalogRepository) packageItem(id string) (pricing.Item, error) {
	var (
		item      pricing.Item
		amount    int64
		currency  string
		transport bool
	)
	err := r.db().QueryRow(`
		SELECT id, name, duration, base_price, COALESCE(currency,''), transport
		FROM packages
		WHERE id = ? AND is_active = 1
	`, id).Scan(&item.ID, &item.Name, &item.Duration, &amount, &currency, &transport)
	if err != nil {
		return pricing.Item{}, itemErr(pricing.ItemPackage, id, err)
	}
	item.Kind = pricing.ItemPackage
	item.BasePrice = pricing.NewMoney(amount, currency)
	item.NeedsTransport = transport
	return item, nil
}

func (r CatalogRepository) hotelRoomItem(id string) (pricing.Item, error) {
	var (
		item     pricing.Item
		amount   int64
		currency string
	)
	err := r.db().QueryRow(`
		SELECT id, CONCAT(hotel_name, ' / ', category), price_per_night, COALESCE(currency,'')
		FROM hotel_rooms
		WHERE id = ? AND is_active = 1
	`, id).Scan(&item.ID, &item.Name, &amount, &currency)
	if err != nil {
		return pricing.Item{}, itemErr(pricing.ItemHotelRoom, id, err)
	}
	item.Kind = pricing.ItemHotelRoom
	item.BasePrice = pricing.NewMoney(amount, currency)
	return item, nil
}

func (r CatalogRepository) perPaxItem(table string, kind pricing.ItemKind, id string) (pricing.Item, error) {
	var (
		item     pricing.Item
		amount   int64
		currency string
	)
	query := fmt.Sprintf(`
		SELECT id, name, price, COALESCE(currency,'')
		FROM %s
		WHERE id = ? AND is_active = 1
	`, table)
	err := r.db().QueryRow(query, id).Scan(&item.ID, &item.Name, &amount, &currency)
	if err != nil {
		return pricing.Item{}, itemErr(kind, id, err)
	}
	item.Kind = kind
	item.BasePrice = pricing.NewMoney(amount, currency)
	return item, nil
}

func itemErr(kind pricing.ItemKind, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.ItemNotFoundError{Kind: kind, ID: id}
	}
	return err
}

// ListHotelRooms returns active rooms, optionally filtered by location.
func (r CatalogRepository) ListHotelRooms(location string) ([]models.HotelRoom, error) {
	query := `
		SELECT id, hotel_name, location, category, price_per_night, COALESCE(currency,''), is_active
		FROM hotel_rooms
		WHERE is_active = 1`
	args := []any{}
	if location != "" {
		query += ` AND location = ?`
		args = append(args, location)
	}
	query += ` ORDER BY hotel_name, category`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.HotelRoom{}
	for rows.Next() {
		var h models.HotelRoom
		if err := rows.Scan(&h.ID, &h.HotelName, &h.Location, &h.Category, &h.PricePerNight, &h.Currency, &h.IsActive); err != nil {
			return out, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ListAddOns returns active add-ons or activities from the given table view.
func (r CatalogRepository) ListAddOns(kind pricing.ItemKind) ([]models.AddOn, error) {
	table := "addons"
	if kind == pricing.ItemActivity {
		table = "activities"
	}
	query := fmt.Sprintf(`
		SELECT id, name, COALESCE(description,''), price, COALESCE(currency,''), category, is_active
		FROM %s
		WHERE is_active = 1
		ORDER BY name
	`, table)

	rows, err := r.db().Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.AddOn{}
	for rows.Next() {
		var a models.AddOn
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Price, &a.Currency, &a.Category, &a.IsActive); err != nil {
			return out, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
