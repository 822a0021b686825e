package repositories

import (
	"database/sql"
	"time"

	intconfig "travelbackend/internal/config"
	"travelbackend/internal/domain/models"
	"travelbackend/internal/pricing"
	"travelbackend/internal/utils"
)

// RateRepository stores seasonal rates and serves them to the pricing engine
// as snapshots.
type RateRepository struct {
	DB *sql.DB
}

func (r RateRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Rates implements pricing.RateSource: one query, active rates whose windows
// intersect [from, to], returned as engine values. Tie-breaking stays in the
// engine; the repository only filters.
func (r RateRepository) Rates(kind pricing.ItemKind, id string, from, to time.Time) ([]pricing.SeasonalRate, error) {
	rows, err := r.db().Query(`
		SELECT id, item_kind, item_id, start_date, end_date, rate, COALESCE(currency,''), is_active
		FROM seasonal_rates
		WHERE item_kind = ? AND item_id = ? AND is_active = 1
		  AND start_date <= ? AND end_date >= ?
		ORDER BY start_date
	`, string(kind), id, utils.FormatDate(to), utils.FormatDate(from))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []pricing.SeasonalRate{}
	for rows.Next() {
		var (
			sr               pricing.SeasonalRate
			kindStr          string
			startStr, endStr string
			amount           int64
			currency         string
		)
		if err := rows.Scan(&sr.ID, &kindStr, &sr.ItemID, &startStr, &endStr, &amount, &currency, &sr.IsActive); err != nil {
			return out, err
		}
		sr.ItemKind = pricing.ItemKind(kindStr)
		if sr.StartDate, err = utils.ParseDate(startStr); err != nil {
			return out, err
		}
		if sr.EndDate, err = utils.ParseDate(endStr); err != nil {
			return out, err
		}
		sr.Rate = pricing.NewMoney(amount, currency)
		out = append(out, sr)
	}
	return out, rows.Err()
}

const rateColumns = `id, item_kind, item_id, season_name, COALESCE(season_type,''), start_date, end_date,
	rate, COALESCE(currency,''), min_stay, is_active, COALESCE(created_at,''), COALESCE(updated_at,'')`

func scanRate(row interface{ Scan(...any) error }) (models.SeasonalRate, error) {
	var sr models.SeasonalRate
	err := row.Scan(&sr.ID, &sr.ItemKind, &sr.ItemID, &sr.SeasonName, &sr.SeasonType,
		&sr.StartDate, &sr.EndDate, &sr.Rate, &sr.Currency, &sr.MinStay, &sr.IsActive,
		&sr.CreatedAt, &sr.UpdatedAt)
	return sr, err
}

func (r RateRepository) GetByID(id string) (models.SeasonalRate, error) {
	row := r.db().QueryRow(`SELECT `+rateColumns+` FROM seasonal_rates WHERE id = ?`, id)
	return scanRate(row)
}

// ListByItem returns rates for one item, active ones only unless includeAll.
func (r RateRepository) ListByItem(kind, itemID string, includeAll bool) ([]models.SeasonalRate, error) {
	query := `SELECT ` + rateColumns + ` FROM seasonal_rates WHERE item_kind = ? AND item_id = ?`
	if !includeAll {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY start_date`

	rows, err := r.db().Query(query, kind, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SeasonalRate{}
	for rows.Next() {
		sr, err := scanRate(rows)
		if err != nil {
			return out, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

// FindOverlapping returns the first active rate for the same item whose
// window intersects [start, end], excluding the given rate id.
func (r RateRepository) FindOverlapping(kind, itemID, start, end, excludeID string) (models.SeasonalRate, error) {
	row := r.db().QueryRow(`
		SELECT `+rateColumns+`
		FROM seasonal_rates
		WHERE item_kind = ? AND item_id = ? AND is_active = 1
		  AND start_date <= ? AND end_date >= ?
		  AND id <> ?
		LIMIT 1
	`, kind, itemID, end, start, excludeID)
	return scanRate(row)
}

func (r RateRepository) Insert(sr models.SeasonalRate) error {
	_, err := r.db().Exec(`
		INSERT INTO seasonal_rates (id, item_kind, item_id, season_name, season_type, start_date, end_date, rate, currency, min_stay, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, NOW(), NOW())
	`, sr.ID, sr.ItemKind, sr.ItemID, sr.SeasonName, sr.SeasonType, sr.StartDate, sr.EndDate, sr.Rate, sr.Currency, sr.MinStay)
	return err
}

func (r RateRepository) Update(sr models.SeasonalRate) error {
	_, err := r.db().Exec(`
		UPDATE seasonal_rates
		SET season_name=?, season_type=?, start_date=?, end_date=?, rate=?, currency=?, min_stay=?, updated_at=NOW()
		WHERE id=?
	`, sr.SeasonName, sr.SeasonType, sr.StartDate, sr.EndDate, sr.Rate, sr.Currency, sr.MinStay, sr.ID)
	return err
}

// Deactivate soft-deletes a rate; resolution stops seeing it immediately.
func (r RateRepository) Deactivate(id string) error {
	res, err := r.db().Exec(`UPDATE seasonal_rates SET is_active=0, updated_at=NOW() WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
