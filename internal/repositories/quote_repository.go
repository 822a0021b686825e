package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	intconfig "travelbackend/internal/config"
	intdb "travelbackend/internal/db"
	"travelbackend/internal/domain/models"
	"travelbackend/internal/pricing"
)

type QuoteRepository struct {
	DB *sql.DB
}

func (r QuoteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// EnsureTable creates the quotes table when it is missing, so a fresh
// database works without a migration step.
func (r QuoteRepository) EnsureTable() error {
	db := r.db()
	if intdb.HasTable(db, "quotes") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS quotes (
	id VARCHAR(36) PRIMARY KEY,
	agent_id VARCHAR(36) NOT NULL,
	client_name VARCHAR(255) NOT NULL,
	client_email VARCHAR(255) NOT NULL,
	client_phone VARCHAR(100) NOT NULL DEFAULT '',
	travel_start VARCHAR(10) NOT NULL,
	travel_end VARCHAR(10) NOT NULL DEFAULT '',
	party JSON NOT NULL,
	items JSON NOT NULL,
	pricing JSON NOT NULL,
	subtotal BIGINT NOT NULL DEFAULT 0,
	agent_discount BIGINT NOT NULL DEFAULT 0,
	total BIGINT NOT NULL DEFAULT 0,
	currency VARCHAR(8) NOT NULL DEFAULT 'USD',
	agent_tier VARCHAR(20) NOT NULL DEFAULT '',
	discount_percent BIGINT NOT NULL DEFAULT 0,
	status VARCHAR(20) NOT NULL DEFAULT 'draft',
	valid_until DATETIME NULL,
	notes TEXT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_agent (agent_id),
	KEY idx_status (status)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

const quoteColumns = `id, agent_id, client_name, client_email, COALESCE(client_phone,''),
	travel_start, COALESCE(travel_end,''), party, items, pricing,
	subtotal, agent_discount, total, COALESCE(currency,'USD'),
	COALESCE(agent_tier,''), discount_percent, status, valid_until, COALESCE(notes,''),
	created_at, updated_at`

func scanQuote(row interface{ Scan(...any) error }) (models.Quote, error) {
	var (
		q                            models.Quote
		party, items, pricingJSON    string
		subtotal, discount, total    int64
		currency                     string
		validUntil, created, updated sql.NullTime
	)
	err := row.Scan(&q.ID, &q.AgentID, &q.ClientName, &q.ClientEmail, &q.ClientPhone,
		&q.TravelStart, &q.TravelEnd, &party, &items, &pricingJSON,
		&subtotal, &discount, &total, &currency,
		&q.AgentTier, &q.DiscountPercent, &q.Status, &validUntil, &q.Notes,
		&created, &updated)
	if err != nil {
		return q, err
	}
	_ = json.Unmarshal([]byte(party), &q.Party)
	_ = json.Unmarshal([]byte(items), &q.Items)
	_ = json.Unmarshal([]byte(pricingJSON), &q.Pricing)
	q.Subtotal = pricing.NewMoney(subtotal, currency)
	q.AgentDiscount = pricing.NewMoney(discount, currency)
	q.Total = pricing.NewMoney(total, currency)
	if validUntil.Valid {
		q.ValidUntil = validUntil.Time
	}
	if created.Valid {
		q.CreatedAt = created.Time
	}
	if updated.Valid {
		q.UpdatedAt = updated.Time
	}
	return q, nil
}

func (r QuoteRepository) GetByID(id string) (models.Quote, error) {
	row := r.db().QueryRow(`SELECT `+quoteColumns+` FROM quotes WHERE id = ?`, id)
	return scanQuote(row)
}

// ListByAgent returns an agent's quotes newest first, with status filter and
// client name/email search.
func (r QuoteRepository) ListByAgent(agentID string, status models.QuoteStatus, search string, page, pageSize int) ([]models.Quote, int, error) {
	where := []string{"agent_id = ?"}
	args := []any{agentID}
	if status != "" {
		where = append(where, "status = ?")
		args = append(args, string(status))
	}
	if s := strings.TrimSpace(search); s != "" {
		where = append(where, "(client_name LIKE ? OR client_email LIKE ?)")
		like := "%" + s + "%"
		args = append(args, like, like)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM quotes WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db().Query(`SELECT `+quoteColumns+` FROM quotes WHERE `+cond+
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return out, total, err
		}
		out = append(out, q)
	}
	return out, total, rows.Err()
}

func (r QuoteRepository) Insert(q models.Quote) error {
	party, _ := json.Marshal(q.Party)
	items, _ := json.Marshal(q.Items)
	pricingJSON, _ := json.Marshal(q.Pricing)
	_, err := r.db().Exec(`
		INSERT INTO quotes (id, agent_id, client_name, client_email, client_phone,
			travel_start, travel_end, party, items, pricing,
			subtotal, agent_discount, total, currency,
			agent_tier, discount_percent, status, valid_until, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, q.ID, q.AgentID, q.ClientName, q.ClientEmail, q.ClientPhone,
		q.TravelStart, q.TravelEnd, string(party), string(items), string(pricingJSON),
		q.Subtotal.Amount, q.AgentDiscount.Amount, q.Total.Amount, q.Subtotal.Currency,
		q.AgentTier, q.DiscountPercent, string(q.Status), nullTime(q.ValidUntil), intdb.NullIfEmpty(q.Notes))
	return err
}

// Update rewrites the mutable fields and the priced snapshot.
func (r QuoteRepository) Update(q models.Quote) error {
	party, _ := json.Marshal(q.Party)
	items, _ := json.Marshal(q.Items)
	pricingJSON, _ := json.Marshal(q.Pricing)
	res, err := r.db().Exec(`
		UPDATE quotes
		SET client_name=?, client_email=?, client_phone=?,
			travel_start=?, travel_end=?, party=?, items=?, pricing=?,
			subtotal=?, agent_discount=?, total=?, currency=?,
			agent_tier=?, discount_percent=?, status=?, valid_until=?, notes=?
		WHERE id=?
	`, q.ClientName, q.ClientEmail, q.ClientPhone,
		q.TravelStart, q.TravelEnd, string(party), string(items), string(pricingJSON),
		q.Subtotal.Amount, q.AgentDiscount.Amount, q.Total.Amount, q.Subtotal.Currency,
		q.AgentTier, q.DiscountPercent, string(q.Status), nullTime(q.ValidUntil), intdb.NullIfEmpty(q.Notes),
		q.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStatus persists a lifecycle transition without touching the snapshot.
func (r QuoteRepository) UpdateStatus(id string, status models.QuoteStatus) error {
	res, err := r.db().Exec(`UPDATE quotes SET status=? WHERE id=?`, string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r QuoteRepository) Delete(id string) error {
	res, err := r.db().Exec(`DELETE FROM quotes WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
