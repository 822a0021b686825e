package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"

	intconfig "travelbackend/internal/config"
	"travelbackend/internal/domain/models"
)

type PackageRepository struct {
	DB *sql.DB
}

func (r PackageRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const packageColumns = `id, name, duration, COALESCE(locations,'[]'), base_price, COALESCE(currency,''),
	COALESCE(description,''), COALESCE(category,''), transport, is_active,
	COALESCE(created_at,''), COALESCE(updated_at,'')`

func scanPackage(row interface{ Scan(...any) error }) (models.TourPackage, error) {
	var (
		p         models.TourPackage
		locations string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Duration, &locations, &p.BasePrice, &p.Currency,
		&p.Description, &p.Category, &p.Transport, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	if locations != "" {
		_ = json.Unmarshal([]byte(locations), &p.Locations)
	}
	return p, nil
}

func (r PackageRepository) GetByID(id string) (models.TourPackage, error) {
	row := r.db().QueryRow(`SELECT `+packageColumns+` FROM packages WHERE id = ?`, id)
	return scanPackage(row)
}

func (r PackageRepository) GetByName(name string) (models.TourPackage, error) {
	row := r.db().QueryRow(`SELECT `+packageColumns+` FROM packages WHERE name = ?`, name)
	return scanPackage(row)
}

// List returns active packages with optional search, newest first.
func (r PackageRepository) List(search string, page, pageSize int) ([]models.TourPackage, int, error) {
	where := []string{"is_active = 1"}
	args := []any{}
	if s := strings.TrimSpace(search); s != "" {
		where = append(where, "(name LIKE ? OR category LIKE ?)")
		like := "%" + s + "%"
		args = append(args, like, like)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM packages WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db().Query(`SELECT `+packageColumns+` FROM packages WHERE `+cond+
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.TourPackage{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return out, total, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r PackageRepository) Insert(p models.TourPackage) error {
	locations, _ := json.Marshal(p.Locations)
	_, err := r.db().Exec(`
		INSERT INTO packages (id, name, duration, locations, base_price, currency, description, category, transport, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, NOW(), NOW())
	`, p.ID, p.Name, p.Duration, string(locations), p.BasePrice, p.Currency, p.Description, p.Category, p.Transport)
	return err
}

func (r PackageRepository) Update(p models.TourPackage) error {
	locations, _ := json.Marshal(p.Locations)
	_, err := r.db().Exec(`
		UPDATE packages
		SET name=?, duration=?, locations=?, base_price=?, currency=?, description=?, category=?, transport=?, updated_at=NOW()
		WHERE id=?
	`, p.Name, p.Duration, string(locations), p.BasePrice, p.Currency, p.Description, p.Category, p.Transport, p.ID)
	return err
}

// Deactivate soft-deletes: the row stays for quotes that reference it, but
// new pricing calls stop seeing it.
func (r PackageRepository) Deactivate(id string) error {
	res, err := r.db().Exec(`UPDATE packages SET is_active=0, updated_at=NOW() WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
