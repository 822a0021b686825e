package repositories

import (
	"database/sql"

	intconfig "travelbackend/internal/config"
	"travelbackend/internal/domain/models"
	"travelbackend/internal/pricing"
)

type AgentRepository struct {
	DB *sql.DB
}

func (r AgentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const agentColumns = `id, name, email, COALESCE(phone,''), COALESCE(agency_name,''), tier,
	total_pax, status, COALESCE(role,'agent'), COALESCE(password_hash,''), COALESCE(created_at,'')`

func scanAgent(row interface{ Scan(...any) error }) (models.Agent, error) {
	var a models.Agent
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.AgencyName, &a.Tier,
		&a.TotalPax, &a.Status, &a.Role, &a.PasswordHash, &a.CreatedAt)
	return a, err
}

func (r AgentRepository) GetByID(id string) (models.Agent, error) {
	row := r.db().QueryRow(`SELECT `+agentColumns+` FROM agents WHERE id = ?`, id)
	return scanAgent(row)
}

func (r AgentRepository) GetByEmail(email string) (models.Agent, error) {
	row := r.db().QueryRow(`SELECT `+agentColumns+` FROM agents WHERE email = ?`, email)
	return scanAgent(row)
}

// TierOf implements pricing.AgentSource for bulk tier defaulting.
func (r AgentRepository) TierOf(agentID string) (pricing.Tier, error) {
	var tier string
	err := r.db().QueryRow(`SELECT tier FROM agents WHERE id = ?`, agentID).Scan(&tier)
	if err != nil {
		return "", err
	}
	return pricing.Tier(tier), nil
}

func (r AgentRepository) UpdateTier(id string, tier string) error {
	res, err := r.db().Exec(`UPDATE agents SET tier=?, updated_at=NOW() WHERE id=?`, tier, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
