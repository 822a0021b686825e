package services

import (
	"database/sql"
	"errors"

	intconfig "travelbackend/internal/config"
	"travelbackend/internal/domain"
	"travelbackend/internal/domain/models"
	"travelbackend/internal/pricing"
	"travelbackend/internal/repositories"
)

type AgentService struct {
	AgentRepo repositories.AgentRepository
	DB        *sql.DB
}

func (s AgentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AgentService) agents() repositories.AgentRepository {
	if s.AgentRepo.DB != nil {
		return s.AgentRepo
	}
	return repositories.AgentRepository{DB: s.db()}
}

func (s AgentService) Get(id string) (models.Agent, error) {
	a, err := s.agents().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Agent{}, domain.NotFoundError{Resource: "agent", Err: err}
		}
		return models.Agent{}, domain.InternalError{Err: err}
	}
	return a, nil
}

func (s AgentService) GetByEmail(email string) (models.Agent, error) {
	a, err := s.agents().GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Agent{}, domain.NotFoundError{Resource: "agent", Err: err}
		}
		return models.Agent{}, domain.InternalError{Err: err}
	}
	return a, nil
}

// Progress summarizes how close an agent is to the next tier of the partner
// program.
func (s AgentService) Progress(id string) (models.TierProgress, error) {
	a, err := s.Get(id)
	if err != nil {
		return models.TierProgress{}, err
	}

	tp := models.TierProgress{
		CurrentTier:        a.Tier,
		TotalPax:           a.TotalPax,
		ProgressPercentage: 100,
	}
	if next, ok := pricing.NextTier(pricing.Tier(a.Tier)); ok {
		minPax := pricing.TierMinPax[next]
		tp.NextTier = string(next)
		tp.NextTierMinPax = minPax
		if minPax > 0 {
			pct := float64(a.TotalPax) / float64(minPax) * 100
			if pct > 100 {
				pct = 100
			}
			tp.ProgressPercentage = pct
		}
	}
	return tp, nil
}

// UpdateTier is the admin override; quotes keep the percentage they captured
// at calculation time, so this never reprices anything retroactively.
func (s AgentService) UpdateTier(id string, tier string) (models.Agent, error) {
	t := pricing.Tier(tier)
	if pricing.TierRank(t) == 0 {
		return models.Agent{}, domain.ValidationError{Field: "tier", Msg: "unknown tier"}
	}
	if err := s.agents().UpdateTier(id, tier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Agent{}, domain.NotFoundError{Resource: "agent", Err: err}
		}
		return models.Agent{}, domain.InternalError{Err: err}
	}
	return s.Get(id)
}
