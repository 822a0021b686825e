package services

import (
	"testing"

	"travelbackend/internal/domain"
	"travelbackend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectAgentRow(mock sqlmock.Sqlmock, id, tier string, totalPax int64) {
	mock.ExpectQuery("SELECT (.+) FROM agents WHERE id = ?").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "phone", "agency_name", "tier",
			"total_pax", "status", "role", "password_hash", "created_at",
		}).AddRow(id, "Pat Doe", "pat@example.com", "", "Doe Travel", tier,
			totalPax, "approved", "agent", "", ""))
}

func TestAgentProgressTowardsNextTier(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	svc := AgentService{AgentRepo: repositories.AgentRepository{DB: db}, DB: db}

	expectAgentRow(mock, "a1", "silver", 100)
	tp, err := svc.Progress("a1")
	if err != nil {
		t.Fatalf("progress error: %v", err)
	}
	if tp.CurrentTier != "silver" || tp.NextTier != "gold" {
		t.Fatalf("tiers = %s -> %s", tp.CurrentTier, tp.NextTier)
	}
	if tp.NextTierMinPax != 200 {
		t.Fatalf("next tier min pax = %d, want 200", tp.NextTierMinPax)
	}
	// 100 of 200 pax
	if tp.ProgressPercentage != 50 {
		t.Fatalf("progress = %v, want 50", tp.ProgressPercentage)
	}
}

func TestAgentProgressAtTopTier(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	svc := AgentService{AgentRepo: repositories.AgentRepository{DB: db}, DB: db}

	expectAgentRow(mock, "a1", "platinum", 900)
	tp, err := svc.Progress("a1")
	if err != nil {
		t.Fatalf("progress error: %v", err)
	}
	if tp.NextTier != "" {
		t.Fatalf("platinum has no next tier, got %s", tp.NextTier)
	}
	if tp.ProgressPercentage != 100 {
		t.Fatalf("progress = %v, want 100", tp.ProgressPercentage)
	}
}

func TestAgentUpdateTierValidates(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	svc := AgentService{AgentRepo: repositories.AgentRepository{DB: db}, DB: db}

	if _, err := svc.UpdateTier("a1", "diamond"); !domain.IsValidation(err) {
		t.Fatalf("unknown tier: expected ValidationError, got %v", err)
	}
}
