package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"travelbackend/internal/pricing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRatesWindowQueryArgs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	from := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "item_kind", "item_id", "start_date", "end_date", "rate", "currency", "is_active",
	}).AddRow("r1", "package", "bali", "2026-07-01", "2026-08-31", 15000, "USD", true)

	// intersection filter: start_date <= window end AND end_date >= window start
	mock.ExpectQuery("SELECT (.+) FROM seasonal_rates").
		WithArgs("package", "bali", "2026-07-14", "2026-07-10").
		WillReturnRows(rows)

	repo := RateRepository{DB: db}
	out, err := repo.Rates(pricing.ItemPackage, "bali", from, to)
	if err != nil {
		t.Fatalf("Rates error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d rates, want 1", len(out))
	}
	sr := out[0]
	if sr.Rate.Amount != 15000 || sr.Rate.Currency != "USD" {
		t.Fatalf("rate = %+v", sr.Rate)
	}
	if !sr.StartDate.Equal(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start date = %v", sr.StartDate)
	}
	if !sr.IsActive {
		t.Fatal("active flag lost")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindOverlappingExcludesSelf(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM seasonal_rates").
		WithArgs("package", "bali", "2026-08-31", "2026-07-01", "r1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := RateRepository{DB: db}
	_, err = repo.FindOverlapping("package", "bali", "2026-07-01", "2026-08-31", "r1")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows when only the rate itself overlaps, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeactivateMissingRate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE seasonal_rates SET is_active=0").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := RateRepository{DB: db}
	if err := repo.Deactivate("ghost"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
