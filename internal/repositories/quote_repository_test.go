package repositories

import (
	"testing"
	"time"

	"travelbackend/internal/domain/models"
	"travelbackend/internal/pricing"

	"github.com/DATA-DOG/go-sqlmock"
)

func quoteRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "agent_id", "client_name", "client_email", "client_phone",
		"travel_start", "travel_end", "party", "items", "pricing",
		"subtotal", "agent_discount", "total", "currency",
		"agent_tier", "discount_percent", "status", "valid_until", "notes",
		"created_at", "updated_at",
	})
}

func TestQuoteGetByIDScansSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	validUntil := time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC)
	rows := quoteRows().AddRow(
		"q1", "a1", "Jane Roe", "jane@example.com", "",
		"2026-03-10", "2026-03-12",
		`{"adults":2,"children_with_bed":0,"children_without_bed":0}`,
		`[{"kind":"add_on","item_id":"spa"}]`,
		`[{"item_kind":"add_on","item_id":"spa","base_price":{"amount":6000,"currency":"USD"},"seasonal_adjustment":{"amount":0,"currency":"USD"},"allocation_cost":{"amount":0,"currency":"USD"},"vehicle_cost":{"amount":0,"currency":"USD"},"subtotal":{"amount":6000,"currency":"USD"},"tier_discount":{"amount":0,"currency":"USD"},"markup":{"amount":0,"currency":"USD"},"final_price":{"amount":6000,"currency":"USD"}}]`,
		6000, 900, 5100, "USD",
		"gold", 15, "draft", validUntil, "",
		validUntil.AddDate(0, -1, 0), validUntil.AddDate(0, -1, 0),
	)
	mock.ExpectQuery("SELECT (.+) FROM quotes WHERE id = ?").
		WithArgs("q1").
		WillReturnRows(rows)

	repo := QuoteRepository{DB: db}
	q, err := repo.GetByID("q1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if q.Party.Adults != 2 {
		t.Fatalf("party not decoded, adults = %d", q.Party.Adults)
	}
	if len(q.Items) != 1 || q.Items[0].Kind != pricing.ItemAddOn {
		t.Fatalf("items not decoded: %+v", q.Items)
	}
	if len(q.Pricing) != 1 || q.Pricing[0].FinalPrice.Amount != 6000 {
		t.Fatalf("pricing snapshot not decoded: %+v", q.Pricing)
	}
	if q.Subtotal.Amount != 6000 || q.Subtotal.Currency != "USD" {
		t.Fatalf("subtotal = %+v", q.Subtotal)
	}
	if q.Total.Amount != 5100 {
		t.Fatalf("total = %d, want 5100", q.Total.Amount)
	}
	if q.DiscountPercent != 15 || q.AgentTier != "gold" {
		t.Fatalf("captured discount lost: %d%% %s", q.DiscountPercent, q.AgentTier)
	}
	if !q.ValidUntil.Equal(validUntil) {
		t.Fatalf("valid_until = %v", q.ValidUntil)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestQuoteInsertSerializesJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	q := models.Quote{
		ID:          "q2",
		AgentID:     "a1",
		ClientName:  "Jane Roe",
		ClientEmail: "jane@example.com",
		TravelStart: "2026-03-10",
		Party:       pricing.PartyComposition{Adults: 2},
		Items:       []models.QuoteItem{{Kind: pricing.ItemAddOn, ItemID: "spa"}},
		Subtotal:    pricing.NewMoney(6000, "USD"),
		Total:       pricing.NewMoney(5100, "USD"),
		AgentTier:   "gold",
		Status:      models.QuoteDraft,
		ValidUntil:  time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO quotes").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := QuoteRepository{DB: db}
	if err := repo.Insert(q); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestQuoteListByAgentFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM quotes WHERE agent_id = \\? AND status = \\? AND \\(client_name LIKE \\? OR client_email LIKE \\?\\)").
		WithArgs("a1", "sent", "%jane%", "%jane%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := quoteRows().AddRow(
		"q1", "a1", "Jane Roe", "jane@example.com", "",
		"2026-03-10", "", `{}`, `[]`, `[]`,
		6000, 0, 6000, "USD",
		"gold", 15, "sent", time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC), "",
		time.Now(), time.Now(),
	)
	mock.ExpectQuery("SELECT (.+) FROM quotes WHERE agent_id = \\? AND status = \\?(.+)ORDER BY created_at DESC").
		WithArgs("a1", "sent", "%jane%", "%jane%", 10, 0).
		WillReturnRows(rows)

	repo := QuoteRepository{DB: db}
	out, total, err := repo.ListByAgent("a1", models.QuoteSent, "jane", 1, 10)
	if err != nil {
		t.Fatalf("ListByAgent error: %v", err)
	}
	if total != 1 || len(out) != 1 {
		t.Fatalf("got %d/%d, want 1/1", len(out), total)
	}
	if out[0].Status != models.QuoteSent {
		t.Fatalf("status = %s", out[0].Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestQuoteUpdateStatusMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE quotes SET status=\\? WHERE id=\\?").
		WithArgs("sent", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := QuoteRepository{DB: db}
	if err := repo.UpdateStatus("ghost", models.QuoteSent); err == nil {
		t.Fatal("expected error for missing row")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
