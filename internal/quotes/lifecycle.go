package quotes

import (
	"time"

	"travelbackend/internal/domain"
	"travelbackend/internal/domain/models"
)

// The lifecycle is draft -> sent -> viewed -> {confirmed | expired}. No
// transition moves a quote backward. Expiry is not a transition anyone
// requests: it is derived lazily from valid_until at read time.

var forward = map[models.QuoteStatus][]models.QuoteStatus{
	models.QuoteDraft:  {models.QuoteSent},
	models.QuoteSent:   {models.QuoteViewed, models.QuoteConfirmed},
	models.QuoteViewed: {models.QuoteConfirmed},
}

// CanTransition reports whether from -> to is a legal forward move.
func CanTransition(from, to models.QuoteStatus) bool {
	for _, next := range forward[from] {
		if next == to {
			return true
		}
	}
	return false
}

// EffectiveStatus applies lazy expiry: any non-terminal quote past its
// validity window reads as expired, without a background sweep.
func EffectiveStatus(q models.Quote, now time.Time) models.QuoteStatus {
	switch q.Status {
	case models.QuoteConfirmed, models.QuoteExpired:
		return q.Status
	}
	if !q.ValidUntil.IsZero() && now.After(q.ValidUntil) {
		return models.QuoteExpired
	}
	return q.Status
}

// Apply moves the quote to the requested status, after lazy expiry. The
// sent -> viewed acknowledgment is idempotent: repeating it is a no-op, not a
// conflict, because read receipts arrive at-least-once.
func Apply(q *models.Quote, to models.QuoteStatus, now time.Time) error {
	from := EffectiveStatus(*q, now)
	if from == to && to == models.QuoteViewed {
		return nil
	}
	if !CanTransition(from, to) {
		return domain.ConflictError{
			Resource: "quote",
			Msg:      "cannot move from " + string(from) + " to " + string(to),
		}
	}
	q.Status = to
	q.UpdatedAt = now
	return nil
}

// CanRecalculate restricts re-pricing to drafts; sent and later states freeze
// the priced snapshot.
func CanRecalculate(q models.Quote, now time.Time) bool {
	return EffectiveStatus(q, now) == models.QuoteDraft
}
