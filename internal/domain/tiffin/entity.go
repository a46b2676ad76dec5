package tiffin

import (
	"github.com/snejhirpara/tiffin-tracker/internal/httperr"
	"github.com/snejhirpara/tiffin-tracker/internal/models"
)

// ===============================
// Domain Validation
// ===============================

const fullDayCount = 2

// ValidateNew enforces the entry invariants before persistence:
// a short or cancelled day (count < 2) must carry a reason, and a full
// day (count == 2) never does — any supplied reason is discarded.
// Counts above 2 are accepted as correction/backfill entries.
func ValidateNew(t *models.Tiffin) error {
	if !IsValidType(t.Type) {
		return httperr.ErrBusiness("invalid_tiffin_type")
	}

	if t.Count < fullDayCount {
		if t.CancelReason == nil || *t.CancelReason == "" {
			return httperr.ErrBusiness("cancel_reason_required")
		}
	} else if t.Count == fullDayCount {
		t.CancelReason = nil
	}

	if t.TakenByID == 0 {
		return httperr.ErrBusiness("taken_by_required")
	}
	if t.Price <= 0 {
		return httperr.ErrBusiness("invalid_price")
	}

	return nil
}
