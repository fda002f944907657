package reports

import (
	"time"

	"labour-dashboard/internal/models"
)

// StatutoryActs is the fixed set of acts on the ACL's act-wise summary, in
// report order. The form pre-seeds one row per act; rows can never be added
// or removed.
var StatutoryActs = []string{
	"U/s 48(1) – Telangana Shops & Establishments Act",
	"U/s 50 – Telangana Shops & Establishments Act",
	"Payment of Gratuity Act",
	"Employees’ Compensation Act",
	"Minimum Wages Act",
	"Payment of Wages Act",
}

// EndPending derives an act's closing pendency, floored at zero.
func EndPending(beginning, filed, disposed int) int {
	end := beginning + filed - disposed
	if end < 0 {
		return 0
	}
	return end
}

// NewActSummary returns a report keyed to the current month with one zeroed
// row per statutory act.
func NewActSummary(now time.Time) models.ActSummaryReport {
	acts := make([]models.ActWiseRecord, len(StatutoryActs))
	for i, name := range StatutoryActs {
		acts[i] = models.ActWiseRecord{ActName: name}
	}
	return models.ActSummaryReport{
		Month: Months[int(now.Month())-1],
		Year:  Years[0],
		Acts:  acts,
	}
}

// RecalculateActs recomputes every act's derived closing pendency.
// Each act is independent; there is no cross-act validation.
func RecalculateActs(rep *models.ActSummaryReport) {
	for i := range rep.Acts {
		act := &rep.Acts[i]
		act.EndPending = models.Count(EndPending(
			act.BeginningPending.Int(),
			act.FiledDuringMonth.Int(),
			act.DisposedDuringMonth.Int(),
		))
	}
}

// CheckActStructure verifies that a submitted report still carries exactly
// the fixed act rows in their fixed order. This is a structural check on
// malformed input, not a field-level submission gate — the act-wise summary
// deliberately has none (unlike the monthly summary; see DESIGN.md).
func CheckActStructure(rep models.ActSummaryReport) bool {
	if len(rep.Acts) != len(StatutoryActs) {
		return false
	}
	for i, act := range rep.Acts {
		if act.ActName != StatutoryActs[i] {
			return false
		}
	}
	return true
}
