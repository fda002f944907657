// Package reports implements the periodic summary form engines: derived-field
// recomputation and cross-field validation for the monthly summary, the
// act-wise summary, and the child-labour rescue batch. Like the rest of the
// domain logic these are pure functions with no HTTP or storage dependencies.
package reports

import (
	"time"

	"labour-dashboard/internal/models"
)

// Months lists the selectable report months.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Years lists the selectable report years.
var Years = []string{"2024", "2025", "2026"}

// GrievanceEnd derives the grievance closing balance. The raw result is
// clamped at zero: a period cannot close with negative pendency.
func GrievanceEnd(beginning, received, disposed int) int {
	end := beginning + received - disposed
	if end < 0 {
		return 0
	}
	return end
}

// NewMonthlySummary returns a zeroed record keyed to the current month.
func NewMonthlySummary(now time.Time) models.MonthlySummaryRecord {
	return models.MonthlySummaryRecord{
		Month: Months[int(now.Month())-1],
		Year:  Years[0],
	}
}

// RecalculateMonthly recomputes the derived grievance closing balance.
// It must be re-run after every mutating edit, not only at submission.
func RecalculateMonthly(rec *models.MonthlySummaryRecord) {
	rec.GrievanceEnd = models.Count(GrievanceEnd(
		rec.GrievanceBeginning.Int(),
		rec.GrievanceReceived.Int(),
		rec.GrievanceDisposed.Int(),
	))
}

// MonthlyValidation holds the two cross-field predicates that gate
// submission of the monthly summary. Both are recomputed continuously and
// surfaced inline; while either is false, submission is blocked — there is
// no partial or forced submission path.
type MonthlyValidation struct {
	WorkNatureValid   bool `json:"workNatureValid"`
	CompensationValid bool `json:"compensationValid"`
}

// OK reports whether the record may be submitted.
func (v MonthlyValidation) OK() bool {
	return v.WorkNatureValid && v.CompensationValid
}

// Details maps failing predicates to the inline messages shown next to the
// offending fields. Empty when the record is valid.
func (v MonthlyValidation) Details() map[string]string {
	details := map[string]string{}
	if !v.WorkNatureValid {
		details["workNature"] = "Nature of work counts cannot exceed total identified"
	}
	if !v.CompensationValid {
		details["compensation"] = "Sum of compensation cases cannot exceed total identified"
	}
	return details
}

// ValidateMonthly evaluates the submission gates for a record.
func ValidateMonthly(rec models.MonthlySummaryRecord) MonthlyValidation {
	return MonthlyValidation{
		WorkNatureValid:   rec.NonHazardous.Int()+rec.Hazardous.Int() <= rec.TotalIdentified.Int(),
		CompensationValid: rec.MCMehtaSettled.Int()+rec.MCMehtaPending.Int() <= rec.TotalIdentified.Int(),
	}
}
