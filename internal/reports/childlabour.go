package reports

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"labour-dashboard/internal/models"
)

// Fixed option lists for the enumerated child-labour case fields.
var (
	Genders            = []string{"Boy", "Girl", "Other"}
	Castes             = []string{"SC", "ST", "BC", "General", "Minority"}
	WorkNatures        = []string{"Hotel/Eatery", "Construction", "Brick Kiln", "Factory", "Domestic", "Agriculture", "Other"}
	SchoolingStatuses  = []string{"Never Enrolled", "Drop-out", "Regular"}
	PresentStatuses    = []string{"Enrolled in School", "Rehabilitation Centre", "Shelter Home", "Handed over to Parents"}
	MinWageStatuses    = []string{"Pending", "Paid", "N/A"}
	ProsecutionStates  = []string{"Initiated", "Collected", "Pending"}
	DDDepositedOptions = []string{"Yes", "No"}
)

// SchoolingDropOut is the only schooling status for which the previous
// school name is meaningful.
const SchoolingDropOut = "Drop-out"

// NewChildLabourRecord returns an empty case pre-filled with the default
// option of each enumerated field, dated today.
func NewChildLabourRecord(now time.Time) models.ChildLabourRecord {
	today := now.Format("2006-01-02")
	return models.ChildLabourRecord{
		ID:                uuid.NewString(),
		Gender:            "Boy",
		Caste:             "General",
		WorkNature:        "Hotel/Eatery",
		CWCDate:           today,
		FIRDate:           today,
		DDDeposited:       "No",
		MinWageStatus:     "Pending",
		ProsecutionStatus: "Pending",
		SchoolingStatus:   "Never Enrolled",
		PresentStatus:     "Enrolled in School",
	}
}

// NormalizeChildRecord clears the conditional previous-school field unless
// the schooling status makes it meaningful, and assigns an id if missing.
func NormalizeChildRecord(rec *models.ChildLabourRecord) {
	if rec.SchoolingStatus != SchoolingDropOut {
		rec.PreviousSchoolName = ""
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
}

// ValidateChildBatch checks a batch of rescue cases before submission.
// Cases are free-form; only the enumerated fields are checked against their
// fixed option lists, and a batch must contain at least one case.
func ValidateChildBatch(records []models.ChildLabourRecord) map[string]string {
	errors := map[string]string{}
	if len(records) == 0 {
		errors["records"] = "At least one rescue case is required"
		return errors
	}
	for i, rec := range records {
		key := fmt.Sprintf("records[%d]", i)
		switch {
		case !oneOf(rec.Gender, Genders):
			errors[key] = "Invalid gender"
		case !oneOf(rec.Caste, Castes):
			errors[key] = "Invalid caste category"
		case !oneOf(rec.WorkNature, WorkNatures):
			errors[key] = "Invalid nature of work"
		case !oneOf(rec.SchoolingStatus, SchoolingStatuses):
			errors[key] = "Invalid schooling status"
		case !oneOf(rec.PresentStatus, PresentStatuses):
			errors[key] = "Invalid present status"
		case !oneOf(rec.MinWageStatus, MinWageStatuses):
			errors[key] = "Invalid minimum wage status"
		case !oneOf(rec.ProsecutionStatus, ProsecutionStates):
			errors[key] = "Invalid prosecution status"
		case !oneOf(rec.DDDeposited, DDDepositedOptions):
			errors[key] = "DD deposited must be Yes or No"
		}
	}
	return errors
}

func oneOf(v string, options []string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}
