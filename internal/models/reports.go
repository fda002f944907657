package models

import (
	"bytes"
	"strconv"
	"strings"
)

// Count is an integer counter that tolerates the loose values produced by
// form inputs. It unmarshals JSON numbers, numeric strings, empty strings,
// and null; anything unparseable coerces to 0 rather than failing the whole
// request.
type Count int

// UnmarshalJSON implements the loose coercion rule.
func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	s := string(data)
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			*c = 0
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}
	if s == "" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Fall back to float form ("12.0") before giving up
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			*c = 0
			return nil
		}
		n = int(f)
	}
	*c = Count(n)
	return nil
}

// Int returns the counter as a plain int.
func (c Count) Int() int { return int(c) }

// MonthlySummaryRecord is the ALO's period-keyed monthly summary form.
// GrievanceEnd is derived: max(0, beginning + received − disposed),
// recomputed after every edit — never entered directly.
type MonthlySummaryRecord struct {
	Month              string `json:"month"`
	Year               string `json:"year"`
	TotalIdentified    Count  `json:"totalIdentified"`
	NonHazardous       Count  `json:"nonHazardous"`
	Hazardous          Count  `json:"hazardous"`
	MCMehtaSettled     Count  `json:"mcMehtaSettled"`
	MCMehtaPending     Count  `json:"mcMehtaPending"`
	ProsecutionsFiled  Count  `json:"prosecutionsFiled"`
	GrievanceBeginning Count  `json:"grievanceBeginning"`
	GrievanceReceived  Count  `json:"grievanceReceived"`
	GrievanceDisposed  Count  `json:"grievanceDisposed"`
	GrievanceEnd       Count  `json:"grievanceEnd"`
}

// ActWiseRecord is the per-act row of the ACL's act-wise summary.
// EndPending is derived: max(0, beginning + filed − disposed).
type ActWiseRecord struct {
	ActName             string `json:"actName"`
	BeginningPending    Count  `json:"beginningPending"`
	FiledDuringMonth    Count  `json:"filedDuringMonth"`
	DisposedDuringMonth Count  `json:"disposedDuringMonth"`
	EndPending          Count  `json:"endPending"`
	WorkersBenefitted   Count  `json:"workersBenefitted"`
	ReservedForOrders   Count  `json:"reservedForOrders"`
}

// ActSummaryReport is the ACL's monthly act-wise report: one fixed row per
// statutory act, in a fixed order. Acts cannot be added or removed.
type ActSummaryReport struct {
	Month string          `json:"month"`
	Year  string          `json:"year"`
	Acts  []ActWiseRecord `json:"acts"`
}

// ChildLabourRecord is one rescued-child case. All fields are free-form or
// drawn from fixed option lists; there are no numeric invariants.
// PreviousSchoolName is meaningful only when SchoolingStatus is "Drop-out".
type ChildLabourRecord struct {
	ID                 string `json:"id"`
	ChildName          string `json:"childName"`
	Age                string `json:"age"`
	Gender             string `json:"gender"`
	Caste              string `json:"caste"`
	GuardianName       string `json:"guardianName"`
	WorkNature         string `json:"workNature"`
	CWCDate            string `json:"cwcDate"`
	Address            string `json:"address"`
	Aadhaar            string `json:"aadhaar"`
	EmployerName       string `json:"employerName"`
	EmployerPhone      string `json:"employerPhone"`
	FIRNumber          string `json:"firNumber"`
	FIRDate            string `json:"firDate"`
	DDDeposited        string `json:"ddDeposited"`
	MinWageStatus      string `json:"minWageStatus"`
	ProsecutionStatus  string `json:"prosecutionStatus"`
	SchoolingStatus    string `json:"schoolingStatus"`
	PreviousSchoolName string `json:"previousSchoolName,omitempty"`
	PresentStatus      string `json:"presentStatus"`
	Remarks            string `json:"remarks"`
}
