package models

import (
	"math"

	"labour-dashboard/internal/hierarchy"
)

// BOCWPendency is the application backlog for one welfare scheme.
// Total is always Pending + Processed, never reported independently.
type BOCWPendency struct {
	Scheme    string `json:"scheme"`
	Pending   int    `json:"pending"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
}

// ShopCompliance is the registration/renewal position for one
// establishment category. ReturnsCompliance is a percentage.
type ShopCompliance struct {
	Category          string `json:"category"`
	Registered        int    `json:"registered"`
	RenewalsPending   int    `json:"renewalsPending"`
	ReturnsCompliance int    `json:"returnsCompliance"`
}

// CaseWork is the filed/disposed/pending position for one statutory case
// type. The three figures are reported independently and need not
// reconcile with each other.
type CaseWork struct {
	Type     string `json:"type"`
	Filed    int    `json:"filed"`
	Disposed int    `json:"disposed"`
	Pending  int    `json:"pending"`
}

// Inspections holds the monthly inspection position.
type Inspections struct {
	Target             int `json:"target"`
	Achieved           int `json:"achieved"`
	ChildLabourRescues int `json:"childLabourRescues"`
}

// OfficerPerformance is one subordinate officer's row in the supervisory
// roster.
type OfficerPerformance struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Designation      string `json:"designation"`
	Jurisdiction     string `json:"jurisdiction"`
	BOCWPending      int    `json:"bocwPending"`
	CaseDisposalRate int    `json:"caseDisposalRate"`
	InspectionTarget int    `json:"inspectionTarget"`
	InspectionActual int    `json:"inspectionActual"`
}

// Snapshot is the full dashboard position for one role + jurisdiction.
// It is derived data: regenerated whenever the active role or jurisdiction
// changes and discarded on logout, never persisted.
type Snapshot struct {
	Role            hierarchy.Role       `json:"role"`
	Jurisdiction    string               `json:"jurisdiction"`
	BOCWData        []BOCWPendency       `json:"bocwData"`
	ShopData        []ShopCompliance     `json:"shopData"`
	CaseData        []CaseWork           `json:"caseData"`
	PerformanceData []OfficerPerformance `json:"performanceData,omitempty"`
	Inspections     Inspections          `json:"inspections"`
}

// TotalBOCWPending sums pending applications across all welfare schemes.
func (s Snapshot) TotalBOCWPending() int {
	total := 0
	for _, d := range s.BOCWData {
		total += d.Pending
	}
	return total
}

// TotalShopsRegistered sums registrations across all establishment
// categories.
func (s Snapshot) TotalShopsRegistered() int {
	total := 0
	for _, d := range s.ShopData {
		total += d.Registered
	}
	return total
}

// TotalRenewalsPending sums pending registration renewals across all
// establishment categories.
func (s Snapshot) TotalRenewalsPending() int {
	total := 0
	for _, d := range s.ShopData {
		total += d.RenewalsPending
	}
	return total
}

// AverageReturnsCompliance is the mean returns-compliance percentage across
// categories, rounded to the nearest whole percent. Zero when there are no
// categories.
func (s Snapshot) AverageReturnsCompliance() int {
	if len(s.ShopData) == 0 {
		return 0
	}
	sum := 0
	for _, d := range s.ShopData {
		sum += d.ReturnsCompliance
	}
	return int(math.Round(float64(sum) / float64(len(s.ShopData))))
}

// CaseDisposalRate is disposed/filed across all case types as a rounded
// percentage. Zero when nothing was filed.
func (s Snapshot) CaseDisposalRate() int {
	filed, disposed := 0, 0
	for _, d := range s.CaseData {
		filed += d.Filed
		disposed += d.Disposed
	}
	if filed == 0 {
		return 0
	}
	return int(math.Round(float64(disposed) / float64(filed) * 100))
}
