// Package mockdata synthesizes dashboard snapshots for a role and
// jurisdiction. The department has no live feeds wired in yet, so the
// provider produces randomized-but-shaped figures: senior dashboards are
// scaled up by a fixed multiplier and supervisory roles get a synthetic
// subordinate roster. Consumers depend only on the SnapshotProvider
// interface so a real data source can replace this one without touching
// them.
package mockdata

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"labour-dashboard/internal/hierarchy"
	"labour-dashboard/internal/models"
)

// BOCWSchemes is the fixed set of welfare schemes tracked for pendency.
var BOCWSchemes = []string{
	"Natural Death", "Accidental Death", "Marriage Gift",
	"Maternity Benefit", "Education Assistance", "Funeral Expenses",
}

// CaseTypes is the fixed set of statutory case categories.
var CaseTypes = []string{
	"Minimum Wages Act", "Payment of Gratuity Act",
	"Workmens Compensation", "Payment of Wages Act",
}

// Seniority multipliers. Senior roles aggregate over whole divisions, so
// every count-like figure is scaled up for them. This is a presentation
// choice of the mock source, not real aggregation.
const (
	seniorMultiplier = 15
	fieldMultiplier  = 2
)

// SnapshotProvider supplies the dashboard position for a role and
// jurisdiction. The generated-roster and scaling rules documented on
// Generator are part of this contract.
type SnapshotProvider interface {
	Generate(role hierarchy.Role, jurisdiction string) models.Snapshot
}

// Generator is the mock SnapshotProvider. Generation always succeeds, is
// deliberately not idempotent, and has no side effects.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Generator seeded from the clock.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator drawing from the given source. Tests
// inject a fixed seed here.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// randInt draws a uniform integer in [min, max] inclusive.
func (g *Generator) randInt(min, max int) int {
	return g.rng.Intn(max-min+1) + min
}

// Generate produces a fresh snapshot for the role and jurisdiction.
func (g *Generator) Generate(role hierarchy.Role, jurisdiction string) models.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	m := fieldMultiplier
	if hierarchy.IsSenior(role) {
		m = seniorMultiplier
	}

	bocw := make([]models.BOCWPendency, 0, len(BOCWSchemes))
	for _, scheme := range BOCWSchemes {
		pending := g.randInt(10*m, 50*m)
		processed := g.randInt(100*m, 300*m)
		bocw = append(bocw, models.BOCWPendency{
			Scheme:    scheme,
			Pending:   pending,
			Processed: processed,
			Total:     pending + processed, // always the sum, never drawn
		})
	}

	// Compliance percentages are hardcoded per category; only the counts scale.
	shops := []models.ShopCompliance{
		{Category: "Shops", Registered: 1200 * m, RenewalsPending: 150 * m, ReturnsCompliance: 82},
		{Category: "Commercial Establishments", Registered: 800 * m, RenewalsPending: 90 * m, ReturnsCompliance: 75},
		{Category: "Hotels/Theatres", Registered: 200 * m, RenewalsPending: 20 * m, ReturnsCompliance: 90},
	}

	// Filed/disposed/pending are drawn independently: the mock source is
	// illustrative, not a ledger, so the three need not reconcile.
	cases := make([]models.CaseWork, 0, len(CaseTypes))
	for _, caseType := range CaseTypes {
		cases = append(cases, models.CaseWork{
			Type:     caseType,
			Filed:    g.randInt(20*m, 60*m),
			Disposed: g.randInt(15*m, 50*m),
			Pending:  g.randInt(5*m, 25*m),
		})
	}

	snap := models.Snapshot{
		Role:         role,
		Jurisdiction: jurisdiction,
		BOCWData:     bocw,
		ShopData:     shops,
		CaseData:     cases,
		Inspections: models.Inspections{
			Target:             50 * m,
			Achieved:           42 * m, // fixed ratio of target
			ChildLabourRescues: g.randInt(2, 10) * m,
		},
	}

	if sub, ok := hierarchy.SubordinateOf(role); ok {
		snap.PerformanceData = g.roster(sub, jurisdiction)
	}

	return snap
}

// roster synthesizes the subordinate-performance rows for a supervisory
// dashboard. Officer jurisdictions are circles carved out of the parent
// jurisdiction.
func (g *Generator) roster(sub hierarchy.Subordinate, jurisdiction string) []models.OfficerPerformance {
	officers := make([]models.OfficerPerformance, 0, sub.Count)
	for i := 0; i < sub.Count; i++ {
		officers = append(officers, models.OfficerPerformance{
			ID:               fmt.Sprintf("off-%d", i),
			Name:             fmt.Sprintf("Officer %c", 'A'+i),
			Designation:      string(sub.Role),
			Jurisdiction:     fmt.Sprintf("%s - Circle %d", jurisdiction, i+1),
			BOCWPending:      g.randInt(20, 100),
			CaseDisposalRate: g.randInt(60, 95),
			InspectionTarget: 40,
			InspectionActual: g.randInt(30, 45),
		})
	}
	return officers
}
