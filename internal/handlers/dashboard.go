package handlers

import (
	"net/http"

	"labour-dashboard/internal/ctxkeys"
	"labour-dashboard/internal/hierarchy"
	"labour-dashboard/internal/insight"
	"labour-dashboard/internal/mockdata"
	"labour-dashboard/internal/models"
	"labour-dashboard/internal/store"
)

// DashboardHandler serves role-scoped dashboard snapshots and the AI
// narrative insight built from them.
type DashboardHandler struct {
	provider mockdata.SnapshotProvider
	insight  *insight.Client
	store    *store.Store
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(provider mockdata.SnapshotProvider, ic *insight.Client, s *store.Store) *DashboardHandler {
	return &DashboardHandler{
		provider: provider,
		insight:  ic,
		store:    s,
	}
}

// summaryStats are the headline figures shown above the dashboard tables.
type summaryStats struct {
	TotalBOCWPending         int `json:"totalBocwPending"`
	TotalShopsRegistered     int `json:"totalShopsRegistered"`
	TotalRenewalsPending     int `json:"totalRenewalsPending"`
	AverageReturnsCompliance int `json:"averageReturnsCompliance"`
	CaseDisposalRate         int `json:"caseDisposalRate"`
}

// snapshotFor resolves the caller's role and jurisdiction and generates a
// fresh snapshot. Snapshots are derived data and regenerated on every call,
// never cached or persisted.
func (h *DashboardHandler) snapshotFor(r *http.Request) (models.Snapshot, bool) {
	userID := ctxkeys.GetUserID(r.Context())

	user, err := h.store.Get(userID)
	if err != nil {
		return models.Snapshot{}, false
	}
	return h.provider.Generate(user.Role, user.Jurisdiction), true
}

// GetDashboard returns a fresh snapshot for the authenticated officer along
// with the aggregate headline stats. Supervisory roles additionally receive
// their subordinate performance roster inside the snapshot.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshotFor(r)
	if !ok {
		JSONError(w, http.StatusNotFound, "User not found")
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"snapshot": snap,
		"stats": summaryStats{
			TotalBOCWPending:         snap.TotalBOCWPending(),
			TotalShopsRegistered:     snap.TotalShopsRegistered(),
			TotalRenewalsPending:     snap.TotalRenewalsPending(),
			AverageReturnsCompliance: snap.AverageReturnsCompliance(),
			CaseDisposalRate:         snap.CaseDisposalRate(),
		},
		"roleMeta":    hierarchy.MetaOf(snap.Role),
		"supervisory": hierarchy.IsSupervisory(snap.Role),
	})
}

// GenerateInsight produces a narrative intelligence report for the caller's
// current dashboard position. The insight client never fails: service
// problems surface as a fixed maintenance message with a 200 status, so the
// dashboard stays usable whatever the AI service is doing.
func (h *DashboardHandler) GenerateInsight(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshotFor(r)
	if !ok {
		JSONError(w, http.StatusNotFound, "User not found")
		return
	}

	report := h.insight.GenerateReport(r.Context(), snap)

	JSON(w, http.StatusOK, map[string]interface{}{
		"report":       report,
		"role":         snap.Role,
		"jurisdiction": snap.Jurisdiction,
	})
}
