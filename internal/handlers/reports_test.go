package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labour-dashboard/internal/archive"
	"labour-dashboard/internal/models"
	"labour-dashboard/internal/reports"
	"labour-dashboard/internal/store"
)

func newReportsHandler(t *testing.T) (*ReportsHandler, *store.Store, *archive.LocalSink) {
	t.Helper()
	s := newTestStore(t)
	sink, err := archive.NewLocalSink(t.TempDir())
	require.NoError(t, err)
	return NewReportsHandler(s, sink), s, sink
}

func TestRecalculateMonthlyDerivesClosingBalance(t *testing.T) {
	h, _, _ := newReportsHandler(t)

	rec := models.MonthlySummaryRecord{
		GrievanceBeginning: 10,
		GrievanceReceived:  5,
		GrievanceDisposed:  3,
	}
	req := authedRequest(http.MethodPost, "/api/reports/monthly/recalculate", rec, models.UserAccount{})
	rr := httptest.NewRecorder()
	h.RecalculateMonthly(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	got := body["record"].(map[string]interface{})
	assert.Equal(t, 12.0, got["grievanceEnd"])
}

func TestRecalculateMonthlyCoercesLooseInput(t *testing.T) {
	h, _, _ := newReportsHandler(t)

	// Form inputs arrive as strings; blanks and garbage coerce to zero.
	raw := `{"grievanceBeginning":"7","grievanceReceived":"","grievanceDisposed":"ten"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reports/monthly/recalculate", strings.NewReader(raw))
	rr := httptest.NewRecorder()
	h.RecalculateMonthly(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeBody(t, rr)["record"].(map[string]interface{})
	assert.Equal(t, 7.0, got["grievanceEnd"])
}

func TestSubmitMonthlyRejectsGateViolations(t *testing.T) {
	h, s, sink := newReportsHandler(t)

	rec := models.MonthlySummaryRecord{
		Month: "March", Year: "2025",
		TotalIdentified: 10, NonHazardous: 6, Hazardous: 5,
	}
	req := authedRequest(http.MethodPost, "/api/reports/monthly", rec, seededUser(t, s, "usr-5"))
	rr := httptest.NewRecorder()
	h.SubmitMonthly(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	details := decodeBody(t, rr)["details"].(map[string]interface{})
	assert.Equal(t, "Nature of work counts cannot exceed total identified", details["workNature"])

	subs, err := sink.List(req.Context(), "")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestSubmitMonthlyFilesValidRecord(t *testing.T) {
	h, s, sink := newReportsHandler(t)

	rec := models.MonthlySummaryRecord{
		Month: "March", Year: "2025",
		TotalIdentified: 10, NonHazardous: 4, Hazardous: 5,
		MCMehtaSettled: 3, MCMehtaPending: 7,
		GrievanceBeginning: 2, GrievanceReceived: 8, GrievanceDisposed: 4,
		GrievanceEnd:       99, // stale client value, recomputed server-side
	}
	req := authedRequest(http.MethodPost, "/api/reports/monthly", rec, seededUser(t, s, "usr-5"))
	rr := httptest.NewRecorder()
	h.SubmitMonthly(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	subs, err := sink.List(req.Context(), archive.KindMonthlySummary)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "March 2025", subs[0].Period)
	assert.Equal(t, "usr-5", subs[0].SubmittedBy)
	assert.Equal(t, "ALO", subs[0].Role)

	var filed models.MonthlySummaryRecord
	require.NoError(t, json.Unmarshal(subs[0].Payload, &filed))
	assert.Equal(t, 6, filed.GrievanceEnd.Int())
}

func TestSubmitActWiseRejectsAlteredStructure(t *testing.T) {
	h, s, _ := newReportsHandler(t)

	rep := reports.NewActSummary(time.Now())
	rep.Acts = rep.Acts[:3] // rows removed

	req := authedRequest(http.MethodPost, "/api/reports/actwise", rep, seededUser(t, s, "usr-4"))
	rr := httptest.NewRecorder()
	h.SubmitActWise(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitActWiseFilesWithDerivedPendency(t *testing.T) {
	h, s, sink := newReportsHandler(t)

	rep := reports.NewActSummary(time.Now())
	rep.Month, rep.Year = "April", "2025"
	rep.Acts[0].BeginningPending = 5
	rep.Acts[0].FiledDuringMonth = 10
	rep.Acts[0].DisposedDuringMonth = 8

	req := authedRequest(http.MethodPost, "/api/reports/actwise", rep, seededUser(t, s, "usr-4"))
	rr := httptest.NewRecorder()
	h.SubmitActWise(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	subs, err := sink.List(req.Context(), archive.KindActSummary)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	var filed models.ActSummaryReport
	require.NoError(t, json.Unmarshal(subs[0].Payload, &filed))
	assert.Equal(t, 7, filed.Acts[0].EndPending.Int())
	assert.Equal(t, 0, filed.Acts[1].EndPending.Int())
}

func TestSubmitChildBatchRejectsEmpty(t *testing.T) {
	h, s, _ := newReportsHandler(t)

	req := authedRequest(http.MethodPost, "/api/reports/childlabour",
		childBatchRequest{}, seededUser(t, s, "usr-5"))
	rr := httptest.NewRecorder()
	h.SubmitChildBatch(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	details := decodeBody(t, rr)["details"].(map[string]interface{})
	assert.Contains(t, details, "records")
}

func TestSubmitChildBatchNormalizesBeforeFiling(t *testing.T) {
	h, s, sink := newReportsHandler(t)

	rec := reports.NewChildLabourRecord(time.Now())
	rec.ChildName = "Ravi"
	rec.SchoolingStatus = "Regular"
	rec.PreviousSchoolName = "ZPHS Moinabad" // meaningless for Regular

	req := authedRequest(http.MethodPost, "/api/reports/childlabour",
		childBatchRequest{Records: []models.ChildLabourRecord{rec}}, seededUser(t, s, "usr-5"))
	rr := httptest.NewRecorder()
	h.SubmitChildBatch(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	subs, err := sink.List(req.Context(), archive.KindChildLabour)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	var filed []models.ChildLabourRecord
	require.NoError(t, json.Unmarshal(subs[0].Payload, &filed))
	require.Len(t, filed, 1)
	assert.Empty(t, filed[0].PreviousSchoolName)
	assert.NotEmpty(t, filed[0].ID)
}

func TestSubmitChildBatchRejectsUnknownOption(t *testing.T) {
	h, s, _ := newReportsHandler(t)

	rec := reports.NewChildLabourRecord(time.Now())
	rec.Gender = "Unknown"

	req := authedRequest(http.MethodPost, "/api/reports/childlabour",
		childBatchRequest{Records: []models.ChildLabourRecord{rec}}, seededUser(t, s, "usr-5"))
	rr := httptest.NewRecorder()
	h.SubmitChildBatch(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	details := decodeBody(t, rr)["details"].(map[string]interface{})
	assert.Equal(t, "Invalid gender", details["records[0]"])
}

func TestListSubmissionsFiltersByKind(t *testing.T) {
	h, s, _ := newReportsHandler(t)
	alo := seededUser(t, s, "usr-5")

	monthly := models.MonthlySummaryRecord{Month: "May", Year: "2025"}
	rr := httptest.NewRecorder()
	h.SubmitMonthly(rr, authedRequest(http.MethodPost, "/api/reports/monthly", monthly, alo))
	require.Equal(t, http.StatusCreated, rr.Code)

	batch := childBatchRequest{Records: []models.ChildLabourRecord{reports.NewChildLabourRecord(time.Now())}}
	rr = httptest.NewRecorder()
	h.SubmitChildBatch(rr, authedRequest(http.MethodPost, "/api/reports/childlabour", batch, alo))
	require.Equal(t, http.StatusCreated, rr.Code)

	req := authedRequest(http.MethodGet, "/api/reports/submissions?kind=monthly_summary", nil, alo)
	rr = httptest.NewRecorder()
	h.ListSubmissions(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, 1.0, body["count"])

	req = authedRequest(http.MethodGet, "/api/reports/submissions", nil, alo)
	rr = httptest.NewRecorder()
	h.ListSubmissions(rr, req)
	assert.Equal(t, 2.0, decodeBody(t, rr)["count"])
}

func TestExportMonthlyCSV(t *testing.T) {
	h, s, _ := newReportsHandler(t)

	rec := models.MonthlySummaryRecord{
		Month: "June", Year: "2025",
		TotalIdentified: 12, NonHazardous: 7, Hazardous: 5,
	}
	rr := httptest.NewRecorder()
	h.SubmitMonthly(rr, authedRequest(http.MethodPost, "/api/reports/monthly", rec, seededUser(t, s, "usr-5")))
	require.Equal(t, http.StatusCreated, rr.Code)

	req := authedRequest(http.MethodGet, "/api/reports/monthly/export?format=csv", nil, seededUser(t, s, "usr-5"))
	rr = httptest.NewRecorder()
	h.ExportMonthly(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Period,"))
	assert.Contains(t, lines[1], "June 2025")
	assert.Contains(t, lines[1], "usr-5")
}

func TestExportMonthlyXLSX(t *testing.T) {
	h, s, _ := newReportsHandler(t)

	req := authedRequest(http.MethodGet, "/api/reports/monthly/export?format=xlsx", nil, seededUser(t, s, "usr-5"))
	rr := httptest.NewRecorder()
	h.ExportMonthly(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	assert.NotZero(t, rr.Body.Len())
}

func TestExportMonthlyUnknownFormat(t *testing.T) {
	h, s, _ := newReportsHandler(t)

	req := authedRequest(http.MethodGet, "/api/reports/monthly/export?format=pdf", nil, seededUser(t, s, "usr-5"))
	rr := httptest.NewRecorder()
	h.ExportMonthly(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
