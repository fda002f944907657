package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"labour-dashboard/internal/archive"
	"labour-dashboard/internal/ctxkeys"
	"labour-dashboard/internal/models"
	"labour-dashboard/internal/reports"
	"labour-dashboard/internal/store"
)

// ReportsHandler hosts the periodic report form engines: templates,
// recalculation of derived fields, validation, submission into the archive,
// and export of archived monthly summaries.
type ReportsHandler struct {
	store *store.Store
	sink  archive.Sink
}

// NewReportsHandler creates a ReportsHandler filing into the given sink.
func NewReportsHandler(s *store.Store, sink archive.Sink) *ReportsHandler {
	return &ReportsHandler{store: s, sink: sink}
}

// submitter resolves the authenticated officer for stamping submissions.
func (h *ReportsHandler) submitter(r *http.Request) (models.UserAccount, bool) {
	user, err := h.store.Get(ctxkeys.GetUserID(r.Context()))
	if err != nil {
		return models.UserAccount{}, false
	}
	return user, true
}

// file archives a finalized record and writes the confirmation response.
func (h *ReportsHandler) file(w http.ResponseWriter, r *http.Request, kind, period string, payload interface{}) {
	user, ok := h.submitter(r)
	if !ok {
		JSONError(w, http.StatusNotFound, "User not found")
		return
	}

	sub, err := archive.NewSubmission(kind, user.ID, string(user.Role), user.Jurisdiction, period, payload)
	if err != nil {
		log.Printf("[reports] submission build failed: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to file submission")
		return
	}
	if err := h.sink.Save(r.Context(), sub); err != nil {
		log.Printf("[reports] submission save failed: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to file submission")
		return
	}

	JSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "Report submitted successfully",
		"submissionId": sub.ID,
		"submittedAt":  sub.SubmittedAt,
	})
}

// ── Monthly summary (ALO) ──────────────────────────────────────

// NewMonthly returns a zeroed monthly summary keyed to the current month,
// with its validation state. Fresh records always validate: every gate
// compares zeros.
func (h *ReportsHandler) NewMonthly(w http.ResponseWriter, r *http.Request) {
	rec := reports.NewMonthlySummary(time.Now())
	JSON(w, http.StatusOK, map[string]interface{}{
		"record":     rec,
		"validation": reports.ValidateMonthly(rec),
		"months":     reports.Months,
		"years":      reports.Years,
	})
}

// RecalculateMonthly recomputes the derived grievance closing balance and
// re-evaluates the submission gates. The client calls this after every edit
// so derived values and inline errors track the form continuously.
func (h *ReportsHandler) RecalculateMonthly(w http.ResponseWriter, r *http.Request) {
	var rec models.MonthlySummaryRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	reports.RecalculateMonthly(&rec)
	v := reports.ValidateMonthly(rec)

	JSON(w, http.StatusOK, map[string]interface{}{
		"record":     rec,
		"validation": v,
		"errors":     v.Details(),
	})
}

// SubmitMonthly finalizes a monthly summary. The derived balance is
// recomputed server-side before the gates run, so a stale or tampered
// grievanceEnd can never be filed. Invalid records are rejected with the
// same inline messages the form shows.
func (h *ReportsHandler) SubmitMonthly(w http.ResponseWriter, r *http.Request) {
	var rec models.MonthlySummaryRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	reports.RecalculateMonthly(&rec)
	if v := reports.ValidateMonthly(rec); !v.OK() {
		JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":   "Validation failed",
			"details": v.Details(),
		})
		return
	}

	h.file(w, r, archive.KindMonthlySummary, rec.Month+" "+rec.Year, rec)
}

// ── Act-wise summary (ACL) ─────────────────────────────────────

// NewActWise returns a report keyed to the current month with one zeroed row
// per statutory act.
func (h *ReportsHandler) NewActWise(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"report": reports.NewActSummary(time.Now()),
		"acts":   reports.StatutoryActs,
		"months": reports.Months,
		"years":  reports.Years,
	})
}

// RecalculateActWise recomputes every act's derived closing pendency.
func (h *ReportsHandler) RecalculateActWise(w http.ResponseWriter, r *http.Request) {
	var rep models.ActSummaryReport
	if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	reports.RecalculateActs(&rep)
	JSON(w, http.StatusOK, map[string]interface{}{"report": rep})
}

// SubmitActWise finalizes an act-wise summary. The fixed act rows must be
// present in their fixed order; beyond that structural check there are no
// field-level gates on this form.
func (h *ReportsHandler) SubmitActWise(w http.ResponseWriter, r *http.Request) {
	var rep models.ActSummaryReport
	if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if !reports.CheckActStructure(rep) {
		JSONError(w, http.StatusBadRequest, "Report must contain the fixed statutory acts in order")
		return
	}

	reports.RecalculateActs(&rep)
	h.file(w, r, archive.KindActSummary, rep.Month+" "+rep.Year, rep)
}

// ── Child labour rescue batch ──────────────────────────────────

type childBatchRequest struct {
	Records []models.ChildLabourRecord `json:"records"`
}

// NewChildCase returns an empty rescue case with each enumerated field
// pre-filled to its default option.
func (h *ReportsHandler) NewChildCase(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"record": reports.NewChildLabourRecord(time.Now()),
		"options": map[string][]string{
			"genders":           reports.Genders,
			"castes":            reports.Castes,
			"workNatures":       reports.WorkNatures,
			"schoolingStatuses": reports.SchoolingStatuses,
			"presentStatuses":   reports.PresentStatuses,
			"minWageStatuses":   reports.MinWageStatuses,
			"prosecutionStates": reports.ProsecutionStates,
			"ddDeposited":       reports.DDDepositedOptions,
		},
	})
}

// SubmitChildBatch normalizes and validates a batch of rescue cases, then
// files it as one submission.
func (h *ReportsHandler) SubmitChildBatch(w http.ResponseWriter, r *http.Request) {
	var req childBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	for i := range req.Records {
		reports.NormalizeChildRecord(&req.Records[i])
	}
	if errs := reports.ValidateChildBatch(req.Records); len(errs) > 0 {
		JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":   "Validation failed",
			"details": errs,
		})
		return
	}

	h.file(w, r, archive.KindChildLabour, "", req.Records)
}

// ── Archive listing & export ───────────────────────────────────

// ListSubmissions returns archived submissions, newest first. An optional
// ?kind= query filters to one report kind.
func (h *ReportsHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.sink.List(r.Context(), r.URL.Query().Get("kind"))
	if err != nil {
		log.Printf("[reports] submission listing failed: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to list submissions")
		return
	}
	if subs == nil {
		subs = []archive.Submission{}
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"submissions": subs,
		"count":       len(subs),
	})
}

var monthlyExportHeader = []string{
	"Period", "Submitted By", "Jurisdiction", "Submitted At",
	"Total Identified", "Non-Hazardous", "Hazardous",
	"MC Mehta Settled", "MC Mehta Pending", "Prosecutions Filed",
	"Grievance Beginning", "Grievance Received", "Grievance Disposed", "Grievance End",
}

// ExportMonthly renders the archived monthly summaries as a downloadable
// CSV (default) or XLSX file.
func (h *ReportsHandler) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	subs, err := h.sink.List(r.Context(), archive.KindMonthlySummary)
	if err != nil {
		log.Printf("[reports] export listing failed: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to export submissions")
		return
	}

	rows := make([][]string, 0, len(subs))
	for _, sub := range subs {
		var rec models.MonthlySummaryRecord
		if err := json.Unmarshal(sub.Payload, &rec); err != nil {
			// Skip documents whose payload no longer parses.
			continue
		}
		rows = append(rows, []string{
			sub.Period, sub.SubmittedBy, sub.Jurisdiction,
			sub.SubmittedAt.Format(time.RFC3339),
			strconv.Itoa(rec.TotalIdentified.Int()),
			strconv.Itoa(rec.NonHazardous.Int()),
			strconv.Itoa(rec.Hazardous.Int()),
			strconv.Itoa(rec.MCMehtaSettled.Int()),
			strconv.Itoa(rec.MCMehtaPending.Int()),
			strconv.Itoa(rec.ProsecutionsFiled.Int()),
			strconv.Itoa(rec.GrievanceBeginning.Int()),
			strconv.Itoa(rec.GrievanceReceived.Int()),
			strconv.Itoa(rec.GrievanceDisposed.Int()),
			strconv.Itoa(rec.GrievanceEnd.Int()),
		})
	}

	filename := "monthly-summaries-" + time.Now().Format("2006-01-02")

	switch r.URL.Query().Get("format") {
	case "xlsx":
		h.writeXLSX(w, filename, rows)
	case "", "csv":
		h.writeCSV(w, filename, rows)
	default:
		JSONError(w, http.StatusBadRequest, "Unsupported format. Use csv or xlsx")
	}
}

func (h *ReportsHandler) writeCSV(w http.ResponseWriter, filename string, rows [][]string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".csv"))

	cw := csv.NewWriter(w)
	_ = cw.Write(monthlyExportHeader)
	for _, row := range rows {
		_ = cw.Write(row)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("[reports] csv export failed: %v", err)
	}
}

func (h *ReportsHandler) writeXLSX(w http.ResponseWriter, filename string, rows [][]string) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Monthly Summaries"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range monthlyExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i, row := range rows {
		for col, val := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			// Numeric columns stay numeric in the workbook.
			if n, err := strconv.Atoi(val); err == nil && col >= 4 {
				f.SetCellValue(sheet, cell, n)
			} else {
				f.SetCellValue(sheet, cell, val)
			}
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".xlsx"))
	if err := f.Write(w); err != nil {
		log.Printf("[reports] xlsx export failed: %v", err)
	}
}
