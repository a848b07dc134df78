package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odconnect/receive-tracking-order/engine"
	"github.com/odconnect/receive-tracking-order/infrastructure/argon"
	"github.com/odconnect/receive-tracking-order/infrastructure/backend"
	"github.com/odconnect/receive-tracking-order/inventory"
	"github.com/odconnect/receive-tracking-order/report"
)

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	status, loadErr := s.Engine.Status()
	resp := map[string]any{"status": status}
	if loadErr != nil {
		resp["error"] = loadErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.Reload(r.Context()); err != nil {
		errorJSON(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": engine.StatusReady})
}

func (s *Server) handleBranches(w http.ResponseWriter, _ *http.Request) {
	cat, err := s.Engine.Catalog()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"branches": cat.Branches})
}

type itemRow struct {
	inventory.LineItem
	IsChecked bool `json:"isChecked"`
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	branchLabel := r.URL.Query().Get("branch")
	category := r.URL.Query().Get("category")
	if category == "" {
		category = inventory.CategoryAll
	}
	search := r.URL.Query().Get("q")

	view, progress, err := s.Engine.View(r.Context(), branchLabel, category, search)
	if err != nil {
		s.writeError(w, err)
		return
	}
	checked, err := s.Engine.Checked(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	rows := make([]itemRow, 0, len(view))
	for _, it := range view {
		rows = append(rows, itemRow{LineItem: it, IsChecked: checked[it.ID]})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": rows, "progress": progress})
}

func (s *Server) handleTrackings(w http.ResponseWriter, r *http.Request) {
	cat, err := s.Engine.Catalog()
	if err != nil {
		s.writeError(w, err)
		return
	}
	assocs := cat.TrackingsFor(r.URL.Query().Get("branch"))
	if assocs == nil {
		assocs = []inventory.TrackingAssociation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"trackings": assocs})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		errorJSON(w, http.StatusBadRequest, "item id is required")
		return
	}
	checked, err := s.Engine.Toggle(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "checked": checked})
}

func (s *Server) handleToggleAll(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Branch   string `json:"branch"`
		Category string `json:"category"`
		Search   string `json:"q"`
		Checked  bool   `json:"checked"`
	}
	if err := readJSON(r, &body); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Category == "" {
		body.Category = inventory.CategoryAll
	}
	if err := s.Engine.ToggleAll(r.Context(), body.Branch, body.Category, body.Search, body.Checked); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var in report.Input
	if err := readJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	rep, err := s.Engine.Submit(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"report": rep})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	branchLabel := r.URL.Query().Get("branch")
	date := r.URL.Query().Get("date")
	if branchLabel == "" || date == "" {
		errorJSON(w, http.StatusBadRequest, "branch and date are required")
		return
	}
	records, err := s.Engine.History(r.Context(), branchLabel, date)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (s *Server) handleHistoryPDF(w http.ResponseWriter, r *http.Request) {
	branchLabel := r.URL.Query().Get("branch")
	date := r.URL.Query().Get("date")
	if branchLabel == "" || date == "" {
		errorJSON(w, http.StatusBadRequest, "branch and date are required")
		return
	}
	records, err := s.Engine.History(r.Context(), branchLabel, date)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(records) == 0 {
		errorJSON(w, http.StatusNotFound, "no report found for that branch and date")
		return
	}
	// Several submissions on one day keep only the latest on paper.
	rep := historyToReport(records[len(records)-1])

	pdfBytes, err := report.RenderPDF(rep, time.Now())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "POP_Report_"+branchLabel+"_"+date+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	logs, err := report.ListLogs(r.Context(), s.DB, r.URL.Query().Get("branch"), r.URL.Query().Get("date"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-reports.xlsx")
	if err := report.WriteXLSX(w, logs); err != nil {
		s.writeError(w, err)
	}
}

func (s *Server) handleShipments(w http.ResponseWriter, r *http.Request) {
	kind := inventory.KindPOP
	if r.URL.Query().Get("kind") == string(inventory.KindEquipment) {
		kind = inventory.KindEquipment
	}
	view, err := s.Engine.Shipments(r.Context(), r.URL.Query().Get("branch"), kind, r.URL.Query().Get("tracking"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.Engine.Orders(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (s *Server) handleRangeStatus(w http.ResponseWriter, r *http.Request) {
	days, err := s.Engine.RangeStatus(r.Context(), r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date         string   `json:"date"`
		NotSubmitted []string `json:"notSubmitted"`
	}
	if err := readJSON(r, &body); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.Engine.Notify(r.Context(), body.Date, body.NotSubmitted); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleNotifyRange(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := readJSON(r, &body); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	days, err := s.Engine.RangeStatus(r.Context(), body.StartDate, body.EndDate)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.Engine.NotifyRange(r.Context(), body.StartDate, body.EndDate, days); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleUpdateTracking(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderNo    string `json:"orderNo"`
		Branch     string `json:"branch"`
		TrackingNo string `json:"trackingNo"`
	}
	if err := readJSON(r, &body); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.Engine.UpdateTracking(r.Context(), body.OrderNo, body.Branch, body.TrackingNo); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// historyToReport reshapes a backend history row for the PDF renderer.
func historyToReport(rec backend.HistoryRecord) *report.Report {
	var snapshot []report.SnapshotItem
	// The backend stores the snapshot as JSON text; a broken blob still
	// renders the header and note.
	_ = json.Unmarshal([]byte(rec.Items), &snapshot)
	return &report.Report{
		Branch:        rec.Branch,
		TrackingNo:    rec.TrackingNo,
		Date:          rec.Date,
		Note:          rec.Note,
		MissingItems:  rec.Missing,
		ItemsSnapshot: snapshot,
		SignerName:    rec.SignerName,
		SignerRole:    rec.SignerRole,
	}
}

// writeError maps engine errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var vErr *report.ValidationError
	var tErr *engine.TransportError
	switch {
	case errors.As(err, &vErr):
		errorJSON(w, http.StatusUnprocessableEntity, vErr.Reason)
	case errors.As(err, &tErr):
		errorJSON(w, http.StatusBadGateway, tErr.Error())
	case errors.Is(err, engine.ErrNotReady):
		errorJSON(w, http.StatusServiceUnavailable, err.Error())
	default:
		errorJSON(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func readJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func compareAdminToken(token, encodedHash string) (bool, error) {
	return argon.VerifyToken(token, encodedHash)
}
