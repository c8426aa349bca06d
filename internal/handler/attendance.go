package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"churchadmin-backend/internal/domain"
	"churchadmin-backend/internal/repository"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler struct {
	Repo repository.AttendanceRepository
}

func (h AttendanceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/attendance", h.list)
	r.Post("/attendance", h.create)
	r.Post("/attendance/bulk", h.bulkCreate)
	r.Put("/attendance/{id}", h.update)
	r.Delete("/attendance/{id}", h.delete)
}

func (h AttendanceHandler) list(w http.ResponseWriter, r *http.Request) {
	var eventID *int64
	if v := r.URL.Query().Get("eventId"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid eventId")
			return
		}
		eventID = &n
	}
	date, err := parseDateQuery(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date filter")
		return
	}
	limit := 200
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	logs, err := h.Repo.List(r.Context(), eventID, date, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(logs))
	for _, log := range logs {
		out = append(out, toAttendanceResponse(log))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h AttendanceHandler) create(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log, err := h.Repo.Create(r.Context(), *in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toAttendanceResponse(*log))
}

// bulkCreate checks in a whole list at once. Rows are attempted
// independently; the response reports per-row success or failure in input
// order.
func (h AttendanceHandler) bulkCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Logs []attendanceRequest `json:"logs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(req.Logs) == 0 {
		writeError(w, http.StatusBadRequest, "logs must not be empty")
		return
	}

	inputs := make([]repository.AttendanceInput, len(req.Logs))
	for i, item := range req.Logs {
		in, err := item.toInput()
		if err != nil {
			writeError(w, http.StatusBadRequest, "row "+strconv.Itoa(i)+": "+err.Error())
			return
		}
		inputs[i] = *in
	}

	results := h.Repo.BulkCreate(r.Context(), inputs)
	out := make([]map[string]any, len(results))
	failed := 0
	for i, res := range results {
		entry := map[string]any{"index": res.Index}
		if res.Err != nil {
			entry["error"] = res.Err.Error()
			failed++
		} else {
			entry["log"] = toAttendanceResponse(*res.Log)
		}
		out[i] = entry
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": out,
		"created": len(results) - failed,
		"failed":  failed,
	})
}

func (h AttendanceHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log, err := h.Repo.Update(r.Context(), id, *in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "attendance log not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toAttendanceResponse(*log))
}

func (h AttendanceHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

type attendanceRequest struct {
	MemberID   *int64 `json:"memberId"`
	MemberName string `json:"memberName"`
	EventID    *int64 `json:"eventId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	Source     string `json:"source"`
}

func (req attendanceRequest) toInput() (*repository.AttendanceInput, error) {
	if req.MemberID == nil && req.MemberName == "" {
		return nil, errors.New("memberId or memberName is required")
	}
	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, errors.New("date must be YYYY-MM-DD")
		}
		date = parsed
	}
	return &repository.AttendanceInput{
		MemberID:   req.MemberID,
		MemberName: req.MemberName,
		EventID:    req.EventID,
		Date:       date,
		Status:     domain.AttendanceStatus(req.Status),
		Source:     req.Source,
	}, nil
}

func toAttendanceResponse(a domain.AttendanceLog) map[string]any {
	out := map[string]any{
		"id":         a.ID,
		"memberName": a.MemberName,
		"date":       a.Date.Format(dateLayout),
		"status":     string(a.Status),
		"source":     a.Source,
	}
	if a.MemberID != nil {
		out["memberId"] = *a.MemberID
	}
	if a.EventID != nil {
		out["eventId"] = *a.EventID
	}
	return out
}
