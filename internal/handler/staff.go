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

type StaffHandler struct {
	Repo repository.StaffRepository
}

func (h StaffHandler) RegisterRoutes(r chi.Router) {
	r.Get("/staff", h.list)
	r.Get("/staff/positions", h.positions)
	r.Get("/staff/assignments", h.listAssignments)
	r.Post("/staff/assignments", h.createAssignment)
	r.Put("/staff/assignments/{id}", h.updateAssignment)
	r.Delete("/staff/assignments/{id}", h.deleteAssignment)
	r.Get("/staff/{id}", h.get)
	r.Post("/staff", h.save)
	r.Put("/staff/{id}", h.saveByID)
	r.Delete("/staff/{id}", h.delete)
}

func (h StaffHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 200
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	staff, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(staff))
	for _, s := range staff {
		out = append(out, toStaffResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h StaffHandler) positions(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Repo.Positions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, roles)
}

func (h StaffHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	s, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "staff not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toStaffResponse(*s))
}

func (h StaffHandler) save(w http.ResponseWriter, r *http.Request) {
	h.upsert(w, r, 0)
}

func (h StaffHandler) saveByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	h.upsert(w, r, id)
}

func (h StaffHandler) upsert(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		Name       string  `json:"name"`
		Role       string  `json:"role"`
		Department string  `json:"department"`
		Phone      string  `json:"phone"`
		Email      string  `json:"email"`
		ImageURL   *string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	s, err := h.Repo.Upsert(r.Context(), domain.Staff{
		ID:         id,
		Name:       req.Name,
		Role:       req.Role,
		Department: req.Department,
		Phone:      req.Phone,
		Email:      req.Email,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, toStaffResponse(*s))
}

func (h StaffHandler) delete(w http.ResponseWriter, r *http.Request) {
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

func (h StaffHandler) listAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.Repo.ListAssignments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, toAssignmentResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h StaffHandler) createAssignment(w http.ResponseWriter, r *http.Request) {
	in, err := decodeAssignmentBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := h.Repo.CreateAssignment(r.Context(), *in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toAssignmentResponse(*a))
}

func (h StaffHandler) updateAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	in, err := decodeAssignmentBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := h.Repo.UpdateAssignment(r.Context(), id, *in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "assignment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toAssignmentResponse(*a))
}

func (h StaffHandler) deleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.DeleteAssignment(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "assignment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func decodeAssignmentBody(r *http.Request) (*repository.AssignmentInput, error) {
	var req struct {
		MemberID  *int64 `json:"memberId"`
		Position  string `json:"position"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid payload")
	}
	if req.Position == "" {
		return nil, errors.New("position is required")
	}
	start := time.Now()
	if req.StartDate != "" {
		parsed, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return nil, errors.New("startDate must be YYYY-MM-DD")
		}
		start = parsed
	}
	in := repository.AssignmentInput{
		MemberID:  req.MemberID,
		Position:  req.Position,
		StartDate: start,
	}
	if req.EndDate != "" {
		parsed, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return nil, errors.New("endDate must be YYYY-MM-DD")
		}
		in.EndDate = &parsed
	}
	return &in, nil
}

func toAssignmentResponse(a domain.StaffAssignment) map[string]any {
	out := map[string]any{
		"id":         a.ID,
		"memberName": a.MemberName,
		"position":   a.Position,
		"startDate":  a.StartDate.Format(dateLayout),
	}
	if a.MemberID != nil {
		out["memberId"] = *a.MemberID
	}
	if a.EndDate != nil {
		out["endDate"] = a.EndDate.Format(dateLayout)
	}
	return out
}

func toStaffResponse(s domain.Staff) map[string]any {
	return map[string]any{
		"id":         s.ID,
		"name":       s.Name,
		"role":       s.Role,
		"department": s.Department,
		"phone":      s.Phone,
		"email":      s.Email,
		"imageUrl":   s.ImageURL,
	}
}
