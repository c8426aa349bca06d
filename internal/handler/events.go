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

type EventHandler struct {
	Repo repository.EventRepository
}

func (h EventHandler) RegisterRoutes(r chi.Router) {
	r.Get("/events", h.list)
	r.Post("/events", h.create)
	r.Put("/events/{id}", h.update)
	r.Delete("/events/{id}", h.delete)
}

func (h EventHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	events, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h EventHandler) create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeEventBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := h.Repo.Create(r.Context(), *in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toEventResponse(*e))
}

func (h EventHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	in, err := decodeEventBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := h.Repo.Update(r.Context(), id, *in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(*e))
}

func (h EventHandler) delete(w http.ResponseWriter, r *http.Request) {
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

func decodeEventBody(r *http.Request) (*repository.EventInput, error) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Location    string `json:"location"`
		StartsAt    string `json:"startsAt"`
		EndsAt      string `json:"endsAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid payload")
	}
	if req.Title == "" {
		return nil, errors.New("title is required")
	}
	starts, err := parseEventTime(req.StartsAt)
	if err != nil {
		return nil, errors.New("startsAt must be YYYY-MM-DD or RFC3339")
	}
	in := repository.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    starts,
	}
	if req.EndsAt != "" {
		ends, err := parseEventTime(req.EndsAt)
		if err != nil {
			return nil, errors.New("endsAt must be YYYY-MM-DD or RFC3339")
		}
		in.EndsAt = &ends
	}
	return &in, nil
}

func parseEventTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, value)
}

func toEventResponse(e domain.ChurchEvent) map[string]any {
	out := map[string]any{
		"id":          e.ID,
		"title":       e.Title,
		"description": e.Description,
		"location":    e.Location,
		"startsAt":    e.StartsAt.UTC().Format(time.RFC3339),
	}
	if e.EndsAt != nil {
		out["endsAt"] = e.EndsAt.UTC().Format(time.RFC3339)
	}
	return out
}
