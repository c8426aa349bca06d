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

type MemberHandler struct {
	Repo repository.MemberRepository
}

func (h MemberHandler) RegisterRoutes(r chi.Router) {
	r.Get("/members", h.list)
	r.Get("/members/{id}", h.get)
	r.Post("/members", h.create)
	r.Put("/members/{id}", h.update)
	r.Delete("/members/{id}", h.delete)
}

func (h MemberHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 200
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	members, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h MemberHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	m, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(*m))
}

func (h MemberHandler) create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeMemberBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.Repo.Create(r.Context(), *in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toMemberResponse(*m))
}

func (h MemberHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	in, err := decodeMemberBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.Repo.Update(r.Context(), id, *in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(*m))
}

func (h MemberHandler) delete(w http.ResponseWriter, r *http.Request) {
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

func decodeMemberBody(r *http.Request) (*repository.MemberInput, error) {
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Address   string `json:"address"`
		JoinedAt  string `json:"joinedAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid payload")
	}
	if req.FirstName == "" && req.LastName == "" {
		return nil, errors.New("name is required")
	}
	joined := time.Now()
	if req.JoinedAt != "" {
		parsed, err := time.Parse(dateLayout, req.JoinedAt)
		if err != nil {
			return nil, errors.New("joinedAt must be YYYY-MM-DD")
		}
		joined = parsed
	}
	return &repository.MemberInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		JoinedAt:  joined,
	}, nil
}

func toMemberResponse(m domain.Member) map[string]any {
	return map[string]any{
		"id":        m.ID,
		"firstName": m.FirstName,
		"lastName":  m.LastName,
		"email":     m.Email,
		"phone":     m.Phone,
		"address":   m.Address,
		"joinedAt":  m.JoinedAt.Format(dateLayout),
	}
}
