package handler

import (
	"encoding/json"
	"net/http"

	"churchadmin-backend/internal/domain"
	"churchadmin-backend/internal/repository"
	"github.com/go-chi/chi/v5"
)

type SettingsHandler struct {
	Repo repository.SettingsRepository
}

func (h SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.get)
	r.Put("/settings", h.save)
}

func (h SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Repo.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}

func (h SettingsHandler) save(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChurchName    string `json:"churchName"`
		ChurchAddress string `json:"churchAddress"`
		ChurchPhone   string `json:"churchPhone"`
		ReceiptFooter string `json:"receiptFooter"`
		CurrencyCode  string `json:"currencyCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.CurrencyCode == "" {
		current, err := h.Repo.Get(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		req.CurrencyCode = current.CurrencyCode
	}
	s, err := h.Repo.Save(r.Context(), domain.Settings{
		ChurchName:    req.ChurchName,
		ChurchAddress: req.ChurchAddress,
		ChurchPhone:   req.ChurchPhone,
		ReceiptFooter: req.ReceiptFooter,
		CurrencyCode:  req.CurrencyCode,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}

func toSettingsResponse(s *domain.Settings) map[string]any {
	return map[string]any{
		"churchName":    s.ChurchName,
		"churchAddress": s.ChurchAddress,
		"churchPhone":   s.ChurchPhone,
		"receiptFooter": s.ReceiptFooter,
		"currencyCode":  s.CurrencyCode,
	}
}
