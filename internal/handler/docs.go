package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// DocsHandler serves a plain JSON index of the API surface.
type DocsHandler struct{}

func (h DocsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/docs", h.index)
}

func (h DocsHandler) index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"auth": []string{
			"POST /auth/register",
			"POST /auth/login",
			"POST /auth/google",
			"POST /auth/refresh",
			"POST /auth/change-password",
		},
		"finance": []string{
			"GET /finance/transactions",
			"GET /finance/transactions/stats",
			"POST /finance/transactions",
			"GET /finance/transactions/{id}",
			"PUT /finance/transactions/{id}",
			"DELETE /finance/transactions/{id}",
			"GET /finance/donations",
			"GET /finance/expenses",
			"GET /finance/export/csv",
			"GET /finance/export/xlsx",
			"GET /finance/export/pdf",
			"GET /finance/report/pdf",
			"POST /finance/receipts/pdf",
			"POST /finance/import/csv",
			"PUT /finance/categories/{name}",
			"DELETE /finance/categories/{name}",
		},
		"people": []string{
			"GET /members", "POST /members", "PUT /members/{id}", "DELETE /members/{id}",
			"GET /events", "POST /events", "PUT /events/{id}", "DELETE /events/{id}",
			"GET /attendance", "POST /attendance", "POST /attendance/bulk",
		},
		"payroll": []string{
			"GET /staff", "GET /staff/positions", "GET /staff/assignments",
			"GET /payroll", "POST /payroll", "POST /payroll/{id}/pay",
			"GET /payroll/payslips/pdf",
		},
		"misc": []string{"GET /health", "GET /metrics", "GET /settings", "PUT /settings"},
	})
}
