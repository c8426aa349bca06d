package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"churchadmin-backend/internal/domain"
	"churchadmin-backend/internal/export"
	"churchadmin-backend/internal/finance"
	"churchadmin-backend/internal/repository"
	"github.com/go-chi/chi/v5"
)

// PayrollHandler serves payroll records per period label ("January 2026"),
// including the payslip summary with its month-over-month trend.
type PayrollHandler struct {
	Repo     repository.PayrollRepository
	Settings repository.SettingsRepository
}

func (h PayrollHandler) RegisterRoutes(r chi.Router) {
	r.Get("/payroll", h.listByMonth)
	r.Post("/payroll", h.create)
	r.Put("/payroll/{id}", h.update)
	r.Post("/payroll/{id}/pay", h.markPaid)
	r.Delete("/payroll/{id}", h.delete)
	r.Get("/payroll/payslips/pdf", h.payslipsPDF)
}

func (h PayrollHandler) month(r *http.Request) (string, error) {
	month := r.URL.Query().Get("month")
	if month == "" {
		return finance.MonthLabel(time.Now()), nil
	}
	if _, err := finance.ParseMonthLabel(month); err != nil {
		return "", err
	}
	return month, nil
}

func (h PayrollHandler) listByMonth(w http.ResponseWriter, r *http.Request) {
	month, err := h.month(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries, err := h.Repo.ListByMonth(r.Context(), month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	previousTotal := 0.0
	if prev, err := finance.PreviousMonth(month); err == nil {
		if total, err := h.Repo.SumNetPay(r.Context(), prev); err == nil {
			previousTotal = total
		}
	}
	summary := finance.SummarizePayroll(entries, previousTotal)

	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, toPayrollResponse(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"month":   month,
		"entries": out,
		"summary": summary,
	})
}

func (h PayrollHandler) create(w http.ResponseWriter, r *http.Request) {
	in, err := decodePayrollBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := h.Repo.Create(r.Context(), *in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toPayrollRecordResponse(*rec))
}

func (h PayrollHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	in, err := decodePayrollBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := h.Repo.Update(r.Context(), id, *in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "payroll record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toPayrollRecordResponse(*rec))
}

func (h PayrollHandler) markPaid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	rec, err := h.Repo.MarkPaid(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "payroll record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toPayrollRecordResponse(*rec))
}

func (h PayrollHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "payroll record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h PayrollHandler) payslipsPDF(w http.ResponseWriter, r *http.Request) {
	month, err := h.month(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries, err := h.Repo.ListByMonth(r.Context(), month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	settings, err := h.Settings.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	data, err := export.PayslipsPDF(entries, month, *settings, time.Now())
	if err != nil {
		writeErrorWithErr(w, http.StatusInternalServerError, "export failed", err)
		return
	}
	writeAttachment(w, "payslips.pdf", "application/pdf", data)
}

func decodePayrollBody(r *http.Request) (*repository.PayrollInput, error) {
	var req struct {
		StaffID     *int64  `json:"staffId"`
		Month       string  `json:"month"`
		BasicSalary float64 `json:"basicSalary"`
		Allowances  float64 `json:"allowances"`
		Deductions  float64 `json:"deductions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid payload")
	}
	if _, err := finance.ParseMonthLabel(req.Month); err != nil {
		return nil, err
	}
	return &repository.PayrollInput{
		StaffID:     req.StaffID,
		Month:       req.Month,
		BasicSalary: req.BasicSalary,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
	}, nil
}

func toPayrollRecordResponse(rec domain.PayrollRecord) map[string]any {
	out := map[string]any{
		"id":          rec.ID,
		"month":       rec.Month,
		"basicSalary": rec.BasicSalary,
		"allowances":  rec.Allowances,
		"deductions":  rec.Deductions,
		"netPay":      finance.NetPay(rec.BasicSalary, rec.Allowances, rec.Deductions),
		"status":      string(rec.Status),
	}
	if rec.StaffID != nil {
		out["staffId"] = *rec.StaffID
	}
	if rec.PaymentDate != nil {
		out["paymentDate"] = rec.PaymentDate.Format(dateLayout)
	}
	return out
}

func toPayrollResponse(e domain.PayrollEntry) map[string]any {
	out := toPayrollRecordResponse(e.PayrollRecord)
	out["staffName"] = e.StaffName
	out["staffRole"] = e.StaffRole
	out["staffImage"] = e.StaffImage
	return out
}
