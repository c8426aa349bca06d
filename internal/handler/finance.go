package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"churchadmin-backend/internal/domain"
	"churchadmin-backend/internal/export"
	"churchadmin-backend/internal/finance"
	"churchadmin-backend/internal/repository"
	"github.com/go-chi/chi/v5"
)

// FinanceHandler serves the transaction collection and everything derived from
// it: stats, filtered listings, exports and bulk category operations. Reads go
// through the in-memory snapshot; writes go to the repository and are applied
// to the snapshot immediately rather than waiting for the change feed.
type FinanceHandler struct {
	Snapshot *finance.Snapshot
	Repo     repository.TransactionRepository
	Settings repository.SettingsRepository
	PageSize int
}

func (h FinanceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/finance/transactions", h.list)
	r.Get("/finance/transactions/stats", h.stats)
	r.Post("/finance/transactions", h.create)
	r.Get("/finance/transactions/{id}", h.get)
	r.Put("/finance/transactions/{id}", h.update)
	r.Delete("/finance/transactions/{id}", h.delete)

	r.Get("/finance/donations", h.donations)
	r.Get("/finance/expenses", h.expenses)

	r.Get("/finance/export/csv", h.exportCSV)
	r.Get("/finance/export/xlsx", h.exportXLSX)
	r.Get("/finance/export/pdf", h.exportPDF)
	r.Get("/finance/report/pdf", h.reportPDF)
	r.Post("/finance/receipts/pdf", h.receiptsPDF)
}

// RegisterAdminRoutes mounts the destructive bulk operations.
func (h FinanceHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/finance/import/csv", h.importCSV)
	r.Put("/finance/categories/{name}", h.renameCategory)
	r.Delete("/finance/categories/{name}", h.deleteCategory)
}

func parseFilterQuery(r *http.Request) (finance.Query, error) {
	q := finance.Query{
		Search:   r.URL.Query().Get("search"),
		Status:   r.URL.Query().Get("status"),
		Type:     r.URL.Query().Get("type"),
		Category: r.URL.Query().Get("category"),
	}
	start, err := parseDateQuery(r, "startDate")
	if err != nil {
		return q, err
	}
	end, err := parseDateQuery(r, "endDate")
	if err != nil {
		return q, err
	}
	q.Start = start
	q.End = end
	return q, nil
}

func (h FinanceHandler) filtered(r *http.Request) ([]domain.Transaction, error) {
	q, err := parseFilterQuery(r)
	if err != nil {
		return nil, err
	}
	return finance.Filter(h.Snapshot.Transactions(), q), nil
}

func (h FinanceHandler) list(w http.ResponseWriter, r *http.Request) {
	txs, err := h.filtered(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date filter")
		return
	}

	pageSize := h.PageSize
	if v := r.URL.Query().Get("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageSize = n
		}
	}
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	page = finance.ClampPage(page, len(txs), pageSize)

	items := finance.Paginate(txs, page, pageSize)
	out := make([]map[string]any, 0, len(items))
	for _, t := range items {
		out = append(out, toTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": out,
		"page":         page,
		"pageSize":     pageSize,
		"totalPages":   finance.TotalPages(len(txs), pageSize),
		"totalCount":   len(txs),
	})
}

func (h FinanceHandler) stats(w http.ResponseWriter, r *http.Request) {
	txs, err := h.filtered(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date filter")
		return
	}
	writeJSON(w, http.StatusOK, finance.Summarize(txs, time.Now()))
}

func (h FinanceHandler) create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeTransactionBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := h.Repo.Create(r.Context(), *in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.Snapshot.Apply(finance.ChangeEvent{Kind: finance.ChangeInsert, Row: *t})
	writeJSON(w, http.StatusCreated, toTransactionResponse(*t))
}

func (h FinanceHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	t, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(*t))
}

func (h FinanceHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	in, err := decodeTransactionBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := h.Repo.Update(r.Context(), id, *in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.Snapshot.Apply(finance.ChangeEvent{Kind: finance.ChangeUpdate, Row: *t})
	writeJSON(w, http.StatusOK, toTransactionResponse(*t))
}

func (h FinanceHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.Snapshot.Apply(finance.ChangeEvent{Kind: finance.ChangeDelete, Row: domain.Transaction{ID: id}})
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h FinanceHandler) donations(w http.ResponseWriter, r *http.Request) {
	h.listByType(w, r, domain.TransactionDonation)
}

func (h FinanceHandler) expenses(w http.ResponseWriter, r *http.Request) {
	h.listByType(w, r, domain.TransactionExpense)
}

func (h FinanceHandler) listByType(w http.ResponseWriter, r *http.Request, typ domain.TransactionType) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	txs, err := h.Repo.ListByType(r.Context(), typ, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h FinanceHandler) exportCSV(w http.ResponseWriter, r *http.Request) {
	txs, err := h.filtered(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date filter")
		return
	}
	data, err := export.TransactionsCSV(txs)
	if err != nil {
		writeErrorWithErr(w, http.StatusInternalServerError, "export failed", err)
		return
	}
	writeAttachment(w, "transactions.csv", "text/csv", data)
}

func (h FinanceHandler) exportXLSX(w http.ResponseWriter, r *http.Request) {
	txs, err := h.filtered(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date filter")
		return
	}
	data, err := export.TransactionsXLSX(txs)
	if err != nil {
		writeErrorWithErr(w, http.StatusInternalServerError, "export failed", err)
		return
	}
	writeAttachment(w, "transactions.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h FinanceHandler) exportPDF(w http.ResponseWriter, r *http.Request) {
	txs, err := h.filtered(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date filter")
		return
	}
	data, err := export.HistoryPDF(txs, time.Now())
	if err != nil {
		writeErrorWithErr(w, http.StatusInternalServerError, "export failed", err)
		return
	}
	writeAttachment(w, "transaction-history.pdf", "application/pdf", data)
}

func (h FinanceHandler) reportPDF(w http.ResponseWriter, r *http.Request) {
	txs, err := h.filtered(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date filter")
		return
	}
	stats := finance.Summarize(txs, time.Now())
	data, err := export.ReportPDF(txs, stats, r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"), time.Now())
	if err != nil {
		writeErrorWithErr(w, http.StatusInternalServerError, "export failed", err)
		return
	}
	writeAttachment(w, "financial-report.pdf", "application/pdf", data)
}

func (h FinanceHandler) receiptsPDF(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	wanted := make(map[int64]struct{}, len(req.IDs))
	for _, id := range req.IDs {
		wanted[id] = struct{}{}
	}
	var selected []domain.Transaction
	for _, t := range h.Snapshot.Transactions() {
		if _, ok := wanted[t.ID]; ok {
			selected = append(selected, t)
		}
	}

	settings, err := h.Settings.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	data, err := export.ReceiptsPDF(selected, *settings)
	if err != nil {
		writeErrorWithErr(w, http.StatusInternalServerError, "export failed", err)
		return
	}
	writeAttachment(w, "receipts.pdf", "application/pdf", data)
}

// importCSV ingests a previously exported CSV, inserting every row.
func (h FinanceHandler) importCSV(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 10<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "body too large")
		return
	}

	txs, err := export.ParseTransactionsCSV(data)
	if err != nil {
		writeErrorWithErr(w, http.StatusBadRequest, "invalid csv", err)
		return
	}
	created := 0
	for _, t := range txs {
		in := repository.TransactionInput{
			Date:        t.Date,
			Contributor: t.Contributor,
			Type:        t.Type,
			Category:    t.Category,
			Amount:      t.Amount,
			Description: t.Description,
			Status:      t.Status,
			ReceiptID:   t.ReceiptID,
		}
		row, err := h.Repo.Create(r.Context(), in)
		if err != nil {
			writeErrorWithErr(w, http.StatusInternalServerError, "import aborted", err)
			return
		}
		h.Snapshot.Apply(finance.ChangeEvent{Kind: finance.ChangeInsert, Row: *row})
		created++
	}
	writeJSON(w, http.StatusOK, map[string]any{"imported": created})
}

// renameCategory rewrites every transaction in the category in one statement.
func (h FinanceHandler) renameCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req struct {
		Category    string `json:"category"`
		Type        string `json:"type"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Category == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}
	affected, err := h.Repo.RenameCategory(r.Context(), name, repository.CategoryRewrite{
		Category:    req.Category,
		Type:        domain.TransactionType(req.Type),
		Description: req.Description,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.reseed(r)
	writeJSON(w, http.StatusOK, map[string]any{"updated": affected})
}

// deleteCategory permanently removes every transaction carrying the label.
func (h FinanceHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	affected, err := h.Repo.DeleteCategory(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.reseed(r)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": affected})
}

// reseed refetches the collection after a bulk rewrite. Cheaper than replaying
// per-row events for a change that touched an unknown set of rows.
func (h FinanceHandler) reseed(r *http.Request) {
	if txs, err := h.Repo.ListAll(r.Context()); err == nil {
		h.Snapshot.Replace(txs)
	}
}

func decodeTransactionBody(r *http.Request) (*repository.TransactionInput, error) {
	var req struct {
		Date        string  `json:"date"`
		Contributor string  `json:"contributor"`
		Type        string  `json:"type"`
		Category    string  `json:"category"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
		Status      string  `json:"status"`
		ReceiptID   *string `json:"receiptId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid payload")
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, errors.New("date must be YYYY-MM-DD")
	}
	if req.Type == "" {
		return nil, errors.New("type is required")
	}
	return &repository.TransactionInput{
		Date:        date,
		Contributor: req.Contributor,
		Type:        domain.TransactionType(req.Type),
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      domain.TransactionStatus(req.Status),
		ReceiptID:   req.ReceiptID,
	}, nil
}

func toTransactionResponse(t domain.Transaction) map[string]any {
	return map[string]any{
		"id":          t.ID,
		"date":        t.Date.Format(dateLayout),
		"contributor": t.Contributor,
		"type":        string(t.Type),
		"category":    t.Category,
		"amount":      t.Amount,
		"description": t.Description,
		"status":      string(t.Status),
		"receiptId":   finance.ReceiptID(t),
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func writeAttachment(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
