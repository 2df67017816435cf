package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/schetovod/webclient/internal/errors"
	"github.com/schetovod/webclient/internal/models"
)

// maxUploadBytes — потолок размера загружаемого документа (32 MiB).
const maxUploadBytes = 32 << 20

// ListClients — GET /api/clients.
func (h *Handlers) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.Clients(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, clients)
}

// CreateClient — POST /api/clients.
func (h *Handlers) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClientRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if req.Name == "" || req.Email == "" {
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: name and email are required", apierrors.ErrInvalidArgument))
		return
	}

	acc, err := h.svc.CreateClient(r.Context(), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, acc)
}

// UpdateClient — PATCH /api/clients/{id}.
func (h *Handlers) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, fmt.Errorf("%w: empty id", apierrors.ErrInvalidArgument))
		return
	}

	var req models.UpdateClientRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	acc, err := h.svc.UpdateClient(r.Context(), id, req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, acc)
}

// DeleteClient — DELETE /api/clients/{id}.
func (h *Handlers) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, fmt.Errorf("%w: empty id", apierrors.ErrInvalidArgument))
		return
	}

	if err := h.svc.DeleteClient(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListDocuments — GET /api/documents.
func (h *Handlers) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.Documents(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, docs)
}

// UploadDocument — POST /api/documents (multipart/form-data, поле "file",
// опционально "clientId"). Файл читается целиком: потолок размера держит
// локальный процесс в рамках, итоговую валидацию делает бэкенд.
func (h *Handlers) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: bad multipart form: %v", apierrors.ErrInvalidArgument, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: file field is required", apierrors.ErrInvalidArgument))
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	doc, err := h.svc.UploadDocument(r.Context(), header.Filename, r.FormValue("clientId"), content)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

// DeleteDocument — DELETE /api/documents/{id}.
func (h *Handlers) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, fmt.Errorf("%w: empty id", apierrors.ErrInvalidArgument))
		return
	}

	if err := h.svc.DeleteDocument(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListPayments — GET /api/payments.
func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.Payments(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, payments)
}

// CreatePayment — POST /api/payments.
func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if req.ClientID == "" || req.Amount <= 0 {
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: clientId and positive amount are required", apierrors.ErrInvalidArgument))
		return
	}

	payment, err := h.svc.CreatePayment(r.Context(), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, payment)
}

// ListExpenses — GET /api/expenses.
func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.Expenses(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, expenses)
}

// CreateExpense — POST /api/expenses.
func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExpenseRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if req.Category == "" || req.Amount <= 0 {
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: category and positive amount are required", apierrors.ErrInvalidArgument))
		return
	}

	expense, err := h.svc.CreateExpense(r.Context(), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

// UpdateExpense — PATCH /api/expenses/{id}.
func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, fmt.Errorf("%w: empty id", apierrors.ErrInvalidArgument))
		return
	}

	var req models.UpdateExpenseRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	expense, err := h.svc.UpdateExpense(r.Context(), id, req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

// DeleteExpense — DELETE /api/expenses/{id}.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, fmt.Errorf("%w: empty id", apierrors.ErrInvalidArgument))
		return
	}

	if err := h.svc.DeleteExpense(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
