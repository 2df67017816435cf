package service

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"

	"github.com/schetovod/webclient/internal/models"
)

// Типизированный CRUD поверх сырых HTTP-глаголов клиента. Побочных эффектов
// на сессию нет; лимиты тарифа здесь не проверяются — это забота гардов на
// входе и бэкенда как финального арбитра.

// Clients возвращает список клиентов фирмы.
func (s *Service) Clients(ctx context.Context) ([]models.ClientAccount, error) {
	const op = "service.Clients"

	var out []models.ClientAccount
	if err := s.api.Get(ctx, "/clients", &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// CreateClient создаёт клиента. После успеха использование тарифа меняется —
// вызывающий перечитывает снапшот лимитов явно.
func (s *Service) CreateClient(ctx context.Context, req models.CreateClientRequest) (models.ClientAccount, error) {
	const op = "service.CreateClient"

	var out models.ClientAccount
	if err := s.api.Post(ctx, "/clients", req, &out); err != nil {
		return models.ClientAccount{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UpdateClient частично обновляет клиента.
func (s *Service) UpdateClient(ctx context.Context, id string, req models.UpdateClientRequest) (models.ClientAccount, error) {
	const op = "service.UpdateClient"

	var out models.ClientAccount
	if err := s.api.Patch(ctx, "/clients/"+id, req, &out); err != nil {
		return models.ClientAccount{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// DeleteClient удаляет клиента.
func (s *Service) DeleteClient(ctx context.Context, id string) error {
	const op = "service.DeleteClient"

	if err := s.api.Delete(ctx, "/clients/"+id, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Documents возвращает список документов.
func (s *Service) Documents(ctx context.Context) ([]models.Document, error) {
	const op = "service.Documents"

	var out []models.Document
	if err := s.api.Get(ctx, "/documents", &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UploadDocument собирает multipart-тело и загружает документ.
// Content-Type формы (с boundary) уходит клиенту вместо application/json.
func (s *Service) UploadDocument(ctx context.Context, filename, clientID string, content []byte) (models.Document, error) {
	const op = "service.UploadDocument"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return models.Document{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := part.Write(content); err != nil {
		return models.Document{}, fmt.Errorf("%s: %w", op, err)
	}

	if clientID != "" {
		if err := mw.WriteField("clientId", clientID); err != nil {
			return models.Document{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := mw.Close(); err != nil {
		return models.Document{}, fmt.Errorf("%s: %w", op, err)
	}

	var out models.Document
	if err := s.api.Upload(ctx, "/documents", mw.FormDataContentType(), buf.Bytes(), &out); err != nil {
		return models.Document{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// DeleteDocument удаляет документ.
func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	const op = "service.DeleteDocument"

	if err := s.api.Delete(ctx, "/documents/"+id, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Payments возвращает список платежей.
func (s *Service) Payments(ctx context.Context) ([]models.Payment, error) {
	const op = "service.Payments"

	var out []models.Payment
	if err := s.api.Get(ctx, "/payments", &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// CreatePayment выставляет платёж клиенту.
func (s *Service) CreatePayment(ctx context.Context, req models.CreatePaymentRequest) (models.Payment, error) {
	const op = "service.CreatePayment"

	var out models.Payment
	if err := s.api.Post(ctx, "/payments", req, &out); err != nil {
		return models.Payment{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Expenses возвращает список расходов.
func (s *Service) Expenses(ctx context.Context) ([]models.Expense, error) {
	const op = "service.Expenses"

	var out []models.Expense
	if err := s.api.Get(ctx, "/expenses", &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// CreateExpense создаёт расход.
func (s *Service) CreateExpense(ctx context.Context, req models.CreateExpenseRequest) (models.Expense, error) {
	const op = "service.CreateExpense"

	var out models.Expense
	if err := s.api.Post(ctx, "/expenses", req, &out); err != nil {
		return models.Expense{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UpdateExpense частично обновляет расход.
func (s *Service) UpdateExpense(ctx context.Context, id string, req models.UpdateExpenseRequest) (models.Expense, error) {
	const op = "service.UpdateExpense"

	var out models.Expense
	if err := s.api.Patch(ctx, "/expenses/"+id, req, &out); err != nil {
		return models.Expense{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// DeleteExpense удаляет расход.
func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	const op = "service.DeleteExpense"

	if err := s.api.Delete(ctx, "/expenses/"+id, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
