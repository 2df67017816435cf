package models

import "time"

// ClientAccount — клиент бухгалтерской фирмы (не путать с HTTP-клиентом).
type ClientAccount struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	TaxID     string    `json:"taxId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateClientRequest — тело POST /clients.
type CreateClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	TaxID string `json:"taxId,omitempty"`
}

// UpdateClientRequest — частичное обновление клиента (PATCH).
type UpdateClientRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	TaxID *string `json:"taxId,omitempty"`
}

// Document — загруженный документ.
type Document struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId,omitempty"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// Payment — платёж клиента.
type Payment struct {
	ID       string     `json:"id"`
	ClientID string     `json:"clientId"`
	Amount   int64      `json:"amount"` // минорные единицы валюты
	Currency string     `json:"currency"`
	Status   string     `json:"status"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
	PaidAt   *time.Time `json:"paidAt,omitempty"`
}

// CreatePaymentRequest — тело POST /payments.
type CreatePaymentRequest struct {
	ClientID string     `json:"clientId"`
	Amount   int64      `json:"amount"`
	Currency string     `json:"currency"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
}

// Expense — расход фирмы.
type Expense struct {
	ID       string    `json:"id"`
	Category string    `json:"category"`
	Amount   int64     `json:"amount"`
	Currency string    `json:"currency"`
	Date     time.Time `json:"date"`
	Note     string    `json:"note,omitempty"`
}

// CreateExpenseRequest — тело POST /expenses.
type CreateExpenseRequest struct {
	Category string    `json:"category"`
	Amount   int64     `json:"amount"`
	Currency string    `json:"currency"`
	Date     time.Time `json:"date"`
	Note     string    `json:"note,omitempty"`
}

// UpdateExpenseRequest — частичное обновление расхода (PATCH).
type UpdateExpenseRequest struct {
	Category *string `json:"category,omitempty"`
	Amount   *int64  `json:"amount,omitempty"`
	Note     *string `json:"note,omitempty"`
}
