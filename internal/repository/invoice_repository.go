package repository

import (
	"context"
	"errors"
	"time"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create persists an invoice as supplied: the caller provides the line
// items and the total, and the store does not recompute one from the
// other. Currency defaults to USD, status to Draft.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *model.Invoice) (*model.Invoice, error) {
	if invoice.ID == "" {
		invoice.ID = uuid.NewString()
	}
	if invoice.Currency == "" {
		invoice.Currency = model.DefaultCurrency
	}
	if invoice.Status == "" {
		invoice.Status = model.InvoiceDraft
	}
	if invoice.LineItems == nil {
		invoice.LineItems = model.LineItemList{}
	}
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) GetAll(ctx context.Context) ([]model.Invoice, error) {
	invoices := []model.Invoice{}
	err := r.db.WithContext(ctx).Order("issue_date").Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) GetByCompany(ctx context.Context, companyID string) ([]model.Invoice, error) {
	invoices := []model.Invoice{}
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Order("issue_date").Find(&invoices).Error
	return invoices, err
}

// InvoiceUpdate is a partial merge of the mutable fields. It does not
// trigger payment reconciliation.
type InvoiceUpdate struct {
	InvoiceNumber *string
	ClientID      *string
	IssueDate     *time.Time
	DueDate       *time.Time
	LineItems     *model.LineItemList
	Total         *decimal.Decimal
	Status        *string
	Notes         *string
	Currency      *string
	TaxRate       *decimal.Decimal
}

func (r *InvoiceRepository) Update(ctx context.Context, id string, upd InvoiceUpdate) (*model.Invoice, error) {
	invoice, err := r.GetByID(ctx, id)
	if err != nil || invoice == nil {
		return nil, err
	}

	if upd.InvoiceNumber != nil {
		invoice.InvoiceNumber = *upd.InvoiceNumber
	}
	if upd.ClientID != nil {
		invoice.ClientID = *upd.ClientID
	}
	if upd.IssueDate != nil {
		invoice.IssueDate = *upd.IssueDate
	}
	if upd.DueDate != nil {
		invoice.DueDate = *upd.DueDate
	}
	if upd.LineItems != nil {
		invoice.LineItems = *upd.LineItems
	}
	if upd.Total != nil {
		invoice.Total = *upd.Total
	}
	if upd.Status != nil {
		invoice.Status = *upd.Status
	}
	if upd.Notes != nil {
		invoice.Notes = upd.Notes
	}
	if upd.Currency != nil {
		invoice.Currency = *upd.Currency
	}
	if upd.TaxRate != nil {
		invoice.TaxRate = *upd.TaxRate
	}

	if err := r.db.WithContext(ctx).Save(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

// UpdateStatus is the caller-driven override: it applies the target status
// with its timestamp side effects and never consults the payment ledger.
// Sent refreshes sentAt on every call; Paid stamps paidAt; Draft clears it.
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id, status string) (*model.Invoice, error) {
	invoice, err := r.GetByID(ctx, id)
	if err != nil || invoice == nil {
		return nil, err
	}

	invoice.Status = status
	now := time.Now().UTC()
	switch status {
	case model.InvoiceSent:
		invoice.SentAt = &now
	case model.InvoicePaid:
		invoice.PaidAt = &now
	case model.InvoiceDraft:
		invoice.PaidAt = nil
	}

	if err := r.db.WithContext(ctx).Save(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}
