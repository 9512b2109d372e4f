package repository

import (
	"context"
	"errors"
	"time"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create appends a payment and reconciles the invoice status in the same
// transaction. The invoice row is locked for the duration, so concurrent
// payments against one invoice reconcile serially. Amounts are not
// validated; negative payments act as corrections.
func (r *PaymentRepository) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now().UTC()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoice model.Invoice
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&invoice, "id = ?", payment.InvoiceID).Error
		missing := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !missing {
			return err
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		if missing {
			// Payment against an unknown invoice is stored as-is.
			return nil
		}

		var paid decimal.NullDecimal
		err = tx.Model(&model.Payment{}).
			Where("invoice_id = ?", payment.InvoiceID).
			Select("SUM(amount)").
			Scan(&paid).Error
		if err != nil {
			return err
		}
		paidTotal := decimal.Zero
		if paid.Valid {
			paidTotal = paid.Decimal
		}

		status, paidAt, changed := ReconcileStatus(invoice.Status, paidTotal, invoice.Total, time.Now().UTC())
		if !changed {
			return nil
		}
		return tx.Model(&model.Invoice{}).
			Where("id = ?", invoice.ID).
			Updates(map[string]interface{}{"status": status, "paid_at": paidAt}).Error
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// ReconcileStatus decides the invoice status implied by the payment
// ledger. At or above total the invoice is Paid. A Paid invoice dropping
// below total reverts to Sent with paidAt cleared. Anything else is left
// alone, so a partially paid Draft stays Draft.
func ReconcileStatus(current string, paidTotal, total decimal.Decimal, now time.Time) (status string, paidAt *time.Time, changed bool) {
	if paidTotal.GreaterThanOrEqual(total) {
		return model.InvoicePaid, &now, true
	}
	if current == model.InvoicePaid {
		return model.InvoiceSent, nil, true
	}
	return current, nil, false
}

// ListByInvoice returns payments ordered by paidAt ascending. The ordering
// is load-bearing for running-balance views.
func (r *PaymentRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]model.Payment, error) {
	payments := []model.Payment{}
	err := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).Order("paid_at").Find(&payments).Error
	return payments, err
}
