package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is an append-only ledger row. An invoice's paid total is always
// the sum over its payments, never stored denormalized; only the derived
// status and paidAt live on the invoice.
type Payment struct {
	ID        string          `gorm:"primaryKey" json:"id"`
	InvoiceID string          `gorm:"index" json:"invoiceId"`
	Amount    decimal.Decimal `gorm:"type:numeric" json:"amount"`
	Method    *string         `json:"method,omitempty"`
	Note      *string         `json:"note,omitempty"`
	PaidAt    time.Time       `json:"paidAt"`
}
