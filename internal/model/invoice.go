package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice lifecycle. Draft→Sent→Paid is the normal path; Overdue is a
// caller-computed state for unpaid invoices past their due date. Paid→Sent
// only happens through payment reconciliation when the ledger drops below
// the total.
const (
	InvoiceDraft   = "Draft"
	InvoiceSent    = "Sent"
	InvoicePaid    = "Paid"
	InvoiceOverdue = "Overdue"
)

const DefaultCurrency = "USD"

// LineItem references the task it was billed from. Amounts are snapshots
// taken at invoice creation, not live references.
type LineItem struct {
	TaskID      string          `json:"taskId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// LineItemList is stored as a jsonb column.
type LineItemList []LineItem

func (l LineItemList) Value() (driver.Value, error) {
	if l == nil {
		l = LineItemList{}
	}
	return json.Marshal(l)
}

func (l *LineItemList) Scan(value interface{}) error {
	if value == nil {
		*l = LineItemList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("line items: unsupported column type")
	}
	if len(data) == 0 {
		*l = LineItemList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Invoice.Total is caller-supplied at creation and never recomputed from
// the line items; only payment reconciliation reads it.
type Invoice struct {
	ID            string          `gorm:"primaryKey" json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	CompanyID     string          `gorm:"index" json:"companyId"`
	ClientID      string          `gorm:"index" json:"clientId"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	LineItems     LineItemList    `gorm:"type:jsonb" json:"lineItems"`
	Total         decimal.Decimal `gorm:"type:numeric" json:"total"`
	Status        string          `json:"status"`
	Notes         *string         `json:"notes"`
	Currency      string          `json:"currency"`
	TaxRate       decimal.Decimal `gorm:"type:numeric" json:"taxRate"`
	SentAt        *time.Time      `json:"sentAt"`
	PaidAt        *time.Time      `json:"paidAt"`
}

// OverdueAt reports whether an unpaid invoice is past due at the given
// instant. The store never persists this; callers compute it on read.
func (i *Invoice) OverdueAt(now time.Time) bool {
	return i.Status != InvoicePaid && !i.DueDate.IsZero() && i.DueDate.Before(now)
}

func (i *Invoice) AfterFind(_ *gorm.DB) error {
	if i.LineItems == nil {
		i.LineItems = LineItemList{}
	}
	return nil
}
