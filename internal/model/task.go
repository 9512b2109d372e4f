package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusToDo       = "ToDo"
	StatusInProgress = "InProgress"
	StatusDone       = "Done"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Task belongs to a project and a company. Dependencies and ParentTaskID
// are advisory graph edges: the store accepts any reference, including
// self-references and cycles.
type Task struct {
	ID              string         `gorm:"primaryKey" json:"id"`
	Title           string         `gorm:"not null" json:"title"`
	Description     string         `json:"description"`
	Status          string         `json:"status"`
	Priority        string         `json:"priority"`
	CreatedAt       time.Time      `json:"createdAt"`
	DueDate         *time.Time     `json:"dueDate"`
	AssignedUserIDs pq.StringArray `gorm:"type:text[]" json:"assignedUserIds"`
	Tags            pq.StringArray `gorm:"type:text[]" json:"tags"`
	CompanyID       string         `gorm:"index" json:"companyId"`
	ProjectID       string         `gorm:"index" json:"projectId"`
	Color           *string        `json:"color"`
	Dependencies    pq.StringArray `gorm:"type:text[]" json:"dependencies"`
	ParentTaskID    *string        `json:"parentTaskId"`

	// Billing fields, consumed when the task becomes an invoice line item.
	InvoiceImage       *string          `json:"invoiceImage"`
	InvoiceVendor      *string          `json:"invoiceVendor"`
	InvoiceNumber      *string          `json:"invoiceNumber"`
	InvoiceAmount      *decimal.Decimal `gorm:"type:numeric" json:"invoiceAmount"`
	InvoiceDate        *time.Time       `json:"invoiceDate"`
	GeneratedInvoiceID *string          `gorm:"index" json:"generatedInvoiceId"`
}

// Billable reports whether the task carries an invoice amount and has not
// been consumed into an invoice yet.
func (t *Task) Billable() bool {
	return t.InvoiceAmount != nil && t.GeneratedInvoiceID == nil
}

func (t *Task) AfterFind(_ *gorm.DB) error {
	if t.AssignedUserIDs == nil {
		t.AssignedUserIDs = pq.StringArray{}
	}
	if t.Tags == nil {
		t.Tags = pq.StringArray{}
	}
	if t.Dependencies == nil {
		t.Dependencies = pq.StringArray{}
	}
	return nil
}
