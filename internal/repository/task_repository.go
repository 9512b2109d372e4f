package repository

import (
	"context"
	"errors"
	"time"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create persists a task with store-side defaults: status ToDo, createdAt
// now, and every array field an explicit empty list.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = model.StatusToDo
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	if task.AssignedUserIDs == nil {
		task.AssignedUserIDs = pq.StringArray{}
	}
	if task.Tags == nil {
		task.Tags = pq.StringArray{}
	}
	if task.Dependencies == nil {
		task.Dependencies = pq.StringArray{}
	}
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) GetAll(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	err := r.db.WithContext(ctx).Order("created_at").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) GetByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	tasks := []model.Task{}
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) GetByCompany(ctx context.Context, companyID string) ([]model.Task, error) {
	tasks := []model.Task{}
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Order("created_at").Find(&tasks).Error
	return tasks, err
}

// GetByClient joins through projects: it returns tasks whose project is
// billed to the given client, not tasks referencing the client directly.
func (r *TaskRepository) GetByClient(ctx context.Context, companyID, clientID string) ([]model.Task, error) {
	tasks := []model.Task{}
	err := r.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.company_id = ? AND projects.client_id = ?", companyID, clientID).
		Order("tasks.created_at").
		Find(&tasks).Error
	return tasks, err
}

// TaskUpdate is a partial merge. CreatedAt is deliberately absent: it is
// immutable once set.
type TaskUpdate struct {
	Title           *string
	Description     *string
	Status          *string
	Priority        *string
	DueDate         *time.Time
	AssignedUserIDs *pq.StringArray
	Tags            *pq.StringArray
	Color           *string
	Dependencies    *pq.StringArray
	ParentTaskID    *string
	InvoiceImage    *string
	InvoiceVendor   *string
	InvoiceNumber   *string
	InvoiceAmount   *decimal.Decimal
	InvoiceDate     *time.Time
}

func (r *TaskRepository) Update(ctx context.Context, id string, upd TaskUpdate) (*model.Task, error) {
	task, err := r.GetByID(ctx, id)
	if err != nil || task == nil {
		return nil, err
	}

	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Status != nil {
		task.Status = *upd.Status
	}
	if upd.Priority != nil {
		task.Priority = *upd.Priority
	}
	if upd.DueDate != nil {
		task.DueDate = upd.DueDate
	}
	if upd.AssignedUserIDs != nil {
		task.AssignedUserIDs = *upd.AssignedUserIDs
	}
	if upd.Tags != nil {
		task.Tags = *upd.Tags
	}
	if upd.Color != nil {
		task.Color = upd.Color
	}
	if upd.Dependencies != nil {
		task.Dependencies = *upd.Dependencies
	}
	if upd.ParentTaskID != nil {
		task.ParentTaskID = upd.ParentTaskID
	}
	if upd.InvoiceImage != nil {
		task.InvoiceImage = upd.InvoiceImage
	}
	if upd.InvoiceVendor != nil {
		task.InvoiceVendor = upd.InvoiceVendor
	}
	if upd.InvoiceNumber != nil {
		task.InvoiceNumber = upd.InvoiceNumber
	}
	if upd.InvoiceAmount != nil {
		task.InvoiceAmount = upd.InvoiceAmount
	}
	if upd.InvoiceDate != nil {
		task.InvoiceDate = upd.InvoiceDate
	}

	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error
}

// MarkInvoiced stamps generatedInvoiceId on every listed task in one
// transaction. Unknown ids are silently skipped; re-stamping with the same
// invoice id is a no-op rather than an error.
func (r *TaskRepository) MarkInvoiced(ctx context.Context, taskIDs []string, invoiceID string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&model.Task{}).
			Where("id IN ?", taskIDs).
			Update("generated_invoice_id", invoiceID).Error
	})
}
