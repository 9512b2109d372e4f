package handler

import (
	"net/http"
	"time"

	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type TaskHandler struct {
	taskRepo *repository.TaskRepository
}

func NewTaskHandler(taskRepo *repository.TaskRepository) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo}
}

type CreateTaskRequest struct {
	ID              string           `json:"id"`
	Title           string           `json:"title" binding:"required"`
	Description     string           `json:"description"`
	Status          string           `json:"status"`
	Priority        string           `json:"priority"`
	CreatedAt       *time.Time       `json:"createdAt"`
	DueDate         *time.Time       `json:"dueDate"`
	AssignedUserIDs []string         `json:"assignedUserIds"`
	Tags            []string         `json:"tags"`
	CompanyID       string           `json:"companyId" binding:"required"`
	ProjectID       string           `json:"projectId" binding:"required"`
	Color           *string          `json:"color"`
	Dependencies    []string         `json:"dependencies"`
	ParentTaskID    *string          `json:"parentTaskId"`
	InvoiceImage    *string          `json:"invoiceImage"`
	InvoiceVendor   *string          `json:"invoiceVendor"`
	InvoiceNumber   *string          `json:"invoiceNumber"`
	InvoiceAmount   *decimal.Decimal `json:"invoiceAmount"`
	InvoiceDate     *time.Time       `json:"invoiceDate"`
}

type UpdateTaskRequest struct {
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	Status          *string          `json:"status"`
	Priority        *string          `json:"priority"`
	DueDate         *time.Time       `json:"dueDate"`
	AssignedUserIDs *[]string        `json:"assignedUserIds"`
	Tags            *[]string        `json:"tags"`
	Color           *string          `json:"color"`
	Dependencies    *[]string        `json:"dependencies"`
	ParentTaskID    *string          `json:"parentTaskId"`
	InvoiceImage    *string          `json:"invoiceImage"`
	InvoiceVendor   *string          `json:"invoiceVendor"`
	InvoiceNumber   *string          `json:"invoiceNumber"`
	InvoiceAmount   *decimal.Decimal `json:"invoiceAmount"`
	InvoiceDate     *time.Time       `json:"invoiceDate"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task := &model.Task{
		ID:              req.ID,
		Title:           req.Title,
		Description:     req.Description,
		Status:          req.Status,
		Priority:        req.Priority,
		DueDate:         req.DueDate,
		AssignedUserIDs: pq.StringArray(req.AssignedUserIDs),
		Tags:            pq.StringArray(req.Tags),
		CompanyID:       req.CompanyID,
		ProjectID:       req.ProjectID,
		Color:           req.Color,
		Dependencies:    pq.StringArray(req.Dependencies),
		ParentTaskID:    req.ParentTaskID,
		InvoiceImage:    req.InvoiceImage,
		InvoiceVendor:   req.InvoiceVendor,
		InvoiceNumber:   req.InvoiceNumber,
		InvoiceAmount:   req.InvoiceAmount,
		InvoiceDate:     req.InvoiceDate,
	}
	if req.CreatedAt != nil {
		task.CreatedAt = *req.CreatedAt
	}

	created, err := h.taskRepo.Create(c.Request.Context(), task)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TaskHandler) GetAll(c *gin.Context) {
	tasks, err := h.taskRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetByID(c *gin.Context) {
	task, err := h.taskRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) GetByProject(c *gin.Context) {
	tasks, err := h.taskRepo.GetByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetByCompany(c *gin.Context) {
	tasks, err := h.taskRepo.GetByCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetByClient returns tasks whose project is billed to the client.
func (h *TaskHandler) GetByClient(c *gin.Context) {
	tasks, err := h.taskRepo.GetByClient(c.Request.Context(), c.Param("id"), c.Param("client_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	upd := repository.TaskUpdate{
		Title:         req.Title,
		Description:   req.Description,
		Status:        req.Status,
		Priority:      req.Priority,
		DueDate:       req.DueDate,
		Color:         req.Color,
		ParentTaskID:  req.ParentTaskID,
		InvoiceImage:  req.InvoiceImage,
		InvoiceVendor: req.InvoiceVendor,
		InvoiceNumber: req.InvoiceNumber,
		InvoiceAmount: req.InvoiceAmount,
		InvoiceDate:   req.InvoiceDate,
	}
	if req.AssignedUserIDs != nil {
		ids := pq.StringArray(*req.AssignedUserIDs)
		upd.AssignedUserIDs = &ids
	}
	if req.Tags != nil {
		tags := pq.StringArray(*req.Tags)
		upd.Tags = &tags
	}
	if req.Dependencies != nil {
		deps := pq.StringArray(*req.Dependencies)
		upd.Dependencies = &deps
	}

	task, err := h.taskRepo.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.taskRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
