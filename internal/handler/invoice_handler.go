package handler

import (
	"net/http"
	"time"

	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type InvoiceHandler struct {
	invoiceRepo *repository.InvoiceRepository
	taskRepo    *repository.TaskRepository
}

func NewInvoiceHandler(invoiceRepo *repository.InvoiceRepository, taskRepo *repository.TaskRepository) *InvoiceHandler {
	return &InvoiceHandler{invoiceRepo: invoiceRepo, taskRepo: taskRepo}
}

type CreateInvoiceRequest struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoiceNumber" binding:"required"`
	CompanyID     string             `json:"companyId" binding:"required"`
	ClientID      string             `json:"clientId" binding:"required"`
	IssueDate     time.Time          `json:"issueDate" binding:"required"`
	DueDate       time.Time          `json:"dueDate" binding:"required"`
	LineItems     model.LineItemList `json:"lineItems"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
	Notes         *string            `json:"notes"`
	Currency      string             `json:"currency"`
	TaxRate       *decimal.Decimal   `json:"taxRate"`
}

type UpdateInvoiceRequest struct {
	InvoiceNumber *string             `json:"invoiceNumber"`
	ClientID      *string             `json:"clientId"`
	IssueDate     *time.Time          `json:"issueDate"`
	DueDate       *time.Time          `json:"dueDate"`
	LineItems     *model.LineItemList `json:"lineItems"`
	Total         *decimal.Decimal    `json:"total"`
	Status        *string             `json:"status"`
	Notes         *string             `json:"notes"`
	Currency      *string             `json:"currency"`
	TaxRate       *decimal.Decimal    `json:"taxRate"`
}

type InvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Draft Sent Paid Overdue"`
}

// Create persists the invoice as supplied by the caller and stamps every
// referenced task with the new invoice id in the same request.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	invoice := &model.Invoice{
		ID:            req.ID,
		InvoiceNumber: req.InvoiceNumber,
		CompanyID:     req.CompanyID,
		ClientID:      req.ClientID,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		LineItems:     req.LineItems,
		Total:         req.Total,
		Status:        req.Status,
		Notes:         req.Notes,
		Currency:      req.Currency,
	}
	if req.TaxRate != nil {
		invoice.TaxRate = *req.TaxRate
	}

	created, err := h.invoiceRepo.Create(c.Request.Context(), invoice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		return
	}

	taskIDs := make([]string, 0, len(created.LineItems))
	for _, item := range created.LineItems {
		if item.TaskID != "" {
			taskIDs = append(taskIDs, item.TaskID)
		}
	}
	if err := h.taskRepo.MarkInvoiced(c.Request.Context(), taskIDs, created.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark tasks as invoiced"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *InvoiceHandler) GetAll(c *gin.Context) {
	invoices, err := h.invoiceRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoices"})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *InvoiceHandler) GetByID(c *gin.Context) {
	invoice, err := h.invoiceRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		return
	}
	if invoice == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) GetByCompany(c *gin.Context) {
	invoices, err := h.invoiceRepo.GetByCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoices"})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	invoice, err := h.invoiceRepo.Update(c.Request.Context(), c.Param("id"), repository.InvoiceUpdate{
		InvoiceNumber: req.InvoiceNumber,
		ClientID:      req.ClientID,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		LineItems:     req.LineItems,
		Total:         req.Total,
		Status:        req.Status,
		Notes:         req.Notes,
		Currency:      req.Currency,
		TaxRate:       req.TaxRate,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		return
	}
	if invoice == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// UpdateStatus applies a caller-driven status override with its timestamp
// side effects. It never consults the payment ledger.
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	var req InvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	invoice, err := h.invoiceRepo.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice status"})
		return
	}
	if invoice == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	c.JSON(http.StatusOK, invoice)
}
