package handler

import (
	"net/http"
	"time"

	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	paymentRepo *repository.PaymentRepository
}

func NewPaymentHandler(paymentRepo *repository.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{paymentRepo: paymentRepo}
}

type CreatePaymentRequest struct {
	InvoiceID string          `json:"invoiceId" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Method    *string         `json:"method"`
	Note      *string         `json:"note"`
	PaidAt    *time.Time      `json:"paidAt"`
}

// Create appends a payment; the invoice status is reconciled in the same
// store operation.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	payment := &model.Payment{
		InvoiceID: req.InvoiceID,
		Amount:    req.Amount,
		Method:    req.Method,
		Note:      req.Note,
	}
	if req.PaidAt != nil {
		payment.PaidAt = *req.PaidAt
	}

	created, err := h.paymentRepo.Create(c.Request.Context(), payment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListByInvoice returns the payment ledger ordered by paidAt ascending.
func (h *PaymentHandler) ListByInvoice(c *gin.Context) {
	payments, err := h.paymentRepo.ListByInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}
