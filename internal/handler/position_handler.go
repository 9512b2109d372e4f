package handler

import (
	"net/http"

	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
)

type PositionHandler struct {
	positionRepo *repository.PositionRepository
}

func NewPositionHandler(positionRepo *repository.PositionRepository) *PositionHandler {
	return &PositionHandler{positionRepo: positionRepo}
}

type PositionRequest struct {
	ID        string  `json:"id"`
	Title     string  `json:"title" binding:"required"`
	CompanyID *string `json:"companyId"`
}

func (h *PositionHandler) Create(c *gin.Context) {
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	position, err := h.positionRepo.Create(c.Request.Context(), &model.Position{
		ID:        req.ID,
		Title:     req.Title,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create position"})
		return
	}
	c.JSON(http.StatusCreated, position)
}

func (h *PositionHandler) GetAll(c *gin.Context) {
	positions, err := h.positionRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve positions"})
		return
	}
	c.JSON(http.StatusOK, positions)
}
