package handler

import (
	"net/http"

	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyRepo *repository.CompanyRepository
}

func NewCompanyHandler(companyRepo *repository.CompanyRepository) *CompanyHandler {
	return &CompanyHandler{companyRepo: companyRepo}
}

type CompanyRequest struct {
	ID      string  `json:"id"`
	Name    string  `json:"name" binding:"required"`
	Website *string `json:"website"`
	Address *string `json:"address"`
}

type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	Website *string `json:"website"`
	Address *string `json:"address"`
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	company, err := h.companyRepo.Create(c.Request.Context(), &model.Company{
		ID:      req.ID,
		Name:    req.Name,
		Website: req.Website,
		Address: req.Address,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company"})
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) GetAll(c *gin.Context) {
	companies, err := h.companyRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve companies"})
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) GetByID(c *gin.Context) {
	company, err := h.companyRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve company"})
		return
	}
	if company == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	company, err := h.companyRepo.Update(c.Request.Context(), c.Param("id"), repository.CompanyUpdate{
		Name:    req.Name,
		Website: req.Website,
		Address: req.Address,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company"})
		return
	}
	if company == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.companyRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete company"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}
