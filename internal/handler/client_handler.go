package handler

import (
	"net/http"

	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientRepo *repository.ClientRepository
}

func NewClientHandler(clientRepo *repository.ClientRepository) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo}
}

type ClientRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	CompanyID string `json:"companyId" binding:"required"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	client, err := h.clientRepo.Create(c.Request.Context(), &model.Client{
		ID:        req.ID,
		Name:      req.Name,
		Email:     req.Email,
		Address:   req.Address,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) GetAll(c *gin.Context) {
	clients, err := h.clientRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) GetByID(c *gin.Context) {
	client, err := h.clientRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		return
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) GetByCompany(c *gin.Context) {
	clients, err := h.clientRepo.GetByCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Update(c *gin.Context) {
	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	client, err := h.clientRepo.Update(c.Request.Context(), c.Param("id"), repository.ClientUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.clientRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}
