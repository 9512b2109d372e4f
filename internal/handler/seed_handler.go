package handler

import (
	"net/http"

	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
)

type SeedHandler struct {
	seedRepo *repository.SeedRepository
}

func NewSeedHandler(seedRepo *repository.SeedRepository) *SeedHandler {
	return &SeedHandler{seedRepo: seedRepo}
}

// Reset wipes the store and repopulates it from the fixture dataset.
// Destructive, synchronous, intended for demo and test bootstrapping.
func (h *SeedHandler) Reset(c *gin.Context) {
	if err := h.seedRepo.Reset(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed database"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Database seeded"})
}
