package handler

import (
	"net/http"

	"taskhub/internal/middleware"
	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentRepo *repository.CommentRepository
}

func NewCommentHandler(commentRepo *repository.CommentRepository) *CommentHandler {
	return &CommentHandler{commentRepo: commentRepo}
}

type CreateCommentRequest struct {
	TaskID  string `json:"taskId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// Create appends a comment attributed to the authenticated user.
func (h *CommentHandler) Create(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment, err := h.commentRepo.Create(c.Request.Context(), &model.Comment{
		TaskID:  req.TaskID,
		UserID:  userID.(string),
		Content: req.Content,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) GetByTask(c *gin.Context) {
	comments, err := h.commentRepo.GetByTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}
