package handler

import (
	"net/http"

	"taskhub/internal/middleware"
	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userRepo  repository.UserRepositoryInterface
	tokenRepo repository.TokenRepositoryInterface
}

func NewAuthHandler(userRepo repository.UserRepositoryInterface, tokenRepo repository.TokenRepositoryInterface) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, tokenRepo: tokenRepo}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login exchanges credentials for an opaque bearer token. The credential
// comparison is a direct match against the stored value.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.userRepo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if user == nil || user.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.tokenRepo.Issue(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token.Token,
		User:  user.Sanitized(),
	})
}

// Logout revokes the session token used to authenticate this request.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, exists := c.Get(middleware.TokenKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if err := h.tokenRepo.Revoke(c.Request.Context(), token.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated user, sanitized.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user.Sanitized())
}
