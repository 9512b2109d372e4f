package handler

import (
	"errors"
	"net/http"

	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type UserHandler struct {
	userRepo repository.UserRepositoryInterface
}

func NewUserHandler(userRepo repository.UserRepositoryInterface) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

type CreateUserRequest struct {
	ID           string                `json:"id"`
	Name         string                `json:"name" binding:"required"`
	Email        string                `json:"email" binding:"required,email"`
	Role         string                `json:"role"`
	CompanyIDs   []string              `json:"companyIds"`
	PositionID   *string               `json:"positionId"`
	CompanyRoles model.CompanyRoleList `json:"companyRoles"`
	Avatar       string                `json:"avatar"`
	Password     string                `json:"password"`
}

type UpdateUserRequest struct {
	Name         *string               `json:"name"`
	Email        *string               `json:"email"`
	Role         *string               `json:"role"`
	CompanyIDs   *[]string             `json:"companyIds"`
	PositionID   *string               `json:"positionId"`
	CompanyRoles model.CompanyRoleList `json:"companyRoles"`
	Avatar       *string               `json:"avatar"`
	Password     *string               `json:"password"`
}

// Create registers a user, or upserts when the email already exists under
// the same id. A mismatched id on an existing email is a conflict.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user := &model.User{
		ID:           req.ID,
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		CompanyIDs:   pq.StringArray(req.CompanyIDs),
		PositionID:   req.PositionID,
		CompanyRoles: req.CompanyRoles,
		Avatar:       req.Avatar,
		Password:     req.Password,
	}

	created, err := h.userRepo.Create(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, created.Sanitized())
}

func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.userRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	c.JSON(http.StatusOK, sanitizeAll(users))
}

func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.userRepo.GetByID(c.Request.Context(), c.Param("id"))
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

func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	upd := repository.UserUpdate{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		PositionID:   req.PositionID,
		Avatar:       req.Avatar,
		Password:     req.Password,
		CompanyRoles: req.CompanyRoles,
	}
	if req.CompanyIDs != nil {
		ids := pq.StringArray(*req.CompanyIDs)
		upd.CompanyIDs = &ids
	}

	user, err := h.userRepo.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user.Sanitized())
}

// GetByCompany lists company members, resolving legacy companyIds-only
// users alongside companyRoles users.
func (h *UserHandler) GetByCompany(c *gin.Context) {
	users, err := h.userRepo.GetByCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	c.JSON(http.StatusOK, sanitizeAll(users))
}

func sanitizeAll(users []model.User) []*model.User {
	sanitized := make([]*model.User, len(users))
	for i := range users {
		sanitized[i] = users[i].Sanitized()
	}
	return sanitized
}
