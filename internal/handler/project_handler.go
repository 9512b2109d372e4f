package handler

import (
	"errors"
	"net/http"

	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type ProjectHandler struct {
	projectRepo *repository.ProjectRepository
}

func NewProjectHandler(projectRepo *repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{projectRepo: projectRepo}
}

type CreateProjectRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	Color       *string  `json:"color"`
	CompanyID   string   `json:"companyId" binding:"required"`
	Visibility  string   `json:"visibility"`
	MemberIDs   []string `json:"memberIds"`
	ClientID    *string  `json:"clientId"`
}

type UpdateProjectRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Color       *string   `json:"color"`
	Visibility  *string   `json:"visibility"`
	MemberIDs   *[]string `json:"memberIds"`
	ClientID    *string   `json:"clientId"`
}

type ProjectMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := h.projectRepo.Create(c.Request.Context(), &model.Project{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		CompanyID:   req.CompanyID,
		Visibility:  req.Visibility,
		MemberIDs:   pq.StringArray(req.MemberIDs),
		ClientID:    req.ClientID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) GetAll(c *gin.Context) {
	projects, err := h.projectRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	project, err := h.projectRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) GetByCompany(c *gin.Context) {
	projects, err := h.projectRepo.GetByCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	upd := repository.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Visibility:  req.Visibility,
		ClientID:    req.ClientID,
	}
	if req.MemberIDs != nil {
		members := pq.StringArray(*req.MemberIDs)
		upd.MemberIDs = &members
	}

	project, err := h.projectRepo.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// Delete cascades to the project's tasks; both go or neither does.
func (h *ProjectHandler) Delete(c *gin.Context) {
	err := h.projectRepo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

func (h *ProjectHandler) AddMember(c *gin.Context) {
	var req ProjectMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := h.projectRepo.AddMember(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	project, err := h.projectRepo.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}
