package repository

import (
	"context"
	"errors"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create persists a project. MemberIDs is always an explicit list, never
// null, so round-trips stay stable.
func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) (*model.Project, error) {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	if project.Visibility == "" {
		project.Visibility = model.VisibilityPublic
	}
	if project.MemberIDs == nil {
		project.MemberIDs = pq.StringArray{}
	}
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) GetAll(ctx context.Context) ([]model.Project, error) {
	projects := []model.Project{}
	err := r.db.WithContext(ctx).Order("name").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) GetByCompany(ctx context.Context, companyID string) ([]model.Project, error) {
	projects := []model.Project{}
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Order("name").Find(&projects).Error
	return projects, err
}

// ProjectUpdate is a partial merge; nil fields are left untouched.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Color       *string
	Visibility  *string
	MemberIDs   *pq.StringArray
	ClientID    *string
}

func (r *ProjectRepository) Update(ctx context.Context, id string, upd ProjectUpdate) (*model.Project, error) {
	project, err := r.GetByID(ctx, id)
	if err != nil || project == nil {
		return nil, err
	}

	if upd.Name != nil {
		project.Name = *upd.Name
	}
	if upd.Description != nil {
		project.Description = upd.Description
	}
	if upd.Color != nil {
		project.Color = upd.Color
	}
	if upd.Visibility != nil {
		project.Visibility = *upd.Visibility
	}
	if upd.MemberIDs != nil {
		project.MemberIDs = *upd.MemberIDs
	}
	if upd.ClientID != nil {
		project.ClientID = upd.ClientID
	}

	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// AddMember is an idempotent set operation: adding an existing member is a
// no-op that still returns the unchanged project.
func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID string) (*model.Project, error) {
	project, err := r.GetByID(ctx, projectID)
	if err != nil || project == nil {
		return nil, err
	}
	for _, id := range project.MemberIDs {
		if id == userID {
			return project, nil
		}
	}
	project.MemberIDs = append(project.MemberIDs, userID)
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// RemoveMember is the idempotent counterpart: removing an absent member is
// a no-op.
func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) (*model.Project, error) {
	project, err := r.GetByID(ctx, projectID)
	if err != nil || project == nil {
		return nil, err
	}
	members := pq.StringArray{}
	found := false
	for _, id := range project.MemberIDs {
		if id == userID {
			found = true
			continue
		}
		members = append(members, id)
	}
	if !found {
		return project, nil
	}
	project.MemberIDs = members
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project and all of its tasks in one transaction, so
// a failure mid-way leaves neither orphaned tasks nor a dangling project.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		return nil
	})
}
