package repository

import (
	"context"
	"time"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *CommentRepository) GetByTask(ctx context.Context, taskID string) ([]model.Comment, error) {
	comments := []model.Comment{}
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("created_at").Find(&comments).Error
	return comments, err
}
