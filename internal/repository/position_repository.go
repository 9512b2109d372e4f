package repository

import (
	"context"
	"errors"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PositionRepository struct {
	db *gorm.DB
}

func NewPositionRepository(db *gorm.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

func (r *PositionRepository) Create(ctx context.Context, position *model.Position) (*model.Position, error) {
	if position.ID == "" {
		position.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(position).Error; err != nil {
		return nil, err
	}
	return position, nil
}

func (r *PositionRepository) GetByID(ctx context.Context, id string) (*model.Position, error) {
	var position model.Position
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&position).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *PositionRepository) GetAll(ctx context.Context) ([]model.Position, error) {
	positions := []model.Position{}
	err := r.db.WithContext(ctx).Order("title").Find(&positions).Error
	return positions, err
}
