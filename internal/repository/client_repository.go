package repository

import (
	"context"
	"errors"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *model.Client) (*model.Client, error) {
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*model.Client, error) {
	var client model.Client
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) GetAll(ctx context.Context) ([]model.Client, error) {
	clients := []model.Client{}
	err := r.db.WithContext(ctx).Order("name").Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) GetByCompany(ctx context.Context, companyID string) ([]model.Client, error) {
	clients := []model.Client{}
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Order("name").Find(&clients).Error
	return clients, err
}

// ClientUpdate is a partial merge; nil fields are left untouched.
type ClientUpdate struct {
	Name    *string
	Email   *string
	Address *string
}

func (r *ClientRepository) Update(ctx context.Context, id string, upd ClientUpdate) (*model.Client, error) {
	client, err := r.GetByID(ctx, id)
	if err != nil || client == nil {
		return nil, err
	}
	if upd.Name != nil {
		client.Name = *upd.Name
	}
	if upd.Email != nil {
		client.Email = *upd.Email
	}
	if upd.Address != nil {
		client.Address = *upd.Address
	}
	if err := r.db.WithContext(ctx).Save(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Client{}).Error
}
