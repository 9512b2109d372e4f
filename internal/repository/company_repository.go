package repository

import (
	"context"
	"errors"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company *model.Company) (*model.Company, error) {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) GetAll(ctx context.Context) ([]model.Company, error) {
	companies := []model.Company{}
	err := r.db.WithContext(ctx).Order("name").Find(&companies).Error
	return companies, err
}

// CompanyUpdate is a partial merge; nil fields are left untouched.
type CompanyUpdate struct {
	Name    *string
	Website *string
	Address *string
}

func (r *CompanyRepository) Update(ctx context.Context, id string, upd CompanyUpdate) (*model.Company, error) {
	company, err := r.GetByID(ctx, id)
	if err != nil || company == nil {
		return nil, err
	}
	if upd.Name != nil {
		company.Name = *upd.Name
	}
	if upd.Website != nil {
		company.Website = upd.Website
	}
	if upd.Address != nil {
		company.Address = upd.Address
	}
	if err := r.db.WithContext(ctx).Save(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

// Delete removes the company row only. Dependents are not cascaded; that
// is the documented contract for everything except project deletion.
func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Company{}).Error
}
