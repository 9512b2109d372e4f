package repository

import (
	"context"
	"errors"
	"strings"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GetAll(ctx context.Context) ([]model.User, error)
	GetByCompany(ctx context.Context, companyID string) ([]model.User, error)
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UserUpdate is a partial merge: nil fields are left untouched. A
// non-empty CompanyRoles replaces the existing set entirely, and
// CompanyIDs is re-derived from it unless explicitly overridden.
type UserUpdate struct {
	Name         *string
	Email        *string
	Role         *string
	PositionID   *string
	Avatar       *string
	Password     *string
	CompanyIDs   *pq.StringArray
	CompanyRoles model.CompanyRoleList
}

// Create inserts a new user, or merges into the existing record when the
// email (case-insensitive) already exists under the same id. A matching
// email under a different id is a conflict.
func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	existing, err := r.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if user.ID == "" || user.ID != existing.ID {
			return nil, ErrDuplicateEmail
		}
		return r.Update(ctx, existing.ID, mergeUpdate(user))
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.NormalizeRoles()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Update merges the given fields into the stored user. Unknown ids yield
// (nil, nil).
func (r *UserRepository) Update(ctx context.Context, id string, upd UserUpdate) (*model.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}

	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}
	if upd.PositionID != nil {
		user.PositionID = upd.PositionID
	}
	if upd.Avatar != nil {
		user.Avatar = *upd.Avatar
	}
	if upd.Password != nil {
		user.Password = *upd.Password
	}
	if len(upd.CompanyRoles) > 0 {
		user.CompanyRoles = upd.CompanyRoles
		user.Role = upd.CompanyRoles[0].Role
		user.CompanyIDs = user.PublicCompanyIDs()
	}
	if upd.CompanyIDs != nil {
		user.CompanyIDs = *upd.CompanyIDs
	}

	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail matches case-insensitively. This is the only read path that
// retains the password; it backs login and duplicate detection.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := r.db.WithContext(ctx).Order("name").Find(&users).Error
	return users, err
}

// GetByCompany filters through the model's membership resolver so that
// legacy companyIds-only users resolve alongside companyRoles users.
func (r *UserRepository) GetByCompany(ctx context.Context, companyID string) ([]model.User, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	users := []model.User{}
	for _, u := range all {
		if u.MemberOf(companyID) {
			users = append(users, u)
		}
	}
	return users, nil
}

// mergeUpdate lifts the non-zero fields of an upserted user into a partial
// update against the existing record.
func mergeUpdate(user *model.User) UserUpdate {
	upd := UserUpdate{CompanyRoles: user.CompanyRoles}
	if user.Name != "" {
		upd.Name = &user.Name
	}
	if user.Role != "" {
		upd.Role = &user.Role
	}
	if user.PositionID != nil {
		upd.PositionID = user.PositionID
	}
	if user.Avatar != "" {
		upd.Avatar = &user.Avatar
	}
	if user.Password != "" {
		upd.Password = &user.Password
	}
	if len(user.CompanyRoles) == 0 && user.CompanyIDs != nil {
		ids := user.CompanyIDs
		upd.CompanyIDs = &ids
	}
	return upd
}
