package repository

import (
	"context"
	"errors"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokenRepository struct {
	db *gorm.DB
}

type TokenRepositoryInterface interface {
	Issue(ctx context.Context, userID string) (*model.Token, error)
	Revoke(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*model.User, error)
}

var _ TokenRepositoryInterface = (*TokenRepository)(nil)

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Issue creates a fresh opaque token for the user. One row per session;
// tokens never expire on their own.
func (r *TokenRepository) Issue(ctx context.Context, userID string) (*model.Token, error) {
	token := &model.Token{
		Token:  uuid.NewString(),
		UserID: userID,
	}
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return nil, err
	}
	return token, nil
}

// Revoke deletes the token row. Revoking an unknown token is a no-op.
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Token{}).Error
}

// Resolve maps a bearer token to its user. Unknown or dangling tokens
// yield (nil, nil).
func (r *TokenRepository) Resolve(ctx context.Context, token string) (*model.User, error) {
	var row model.Token
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user model.User
	err = r.db.WithContext(ctx).Where("id = ?", row.UserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
