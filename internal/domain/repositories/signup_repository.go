package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/dooza/social-signups-api/internal/domain/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ISignupRepository is the narrow store contract every use case depends
// on. The production backends are GORM/Postgres (this file) and the
// Supabase REST store; tests substitute an in-memory double.
type ISignupRepository interface {
	Create(ctx context.Context, signup *entities.SocialSignup) error
	FindAll(ctx context.Context) ([]entities.SocialSignup, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.SignupStatus) (*entities.SocialSignup, error)
	DeleteAll(ctx context.Context) error
}

type SignupRepository struct {
	db *gorm.DB
}

func NewSignupRepository(db *gorm.DB) *SignupRepository {
	return &SignupRepository{
		db: db,
	}
}

func (r *SignupRepository) Create(ctx context.Context, signup *entities.SocialSignup) error {
	return r.db.WithContext(ctx).Create(signup).Error
}

// FindAll returns every signup, newest first.
func (r *SignupRepository) FindAll(ctx context.Context) ([]entities.SocialSignup, error) {
	var signups []entities.SocialSignup

	// Use the created_at index
	if err := r.db.WithContext(ctx).
		Model(&entities.SocialSignup{}).
		Order("created_at DESC").
		Find(&signups).Error; err != nil {
		return nil, err
	}

	return signups, nil
}

func (r *SignupRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.SocialSignup{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// UpdateStatus sets status and updated_at in a single statement and
// returns the fresh row. Missing ids map to ErrSignupNotFound.
func (r *SignupRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.SignupStatus) (*entities.SocialSignup, error) {
	now := time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&entities.SocialSignup{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrSignupNotFound
	}

	var signup entities.SocialSignup
	if err := r.db.WithContext(ctx).First(&signup, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSignupNotFound
		}
		return nil, err
	}

	return &signup, nil
}

// DeleteAll removes every row. Callers needing the affected count must
// query Count first; the two steps are not transactional.
func (r *SignupRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("id IS NOT NULL").
		Delete(&entities.SocialSignup{}).Error
}
