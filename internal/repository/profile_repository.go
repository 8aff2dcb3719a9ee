package repository

import (
	"context"

	"task-api/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository profile data access
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a ProfileRepository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a profile. A second profile for the same user fails with
// gorm.ErrDuplicatedKey.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetByUserID fetches the profile owned by userID
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update applies column updates and reloads the profile
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	db := r.db.WithContext(ctx)
	if err := db.Model(profile).Updates(updates).Error; err != nil {
		return err
	}
	return db.First(profile, profile.ID).Error
}
