package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/snejhirpara/tiffin-tracker/internal/domain/tiffin"
	"github.com/snejhirpara/tiffin-tracker/internal/models"
)

type TiffinGormRepository struct {
	db *gorm.DB
}

func NewTiffinGormRepository(db *gorm.DB) *TiffinGormRepository {
	return &TiffinGormRepository{db: db}
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *TiffinGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// --------------------------------------------------
// Tiffin (write)
// --------------------------------------------------

func (r *TiffinGormRepository) CreateTiffin(
	ctx context.Context,
	t *models.Tiffin,
) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// DeleteTiffinByID deletes unconditionally. Zero matched rows is not an
// error: the entry is already absent.
func (r *TiffinGormRepository) DeleteTiffinByID(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Tiffin{}, id).Error
}

// --------------------------------------------------
// Tiffin (read)
// --------------------------------------------------

func (r *TiffinGormRepository) ListTiffinsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Tiffin, error) {

	var tiffins []models.Tiffin
	if err := r.db.WithContext(ctx).
		Where("taken_by_id = ?", userID).
		Order("created_at ASC").
		Find(&tiffins).Error; err != nil {
		return nil, err
	}

	return tiffins, nil
}

func (r *TiffinGormRepository) ListTiffinsForUserInRange(
	ctx context.Context,
	userID uint,
	start time.Time,
	end time.Time,
) ([]models.Tiffin, error) {

	var tiffins []models.Tiffin
	if err := r.db.WithContext(ctx).
		Where(
			"taken_by_id = ? AND created_at >= ? AND created_at < ?",
			userID,
			start,
			end,
		).
		Order("created_at ASC").
		Find(&tiffins).Error; err != nil {
		return nil, err
	}

	return tiffins, nil
}

// Compile-time check
var _ domain.Repository = (*TiffinGormRepository)(nil)
