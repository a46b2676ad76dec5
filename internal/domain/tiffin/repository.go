package tiffin

import (
	"context"
	"time"

	"github.com/snejhirpara/tiffin-tracker/internal/models"
)

type Repository interface {
	// -------- User --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Tiffin (write) --------
	CreateTiffin(
		ctx context.Context,
		t *models.Tiffin,
	) error

	DeleteTiffinByID(
		ctx context.Context,
		id uint,
	) error

	// -------- Tiffin (read) --------
	ListTiffinsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Tiffin, error)

	ListTiffinsForUserInRange(
		ctx context.Context,
		userID uint,
		start time.Time,
		end time.Time,
	) ([]models.Tiffin, error)
}
