package tiffin

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/snejhirpara/tiffin-tracker/internal/domain/tiffin"
	"github.com/snejhirpara/tiffin-tracker/internal/httperr"
	"github.com/snejhirpara/tiffin-tracker/internal/models"
)

type TakenTiffinInfo struct {
	ID           uint                 `json:"id"`
	Count        int                  `json:"count"`
	Type         string               `json:"type"`
	CancelReason *string              `json:"reason_for_cancel_or_less_than_2"`
	Price        float64              `json:"price"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	TakenByUser  models.PublicProfile `json:"taken_by_user"`
}

// ListTakenTiffins returns every entry belonging to the calling user, each
// carrying the caller's public profile.
type ListTakenTiffins struct {
	repo domain.Repository
}

func NewListTakenTiffins(repo domain.Repository) *ListTakenTiffins {
	return &ListTakenTiffins{repo: repo}
}

func (uc *ListTakenTiffins) Execute(
	ctx context.Context,
	userID uint,
) ([]TakenTiffinInfo, error) {

	owner, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}

	entries, err := uc.repo.ListTiffinsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := owner.Public()
	out := make([]TakenTiffinInfo, 0, len(entries))
	for _, t := range entries {
		out = append(out, TakenTiffinInfo{
			ID:           t.ID,
			Count:        t.Count,
			Type:         t.Type,
			CancelReason: t.CancelReason,
			Price:        t.Price,
			CreatedAt:    t.CreatedAt,
			UpdatedAt:    t.UpdatedAt,
			TakenByUser:  profile,
		})
	}

	return out, nil
}
