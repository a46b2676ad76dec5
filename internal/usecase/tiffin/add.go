package tiffin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/snejhirpara/tiffin-tracker/internal/audit"
	domain "github.com/snejhirpara/tiffin-tracker/internal/domain/tiffin"
	domainuser "github.com/snejhirpara/tiffin-tracker/internal/domain/user"
	"github.com/snejhirpara/tiffin-tracker/internal/httperr"
	"github.com/snejhirpara/tiffin-tracker/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type AddTiffinInput struct {
	Count        int
	Type         string
	CancelReason *string
	TakenByID    uint
	Price        float64
}

// ======================================================
// USE CASE
// ======================================================

type AddTiffin struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddTiffin(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AddTiffin {
	return &AddTiffin{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AddTiffin) Execute(
	ctx context.Context,
	in AddTiffinInput,
) (*models.Tiffin, error) {

	entry := &models.Tiffin{
		Count:        in.Count,
		Type:         in.Type,
		CancelReason: in.CancelReason,
		TakenByID:    in.TakenByID,
		Price:        in.Price,
	}
	if entry.Type == "" {
		entry.Type = string(domain.DefaultType())
	}

	if err := domain.ValidateNew(entry); err != nil {
		return nil, err
	}

	// Entries belong to User-role accounts only; an Admin has none by
	// construction, so a takenBy pointing at one is rejected outright.
	owner, err := uc.repo.GetUserByID(ctx, in.TakenByID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("taken_by_not_found")
		}
		return nil, err
	}
	if domainuser.IsAdmin(owner.Role) {
		return nil, httperr.ErrBusiness("taken_by_is_admin")
	}

	if err := uc.repo.CreateTiffin(ctx, entry); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.TakenByID,
		Action:   audit.ActionTiffinAdded,
		Entity:   "tiffin",
		EntityID: &entry.ID,
	})

	return entry, nil
}
