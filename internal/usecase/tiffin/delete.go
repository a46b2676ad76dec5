package tiffin

import (
	"context"

	"github.com/snejhirpara/tiffin-tracker/internal/audit"
	domain "github.com/snejhirpara/tiffin-tracker/internal/domain/tiffin"
)

type DeleteTiffin struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteTiffin(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteTiffin {
	return &DeleteTiffin{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes an entry by id. Deleting an already-absent entry is a
// no-op success; only a storage failure surfaces as an error.
func (uc *DeleteTiffin) Execute(
	ctx context.Context,
	actorID uint,
	id uint,
) error {

	if err := uc.repo.DeleteTiffinByID(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionTiffinDeleted,
		Entity:   "tiffin",
		EntityID: &id,
	})

	return nil
}
