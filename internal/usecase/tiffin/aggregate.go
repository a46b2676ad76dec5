package tiffin

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/snejhirpara/tiffin-tracker/internal/domain/tiffin"
	domainuser "github.com/snejhirpara/tiffin-tracker/internal/domain/user"
	"github.com/snejhirpara/tiffin-tracker/internal/httperr"
	"github.com/snejhirpara/tiffin-tracker/internal/models"
)

// ======================================================
// OUTPUT
// ======================================================

type EntryInfo struct {
	ID           uint      `json:"id"`
	Count        int       `json:"count"`
	Type         string    `json:"type"`
	CancelReason *string   `json:"reason_for_cancel_or_less_than_2"`
	Price        float64   `json:"price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MonthlyAggregate joins the month's totals with the owning user's public
// profile. Entries is populated only by the datewise variant.
type MonthlyAggregate struct {
	TotalTiffinsCount int                  `json:"total_tiffins_count"`
	TotalAmount       float64              `json:"total_amount"`
	Month             string               `json:"month"`
	Year              int                  `json:"year"`
	User              models.PublicProfile `json:"user"`
	Entries           []EntryInfo          `json:"datewise_tiffins_info,omitempty"`
}

// ======================================================
// SHARED PIPELINE
// ======================================================

// monthEntries resolves the target user, the month window, and the entries
// inside it. The target must exist and hold the User role.
func monthEntries(
	ctx context.Context,
	repo domain.Repository,
	userID uint,
	month string,
	year int,
) (*models.User, []models.Tiffin, string, error) {

	owner, err := repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, "", httperr.ErrBusiness("user_not_found")
		}
		return nil, nil, "", err
	}
	if domainuser.IsAdmin(owner.Role) {
		return nil, nil, "", httperr.ErrBusiness("target_is_admin")
	}

	start, end, canonical, err := MonthRange(month, year)
	if err != nil {
		return nil, nil, "", err
	}

	entries, err := repo.ListTiffinsForUserInRange(ctx, userID, start, end)
	if err != nil {
		return nil, nil, "", err
	}

	return owner, entries, canonical, nil
}

func sumEntries(entries []models.Tiffin) (totalCount int, totalAmount float64) {
	for _, t := range entries {
		totalCount += t.Count
		totalAmount += t.Price
	}
	return totalCount, totalAmount
}

// ======================================================
// MONTHLY SUMMARY (totals only)
// ======================================================

type MonthlySummary struct {
	repo domain.Repository
}

func NewMonthlySummary(repo domain.Repository) *MonthlySummary {
	return &MonthlySummary{repo: repo}
}

// Execute returns nil (not an error) when the user has no entries in range.
func (uc *MonthlySummary) Execute(
	ctx context.Context,
	userID uint,
	month string,
	year int,
) (*MonthlyAggregate, error) {

	owner, entries, canonical, err := monthEntries(ctx, uc.repo, userID, month, year)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	totalCount, totalAmount := sumEntries(entries)

	return &MonthlyAggregate{
		TotalTiffinsCount: totalCount,
		TotalAmount:       totalAmount,
		Month:             canonical,
		Year:              year,
		User:              owner.Public(),
	}, nil
}

// ======================================================
// MONTHLY DATEWISE (per-entry listing)
// ======================================================

type MonthlyDatewise struct {
	repo domain.Repository
}

func NewMonthlyDatewise(repo domain.Repository) *MonthlyDatewise {
	return &MonthlyDatewise{repo: repo}
}

func (uc *MonthlyDatewise) Execute(
	ctx context.Context,
	userID uint,
	month string,
	year int,
) (*MonthlyAggregate, error) {

	owner, entries, canonical, err := monthEntries(ctx, uc.repo, userID, month, year)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	totalCount, totalAmount := sumEntries(entries)

	infos := make([]EntryInfo, 0, len(entries))
	for _, t := range entries {
		infos = append(infos, EntryInfo{
			ID:           t.ID,
			Count:        t.Count,
			Type:         t.Type,
			CancelReason: t.CancelReason,
			Price:        t.Price,
			CreatedAt:    t.CreatedAt,
			UpdatedAt:    t.UpdatedAt,
		})
	}

	return &MonthlyAggregate{
		TotalTiffinsCount: totalCount,
		TotalAmount:       totalAmount,
		Month:             canonical,
		Year:              year,
		User:              owner.Public(),
		Entries:           infos,
	}, nil
}
