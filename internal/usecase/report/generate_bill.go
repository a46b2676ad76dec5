package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/snejhirpara/tiffin-tracker/internal/audit"
	domain "github.com/snejhirpara/tiffin-tracker/internal/domain/tiffin"
	domainuser "github.com/snejhirpara/tiffin-tracker/internal/domain/user"
	"github.com/snejhirpara/tiffin-tracker/internal/httperr"
	"github.com/snejhirpara/tiffin-tracker/internal/report"
	uctiffin "github.com/snejhirpara/tiffin-tracker/internal/usecase/tiffin"
)

// Renderer prints an HTML document to PDF bytes.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

type Bill struct {
	PDF      []byte
	Filename string
}

// ======================================================
// USE CASE
// ======================================================

type GenerateBill struct {
	repo     domain.Repository
	renderer Renderer
	audit    *audit.Dispatcher
}

func NewGenerateBill(
	repo domain.Repository,
	renderer Renderer,
	audit *audit.Dispatcher,
) *GenerateBill {
	return &GenerateBill{
		repo:     repo,
		renderer: renderer,
		audit:    audit,
	}
}

func (uc *GenerateBill) Execute(
	ctx context.Context,
	actorID uint,
	userID uint,
	month string,
	year int,
) (*Bill, error) {

	owner, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}
	// Bills exist for User-role accounts only. Write-time validation already
	// rejects Admin-owned entries; this keeps any legacy rows out of bills.
	if !domainuser.IsUser(owner.Role) {
		return nil, httperr.ErrBusiness("target_is_admin")
	}

	start, end, canonical, err := uctiffin.MonthRange(month, year)
	if err != nil {
		return nil, err
	}

	entries, err := uc.repo.ListTiffinsForUserInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, httperr.ErrBusiness("no_tiffin_data")
	}

	data := report.BuildBillData(
		owner.FullName,
		canonical,
		year,
		entries,
		domain.DefaultPrice,
		time.Now(),
	)

	html, err := report.RenderHTML(data)
	if err != nil {
		return nil, err
	}

	pdf, err := uc.renderer.Render(ctx, html)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionBillGenerated,
		Entity:   "user",
		EntityID: &userID,
		Metadata: map[string]any{"month": canonical, "year": year},
	})

	return &Bill{
		PDF:      pdf,
		Filename: fmt.Sprintf("TiffinBill_%s_%s_%d.pdf", owner.FullName, canonical, year),
	}, nil
}
