package handlers

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snejhirpara/tiffin-tracker/internal/audit"
	infraRepo "github.com/snejhirpara/tiffin-tracker/internal/infra/repository"
	"github.com/snejhirpara/tiffin-tracker/internal/middleware"
	"github.com/snejhirpara/tiffin-tracker/internal/models"
	ucreport "github.com/snejhirpara/tiffin-tracker/internal/usecase/report"
)

type fakeBillRenderer struct {
	err error
}

func (f *fakeBillRenderer) Render(_ context.Context, _ string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake-bill"), nil
}

func billRouter(t *testing.T, db *gorm.DB, renderer ucreport.Renderer, actorID uint) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := infraRepo.NewTiffinGormRepository(db)
	uc := ucreport.NewGenerateBill(repo, renderer, audit.NewDispatcher(audit.New(db)))
	h := NewTiffinHandler(nil, nil, nil, uc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, actorID)
		c.Set(middleware.ContextUserRole, "User")
		c.Next()
	})
	r.POST("/api/v1/tiffins/generate-report", h.GenerateReport)
	return r
}

func seedMarchTiffins(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	u := models.User{
		Email:        "snej@example.com",
		Username:     "snej",
		FullName:     "Snej Hirpara",
		PasswordHash: "x",
		Role:         "User",
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	for i := 0; i < 3; i++ {
		entry := models.Tiffin{
			Count:     2,
			Type:      "Regular",
			TakenByID: u.ID,
			Price:     90,
			CreatedAt: time.Date(2025, time.March, 3+i, 12, 0, 0, 0, time.UTC),
		}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("seed tiffin: %v", err)
		}
	}
	return &u
}

func leftoverBills(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "tiffin-bill-*.pdf"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	return matches
}

func TestGenerateReportStreamsAndRemovesTempFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TMPDIR", tmpDir)

	db := newTestDB(t)
	u := seedMarchTiffins(t, db)
	r := billRouter(t, db, &fakeBillRenderer{}, u.ID)

	w := postJSON(r, http.MethodPost, "/api/v1/tiffins/generate-report", "", gin.H{
		"user_id": u.ID,
		"month":   "March",
		"year":    2025,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("generate-report: status = %d, body = %s", w.Code, w.Body.String())
	}

	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "attachment") ||
		!strings.Contains(cd, "TiffinBill_Snej Hirpara_March_2025.pdf") {
		t.Fatalf("content disposition = %q", cd)
	}
	if w.Body.String() != "%PDF-fake-bill" {
		t.Fatalf("body = %q", w.Body.String())
	}

	if left := leftoverBills(t, tmpDir); len(left) != 0 {
		t.Fatalf("temp bill files left behind: %v", left)
	}
}

func TestGenerateReportRenderFailureLeavesNoTempFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TMPDIR", tmpDir)

	db := newTestDB(t)
	u := seedMarchTiffins(t, db)
	r := billRouter(t, db, &fakeBillRenderer{err: errors.New("browser crashed")}, u.ID)

	w := postJSON(r, http.MethodPost, "/api/v1/tiffins/generate-report", "", gin.H{
		"user_id": u.ID,
		"month":   "March",
		"year":    2025,
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("generate-report: status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"success":false`) {
		t.Fatalf("body = %s", w.Body.String())
	}

	if left := leftoverBills(t, tmpDir); len(left) != 0 {
		t.Fatalf("temp bill files left behind: %v", left)
	}
}

func TestGenerateReportTempDirUnavailable(t *testing.T) {
	// A broken temp dir makes the file creation fail after a successful
	// render; the handler must answer with the error envelope.
	t.Setenv("TMPDIR", filepath.Join(t.TempDir(), "missing"))

	db := newTestDB(t)
	u := seedMarchTiffins(t, db)
	r := billRouter(t, db, &fakeBillRenderer{}, u.ID)

	w := postJSON(r, http.MethodPost, "/api/v1/tiffins/generate-report", "", gin.H{
		"user_id": u.ID,
		"month":   "March",
		"year":    2025,
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("generate-report: status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"success":false`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}
