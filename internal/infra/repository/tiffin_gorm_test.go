package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/snejhirpara/tiffin-tracker/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := db.AutoMigrate(&models.User{}, &models.Tiffin{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestTiffinGormRepository_CRUDAndRangeQueries(t *testing.T) {
	db := newTestDB(t)
	repo := NewTiffinGormRepository(db)
	ctx := context.Background()

	u := models.User{
		Email:        "rita@example.com",
		Username:     "rita",
		FullName:     "Rita Shah",
		PasswordHash: "x",
		Role:         "User",
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	// GetUserByID
	got, err := repo.GetUserByID(ctx, u.ID)
	if err != nil || got.Username != "rita" {
		t.Fatalf("get user: %v %+v", err, got)
	}
	if _, err := repo.GetUserByID(ctx, 9999); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	// CreateTiffin
	mk := func(createdAt time.Time) *models.Tiffin {
		entry := &models.Tiffin{
			Count:     2,
			Type:      "Regular",
			TakenByID: u.ID,
			Price:     90,
			CreatedAt: createdAt,
		}
		if err := repo.CreateTiffin(ctx, entry); err != nil {
			t.Fatalf("create tiffin: %v", err)
		}
		return entry
	}

	inMarchFirst := mk(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	inMarchLast := mk(time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC))
	mk(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))

	// Range query covers the whole month inclusive, next month excluded.
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	ranged, err := repo.ListTiffinsForUserInRange(ctx, u.ID, start, end)
	if err != nil {
		t.Fatalf("range query: %v", err)
	}
	if len(ranged) != 2 {
		t.Fatalf("range query returned %d entries, want 2", len(ranged))
	}
	if ranged[0].ID != inMarchFirst.ID || ranged[1].ID != inMarchLast.ID {
		t.Fatalf("unexpected entries: %+v", ranged)
	}

	// Full listing
	all, err := repo.ListTiffinsForUser(ctx, u.ID)
	if err != nil || len(all) != 3 {
		t.Fatalf("list all: %v len=%d", err, len(all))
	}

	// Delete, then delete again (absent id)
	if err := repo.DeleteTiffinByID(ctx, inMarchFirst.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteTiffinByID(ctx, inMarchFirst.ID); err != nil {
		t.Fatalf("delete absent: %v", err)
	}

	remaining, _ := repo.ListTiffinsForUser(ctx, u.ID)
	if len(remaining) != 2 {
		t.Fatalf("expected 2 remaining, got %d", len(remaining))
	}
}
