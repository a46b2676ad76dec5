package audit

import (
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

	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestDispatcherPersistsEvents(t *testing.T) {
	db := newTestDB(t)
	d := NewDispatcher(New(db))

	id := uint(3)
	d.Dispatch(Event{
		UserID:   &id,
		Action:   ActionTiffinAdded,
		Entity:   "tiffin",
		EntityID: &id,
		Metadata: map[string]any{"count": 2},
	})

	// The worker drains asynchronously.
	deadline := time.Now().Add(2 * time.Second)
	for {
		var count int64
		db.Model(&models.AuditLog{}).Count(&count)
		if count == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("event never persisted")
		}
		time.Sleep(10 * time.Millisecond)
	}

	var entry models.AuditLog
	db.First(&entry)
	if entry.Action != ActionTiffinAdded || entry.Entity != "tiffin" {
		t.Fatalf("entry = %+v", entry)
	}
	if entry.Metadata != `{"count":2}` {
		t.Fatalf("metadata = %q", entry.Metadata)
	}
}

func TestDispatchNeverBlocksOnFullQueue(t *testing.T) {
	// No worker: the queue fills immediately and Dispatch must drop.
	d := &Dispatcher{
		logger: New(newTestDB(t)),
		queue:  make(chan Event, 1),
	}

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.Dispatch(Event{Action: ActionTiffinDeleted, Entity: "tiffin"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}
}
