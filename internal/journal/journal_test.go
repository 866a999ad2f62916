package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testEntry(runID int, runDate string) models.JournalEntry {
	extracted := models.NewServerTime(time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC))
	return models.JournalEntry{
		Extraction: models.Extraction{
			ID:                    runID,
			RunID:                 runID,
			FinalXP:               450,
			XPBeforePenalties:     500,
			PenaltyXP:             50,
			TasksCompleted:        4,
			TasksFailed:           1,
			TasksTotal:            5,
			TotalFocusMinutes:     70,
			T1Completed:           2,
			T2Completed:           1,
			T3Completed:           1,
			T3Failed:              1,
			CompletedWithTimer:    2,
			CompletedWithoutTimer: 2,
			CreatedAt:             extracted,
		},
		RunDate:     runDate,
		StartedAt:   models.NewServerTime(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)),
		ExtractedAt: &extracted,
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := testDB(t)
	// Running migrations again must be a no-op.
	if err := db.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestAppendAndGet(t *testing.T) {
	db := testDB(t)

	if err := db.Append(testEntry(7, "2025-03-10")); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := db.GetByRunID(7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("entry not found")
	}
	if got.Extraction.FinalXP != 450 || got.Extraction.PenaltyXP != 50 {
		t.Errorf("xp fields = %d/%d, want 450/50", got.Extraction.FinalXP, got.Extraction.PenaltyXP)
	}
	if got.RunDate != "2025-03-10" {
		t.Errorf("run date = %q", got.RunDate)
	}
	if got.ExtractedAt == nil {
		t.Error("extracted_at should round-trip")
	}
	if !got.StartedAt.Equal(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("started_at = %v", got.StartedAt)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	db := testDB(t)

	got, err := db.GetByRunID(999)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestAppendSameRunReplaces(t *testing.T) {
	db := testDB(t)

	first := testEntry(7, "2025-03-10")
	if err := db.Append(first); err != nil {
		t.Fatalf("append: %v", err)
	}

	second := first
	second.Extraction.FinalXP = 600
	if err := db.Append(second); err != nil {
		t.Fatalf("re-append: %v", err)
	}

	got, err := db.GetByRunID(7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Extraction.FinalXP != 600 {
		t.Errorf("final xp = %d, want replacement 600", got.Extraction.FinalXP)
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestListNewestFirst(t *testing.T) {
	db := testDB(t)

	for i, date := range []string{"2025-03-08", "2025-03-10", "2025-03-09"} {
		if err := db.Append(testEntry(i+1, date)); err != nil {
			t.Fatalf("append %s: %v", date, err)
		}
	}

	entries, err := db.List(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	want := []string{"2025-03-10", "2025-03-09", "2025-03-08"}
	for i, entry := range entries {
		if entry.RunDate != want[i] {
			t.Errorf("entry %d: run date = %s, want %s", i, entry.RunDate, want[i])
		}
	}

	limited, err := db.List(2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited len = %d, want 2", len(limited))
	}
}

func TestSyncMergesServerHistory(t *testing.T) {
	db := testDB(t)

	// Local cache has a stale copy of run 1.
	stale := testEntry(1, "2025-03-08")
	stale.Extraction.FinalXP = 100
	if err := db.Append(stale); err != nil {
		t.Fatalf("append: %v", err)
	}

	fresh := testEntry(1, "2025-03-08")
	fresh.Extraction.FinalXP = 120
	if err := db.Sync([]models.JournalEntry{fresh, testEntry(2, "2025-03-09")}); err != nil {
		t.Fatalf("sync: %v", err)
	}

	got, err := db.GetByRunID(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Extraction.FinalXP != 120 {
		t.Errorf("final xp = %d, want server copy 120", got.Extraction.FinalXP)
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestPurgeOlderThan(t *testing.T) {
	db := testDB(t)

	db.Append(testEntry(1, "2025-01-05"))
	db.Append(testEntry(2, "2025-03-09"))
	db.Append(testEntry(3, "2025-03-10"))

	deleted, err := db.PurgeOlderThan(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	count, _ := db.Count()
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestSettings(t *testing.T) {
	db := testDB(t)

	got, err := db.GetSetting("sounds", "on")
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if got != "on" {
		t.Errorf("default = %q, want fallback", got)
	}

	if err := db.SetSetting("sounds", "off"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := db.SetSetting("sounds", "off"); err != nil {
		t.Fatalf("set again: %v", err)
	}

	got, err = db.GetSetting("sounds", "on")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "off" {
		t.Errorf("value = %q, want off", got)
	}
}
