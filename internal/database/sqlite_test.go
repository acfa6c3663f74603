package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/notaryai/notaryd/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndListActivities(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	titles := []string{"first", "second", "third"}
	for i, title := range titles {
		err := store.AppendActivity(ctx, &models.Activity{
			ID:            uuid.New().String(),
			Kind:          "notarize",
			Title:         title,
			Status:        "submitted",
			DocumentCount: i + 1,
			CreatedAt:     base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	activities, err := store.ListActivities(ctx, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(activities) != 3 {
		t.Fatalf("expected 3 activities, got %d", len(activities))
	}
	// Newest first.
	if activities[0].Title != "third" || activities[2].Title != "first" {
		t.Errorf("unexpected order: %s, %s, %s", activities[0].Title, activities[1].Title, activities[2].Title)
	}
	if activities[0].DocumentCount != 3 {
		t.Errorf("document_count = %d", activities[0].DocumentCount)
	}
}

func TestListActivities_pagination(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		err := store.AppendActivity(ctx, &models.Activity{
			ID:        uuid.New().String(),
			Kind:      "attest",
			Title:     "job",
			Status:    "submitted",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	page, err := store.ListActivities(ctx, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 {
		t.Errorf("expected page of 2, got %d", len(page))
	}

	empty, err := store.ListActivities(ctx, 10, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty page, got %d", len(empty))
	}
}

func TestLogRequestAndGetAuditLogs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := &models.AuditLog{
		ID:           uuid.New().String(),
		Endpoint:     "/api/gpt",
		Method:       "POST",
		RequestSize:  2048,
		ResponseCode: 200,
		DurationMs:   412,
		Timestamp:    time.Now().UTC().Truncate(time.Second),
	}
	if err := store.LogRequest(ctx, entry); err != nil {
		t.Fatal(err)
	}

	logs, err := store.GetAuditLogs(ctx, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
	if logs[0].Endpoint != "/api/gpt" || logs[0].ResponseCode != 200 || logs[0].DurationMs != 412 {
		t.Errorf("log = %+v", logs[0])
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	if err := store.Migrate(); err != nil {
		t.Errorf("second migration should succeed: %v", err)
	}
}
