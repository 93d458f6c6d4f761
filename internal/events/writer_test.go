package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/tpdc055/sheriff/internal/db"
	"github.com/tpdc055/sheriff/internal/events"
	"github.com/tpdc055/sheriff/internal/migrate"
)

func newTestWriter(t *testing.T) events.Writer {
	t.Helper()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return events.Writer{
		DB:  conn,
		Now: func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestAppendAndLatest(t *testing.T) {
	w := newTestWriter(t)
	ctx := context.Background()
	for i, typ := range []string{"writ.updated", "writ.fee.added", "writ.updated"} {
		writID := "wrt-001"
		if i == 1 {
			writID = "wrt-002"
		}
		if err := w.Append(ctx, typ, writID, "off-1", events.EventPayload{"n": i}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	records, err := w.Latest(ctx, 10, 0, "", "")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	// newest first
	if records[0].ID <= records[1].ID {
		t.Fatalf("expected descending ids, got %d then %d", records[0].ID, records[1].ID)
	}

	byType, err := w.Latest(ctx, 10, 0, "writ.updated", "")
	if err != nil || len(byType) != 2 {
		t.Fatalf("type filter: %d %v", len(byType), err)
	}
	byWrit, err := w.Latest(ctx, 10, 0, "", "wrt-002")
	if err != nil || len(byWrit) != 1 {
		t.Fatalf("writ filter: %d %v", len(byWrit), err)
	}

	// cursor pages below the given id
	paged, err := w.Latest(ctx, 10, records[0].ID, "", "")
	if err != nil || len(paged) != 2 {
		t.Fatalf("cursor: %d %v", len(paged), err)
	}
}

func TestAppendWithoutWrit(t *testing.T) {
	w := newTestWriter(t)
	ctx := context.Background()
	if err := w.Append(ctx, "store.seeded", "", "off-1", nil); err != nil {
		t.Fatalf("append: %v", err)
	}
	records, err := w.Latest(ctx, 1, 0, "", "")
	if err != nil || len(records) != 1 {
		t.Fatalf("latest: %v", err)
	}
	if records[0].WritID != "" {
		t.Fatalf("expected empty writ id, got %s", records[0].WritID)
	}
	if records[0].Payload != "{}" {
		t.Fatalf("nil payload must store empty object, got %s", records[0].Payload)
	}
}
