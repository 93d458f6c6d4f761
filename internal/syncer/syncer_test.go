package syncer_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tpdc055/sheriff/internal/db"
	"github.com/tpdc055/sheriff/internal/domain"
	"github.com/tpdc055/sheriff/internal/migrate"
	"github.com/tpdc055/sheriff/internal/netstate"
	"github.com/tpdc055/sheriff/internal/outbox"
	"github.com/tpdc055/sheriff/internal/storage"
	"github.com/tpdc055/sheriff/internal/syncer"
)

func newTestQueue(t *testing.T) outbox.Queue {
	t.Helper()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	q := outbox.New(storage.New(conn, zap.NewNop()))
	q.Now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	n := 0
	q.NewID = func() string { n++; return fmt.Sprintf("q-%03d", n) }
	return q
}

func TestOnceDrainsPendingEntries(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := q.Enqueue(ctx, domain.ActionServiceAttempt, map[string]int{"n": i}); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}
	var received int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/queue" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		atomic.AddInt32(&received, 1)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	net := netstate.New(false)
	if err := syncer.Once(ctx, q, net, syncer.Config{URL: srv.URL}, zap.NewNop()); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if got := atomic.LoadInt32(&received); got != 3 {
		t.Fatalf("expected 3 dispatches, got %d", got)
	}
	pending, _ := q.PendingCount(ctx)
	if pending != 0 {
		t.Fatalf("expected 0 pending after drain, got %d", pending)
	}
	if !net.IsOnline() {
		t.Fatal("successful dispatch must flip connectivity online")
	}
}

func TestOnceStopsOnTransportFailure(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := q.Enqueue(ctx, domain.ActionSeizure, map[string]int{"n": i}); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	net := netstate.New(true)
	if err := syncer.Once(ctx, q, net, syncer.Config{URL: srv.URL}, zap.NewNop()); err != nil {
		t.Fatalf("drain: %v", err)
	}
	pending, _ := q.PendingCount(ctx)
	if pending != 2 {
		t.Fatalf("failed dispatch must leave entries pending, got %d", pending)
	}
	if net.IsOnline() {
		t.Fatal("failed dispatch must flip connectivity offline")
	}
}

func TestOnceRequiresURL(t *testing.T) {
	q := newTestQueue(t)
	if err := syncer.Once(context.Background(), q, nil, syncer.Config{}, nil); err == nil {
		t.Fatal("expected error without a sync URL")
	}
}

func TestStartWithoutURLIsNil(t *testing.T) {
	q := newTestQueue(t)
	d := syncer.Start(q, nil, syncer.Config{}, nil)
	if d != nil {
		t.Fatal("expected nil dispatcher in standalone mode")
	}
	d.Stop() // nil-safe
}

func TestDispatcherLoopDrains(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()
	if _, err := q.Enqueue(ctx, domain.ActionUpdateWrit, map[string]string{"id": "wrt-001"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := syncer.Start(q, netstate.New(false), syncer.Config{URL: srv.URL, Interval: 10 * time.Millisecond}, zap.NewNop())
	deadline := time.Now().Add(2 * time.Second)
	for {
		pending, err := q.PendingCount(ctx)
		if err != nil {
			t.Fatalf("pending: %v", err)
		}
		if pending == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("dispatcher did not drain the queue in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
	d.Stop()
}
