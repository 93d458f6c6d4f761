package store_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tpdc055/sheriff/internal/config"
	"github.com/tpdc055/sheriff/internal/db"
	"github.com/tpdc055/sheriff/internal/domain"
	"github.com/tpdc055/sheriff/internal/migrate"
	"github.com/tpdc055/sheriff/internal/netstate"
	"github.com/tpdc055/sheriff/internal/store"
)

type testEnv struct {
	Store *store.Store
	DB    *sql.DB
	Net   *netstate.Signal
	Ctx   context.Context
}

func newTestEnv(t *testing.T, online bool) testEnv {
	t.Helper()
	dir := t.TempDir()
	conn, err := db.Open(db.Config{Workspace: dir})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cfg := config.Default("off-1")
	net := netstate.New(online)
	ctx := context.Background()
	s, err := store.Open(ctx, conn, cfg, zap.NewNop(), net)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	s.Now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	n := 0
	s.NewID = func() string { n++; return fmt.Sprintf("id-%03d", n) }
	s.Queue.NewID = s.NewID
	return testEnv{Store: s, DB: conn, Net: net, Ctx: ctx}
}

func TestSeedOnFirstOpen(t *testing.T) {
	env := newTestEnv(t, true)
	writs := env.Store.List()
	if len(writs) != 5 {
		t.Fatalf("expected 5 seeded writs, got %d", len(writs))
	}
	if _, err := env.Store.Get("wrt-001"); err != nil {
		t.Fatalf("seeded writ missing: %v", err)
	}
	// reopening the same database must load the snapshot, not reseed
	s2, err := store.Open(env.Ctx, env.DB, config.Default("off-1"), zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := len(s2.List()); got != 5 {
		t.Fatalf("reopen expected 5 writs, got %d", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	env := newTestEnv(t, true)
	if _, _, err := env.Store.AddFee(env.Ctx, store.FeeOptions{
		WritID: "wrt-002", Description: "Storage fee", Amount: 1200,
	}); err != nil {
		t.Fatalf("add fee: %v", err)
	}
	s2, err := store.Open(env.Ctx, env.DB, config.Default("off-1"), zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	w, err := s2.Get("wrt-002")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(w.Fees) != 2 {
		t.Fatalf("expected persisted fee, got %d fees", len(w.Fees))
	}
	if w.TotalFeesCharged != 6200 {
		t.Fatalf("expected recomputed total 6200, got %d", w.TotalFeesCharged)
	}
}

func TestServedPromotesPendingOnly(t *testing.T) {
	env := newTestEnv(t, true)
	w, _, err := env.Store.LogServiceAttempt(env.Ctx, store.AttemptOptions{
		WritID: "wrt-002", Outcome: domain.OutcomeServed,
		Notes: "served at gate", Location: "Muthaiga Estate",
	})
	if err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if w.ServiceStatus != domain.ServiceServed {
		t.Fatalf("expected service served, got %s", w.ServiceStatus)
	}
	if w.Status != domain.StatusInProgress {
		t.Fatalf("expected pending to promote to in_progress, got %s", w.Status)
	}
	// a served outcome never regresses a writ already past in_progress
	w, _, err = env.Store.LogServiceAttempt(env.Ctx, store.AttemptOptions{
		WritID: "wrt-005", Outcome: domain.OutcomeServed,
		Notes: "re-served", Location: "Warehouse 23",
	})
	if err != nil {
		t.Fatalf("attempt on executed writ: %v", err)
	}
	if w.Status != domain.StatusExecuted {
		t.Fatalf("executed writ must keep its status, got %s", w.Status)
	}
}

func TestNonServedOutcomeLeavesStatus(t *testing.T) {
	env := newTestEnv(t, true)
	w, attempt, err := env.Store.LogServiceAttempt(env.Ctx, store.AttemptOptions{
		WritID: "wrt-004", Outcome: domain.OutcomeNotFound,
		Notes: "premises empty", Location: "Chiromo Road",
	})
	if err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if w.ServiceStatus != domain.ServiceAttempted {
		t.Fatalf("expected service attempted, got %s", w.ServiceStatus)
	}
	if w.Status != domain.StatusPending {
		t.Fatalf("enforcement status must not change, got %s", w.Status)
	}
	if attempt.Date != "2024-03-01" {
		t.Fatalf("expected defaulted date, got %s", attempt.Date)
	}
	if attempt.Officer != "off-1" {
		t.Fatalf("expected configured officer, got %s", attempt.Officer)
	}
}

func TestAttemptValidation(t *testing.T) {
	env := newTestEnv(t, true)
	cases := []store.AttemptOptions{
		{WritID: "wrt-001", Notes: "n", Location: "l"},
		{WritID: "wrt-001", Outcome: "vanished", Notes: "n", Location: "l"},
		{WritID: "wrt-001", Outcome: domain.OutcomeOther, Notes: "n"},
		{WritID: "wrt-001", Outcome: domain.OutcomeOther, Location: "l"},
	}
	for i, opts := range cases {
		_, _, err := env.Store.LogServiceAttempt(env.Ctx, opts)
		var ve store.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
	w, _ := env.Store.Get("wrt-001")
	if len(w.ServiceAttempts) != 2 {
		t.Fatalf("rejected attempts must not be recorded, got %d", len(w.ServiceAttempts))
	}
}

func TestOfflineMutationQueues(t *testing.T) {
	env := newTestEnv(t, false)
	if env.Store.IsOnline() {
		t.Fatal("expected offline")
	}
	w, _, err := env.Store.LogServiceAttempt(env.Ctx, store.AttemptOptions{
		WritID: "wrt-002", Outcome: domain.OutcomeNotFound,
		Notes: "nobody home", Location: "front door",
	})
	if err != nil {
		t.Fatalf("offline attempt must still apply locally: %v", err)
	}
	if len(w.ServiceAttempts) != 1 {
		t.Fatalf("expected attempt recorded, got %d", len(w.ServiceAttempts))
	}
	if w.ServiceStatus != domain.ServiceAttempted || w.Status != domain.StatusPending {
		t.Fatalf("unexpected state %s/%s", w.Status, w.ServiceStatus)
	}
	pending, err := env.Store.PendingSyncCount(env.Ctx)
	if err != nil {
		t.Fatalf("pending count: %v", err)
	}
	if pending != 1 {
		t.Fatalf("expected 1 pending entry, got %d", pending)
	}
	entries, err := env.Store.Queue.List(env.Ctx)
	if err != nil {
		t.Fatalf("list queue: %v", err)
	}
	if entries[0].Action != domain.ActionServiceAttempt || entries[0].Synced {
		t.Fatalf("unexpected queue entry %+v", entries[0])
	}
}

func TestOnlineMutationDoesNotQueue(t *testing.T) {
	env := newTestEnv(t, true)
	if _, _, err := env.Store.RecordSeizure(env.Ctx, store.SeizureOptions{
		WritID: "wrt-001", Description: "Generator", EstimatedValue: 40000,
		Condition: "working", Location: "Evidence Room B",
	}); err != nil {
		t.Fatalf("seizure: %v", err)
	}
	pending, _ := env.Store.PendingSyncCount(env.Ctx)
	if pending != 0 {
		t.Fatalf("online mutations must not queue, got %d pending", pending)
	}
}

func TestSeizureInventoryTotal(t *testing.T) {
	env := newTestEnv(t, true)
	w, _ := env.Store.Get("wrt-001")
	if got := w.TotalSeizedValue(); got != 235000 {
		t.Fatalf("seeded inventory total: expected 235000, got %d", got)
	}
	w, item, err := env.Store.RecordSeizure(env.Ctx, store.SeizureOptions{
		WritID: "wrt-001", Description: "Toyota Hilux KBX 123A", EstimatedValue: 900000,
		Condition: "roadworthy", Location: "Impound Yard",
	})
	if err != nil {
		t.Fatalf("seizure: %v", err)
	}
	if item.Status != "seized" {
		t.Fatalf("expected status seized, got %s", item.Status)
	}
	if got := w.TotalSeizedValue(); got != 1135000 {
		t.Fatalf("expected running total 1135000, got %d", got)
	}
}

func TestSeizureValidation(t *testing.T) {
	env := newTestEnv(t, true)
	_, _, err := env.Store.RecordSeizure(env.Ctx, store.SeizureOptions{
		WritID: "wrt-001", Description: "Desk", EstimatedValue: 0,
		Condition: "fair", Location: "store",
	})
	var ve store.ValidationError
	if !errors.As(err, &ve) || ve.Field != "estimated_value" {
		t.Fatalf("expected estimated_value validation error, got %v", err)
	}
}

func TestFeeTotalsRecomputed(t *testing.T) {
	env := newTestEnv(t, true)
	w, _ := env.Store.Get("wrt-001")
	if got := w.OutstandingFees(); got != 7500 {
		t.Fatalf("seeded outstanding: expected 7500, got %d", got)
	}
	w, _, err := env.Store.AddFee(env.Ctx, store.FeeOptions{
		WritID: "wrt-001", Description: "Auction advertising", Amount: 1000,
	})
	if err != nil {
		t.Fatalf("add fee: %v", err)
	}
	if w.TotalFeesCharged != 17500 || w.TotalFeesCollected != 9000 {
		t.Fatalf("totals after add: charged=%d collected=%d", w.TotalFeesCharged, w.TotalFeesCollected)
	}
	w, err = env.Store.MarkFeePaid(env.Ctx, "wrt-001", "fee-003", "", "RCP-009999", "")
	if err != nil {
		t.Fatalf("pay fee: %v", err)
	}
	if w.TotalFeesCollected != 16500 {
		t.Fatalf("totals after pay: collected=%d", w.TotalFeesCollected)
	}
	if got := w.OutstandingFees(); got != 1000 {
		t.Fatalf("expected outstanding 1000, got %d", got)
	}
}

func TestMarkFeePaidGuards(t *testing.T) {
	env := newTestEnv(t, true)
	if _, err := env.Store.MarkFeePaid(env.Ctx, "wrt-001", "fee-001", "", "", ""); err == nil {
		t.Fatal("expected error paying an already paid fee")
	}
	if _, err := env.Store.MarkFeePaid(env.Ctx, "wrt-001", "fee-nope", "", "", ""); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStatusTransitionGuard(t *testing.T) {
	env := newTestEnv(t, true)
	// executed -> pending is not a legal transition
	if _, err := env.Store.UpdateWrit(env.Ctx, store.UpdateOptions{ID: "wrt-005", Status: domain.StatusPending}); err == nil {
		t.Fatal("expected transition error")
	}
	// force overrides
	w, err := env.Store.UpdateWrit(env.Ctx, store.UpdateOptions{ID: "wrt-005", Status: domain.StatusPending, Force: true})
	if err != nil || w.Status != domain.StatusPending {
		t.Fatalf("forced transition: %v", err)
	}
	// normal forward path
	w, err = env.Store.UpdateWrit(env.Ctx, store.UpdateOptions{ID: "wrt-002", Status: domain.StatusStayed})
	if err != nil || w.Status != domain.StatusStayed {
		t.Fatalf("pending -> stayed: %v", err)
	}
	w, err = env.Store.UpdateWrit(env.Ctx, store.UpdateOptions{ID: "wrt-002", Status: domain.StatusInProgress})
	if err != nil || w.Status != domain.StatusInProgress {
		t.Fatalf("stayed -> in_progress: %v", err)
	}
}

func TestUpdateWritFields(t *testing.T) {
	env := newTestEnv(t, true)
	officer := "Grace Wanjiku"
	instructions := ""
	w, err := env.Store.UpdateWrit(env.Ctx, store.UpdateOptions{
		ID:              "wrt-002",
		AssignedOfficer: &officer,
		Priority:        "urgent",
		Instructions:    &instructions,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if w.AssignedOfficer != "Grace Wanjiku" || w.Priority != "urgent" || w.Instructions != "" {
		t.Fatalf("unexpected writ after update: %+v", w)
	}
	if w.LastModified != env.Store.Now().UnixMilli() {
		t.Fatalf("expected last_modified stamped, got %d", w.LastModified)
	}
}

func TestGetUnknownWrit(t *testing.T) {
	env := newTestEnv(t, true)
	if _, err := env.Store.Get("wrt-404"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAppendRejectsDuplicate(t *testing.T) {
	env := newTestEnv(t, true)
	_, err := env.Store.Append(env.Ctx, domain.Writ{ID: "wrt-001", WritNumber: "WRT/2024/009999"}, "")
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
	w, err := env.Store.Append(env.Ctx, domain.Writ{ID: "wrt-006", WritNumber: "WRT/2024/009999"}, "")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if w.Status != domain.StatusPending || w.ServiceStatus != domain.ServicePending {
		t.Fatalf("expected defaulted statuses, got %s/%s", w.Status, w.ServiceStatus)
	}
}

func TestStats(t *testing.T) {
	env := newTestEnv(t, true)
	st := env.Store.Stats()
	if st.Total != 5 || st.Pending != 2 || st.InProgress != 2 || st.Executed != 1 {
		t.Fatalf("unexpected counts: %+v", st)
	}
	if st.TotalFees != 38500 || st.CollectedFees != 28000 {
		t.Fatalf("unexpected fee totals: %+v", st)
	}
	// closed writs count into the executed bucket
	if _, err := env.Store.UpdateWrit(env.Ctx, store.UpdateOptions{ID: "wrt-005", Status: domain.StatusClosed}); err != nil {
		t.Fatalf("close: %v", err)
	}
	if st = env.Store.Stats(); st.Executed != 1 {
		t.Fatalf("closed writ must stay in executed bucket: %+v", st)
	}
}

func TestLastSyncStamped(t *testing.T) {
	env := newTestEnv(t, true)
	before, err := env.Store.LastSyncTime(env.Ctx)
	if err != nil {
		t.Fatalf("last sync: %v", err)
	}
	if before == 0 {
		t.Fatal("seed save must stamp last sync")
	}
	if _, _, err := env.Store.AddFee(env.Ctx, store.FeeOptions{WritID: "wrt-002", Description: "x", Amount: 100}); err != nil {
		t.Fatalf("add fee: %v", err)
	}
	after, _ := env.Store.LastSyncTime(env.Ctx)
	if after != env.Store.Now().UnixMilli() {
		t.Fatalf("expected marker %d, got %d", env.Store.Now().UnixMilli(), after)
	}
}

func TestEventLogRecordsMutations(t *testing.T) {
	env := newTestEnv(t, true)
	if _, _, err := env.Store.AddFee(env.Ctx, store.FeeOptions{WritID: "wrt-002", Description: "x", Amount: 100}); err != nil {
		t.Fatalf("add fee: %v", err)
	}
	records, err := env.Store.Events.Latest(env.Ctx, 10, 0, "writ.fee.added", "wrt-002")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 fee event, got %d", len(records))
	}
	if records[0].ActorID != "off-1" {
		t.Fatalf("expected configured officer as actor, got %s", records[0].ActorID)
	}
}

func TestUsageReport(t *testing.T) {
	env := newTestEnv(t, true)
	u, err := env.Store.UsageReport(env.Ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if u.Used <= 0 {
		t.Fatalf("expected positive usage after seed, got %d", u.Used)
	}
	if u.Budget != 5*1024*1024 {
		t.Fatalf("expected default budget, got %d", u.Budget)
	}
}
