// Package store holds the authoritative set of writs in memory for the life
// of the process and keeps a durable mirror. Mutations are last-write-wins on
// the full snapshot: every applied change is followed by a whole-set save.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tpdc055/sheriff/internal/config"
	"github.com/tpdc055/sheriff/internal/domain"
	"github.com/tpdc055/sheriff/internal/events"
	"github.com/tpdc055/sheriff/internal/netstate"
	"github.com/tpdc055/sheriff/internal/observability"
	"github.com/tpdc055/sheriff/internal/outbox"
	"github.com/tpdc055/sheriff/internal/storage"
)

var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or invalid required field. Required-field
// checks fail loudly; nothing is dropped silently.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Reason == "" {
		return e.Field + " is required"
	}
	return e.Field + ": " + e.Reason
}

type Store struct {
	DB      *sql.DB
	Storage storage.Store
	Events  events.Writer
	Queue   outbox.Queue
	Net     *netstate.Signal
	Config  *config.Config
	Logger  *zap.Logger
	Now     func() time.Time
	NewID   func() string

	mu    sync.Mutex
	writs []domain.Writ
}

// Open loads the durable snapshot or, on first run, installs the fixture set
// and persists it immediately.
func Open(ctx context.Context, db *sql.DB, cfg *config.Config, logger *zap.Logger, net *netstate.Signal) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	st := storage.New(db, logger)
	s := &Store{
		DB:      db,
		Storage: st,
		Events:  events.Writer{DB: db},
		Queue:   outbox.New(st),
		Net:     net,
		Config:  cfg,
		Logger:  logger,
		Now:     time.Now,
		NewID:   func() string { return uuid.New().String() },
	}
	writs, err := st.LoadWrits(ctx)
	if err != nil {
		return nil, err
	}
	if writs == nil {
		writs = Seed()
		if err := st.SaveWrits(ctx, writs); err != nil {
			return nil, fmt.Errorf("persist seed: %w", err)
		}
		logger.Info("no prior snapshot, seeded demo writs", zap.Int("count", len(writs)))
		if err := s.Events.Append(ctx, "store.seeded", "", s.actor(""), events.EventPayload{"count": len(writs)}); err != nil {
			return nil, err
		}
	}
	s.writs = writs
	return s, nil
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Store) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.New().String()
}

func (s *Store) actor(actorID string) string {
	if actorID != "" {
		return actorID
	}
	if s.Config != nil && s.Config.Officer.ID != "" {
		return s.Config.Officer.ID
	}
	return "local-officer"
}

func (s *Store) offline() bool {
	return s.Net != nil && !s.Net.IsOnline()
}

// List returns a copy of the full writ set.
func (s *Store) List() []domain.Writ {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Writ, len(s.writs))
	copy(out, s.writs)
	return out
}

// Get returns the writ with the given identifier.
func (s *Store) Get(id string) (domain.Writ, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.writs {
		if w.ID == id {
			return w, nil
		}
	}
	return domain.Writ{}, fmt.Errorf("writ %s: %w", id, ErrNotFound)
}

// save persists the full in-memory set. Callers must hold the lock.
func (s *Store) save(ctx context.Context) error {
	return s.Storage.SaveWrits(ctx, s.writs)
}

// Append adds a new writ and persists the whole set.
func (s *Store) Append(ctx context.Context, w domain.Writ, actorID string) (domain.Writ, error) {
	if w.ID == "" {
		return w, ValidationError{Field: "id"}
	}
	if w.WritNumber == "" {
		return w, ValidationError{Field: "writ_number"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.writs {
		if existing.ID == w.ID {
			return w, fmt.Errorf("writ %s already exists", w.ID)
		}
	}
	if w.Status == "" {
		w.Status = domain.StatusPending
	}
	if w.ServiceStatus == "" {
		w.ServiceStatus = domain.ServicePending
	}
	w.LastModified = s.now().UnixMilli()
	s.writs = append(s.writs, w)
	if err := s.save(ctx); err != nil {
		return w, err
	}
	observability.WritMutations.WithLabelValues("append").Inc()
	if err := s.Events.Append(ctx, "writ.created", w.ID, s.actor(actorID), events.EventPayload{"writ_number": w.WritNumber}); err != nil {
		return w, err
	}
	return w, nil
}

// Replace swaps the writ with the given identifier for the supplied value and
// persists the whole set. Used by the sync worker when the remote authority
// confirms a queued update.
func (s *Store) Replace(ctx context.Context, id string, w domain.Writ) (domain.Writ, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return w, fmt.Errorf("writ %s: %w", id, ErrNotFound)
	}
	w.ID = id
	w.LastModified = s.now().UnixMilli()
	s.writs[idx] = w
	if err := s.save(ctx); err != nil {
		return w, err
	}
	observability.WritMutations.WithLabelValues("replace").Inc()
	return w, nil
}

func (s *Store) indexOf(id string) int {
	for i, w := range s.writs {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// AttemptOptions are parameters for logging a service attempt.
type AttemptOptions struct {
	WritID         string
	Date           string
	Officer        string
	Outcome        string
	Notes          string
	Location       string
	GPSCoordinates string
	WitnessName    string
	Signature      string
	ActorID        string
}

// LogServiceAttempt appends an attempt to the target writ and derives the
// service-status transition. Outcome "served" promotes enforcement status to
// in_progress only from pending; it never regresses a writ already past it.
// Any other outcome marks the service status attempted and leaves enforcement
// status untouched.
func (s *Store) LogServiceAttempt(ctx context.Context, opts AttemptOptions) (domain.Writ, domain.ServiceAttempt, error) {
	var attempt domain.ServiceAttempt
	if opts.Outcome == "" {
		return domain.Writ{}, attempt, ValidationError{Field: "outcome"}
	}
	if !validOutcome(opts.Outcome) {
		return domain.Writ{}, attempt, ValidationError{Field: "outcome", Reason: "unknown outcome " + opts.Outcome}
	}
	if opts.Location == "" {
		return domain.Writ{}, attempt, ValidationError{Field: "location"}
	}
	if opts.Notes == "" {
		return domain.Writ{}, attempt, ValidationError{Field: "notes"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(opts.WritID)
	if idx < 0 {
		return domain.Writ{}, attempt, fmt.Errorf("writ %s: %w", opts.WritID, ErrNotFound)
	}
	now := s.now()
	if opts.Date == "" {
		opts.Date = now.UTC().Format("2006-01-02")
	}
	officer := opts.Officer
	if officer == "" && s.Config != nil {
		officer = s.Config.Officer.Name
	}
	attempt = domain.ServiceAttempt{
		ID:             s.newID(),
		WritID:         opts.WritID,
		Date:           opts.Date,
		Officer:        officer,
		Outcome:        opts.Outcome,
		Notes:          opts.Notes,
		Location:       opts.Location,
		GPSCoordinates: opts.GPSCoordinates,
		WitnessName:    opts.WitnessName,
		Signature:      opts.Signature,
		Timestamp:      now.UnixMilli(),
	}
	w := s.writs[idx]
	w.ServiceAttempts = append(w.ServiceAttempts, attempt)
	if opts.Outcome == domain.OutcomeServed {
		w.ServiceStatus = domain.ServiceServed
		if w.Status == domain.StatusPending {
			w.Status = domain.StatusInProgress
		}
	} else {
		w.ServiceStatus = domain.ServiceAttempted
	}
	w.LastModified = now.UnixMilli()
	s.writs[idx] = w
	if err := s.save(ctx); err != nil {
		return w, attempt, err
	}
	observability.WritMutations.WithLabelValues("service_attempt").Inc()
	if err := s.Events.Append(ctx, "writ.attempt.logged", w.ID, s.actor(opts.ActorID), events.EventPayload{
		"outcome":        attempt.Outcome,
		"service_status": w.ServiceStatus,
	}); err != nil {
		return w, attempt, err
	}
	if s.offline() {
		if _, err := s.Queue.Enqueue(ctx, domain.ActionServiceAttempt, attempt); err != nil {
			return w, attempt, err
		}
		s.refreshPendingGauge(ctx)
	}
	return w, attempt, nil
}

// SeizureOptions are parameters for recording a seizure.
type SeizureOptions struct {
	WritID         string
	Description    string
	EstimatedValue int64
	Condition      string
	Location       string
	SeizedDate     string
	Photos         []string
	GPSCoordinates string
	ActorID        string
}

// RecordSeizure appends a seizure item to the target writ's inventory.
func (s *Store) RecordSeizure(ctx context.Context, opts SeizureOptions) (domain.Writ, domain.SeizureItem, error) {
	var item domain.SeizureItem
	if opts.Description == "" {
		return domain.Writ{}, item, ValidationError{Field: "description"}
	}
	if opts.EstimatedValue <= 0 {
		return domain.Writ{}, item, ValidationError{Field: "estimated_value", Reason: "must be positive"}
	}
	if opts.Condition == "" {
		return domain.Writ{}, item, ValidationError{Field: "condition"}
	}
	if opts.Location == "" {
		return domain.Writ{}, item, ValidationError{Field: "location"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(opts.WritID)
	if idx < 0 {
		return domain.Writ{}, item, fmt.Errorf("writ %s: %w", opts.WritID, ErrNotFound)
	}
	now := s.now()
	if opts.SeizedDate == "" {
		opts.SeizedDate = now.UTC().Format("2006-01-02")
	}
	item = domain.SeizureItem{
		ID:             s.newID(),
		WritID:         opts.WritID,
		Description:    opts.Description,
		EstimatedValue: opts.EstimatedValue,
		Condition:      opts.Condition,
		Location:       opts.Location,
		Status:         "seized",
		SeizedDate:     opts.SeizedDate,
		Photos:         opts.Photos,
		GPSCoordinates: opts.GPSCoordinates,
		Timestamp:      now.UnixMilli(),
	}
	w := s.writs[idx]
	w.SeizureItems = append(w.SeizureItems, item)
	w.LastModified = now.UnixMilli()
	s.writs[idx] = w
	if err := s.save(ctx); err != nil {
		return w, item, err
	}
	observability.WritMutations.WithLabelValues("seizure").Inc()
	if err := s.Events.Append(ctx, "writ.seizure.recorded", w.ID, s.actor(opts.ActorID), events.EventPayload{
		"description":     item.Description,
		"estimated_value": item.EstimatedValue,
	}); err != nil {
		return w, item, err
	}
	if s.offline() {
		if _, err := s.Queue.Enqueue(ctx, domain.ActionSeizure, item); err != nil {
			return w, item, err
		}
		s.refreshPendingGauge(ctx)
	}
	return w, item, nil
}

// FeeOptions are parameters for adding an enforcement fee.
type FeeOptions struct {
	WritID        string
	Description   string
	Amount        int64
	Paid          bool
	PaidDate      string
	ReceiptNumber string
	ActorID       string
}

// AddFee appends a fee to the writ's ledger. Fee totals are recomputed from
// the ledger on every fee mutation.
func (s *Store) AddFee(ctx context.Context, opts FeeOptions) (domain.Writ, domain.EnforcementFee, error) {
	var fee domain.EnforcementFee
	if opts.Description == "" {
		return domain.Writ{}, fee, ValidationError{Field: "description"}
	}
	if opts.Amount <= 0 {
		return domain.Writ{}, fee, ValidationError{Field: "amount", Reason: "must be positive"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(opts.WritID)
	if idx < 0 {
		return domain.Writ{}, fee, fmt.Errorf("writ %s: %w", opts.WritID, ErrNotFound)
	}
	now := s.now()
	fee = domain.EnforcementFee{
		ID:            s.newID(),
		WritID:        opts.WritID,
		Description:   opts.Description,
		Amount:        opts.Amount,
		Paid:          opts.Paid,
		PaidDate:      opts.PaidDate,
		ReceiptNumber: opts.ReceiptNumber,
	}
	if fee.Paid && fee.PaidDate == "" {
		fee.PaidDate = now.UTC().Format("2006-01-02")
	}
	w := s.writs[idx]
	w.Fees = append(w.Fees, fee)
	recomputeFeeTotals(&w)
	w.LastModified = now.UnixMilli()
	s.writs[idx] = w
	if err := s.save(ctx); err != nil {
		return w, fee, err
	}
	observability.WritMutations.WithLabelValues("fee").Inc()
	if err := s.Events.Append(ctx, "writ.fee.added", w.ID, s.actor(opts.ActorID), events.EventPayload{
		"description": fee.Description,
		"amount":      fee.Amount,
	}); err != nil {
		return w, fee, err
	}
	return w, fee, nil
}

// MarkFeePaid settles a fee and recomputes the writ's totals.
func (s *Store) MarkFeePaid(ctx context.Context, writID, feeID, paidDate, receiptNumber, actorID string) (domain.Writ, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(writID)
	if idx < 0 {
		return domain.Writ{}, fmt.Errorf("writ %s: %w", writID, ErrNotFound)
	}
	now := s.now()
	w := s.writs[idx]
	found := false
	for i, f := range w.Fees {
		if f.ID != feeID {
			continue
		}
		if f.Paid {
			return w, fmt.Errorf("fee %s already paid", feeID)
		}
		if paidDate == "" {
			paidDate = now.UTC().Format("2006-01-02")
		}
		w.Fees[i].Paid = true
		w.Fees[i].PaidDate = paidDate
		w.Fees[i].ReceiptNumber = receiptNumber
		found = true
		break
	}
	if !found {
		return w, fmt.Errorf("fee %s: %w", feeID, ErrNotFound)
	}
	recomputeFeeTotals(&w)
	w.LastModified = now.UnixMilli()
	s.writs[idx] = w
	if err := s.save(ctx); err != nil {
		return w, err
	}
	observability.WritMutations.WithLabelValues("fee").Inc()
	if err := s.Events.Append(ctx, "writ.fee.paid", w.ID, s.actor(actorID), events.EventPayload{"fee_id": feeID}); err != nil {
		return w, err
	}
	return w, nil
}

// UpdateOptions encapsulates allowed generic writ updates.
type UpdateOptions struct {
	ID              string
	Status          string
	ServiceStatus   string
	AssignedOfficer *string
	Priority        string
	Instructions    *string
	ActorID         string
	Force           bool
}

// UpdateWrit applies a generic field update with status-transition checks.
func (s *Store) UpdateWrit(ctx context.Context, opts UpdateOptions) (domain.Writ, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(opts.ID)
	if idx < 0 {
		return domain.Writ{}, fmt.Errorf("writ %s: %w", opts.ID, ErrNotFound)
	}
	w := s.writs[idx]
	original := w.Status
	if opts.Status != "" && opts.Status != w.Status {
		if err := ensureStatusTransition(w.Status, opts.Status, opts.Force); err != nil {
			return w, err
		}
		w.Status = opts.Status
	}
	if opts.ServiceStatus != "" {
		if !validServiceStatus(opts.ServiceStatus) {
			return w, ValidationError{Field: "service_status", Reason: "unknown status " + opts.ServiceStatus}
		}
		w.ServiceStatus = opts.ServiceStatus
	}
	if opts.AssignedOfficer != nil {
		w.AssignedOfficer = *opts.AssignedOfficer
	}
	if opts.Priority != "" {
		w.Priority = opts.Priority
	}
	if opts.Instructions != nil {
		w.Instructions = *opts.Instructions
	}
	w.LastModified = s.now().UnixMilli()
	s.writs[idx] = w
	if err := s.save(ctx); err != nil {
		return w, err
	}
	observability.WritMutations.WithLabelValues("update").Inc()
	if err := s.Events.Append(ctx, "writ.updated", w.ID, s.actor(opts.ActorID), events.EventPayload{
		"from_status": original,
		"to_status":   w.Status,
	}); err != nil {
		return w, err
	}
	if s.offline() {
		if _, err := s.Queue.Enqueue(ctx, domain.ActionUpdateWrit, w); err != nil {
			return w, err
		}
		s.refreshPendingGauge(ctx)
	}
	return w, nil
}

func ensureStatusTransition(oldStatus, newStatus string, force bool) error {
	if force {
		return nil
	}
	switch oldStatus {
	case domain.StatusPending:
		if newStatus == domain.StatusInProgress || newStatus == domain.StatusStayed || newStatus == domain.StatusClosed {
			return nil
		}
	case domain.StatusInProgress:
		if newStatus == domain.StatusExecuted || newStatus == domain.StatusStayed || newStatus == domain.StatusClosed {
			return nil
		}
	case domain.StatusExecuted:
		if newStatus == domain.StatusClosed {
			return nil
		}
	case domain.StatusStayed:
		if newStatus == domain.StatusInProgress || newStatus == domain.StatusClosed {
			return nil
		}
	}
	return fmt.Errorf("invalid writ status transition %s -> %s", oldStatus, newStatus)
}

func validOutcome(outcome string) bool {
	switch outcome {
	case domain.OutcomeServed, domain.OutcomeRefused, domain.OutcomeNotFound,
		domain.OutcomeAddressIncorrect, domain.OutcomeOther:
		return true
	}
	return false
}

func validServiceStatus(status string) bool {
	switch status {
	case domain.ServicePending, domain.ServiceAttempted, domain.ServiceServed,
		domain.ServiceFailed, domain.ServiceReturned:
		return true
	}
	return false
}

func recomputeFeeTotals(w *domain.Writ) {
	var charged, collected int64
	for _, f := range w.Fees {
		charged += f.Amount
		if f.Paid {
			collected += f.Amount
		}
	}
	w.TotalFeesCharged = charged
	w.TotalFeesCollected = collected
}

func (s *Store) refreshPendingGauge(ctx context.Context) {
	if count, err := s.Queue.PendingCount(ctx); err == nil {
		observability.PendingSyncEntries.Set(float64(count))
	}
}

// Stats are the dashboard aggregates derived from the full set.
type Stats struct {
	Total         int   `json:"total"`
	Pending       int   `json:"pending"`
	InProgress    int   `json:"in_progress"`
	Executed      int   `json:"executed"`
	TotalFees     int64 `json:"total_fees"`
	CollectedFees int64 `json:"collected_fees"`
}

// Stats aggregates writ counts and fee totals. "Executed" counts executed and
// closed writs together, the way the enforcement dashboard reports them.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	var st Stats
	st.Total = len(s.writs)
	for _, w := range s.writs {
		switch w.Status {
		case domain.StatusPending:
			st.Pending++
		case domain.StatusInProgress:
			st.InProgress++
		case domain.StatusExecuted, domain.StatusClosed:
			st.Executed++
		}
		st.TotalFees += w.TotalFeesCharged
		st.CollectedFees += w.TotalFeesCollected
	}
	return st
}

// PendingSyncCount reports outbox entries awaiting remote confirmation.
func (s *Store) PendingSyncCount(ctx context.Context) (int, error) {
	return s.Queue.PendingCount(ctx)
}

// LastSyncTime reports the last local-durability timestamp in epoch millis.
func (s *Store) LastSyncTime(ctx context.Context) (int64, error) {
	return s.Storage.LastSync(ctx)
}

// IsOnline reports the connectivity signal at face value.
func (s *Store) IsOnline() bool {
	return s.Net == nil || s.Net.IsOnline()
}

// UsageReport measures slot usage against the configured budget and mirrors
// it into metrics. The budget only warns; it never blocks writes.
func (s *Store) UsageReport(ctx context.Context) (storage.Usage, error) {
	var budget int64
	if s.Config != nil {
		budget = s.Config.Storage.BudgetBytes
	}
	u, err := s.Storage.Usage(ctx, budget)
	if err != nil {
		return u, err
	}
	observability.StorageUsedBytes.Set(float64(u.Used))
	observability.StorageBudgetBytes.Set(float64(u.Budget))
	return u, nil
}
