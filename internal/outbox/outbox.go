// Package outbox records mutations attempted while connectivity is assumed
// absent, so they can be reported as pending and replayed against a remote
// authority once it is reachable.
package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tpdc055/sheriff/internal/domain"
	"github.com/tpdc055/sheriff/internal/storage"
)

var ErrNotFound = errors.New("not found")

// Queue is a durable append-only outbox over a single storage slot.
// It is deliberately decoupled from the record store: enqueuing never
// reconciles with the store's view, only a sync worker marks entries synced.
type Queue struct {
	Storage storage.Store
	Now     func() time.Time
	NewID   func() string
}

func New(s storage.Store) Queue {
	return Queue{
		Storage: s,
		Now:     time.Now,
		NewID:   func() string { return uuid.New().String() },
	}
}

func (q Queue) now() time.Time {
	if q.Now != nil {
		return q.Now()
	}
	return time.Now()
}

func (q Queue) newID() string {
	if q.NewID != nil {
		return q.NewID()
	}
	return uuid.New().String()
}

// Enqueue appends a pending entry and persists the whole queue.
func (q Queue) Enqueue(ctx context.Context, action string, payload any) (domain.QueueEntry, error) {
	switch action {
	case domain.ActionServiceAttempt, domain.ActionSeizure, domain.ActionUpdateWrit:
	default:
		return domain.QueueEntry{}, fmt.Errorf("unknown queue action %q", action)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return domain.QueueEntry{}, fmt.Errorf("marshal queue payload: %w", err)
	}
	entries, err := q.Storage.LoadQueue(ctx)
	if err != nil {
		return domain.QueueEntry{}, err
	}
	entry := domain.QueueEntry{
		ID:        q.newID(),
		Action:    action,
		Payload:   data,
		Timestamp: q.now().UnixMilli(),
		Synced:    false,
	}
	entries = append(entries, entry)
	if err := q.Storage.SaveQueue(ctx, entries); err != nil {
		return domain.QueueEntry{}, err
	}
	return entry, nil
}

// List returns the full durable queue.
func (q Queue) List(ctx context.Context) ([]domain.QueueEntry, error) {
	return q.Storage.LoadQueue(ctx)
}

// PendingCount is the number of entries not yet confirmed by the remote
// authority. This is the figure surfaced as "items pending sync".
func (q Queue) PendingCount(ctx context.Context) (int, error) {
	entries, err := q.Storage.LoadQueue(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range entries {
		if !e.Synced {
			count++
		}
	}
	return count, nil
}

// MarkSynced flips an entry's synced flag. The transition is one-way; marking
// an already synced entry is an error so a drain loop cannot double-confirm.
func (q Queue) MarkSynced(ctx context.Context, id string) error {
	entries, err := q.Storage.LoadQueue(ctx)
	if err != nil {
		return err
	}
	for i, e := range entries {
		if e.ID != id {
			continue
		}
		if e.Synced {
			return fmt.Errorf("queue entry %s already synced", id)
		}
		entries[i].Synced = true
		return q.Storage.SaveQueue(ctx, entries)
	}
	return fmt.Errorf("queue entry %s: %w", id, ErrNotFound)
}

// Clear resets the queue to empty. Irreversible; demo and reset flows only.
func (q Queue) Clear(ctx context.Context) error {
	return q.Storage.SaveQueue(ctx, []domain.QueueEntry{})
}
