// Package storage persists full-collection snapshots into keyed slots.
// Every save is a whole-value overwrite; there is no partial-write recovery
// beyond the last successful save.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/tpdc055/sheriff/internal/domain"
)

// Slot keys. One mutable slot per logical collection.
const (
	SlotWrits    = "writs"
	SlotQueue    = "offline_queue"
	SlotLastSync = "last_sync"
)

type Store struct {
	DB     *sql.DB
	Logger *zap.Logger
	Now    func() time.Time
}

func New(db *sql.DB, logger *zap.Logger) Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Store{DB: db, Logger: logger, Now: time.Now}
}

func (s Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s Store) put(ctx context.Context, key, value string) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO slots(key,value,updated_at) VALUES (?,?,?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		key, value, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

func (s Store) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.DB.QueryRowContext(ctx, `SELECT value FROM slots WHERE key=?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return value, true, nil
}

// SaveWrits overwrites the writ snapshot and stamps the last-sync marker.
// The marker records local durability time only; it does not imply a remote
// sync happened.
func (s Store) SaveWrits(ctx context.Context, writs []domain.Writ) error {
	data, err := json.Marshal(writs)
	if err != nil {
		return fmt.Errorf("marshal writs: %w", err)
	}
	if err := s.put(ctx, SlotWrits, string(data)); err != nil {
		return err
	}
	return s.put(ctx, SlotLastSync, strconv.FormatInt(s.now().UnixMilli(), 10))
}

// LoadWrits returns the persisted snapshot, or nil when none was ever written.
// Corrupt payloads degrade to "no prior snapshot": the condition is logged and
// nil is returned rather than an error.
func (s Store) LoadWrits(ctx context.Context) ([]domain.Writ, error) {
	value, ok, err := s.get(ctx, SlotWrits)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var writs []domain.Writ
	if err := json.Unmarshal([]byte(value), &writs); err != nil {
		s.Logger.Warn("writ snapshot corrupt, discarding", zap.Error(err))
		return nil, nil
	}
	return writs, nil
}

// SaveQueue overwrites the offline queue snapshot.
func (s Store) SaveQueue(ctx context.Context, entries []domain.QueueEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal queue: %w", err)
	}
	return s.put(ctx, SlotQueue, string(data))
}

// LoadQueue returns the persisted queue, defaulting to empty when no slot
// exists or the payload does not parse.
func (s Store) LoadQueue(ctx context.Context) ([]domain.QueueEntry, error) {
	value, ok, err := s.get(ctx, SlotQueue)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.QueueEntry{}, nil
	}
	var entries []domain.QueueEntry
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		s.Logger.Warn("offline queue corrupt, discarding", zap.Error(err))
		return []domain.QueueEntry{}, nil
	}
	if entries == nil {
		entries = []domain.QueueEntry{}
	}
	return entries, nil
}

// LastSync reads the last-sync marker as epoch milliseconds; zero when unset.
func (s Store) LastSync(ctx context.Context) (int64, error) {
	value, ok, err := s.get(ctx, SlotLastSync)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		s.Logger.Warn("last-sync marker corrupt, discarding", zap.String("value", value))
		return 0, nil
	}
	return ms, nil
}

// Usage reports bytes held across all slots against a budget. The budget is
// a monitoring signal only; writes are never blocked by it.
type Usage struct {
	Used   int64 `json:"used"`
	Budget int64 `json:"budget"`
}

func (s Store) Usage(ctx context.Context, budget int64) (Usage, error) {
	var used sql.NullInt64
	err := s.DB.QueryRowContext(ctx, `SELECT SUM(LENGTH(key) + LENGTH(value)) FROM slots`).Scan(&used)
	if err != nil {
		return Usage{}, fmt.Errorf("measure slots: %w", err)
	}
	u := Usage{Used: used.Int64, Budget: budget}
	if budget > 0 && u.Used > budget {
		s.Logger.Warn("storage budget exceeded",
			zap.Int64("used", u.Used), zap.Int64("budget", budget))
	}
	return u, nil
}
