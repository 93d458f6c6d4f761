// Package syncer drains the offline outbox against a remote authority.
// Entries are marked synced only after the remote confirms acceptance; a
// transport failure leaves them pending and flips the connectivity signal.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tpdc055/sheriff/internal/netstate"
	"github.com/tpdc055/sheriff/internal/observability"
	"github.com/tpdc055/sheriff/internal/outbox"
)

const (
	defaultInterval = 2 * time.Second
	defaultTimeout  = 5 * time.Second
)

type Config struct {
	URL      string
	Interval time.Duration
	Timeout  time.Duration
}

type Dispatcher struct {
	queue  outbox.Queue
	net    *netstate.Signal
	url    string
	client *http.Client
	logger *zap.Logger
	ticker *time.Ticker
	stop   chan struct{}
	done   chan struct{}
}

// Start launches the drain loop. Returns nil when no sync URL is configured;
// the outbox then simply accumulates, which is the standalone mode.
func Start(queue outbox.Queue, net *netstate.Signal, cfg Config, logger *zap.Logger) *Dispatcher {
	if cfg.URL == "" {
		return nil
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		queue:  queue,
		net:    net,
		url:    cfg.URL,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
		ticker: time.NewTicker(cfg.Interval),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Once performs a single drain round without starting the loop.
func Once(ctx context.Context, queue outbox.Queue, net *netstate.Signal, cfg Config, logger *zap.Logger) error {
	if cfg.URL == "" {
		return fmt.Errorf("no sync URL configured")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		queue:  queue,
		net:    net,
		url:    cfg.URL,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
	d.DrainOnce(ctx)
	return nil
}

func (d *Dispatcher) run() {
	defer close(d.done)
	defer d.ticker.Stop()
	for {
		d.DrainOnce(context.Background())
		select {
		case <-d.stop:
			return
		case <-d.ticker.C:
		}
	}
}

// Stop halts the loop after a final flush attempt.
func (d *Dispatcher) Stop() {
	if d == nil {
		return
	}
	close(d.stop)
	<-d.done
	d.DrainOnce(context.Background())
}

// DrainOnce pushes every pending entry in order. The first transport failure
// ends the round: later entries stay pending and retry next tick.
func (d *Dispatcher) DrainOnce(ctx context.Context) {
	entries, err := d.queue.List(ctx)
	if err != nil {
		d.logger.Warn("sync: read queue", zap.Error(err))
		return
	}
	for _, entry := range entries {
		if entry.Synced {
			continue
		}
		if err := d.push(ctx, entry.ID, entry); err != nil {
			observability.SyncDispatches.WithLabelValues("failure").Inc()
			d.logger.Warn("sync: dispatch failed", zap.String("entry", entry.ID), zap.Error(err))
			if d.net != nil {
				d.net.Set(false)
			}
			return
		}
		observability.SyncDispatches.WithLabelValues("success").Inc()
		if d.net != nil {
			d.net.Set(true)
		}
		if err := d.queue.MarkSynced(ctx, entry.ID); err != nil {
			d.logger.Warn("sync: mark synced", zap.String("entry", entry.ID), zap.Error(err))
			return
		}
	}
	if count, err := d.queue.PendingCount(ctx); err == nil {
		observability.PendingSyncEntries.Set(float64(count))
	}
}

func (d *Dispatcher) push(ctx context.Context, id string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal entry %s: %w", id, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url+"/queue", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("remote authority returned status %d", res.StatusCode)
	}
	return nil
}
