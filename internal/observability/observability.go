// Package observability holds the Prometheus metrics for the record store,
// outbox and sync dispatcher.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WritMutations counts applied record-store mutations by kind
// (service_attempt, seizure, fee, update).
var WritMutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sheriff_writ_mutations_total",
	Help: "Record store mutations applied, by kind.",
}, []string{"kind"})

// PendingSyncEntries tracks outbox entries awaiting remote confirmation.
var PendingSyncEntries = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "sheriff_pending_sync_entries",
	Help: "Offline queue entries with synced=false.",
})

// StorageUsedBytes mirrors the snapshot slot usage measurement.
var StorageUsedBytes = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "sheriff_storage_used_bytes",
	Help: "Bytes held across durable snapshot slots.",
})

// StorageBudgetBytes exposes the configured monitoring budget.
var StorageBudgetBytes = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "sheriff_storage_budget_bytes",
	Help: "Configured storage budget (monitoring signal only).",
})

// SyncDispatches counts drain attempts against the remote authority.
var SyncDispatches = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sheriff_sync_dispatches_total",
	Help: "Outbox entries dispatched to the remote authority, by result.",
}, []string{"result"})

// Online reports the connectivity signal (1 online, 0 offline).
var Online = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "sheriff_online",
	Help: "Connectivity signal state.",
})

// SetOnline mirrors a connectivity transition into the gauge. Shaped to hang
// directly off a netstate listener.
func SetOnline(online bool) {
	if online {
		Online.Set(1)
	} else {
		Online.Set(0)
	}
}
