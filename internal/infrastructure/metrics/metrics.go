package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersCommitted  *prometheus.CounterVec
	TransfersRejected   *prometheus.CounterVec
	TransferAmount      prometheus.Histogram
	LinkedGroups        *prometheus.CounterVec
	LinkedGroupDuration prometheus.Histogram
	LinkedGroupSize     prometheus.Histogram
	BatchSize           prometheus.Histogram
	PendingResolutions  *prometheus.CounterVec

	// Account and ledger metrics
	AccountsCreated prometheus.Counter
	LedgersCreated  prometheus.Counter

	// Storage metrics
	StorageErrors *prometheus.CounterVec

	// Outbox metrics
	EventsPublished prometheus.Counter
	EventsFailed    prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates all Prometheus metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransfersCommitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transfers_committed_total",
				Help: "Total number of committed transfers by type",
			},
			[]string{"type"},
		),
		TransfersRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transfers_rejected_total",
				Help: "Total number of rejected transfers by cause",
			},
			[]string{"cause"},
		),
		TransferAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_transfer_amount",
			Help:    "Committed transfer amounts in minor units",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000},
		}),
		LinkedGroups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_linked_groups_total",
				Help: "Total number of linked transfer groups by result",
			},
			[]string{"result"},
		),
		LinkedGroupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_linked_group_duration_seconds",
			Help:    "Duration of linked group application",
			Buckets: prometheus.DefBuckets,
		}),
		LinkedGroupSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_linked_group_size",
			Help:    "Number of transfers per linked group",
			Buckets: []float64{1, 2, 5, 10, 50, 100, 300, 600},
		}),
		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_batch_size",
			Help:    "Number of transfers per batch call",
			Buckets: []float64{1, 5, 10, 50, 100, 250, 500},
		}),
		PendingResolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_pending_resolutions_total",
				Help: "Total number of resolved pending transfers by status",
			},
			[]string{"status"},
		),

		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		LedgersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_ledger_masters_created_total",
			Help: "Total number of ledger masters created",
		}),

		StorageErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_storage_errors_total",
				Help: "Total number of storage errors by operation",
			},
			[]string{"operation"},
		),

		EventsPublished: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_outbox_events_published_total",
			Help: "Total number of outbox events published",
		}),
		EventsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_outbox_events_failed_total",
			Help: "Total number of outbox events that failed to publish",
		}),
	}
}
