package keeper

import (
	"strconv"
	"sync"

	"github.com/cosmos/cosmos-sdk/telemetry"
	gometrics "github.com/hashicorp/go-metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/veilchain/veil/x/darkpool/types"
)

// DarkpoolMetrics holds the Prometheus metrics for the darkpool module.
// Everything counted here is already public on-ledger information; no metric
// carries an amount, price or direction.
type DarkpoolMetrics struct {
	// Order lifecycle
	OrdersPlaced    prometheus.Counter
	OrdersCancelled prometheus.Counter
	OrdersExpired   prometheus.Counter
	OrdersFilled    prometheus.Counter
	ActiveOrders    prometheus.Gauge

	// Execution engine
	PriceUpdates        prometheus.Counter
	FillsExecuted       prometheus.Counter
	CandidatesEvaluated prometheus.Counter

	// Decryption tickets
	TicketsRequested prometheus.Counter
	TicketsFulfilled prometheus.Counter
	TicketsConsumed  prometheus.Counter
	TicketsPruned    prometheus.Counter

	// Maintenance
	SweepsCompleted prometheus.Counter
}

var (
	darkpoolMetricsOnce sync.Once
	darkpoolMetrics     *DarkpoolMetrics
)

// telemetryIncr mirrors lifecycle counters into the SDK telemetry sink,
// labeled by pool. Pool membership is already public on-ledger information.
func telemetryIncr(key string, poolID uint64) {
	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, key},
		1,
		[]gometrics.Label{
			telemetry.NewLabel("pool", strconv.FormatUint(poolID, 10)),
		},
	)
}

// metrics returns the registered module metrics (singleton pattern)
func metrics() *DarkpoolMetrics {
	darkpoolMetricsOnce.Do(func() {
		darkpoolMetrics = &DarkpoolMetrics{
			OrdersPlaced: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "veil",
				Subsystem: "darkpool",
				Name:      "orders_placed_total",
				Help:      "Total number of confidential orders placed",
			}),
			OrdersCancelled: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "veil",
				Subsystem: "darkpool",
				Name:      "orders_cancelled_total",
				Help:      "Total number of orders cancelled",
			}),
			OrdersExpired: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "veil",
				Subsystem: "darkpool",
				Name:      "orders_expired_total",
				Help:      "Total number of orders retired by expiration sweeps",
			}),
			OrdersFilled: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "veil",
				Subsystem: "darkpool",
				Name:      "orders_filled_total",
				Help:      "Total number of orders that reached zero remaining size",
			}),
			ActiveOrders: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "veil",
				Subsystem: "darkpool",
				Name:      "active_orders",
				Help:      "Number of orders currently resting in the book",
			}),
			PriceUpdates: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "veil",
				Subsystem: "darkpool",
				Name:      "price_updates_total",
				Help:      "Total number of price updates processed by the engine",
			}),
			FillsExecuted: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "veil",
				Subsystem: "darkpool",
				Name:      "fills_executed_total",
				Help:      "Total number of positive fills recorded",
			}),
			CandidatesEvaluated: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "veil",
				Subsystem: "darkpool",
				Name:      "candidates_evaluated_total",
				Help:      "Total number of candidate orders evaluated by the engine",
			}),
			TicketsRequested: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "veil",
				Subsystem: "darkpool",
				Name:      "decryption_tickets_requested_total",
				Help:      "Total number of decryption tickets opened",
			}),
			TicketsFulfilled: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "veil",
				Subsystem: "darkpool",
				Name:      "decryption_tickets_fulfilled_total",
				Help:      "Total number of decryption tickets fulfilled",
			}),
			TicketsConsumed: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "veil",
				Subsystem: "darkpool",
				Name:      "decryption_tickets_consumed_total",
				Help:      "Total number of decryption tickets consumed",
			}),
			TicketsPruned: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "veil",
				Subsystem: "darkpool",
				Name:      "decryption_tickets_pruned_total",
				Help:      "Total number of expired decryption tickets pruned",
			}),
			SweepsCompleted: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "veil",
				Subsystem: "darkpool",
				Name:      "expiration_sweeps_total",
				Help:      "Total number of expiration sweep passes",
			}),
		}
	})
	return darkpoolMetrics
}
