package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var (
	roundsSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steake_rounds_settled_total",
			Help: "Settled rounds by game and result",
		},
		[]string{"game", "result"},
	)

	wagered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steake_wagered_total",
			Help: "Total amount wagered by game",
		},
		[]string{"game"},
	)

	paidOut = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steake_paid_out_total",
			Help: "Total amount paid out by game",
		},
		[]string{"game"},
	)

	actionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "steake_game_action_duration_ms",
			Help:    "Game action duration in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"game", "action", "result"},
	)
)

// RecordSettlement counts a settled round and the money it moved.
func RecordSettlement(game, result string, bet, win decimal.Decimal) {
	roundsSettled.WithLabelValues(game, result).Inc()
	wagered.WithLabelValues(game).Add(bet.InexactFloat64())
	paidOut.WithLabelValues(game).Add(win.InexactFloat64())
}

// RecordAction observes one game API call. result is "success" or "fail".
func RecordAction(game, action, result string, started time.Time) {
	if result != "success" {
		result = "fail"
	}
	actionDuration.WithLabelValues(game, action, result).Observe(float64(time.Since(started).Milliseconds()))
}
