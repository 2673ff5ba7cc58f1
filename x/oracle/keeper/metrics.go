package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OracleMetrics holds all Prometheus metrics for the oracle engine
type OracleMetrics struct {
	// Commit-reveal metrics
	HashSubmissions  *prometheus.CounterVec
	PriceReveals     *prometheus.CounterVec
	RevealRejections *prometheus.CounterVec

	// Finalization metrics
	EpochsFinalized prometheus.Counter
	EpochsFailed    *prometheus.CounterVec
	FinalizeLatency prometheus.Histogram
	MedianPrice     prometheus.Gauge
	PriceSpread     prometheus.Gauge
	VoteCount       prometheus.Gauge
	RewardedVoters  prometheus.Gauge
	AssetRatioBips  prometheus.Gauge
}

var (
	oracleMetricsOnce sync.Once
	oracleMetrics     *OracleMetrics
)

// NewOracleMetrics creates and registers oracle metrics (singleton pattern)
func NewOracleMetrics() *OracleMetrics {
	oracleMetricsOnce.Do(func() {
		oracleMetrics = &OracleMetrics{
			HashSubmissions: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ember",
					Subsystem: "oracle",
					Name:      "hash_submissions_total",
					Help:      "Total price hash submissions by outcome",
				},
				[]string{"status"},
			),
			PriceReveals: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ember",
					Subsystem: "oracle",
					Name:      "price_reveals_total",
					Help:      "Total successful price reveals",
				},
				[]string{"status"},
			),
			RevealRejections: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ember",
					Subsystem: "oracle",
					Name:      "reveal_rejections_total",
					Help:      "Price reveals rejected by reason",
				},
				[]string{"reason"},
			),
			EpochsFinalized: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "ember",
					Subsystem: "oracle",
					Name:      "epochs_finalized_total",
					Help:      "Total price epochs finalized",
				},
			),
			EpochsFailed: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ember",
					Subsystem: "oracle",
					Name:      "epochs_failed_total",
					Help:      "Price epochs permanently failed by reason",
				},
				[]string{"reason"},
			),
			FinalizeLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "ember",
					Subsystem: "oracle",
					Name:      "finalize_latency_seconds",
					Help:      "Epoch finalization processing time",
					Buckets:   prometheus.DefBuckets,
				},
			),
			MedianPrice: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "ember",
					Subsystem: "oracle",
					Name:      "median_price",
					Help:      "Median price of the latest finalized epoch",
				},
			),
			PriceSpread: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "ember",
					Subsystem: "oracle",
					Name:      "price_spread",
					Help:      "High minus low truncated quartile price of the latest finalized epoch",
				},
			),
			VoteCount: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "ember",
					Subsystem: "oracle",
					Name:      "vote_count",
					Help:      "Revealed vote count of the latest finalized epoch",
				},
			),
			RewardedVoters: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "ember",
					Subsystem: "oracle",
					Name:      "rewarded_voters",
					Help:      "Number of rewarded voters in the latest finalized epoch",
				},
			),
			AssetRatioBips: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "ember",
					Subsystem: "oracle",
					Name:      "asset_ratio_bips",
					Help:      "Asset weight ratio (bips) used in the latest finalized epoch",
				},
			),
		}
	})
	return oracleMetrics
}

// GetOracleMetrics returns the singleton oracle metrics instance
func GetOracleMetrics() *OracleMetrics {
	if oracleMetrics == nil {
		return NewOracleMetrics()
	}
	return oracleMetrics
}
