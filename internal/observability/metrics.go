package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AssetUploadsTotal counts asset-host uploads by resource type and outcome.
	AssetUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ratil_asset_uploads_total",
		Help: "Total number of asset host uploads by resource type and outcome",
	}, []string{"resource_type", "outcome"})

	// AssetUploadDuration records how long asset-host uploads take.
	AssetUploadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ratil_asset_upload_duration_seconds",
		Help:    "Asset host upload latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"resource_type"})

	// CacheLookups counts catalog cache lookups by result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ratil_cache_lookups_total",
		Help: "Total number of catalog cache lookups by result",
	}, []string{"result"})
)

// Upload outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ObserveUpload records one upload attempt.
func ObserveUpload(resourceType, outcome string, start time.Time) {
	AssetUploadsTotal.WithLabelValues(resourceType, outcome).Inc()
	AssetUploadDuration.WithLabelValues(resourceType).Observe(time.Since(start).Seconds())
}
