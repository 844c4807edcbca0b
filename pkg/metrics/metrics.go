package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels
const (
	ResultFound       = "found"
	ResultNotFound    = "not_found"
	ResultInvalid     = "invalid"
	ResultError       = "error"
	ResultOK          = "ok"
	ResultConflict    = "conflict"
	ResultPartial     = "partial_write"
	ResultRecovered   = "recovered"
	ResultCacheHit    = "cache_hit"
	ResultCacheMiss   = "cache_miss"
	ResultUnavailable = "unavailable"
)

var (
	registry = prometheus.NewRegistry()

	vendorLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "onboarding",
		Name:      "vendor_lookups_total",
		Help:      "Vendor lookups by result.",
	}, []string{"result"})

	submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "onboarding",
		Name:      "submissions_total",
		Help:      "Onboarding submissions by mode and result.",
	}, []string{"mode", "result"})

	submissionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "onboarding",
		Name:      "submission_duration_seconds",
		Help:      "Time spent reconciling a submission.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"mode"})

	sheetFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "onboarding",
		Name:      "prospect_sheet_fetches_total",
		Help:      "Prospect sheet reads by result.",
	}, []string{"result"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "onboarding",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	registry.MustRegister(
		vendorLookups,
		submissions,
		submissionDuration,
		sheetFetches,
		httpDuration,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
}

// Registry exposes the service registry, mostly for tests
func Registry() *prometheus.Registry {
	return registry
}

// Handler serves the exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func ObserveLookup(result string) {
	vendorLookups.WithLabelValues(result).Inc()
}

func ObserveSubmission(mode, result string, elapsed time.Duration) {
	if mode == "" {
		mode = "unspecified"
	}
	submissions.WithLabelValues(mode, result).Inc()
	submissionDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

func ObserveSheetFetch(result string) {
	sheetFetches.WithLabelValues(result).Inc()
}

func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
