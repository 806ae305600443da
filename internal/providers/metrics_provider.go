package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"surveysync/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits(cache string)
	IncCacheMisses(cache string)
	IncPolls(result string)
	ObservePollDuration(duration time.Duration)
	IncStaleResponses()
	SetSurveysAvailable(count int)
	SetUnpaidTransactions(count int)
	SetPollingActive(active bool)
	SetBannerVisible(visible bool)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	pollsTotal          *prometheus.CounterVec
	pollDuration        prometheus.Histogram
	staleResponses      prometheus.Counter
	surveysAvailable    prometheus.Gauge
	unpaidTransactions  prometheus.Gauge
	pollingActive       prometheus.Gauge
	bannerVisible       prometheus.Gauge
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

func (m *MetricsProvider) IncCacheMisses(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

func (m *MetricsProvider) IncPolls(result string) {
	m.pollsTotal.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) ObservePollDuration(duration time.Duration) {
	m.pollDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncStaleResponses() {
	m.staleResponses.Inc()
}

func (m *MetricsProvider) SetSurveysAvailable(count int) {
	m.surveysAvailable.Set(float64(count))
}

func (m *MetricsProvider) SetUnpaidTransactions(count int) {
	m.unpaidTransactions.Set(float64(count))
}

func (m *MetricsProvider) SetPollingActive(active bool) {
	m.pollingActive.Set(boolGauge(active))
}

func (m *MetricsProvider) SetBannerVisible(visible bool) {
	m.bannerVisible.Set(boolGauge(visible))
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func boolGauge(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "surveysync_requests_total",
			Help: "Total number of host API requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "surveysync_request_duration_seconds",
			Help:    "Host API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "surveysync_cache_hits_total",
			Help: "Total number of cache hits",
		}, []string{"cache"}),

		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "surveysync_cache_misses_total",
			Help: "Total number of cache misses",
		}, []string{"cache"}),

		pollsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "surveysync_polls_total",
			Help: "Survey polls by result",
		}, []string{"result"}),

		pollDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "surveysync_poll_duration_seconds",
			Help:    "Survey poll round trip in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		staleResponses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "surveysync_stale_responses_total",
			Help: "Poll responses discarded because a newer one was already applied",
		}),

		surveysAvailable: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "surveysync_surveys_available",
			Help: "Available surveys in the current snapshot",
		}),

		unpaidTransactions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "surveysync_unpaid_transactions",
			Help: "Transactions in the local unpaid ledger",
		}),

		pollingActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "surveysync_polling_active",
			Help: "1 while automatic polling is active",
		}),

		bannerVisible: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "surveysync_banner_visible",
			Help: "1 while the banner state machine is Visible",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "surveysync_persistence_duration_seconds",
			Help:    "Duration of state file writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits(_ string)                            {}
func (n *noopMetrics) IncCacheMisses(_ string)                          {}
func (n *noopMetrics) IncPolls(_ string)                                {}
func (n *noopMetrics) ObservePollDuration(_ time.Duration)              {}
func (n *noopMetrics) IncStaleResponses()                               {}
func (n *noopMetrics) SetSurveysAvailable(_ int)                        {}
func (n *noopMetrics) SetUnpaidTransactions(_ int)                      {}
func (n *noopMetrics) SetPollingActive(_ bool)                          {}
func (n *noopMetrics) SetBannerVisible(_ bool)                          {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
