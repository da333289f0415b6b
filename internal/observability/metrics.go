package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the service.
type Metrics struct {
	RiskAnalyses     *prometheus.CounterVec // labels: weather_source={live,estimate}, level={low,medium,high}
	RiskErrors       prometheus.Counter
	AnalysisDuration prometheus.Histogram

	WeatherFetches     *prometheus.CounterVec // labels: outcome={success,error}
	WeatherAPIDuration prometheus.Histogram

	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}

	SchemeMatches *prometheus.CounterVec // labels: outcome={matched,empty,error}

	AlertsPublished prometheus.Counter
	AlertErrors     prometheus.Counter

	LoginAttempts *prometheus.CounterVec // labels: outcome={success,failure}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RiskAnalyses,
		m.RiskErrors,
		m.AnalysisDuration,
		m.WeatherFetches,
		m.WeatherAPIDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.SchemeMatches,
		m.AlertsPublished,
		m.AlertErrors,
		m.LoginAttempts,
	)
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RiskAnalyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "croppilot",
			Name:      "risk_analyses_total",
			Help:      "Completed risk analyses by weather source and resulting level.",
		}, []string{"weather_source", "level"}),
		RiskErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "croppilot",
			Name:      "risk_errors_total",
			Help:      "Risk analyses that failed to produce a score.",
		}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "croppilot",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a complete risk analysis including collaborator calls.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		WeatherFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "croppilot",
			Name:      "weather_fetches_total",
			Help:      "Weather API requests by outcome.",
		}, []string{"outcome"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "croppilot",
			Name:      "weather_api_duration_seconds",
			Help:      "OpenWeather forecast request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "croppilot",
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "croppilot",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		SchemeMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "croppilot",
			Name:      "scheme_matches_total",
			Help:      "Scheme matching requests by outcome.",
		}, []string{"outcome"}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "croppilot",
			Name:      "alerts_published_total",
			Help:      "High-risk alert events published to Kafka.",
		}),
		AlertErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "croppilot",
			Name:      "alert_errors_total",
			Help:      "High-risk alert publish failures.",
		}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "croppilot",
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
	}
}
