// Package metrics exposes processing, database and HTTP metrics to Prometheus.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
)

const namespace = "cnab"

// Collector owns every metric of the service. Each Collector registers into its own registry.
type Collector struct {
	registry *prometheus.Registry

	filesTotal         *prometheus.CounterVec
	fileDuration       *prometheus.HistogramVec
	linesTotal         *prometheus.CounterVec
	retriesTotal       prometheus.Counter
	deadLettersTotal   *prometheus.CounterVec
	queryDuration      *prometheus.HistogramVec
	queryErrorsTotal   *prometheus.CounterVec
	httpRequestsTotal  *prometheus.CounterVec
	httpRequestSeconds *prometheus.HistogramVec
}

// NewCollector creates a Collector with Go runtime and process collectors registered
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		filesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_processed_total",
			Help:      "Processing runs by resulting file status and failure cause",
		}, []string{"status", "cause"}),
		fileDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_processing_duration_seconds",
			Help:      "Duration of processing runs",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"status"}),
		linesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Decoded CNAB lines by validity",
		}, []string{"result"}),
		retriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "processing_retries_total",
			Help:      "Redeliveries after transient failures",
		}),
		deadLettersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "processing_dead_letters_total",
			Help:      "Files dropped by the dispatcher",
		}, []string{"cause"}),
		queryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Duration of SQL statements",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"type", "table"}),
		queryErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_query_errors_total",
			Help:      "Failed SQL statements",
		}, []string{"type", "table"}),
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpRequestSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

var _ coreport.ProcessingMetrics = (*Collector)(nil)

// ObserveFile records one processing run
func (c *Collector) ObserveFile(status, cause string, elapsed time.Duration) {
	if status == "" {
		status = "unknown"
	}
	c.filesTotal.WithLabelValues(status, cause).Inc()
	c.fileDuration.WithLabelValues(status).Observe(elapsed.Seconds())
}

// ObserveLines records line counts of one file
func (c *Collector) ObserveLines(valid, invalid int) {
	c.linesTotal.WithLabelValues("valid").Add(float64(valid))
	c.linesTotal.WithLabelValues("invalid").Add(float64(invalid))
}

// ObserveRetry records a redelivery
func (c *Collector) ObserveRetry() {
	c.retriesTotal.Inc()
}

// ObserveDeadLetter records a dropped file
func (c *Collector) ObserveDeadLetter(cause string) {
	c.deadLettersTotal.WithLabelValues(cause).Inc()
}

// ObserveQuery records one SQL statement
func (c *Collector) ObserveQuery(queryType, table string, elapsed time.Duration, failed bool) {
	c.queryDuration.WithLabelValues(queryType, table).Observe(elapsed.Seconds())
	if failed {
		c.queryErrorsTotal.WithLabelValues(queryType, table).Inc()
	}
}

// ObserveHTTP records one HTTP request. route is the matched route template, not the raw path.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpRequestSeconds.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RegisterDBStats exports connection pool statistics of db
func (c *Collector) RegisterDBStats(db *sql.DB, dbName string) error {
	return c.registry.Register(collectors.NewDBStatsCollector(db, dbName))
}

// Registry returns the registry backing the collector
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
