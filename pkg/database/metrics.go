package database

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// PoolStatsCollector implements prometheus.Collector for database/sql
// connection pool metrics.
type PoolStatsCollector struct {
	db      *sql.DB
	service string

	openConns         *prometheus.Desc
	inUseConns        *prometheus.Desc
	idleConns         *prometheus.Desc
	maxOpenConns      *prometheus.Desc
	waitCount         *prometheus.Desc
	waitDuration      *prometheus.Desc
	maxIdleClosed     *prometheus.Desc
	maxLifetimeClosed *prometheus.Desc
}

// NewPoolStatsCollector creates a new Prometheus collector that exports
// database/sql pool statistics as metrics.
func NewPoolStatsCollector(db *sql.DB, service string) *PoolStatsCollector {
	labels := []string{"service"}
	return &PoolStatsCollector{
		db:      db,
		service: service,
		openConns: prometheus.NewDesc(
			"db_pool_open_connections",
			"Number of established connections both in use and idle",
			labels, nil,
		),
		inUseConns: prometheus.NewDesc(
			"db_pool_in_use_connections",
			"Number of connections currently in use",
			labels, nil,
		),
		idleConns: prometheus.NewDesc(
			"db_pool_idle_connections",
			"Number of currently idle connections",
			labels, nil,
		),
		maxOpenConns: prometheus.NewDesc(
			"db_pool_max_open_connections",
			"Maximum number of open connections allowed",
			labels, nil,
		),
		waitCount: prometheus.NewDesc(
			"db_pool_wait_count_total",
			"Total number of connections waited for",
			labels, nil,
		),
		waitDuration: prometheus.NewDesc(
			"db_pool_wait_duration_seconds_total",
			"Total time blocked waiting for a new connection in seconds",
			labels, nil,
		),
		maxIdleClosed: prometheus.NewDesc(
			"db_pool_max_idle_closed_total",
			"Total connections closed due to SetMaxIdleConns",
			labels, nil,
		),
		maxLifetimeClosed: prometheus.NewDesc(
			"db_pool_max_lifetime_closed_total",
			"Total connections closed due to SetConnMaxLifetime",
			labels, nil,
		),
	}
}

// Describe sends the descriptors of all metrics to the provided channel.
func (c *PoolStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.openConns
	ch <- c.inUseConns
	ch <- c.idleConns
	ch <- c.maxOpenConns
	ch <- c.waitCount
	ch <- c.waitDuration
	ch <- c.maxIdleClosed
	ch <- c.maxLifetimeClosed
}

// Collect reads current pool statistics and sends them as Prometheus metrics.
func (c *PoolStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.db.Stats()

	ch <- prometheus.MustNewConstMetric(c.openConns, prometheus.GaugeValue, float64(stats.OpenConnections), c.service)
	ch <- prometheus.MustNewConstMetric(c.inUseConns, prometheus.GaugeValue, float64(stats.InUse), c.service)
	ch <- prometheus.MustNewConstMetric(c.idleConns, prometheus.GaugeValue, float64(stats.Idle), c.service)
	ch <- prometheus.MustNewConstMetric(c.maxOpenConns, prometheus.GaugeValue, float64(stats.MaxOpenConnections), c.service)
	ch <- prometheus.MustNewConstMetric(c.waitCount, prometheus.CounterValue, float64(stats.WaitCount), c.service)
	ch <- prometheus.MustNewConstMetric(c.waitDuration, prometheus.CounterValue, stats.WaitDuration.Seconds(), c.service)
	ch <- prometheus.MustNewConstMetric(c.maxIdleClosed, prometheus.CounterValue, float64(stats.MaxIdleClosed), c.service)
	ch <- prometheus.MustNewConstMetric(c.maxLifetimeClosed, prometheus.CounterValue, float64(stats.MaxLifetimeClosed), c.service)
}

// RegisterPoolMetrics creates and registers a pool metrics collector with
// the default Prometheus registry.
func RegisterPoolMetrics(db *sql.DB, service string) {
	prometheus.MustRegister(NewPoolStatsCollector(db, service))
}
