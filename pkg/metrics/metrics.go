package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллекция метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration  *prometheus.HistogramVec
	DBQueryErrors    *prometheus.CounterVec
	DBOpenConns      *prometheus.GaugeVec
	DBInUseConns     *prometheus.GaugeVec
	DBIdleConns      *prometheus.GaugeVec
	DBWaitCountTotal *prometheus.GaugeVec

	JobsProcessedTotal *prometheus.CounterVec
	OrdersTransitions  *prometheus.CounterVec
	EmailsSentTotal    *prometheus.CounterVec
}

// New создаёт и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создаёт метрики и регистрирует их в указанном registry
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{}),
		DBInUseConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),
		DBIdleConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),
		DBWaitCountTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count_total",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{}),
		JobsProcessedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "order_jobs_processed_total",
			Help:        "Total number of processed deferred order jobs",
			ConstLabels: constLabels,
		}, []string{"kind", "result"}),
		OrdersTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "order_status_transitions_total",
			Help:        "Total number of order status transitions",
			ConstLabels: constLabels,
		}, []string{"status"}),
		EmailsSentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "emails_sent_total",
			Help:        "Total number of notification emails",
			ConstLabels: constLabels,
		}, []string{"kind", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConns,
		m.DBInUseConns,
		m.DBIdleConns,
		m.DBWaitCountTotal,
		m.JobsProcessedTotal,
		m.OrdersTransitions,
		m.EmailsSentTotal,
	)

	return m
}

// ObserveJob учитывает обработанную отложенную задачу (nil-safe)
func (m *Metrics) ObserveJob(kind, result string) {
	if m == nil {
		return
	}
	m.JobsProcessedTotal.WithLabelValues(kind, result).Inc()
}

// ObserveTransition учитывает переход заказа в новый статус (nil-safe)
func (m *Metrics) ObserveTransition(status string) {
	if m == nil {
		return
	}
	m.OrdersTransitions.WithLabelValues(status).Inc()
}

// ObserveEmail учитывает отправку письма (nil-safe)
func (m *Metrics) ObserveEmail(kind, result string) {
	if m == nil {
		return
	}
	m.EmailsSentTotal.WithLabelValues(kind, result).Inc()
}
