// metrics — счётчики Prometheus витрины.
//
// Методы безопасны для nil-получателя: без метрик сервис работает так же.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

// Результаты, которые пишутся в label result.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"

	ResultCredited  = "credited"
	ResultIgnored   = "ignored"
	ResultDuplicate = "duplicate"
	ResultInvalid   = "invalid_signature"

	ResultServed  = "served"
	ResultExpired = "expired"
	ResultMissing = "missing_token"
)

// Виды писем (label kind).
const (
	EmailDownload = "download"
	EmailEnquiry  = "enquiry"
	EmailTest     = "test"
)

type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	payments     *prometheus.CounterVec
	webhooks     *prometheus.CounterVec
	emails       *prometheus.CounterVec
	downloads    *prometheus.CounterVec
	enquiries    *prometheus.CounterVec
}

// New создаёт счётчики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_requests_total",
			Help:      "Payment requests created at the processor",
		}, []string{"result"}),
		webhooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_notifications_total",
			Help:      "Processor notifications by outcome",
		}, []string{"result"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_total",
			Help:      "Emails by kind and outcome",
		}, []string{"kind", "result"}),
		downloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "download_portal_total",
			Help:      "Download portal renders by outcome",
		}, []string{"result"}),
		enquiries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hardcopy_enquiries_total",
			Help:      "Hardcopy enquiries by outcome",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.payments,
		m.webhooks,
		m.emails,
		m.downloads,
		m.enquiries,
	)

	return m
}

// ObserveHTTP учитывает HTTP-запрос.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) Payment(result string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(result).Inc()
}

func (m *Metrics) Webhook(result string) {
	if m == nil {
		return
	}
	m.webhooks.WithLabelValues(result).Inc()
}

func (m *Metrics) Email(kind, result string) {
	if m == nil {
		return
	}
	m.emails.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) Download(result string) {
	if m == nil {
		return
	}
	m.downloads.WithLabelValues(result).Inc()
}

func (m *Metrics) Enquiry(result string) {
	if m == nil {
		return
	}
	m.enquiries.WithLabelValues(result).Inc()
}
