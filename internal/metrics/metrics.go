package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hanhtrinhviet_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hanhtrinhviet_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	DepositRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hanhtrinhviet_deposit_requests_total",
			Help: "Total number of deposit requests by outcome",
		},
		[]string{"status"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hanhtrinhviet_bookings_total",
			Help: "Total number of bookings",
		},
		[]string{"status", "kind"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hanhtrinhviet_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	EmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hanhtrinhviet_emails_total",
			Help: "Total number of emails by delivery outcome",
		},
		[]string{"status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hanhtrinhviet_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordDepositRequest(status string) {
	DepositRequestsTotal.WithLabelValues(status).Inc()
}

func RecordBooking(status, kind string) {
	BookingsTotal.WithLabelValues(status, kind).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordEmail(status string) {
	EmailsTotal.WithLabelValues(status).Inc()
}
