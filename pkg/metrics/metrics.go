package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubalert_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hubalert_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	GrpcRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubalert_grpc_requests_total",
			Help: "Total number of gRPC requests",
		},
		[]string{"method", "code"},
	)

	MQTTMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubalert_mqtt_messages_total",
			Help: "Total number of MQTT reading messages",
		},
		[]string{"status"}, // status: accepted, rejected, failed
	)

	// Engine metrics
	ReadingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubalert_readings_total",
			Help: "Total number of persisted readings by verdict",
		},
		[]string{"verdict"},
	)

	AlertsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubalert_alerts_created_total",
			Help: "Total number of alerts opened",
		},
		[]string{"kind"},
	)

	AlertsDeduplicatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hubalert_alerts_deduplicated_total",
			Help: "Total number of breaches absorbed by an already open alert",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubalert_notifications_total",
			Help: "Total number of notification attempts",
		},
		[]string{"channel", "status"}, // status: sent, failed, skipped
	)

	AlertEventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubalert_alert_events_published_total",
			Help: "Total number of alert events published to the event stream",
		},
		[]string{"status"},
	)
)
