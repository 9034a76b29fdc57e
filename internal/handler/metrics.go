package handler

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ordersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop_orders",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Total number of stored orders by intake source",
		},
		[]string{"source"},
	)

	ordersRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop_orders",
			Subsystem: "orders",
			Name:      "rejected_total",
			Help:      "Total number of orders rejected by validation by intake source",
		},
		[]string{"source"},
	)
)

var (
	messagesProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shop_orders",
			Subsystem: "kafka_consumer",
			Name:      "messages_processed_total",
			Help:      "Total number of successfully processed order messages",
		},
	)

	messagesFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shop_orders",
			Subsystem: "kafka_consumer",
			Name:      "messages_failed_total",
			Help:      "Total number of failed order message processing attempts",
		},
	)

	messagesDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shop_orders",
			Subsystem: "kafka_consumer",
			Name:      "messages_dlq_total",
			Help:      "Total number of order messages written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shop_orders",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	messageProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "shop_orders",
			Subsystem: "kafka_consumer",
			Name:      "message_processing_duration_seconds",
			Help:      "Histogram of order message processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

var registerOnce sync.Once

func RegisterMetrics(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(
			ordersCreated,
			ordersRejected,

			messagesProcessed,
			messagesFailed,
			messagesDLQ,
			commitErrors,
			messageProcessingDuration,
		)
	})
}
