package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	FallbackUnrecognized  = "unrecognized"
	FallbackClarification = "clarification"

	FollowUpStarted   = "started"
	FollowUpCompleted = "completed"
)

var (
	MessagesClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_messages_total",
			Help: "Total number of classified user messages",
		},
		[]string{"entity", "intention"},
	)

	Fallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_fallbacks_total",
			Help: "Total number of fallback responses by kind",
		},
		[]string{"kind"},
	)

	FollowUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_followups_total",
			Help: "Total number of follow-up flows by flow and status",
		},
		[]string{"flow", "status"},
	)

	ClassificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chatbot_classification_duration_seconds",
			Help:    "Duration of normalization and classification in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)
)

// Label renders an empty category as "none" so series stay readable.
func Label(value string) string {
	if value == "" {
		return "none"
	}
	return value
}
