package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Engine Metrics
var (
	EventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsProcessed,
			Help: HelpTextEventsProcessed,
		},
		[]string{LabelTriggerType},
	)

	EventsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsRejected,
			Help: HelpTextEventsRejected,
		},
		[]string{LabelTriggerType},
	)

	DefinitionsMatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDefinitionsMatched,
			Help: HelpTextDefinitionsMatched,
		},
		[]string{LabelKind, LabelTriggerType},
	)

	Completions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCompletions,
			Help: HelpTextCompletions,
		},
		[]string{LabelKind},
	)

	Claims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameClaims,
			Help: HelpTextClaims,
		},
		[]string{LabelKind, LabelResult},
	)

	RewardsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsIssued,
			Help: HelpTextRewardsIssued,
		},
		[]string{LabelRewardKind},
	)

	CycleResets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCycleResets,
			Help: HelpTextCycleResets,
		},
		[]string{LabelFrequency},
	)
)
