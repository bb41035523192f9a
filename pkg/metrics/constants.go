package metrics

// Metric names

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Engine metric names
const (
	MetricNameEventsProcessed    = "progression_events_processed_total"
	MetricNameEventsRejected     = "progression_events_rejected_total"
	MetricNameDefinitionsMatched = "progression_definitions_matched_total"
	MetricNameCompletions        = "progression_completions_total"
	MetricNameClaims             = "progression_claims_total"
	MetricNameRewardsIssued      = "progression_rewards_issued_total"
	MetricNameCycleResets        = "progression_cycle_resets_total"
)

// Metric help text

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

const (
	HelpTextEventsProcessed    = "Total number of player events processed"
	HelpTextEventsRejected     = "Total number of player events rejected as invalid"
	HelpTextDefinitionsMatched = "Total number of definition matches produced by incoming events"
	HelpTextCompletions        = "Total number of definitions reaching completed status"
	HelpTextClaims             = "Total number of claim attempts"
	HelpTextRewardsIssued      = "Total number of reward components issued on successful claims"
	HelpTextCycleResets        = "Total number of challenge cycle resets"
)

// Metric label names
const (
	LabelMethod      = "method"
	LabelPath        = "path"
	LabelStatus      = "status"
	LabelTriggerType = "trigger_type"
	LabelKind        = "kind"
	LabelResult      = "result"
	LabelRewardKind  = "reward_kind"
	LabelFrequency   = "frequency"
)

// Claim result label values
const (
	ClaimResultSuccess = "success"
	ClaimResultFailed  = "failed"
	ClaimResultAlready = "already_claimed"
	ClaimResultBlocked = "not_completed"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, ranging from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
