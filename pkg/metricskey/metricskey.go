package metricskey

import "github.com/effective-security/metrics"

// Stats
var (
	// StatsSchemasSkipped is base for counter metric for schema files skipped by the scanner
	StatsSchemasSkipped = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_schemas_skipped",
		Help:         "stats_schemas_skipped provides total schema files skipped during discovery",
		RequiredTags: []string{"file"},
	}

	StatsServicesResolved = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_services_resolved",
		Help:         "stats_services_resolved provides total services resolved for tools",
		RequiredTags: []string{"tool", "origin"},
	}

	StatsToolsRegistered = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tools_registered",
		Help:         "stats_tools_registered provides total tools registered",
		RequiredTags: []string{"tool"},
	}

	StatsToolsSkipped = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tools_skipped",
		Help:         "stats_tools_skipped provides total tools skipped during registration",
		RequiredTags: []string{"tool", "stage"},
	}

	StatsToolCallsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_succeeded",
		Help:         "stats_tool_calls_succeeded provides total tool calls succeeded",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_failed",
		Help:         "stats_tool_calls_failed provides total tool calls failed",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsNotFound = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_not_found",
		Help:         "stats_tool_calls_not_found provides total tool calls not found",
		RequiredTags: []string{"tool"},
	}
)

// Perf
var (
	PerfRegistration = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_registration",
		Help:         "perf_registration provides duration of a tool registration pass",
		RequiredTags: []string{"host"},
	}

	PerfToolCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_tool_call",
		Help:         "perf_tool_call provides duration of tool call",
		RequiredTags: []string{"tool"},
	}
)

// Metrics returns slice of metrics from this repo
// keep sorted by name
var Metrics = []*metrics.Describe{
	&PerfRegistration,
	&PerfToolCall,
	&StatsSchemasSkipped,
	&StatsServicesResolved,
	&StatsToolCallsFailed,
	&StatsToolCallsNotFound,
	&StatsToolCallsSucceeded,
	&StatsToolsRegistered,
	&StatsToolsSkipped,
}
