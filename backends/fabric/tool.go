package fabric

import (
	"context"

	"github.com/effective-security/toolhost/pkg/schema"
	"github.com/effective-security/toolhost/tools"
	"github.com/effective-security/xlog"
)

// QueryToolName is the name of the static data agent tool.
const QueryToolName = "query_fabric_data_agent"

var queryToolParams = []schema.Parameter{
	{
		Name: "query",
		Description: "Natural language query for the Fabric Data Agent. " +
			"Use for questions about specific data values, " +
			"aggregations, data analysis, or data exploration.",
	},
}

// NewQueryTool returns the static tool querying business data with details.
func NewQueryTool(q Querier) (*tools.Adapter, error) {
	return tools.NewFunc(QueryToolName,
		"Query the Fabric Data Agent for business data.",
		queryToolParams,
		func(ctx context.Context, call *tools.ToolCall) (string, error) {
			query := call.Get("query")
			res := q.Query(ctx, query, true)
			if res != nil && res.Success && res.RunDetails != nil {
				logger.ContextKV(ctx, xlog.DEBUG,
					"status", "query_completed",
					"run_id", res.RunDetails.RunID,
					"step_count", res.RunDetails.StepCount,
				)
			}
			return Answer(res)
		})
}
