// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides generate_pipeline_graph tool for agents
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/harperreed/pulse/filter"
	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/viz"
)

type VizHandlers struct {
	source
}

func NewVizHandlers(database *sql.DB, settings Settings, logger *zap.Logger) *VizHandlers {
	return &VizHandlers{source: newSource(database, settings, logger)}
}

type GeneratePipelineGraphInput struct {
	Query    string   `json:"query,omitempty" jsonschema:"Only include opportunities matching this text"`
	MinValue *float64 `json:"min_value,omitempty" jsonschema:"Only include opportunities worth at least this much"`
}

type GeneratePipelineGraphOutput struct {
	DOTSource string `json:"dot_source"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) GeneratePipelineGraph(_ context.Context, request *mcp.CallToolRequest, input GeneratePipelineGraphInput) (*mcp.CallToolResult, GeneratePipelineGraphOutput, error) {
	data, err := h.dataset()
	if err != nil {
		return nil, GeneratePipelineGraphOutput{}, err
	}

	crit := filter.Criteria{Query: input.Query}.Range("value", input.MinValue, nil)
	opps := filter.Filter(data.Opportunities, crit, filter.OpportunityFields)

	pipeline := insights.SummarizePipeline(opps)
	dot, err := viz.GeneratePipelineGraph(pipeline)
	if err != nil {
		return nil, GeneratePipelineGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	return &mcp.CallToolResult{}, GeneratePipelineGraphOutput{
		DOTSource: dot,
		NodeCount: len(pipeline.ByStage),
		EdgeCount: strings.Count(dot, "->"),
	}, nil
}
