// ABOUTME: MCP resource handlers for exposing dashboard data
// ABOUTME: Provides read-only dashboard text, pipeline JSON, and agenda JSON via pulse:// URIs
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/viz"
)

const (
	DashboardURI = "pulse://dashboard"
	PipelineURI  = "pulse://pipeline"
	AgendaURI    = "pulse://agenda"
)

type ResourceHandlers struct {
	source
}

func NewResourceHandlers(database *sql.DB, settings Settings, logger *zap.Logger) *ResourceHandlers {
	return &ResourceHandlers{source: newSource(database, settings, logger)}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, "pulse://") {
		return nil, fmt.Errorf("invalid URI scheme: expected pulse://")
	}

	c, err := h.classifier("")
	if err != nil {
		return nil, err
	}
	data, err := h.dataset()
	if err != nil {
		return nil, err
	}

	switch uri {
	case DashboardURI:
		d := insights.BuildDashboard(data, c, h.settings.Options)
		return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "text/plain",
				Text:     viz.RenderDashboard(d, false),
			},
		}}, nil

	case PipelineURI:
		return jsonResource(uri, insights.SummarizePipeline(data.Opportunities))

	case AgendaURI:
		return jsonResource(uri, agendaToOutput(insights.EventAgenda(c, data.Events)))

	default:
		return nil, fmt.Errorf("unknown resource: %s", uri)
	}
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
