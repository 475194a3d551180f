// ABOUTME: MCP server subcommand
// ABOUTME: Serves dashboard tools, resources, and prompts over stdio
package cli

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/harperreed/pulse/handlers"
)

// Version is reported to MCP clients and by --version.
var Version = "0.1.0"

// NewMCPServer builds the server with every tool, resource, and prompt
// registered against env's database.
func NewMCPServer(env *Env) (*mcp.Server, error) {
	settings, err := env.settings()
	if err != nil {
		return nil, err
	}
	logger := env.logger()

	insightHandlers := handlers.NewInsightHandlers(env.DB, settings, logger)
	queryHandlers := handlers.NewQueryHandlers(env.DB, settings, logger)
	vizHandlers := handlers.NewVizHandlers(env.DB, settings, logger)
	resourceHandlers := handlers.NewResourceHandlers(env.DB, settings, logger)
	promptHandlers := handlers.NewPromptHandlers(env.DB, settings, logger)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "pulse",
		Version: Version,
	}, nil)

	// Register tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Compute every dashboard card: contacts, leads, pipeline, projects, agenda, emails, activity, and stale items",
	}, insightHandlers.GetDashboard)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_agenda",
		Description: "Classify events or lead due dates into today, overdue, this_week, upcoming, and past",
	}, insightHandlers.GetAgenda)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_entities",
		Description: "Filter any CRM entity type by text, category selections, and numeric ranges",
	}, queryHandlers.QueryEntities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_pipeline_graph",
		Description: "Render the opportunity pipeline as a Graphviz graph",
	}, vizHandlers.GeneratePipelineGraph)

	// Register resources
	server.AddResource(&mcp.Resource{
		URI:         handlers.DashboardURI,
		Name:        "dashboard",
		Description: "Plain-text CRM dashboard",
		MIMEType:    "text/plain",
	}, resourceHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         handlers.PipelineURI,
		Name:        "pipeline",
		Description: "Opportunity pipeline summary",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         handlers.AgendaURI,
		Name:        "agenda",
		Description: "Calendar events grouped by time window",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	// Register prompts
	referenceArg := &mcp.PromptArgument{
		Name:        "reference",
		Description: "Reference date (YYYY-MM-DD); defaults to now",
	}

	server.AddPrompt(&mcp.Prompt{
		Name:        "pipeline-review",
		Description: "Review pipeline health and suggest where to focus",
		Arguments:   []*mcp.PromptArgument{referenceArg},
	}, promptHandlers.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "follow-up-suggestions",
		Description: "Suggest follow-ups for stale contacts, stale deals, and overdue leads",
		Arguments:   []*mcp.PromptArgument{referenceArg},
	}, promptHandlers.GetPrompt)

	return server, nil
}

// MCPCommand starts the MCP server on stdio
func MCPCommand(ctx context.Context, env *Env) error {
	server, err := NewMCPServer(env)
	if err != nil {
		return err
	}

	env.logger().Info("starting MCP server", zap.String("version", Version))
	return server.Run(ctx, &mcp.StdioTransport{})
}
