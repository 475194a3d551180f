// ABOUTME: MCP prompt handlers for reusable CRM review templates
// ABOUTME: Provides pipeline-review and follow-up-suggestions prompts filled from live metrics
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/timewindow"
)

type PromptHandlers struct {
	source
}

func NewPromptHandlers(database *sql.DB, settings Settings, logger *zap.Logger) *PromptHandlers {
	return &PromptHandlers{source: newSource(database, settings, logger)}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := request.Params.Name
	reference := request.Params.Arguments["reference"]

	c, err := h.classifier(reference)
	if err != nil {
		return nil, err
	}
	data, err := h.dataset()
	if err != nil {
		return nil, err
	}
	d := insights.BuildDashboard(data, c, h.settings.Options)

	switch name {
	case "pipeline-review":
		return pipelineReviewPrompt(d), nil
	case "follow-up-suggestions":
		return followUpPrompt(d), nil
	default:
		return nil, fmt.Errorf("unknown prompt: %s", name)
	}
}

func pipelineReviewPrompt(d *insights.Dashboard) *mcp.GetPromptResult {
	p := d.Pipeline

	var promptText strings.Builder
	promptText.WriteString("Please analyze the current opportunity pipeline:\n\n")
	promptText.WriteString(fmt.Sprintf("Opportunities: %d\n", p.Count))
	promptText.WriteString(fmt.Sprintf("Open Value: $%.0f (weighted $%.0f)\n", p.OpenValue, p.WeightedValue))
	promptText.WriteString(fmt.Sprintf("Won Value: $%.0f\n", p.WonValue))
	promptText.WriteString(fmt.Sprintf("Win Rate: %.1f%%\n\n", p.WinRate))
	promptText.WriteString("Pipeline by Stage:\n")
	for _, g := range p.ByStage {
		promptText.WriteString(fmt.Sprintf("  - %s: %d opportunities, $%.0f (%.1f%%)\n", g.Key, g.Count, g.Total, g.Share))
	}
	if len(d.StaleDeals) > 0 {
		promptText.WriteString("\nStale Opportunities:\n")
		for _, s := range d.StaleDeals {
			promptText.WriteString(fmt.Sprintf("  - %s (%s)\n", s.Name, describeAge(s.DaysSince)))
		}
	}

	promptText.WriteString("\nPlease provide:")
	promptText.WriteString("\n1. Analysis of pipeline health and distribution")
	promptText.WriteString("\n2. Recommendations for opportunities that may need attention")
	promptText.WriteString("\n3. Suggestions for improving the win rate")

	return &mcp.GetPromptResult{
		Description: "Opportunity pipeline review",
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}
}

func followUpPrompt(d *insights.Dashboard) *mcp.GetPromptResult {
	var promptText strings.Builder
	promptText.WriteString(fmt.Sprintf("Suggest follow-ups as of %s.\n\n", d.Reference.Format("Monday, January 2 2006")))

	counts := d.LeadAgenda.Counts
	promptText.WriteString(fmt.Sprintf("Lead follow-ups: %d overdue, %d due today, %d due this week\n",
		counts[timewindow.Overdue], counts[timewindow.Today], counts[timewindow.ThisWeek]))
	events := d.Events.Agenda.Counts
	promptText.WriteString(fmt.Sprintf("Calendar: %d overdue, %d today, %d this week\n",
		events[timewindow.Overdue], events[timewindow.Today], events[timewindow.ThisWeek]))

	if len(d.StaleContacts) > 0 {
		promptText.WriteString("\nContacts needing attention:\n")
		for _, s := range d.StaleContacts {
			promptText.WriteString(fmt.Sprintf("  - %s (%s)\n", s.Name, describeAge(s.DaysSince)))
		}
	}

	promptText.WriteString("\nFor each item, suggest a concrete next step and a short message opener.")

	return &mcp.GetPromptResult{
		Description: "Follow-up suggestions",
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}
}

func describeAge(days int) string {
	if days < 0 {
		return "never contacted"
	}
	return fmt.Sprintf("%d days since last touch", days)
}
