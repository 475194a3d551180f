// ABOUTME: Dashboard and agenda MCP tool handlers
// ABOUTME: Implements get_dashboard and get_agenda against a dataset snapshot
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/metrics"
)

type InsightHandlers struct {
	source
}

func NewInsightHandlers(database *sql.DB, settings Settings, logger *zap.Logger) *InsightHandlers {
	return &InsightHandlers{source: newSource(database, settings, logger)}
}

type GetDashboardInput struct {
	Reference string `json:"reference,omitempty" jsonschema:"Reference instant (RFC 3339 or YYYY-MM-DD); defaults to now"`
}

type EventsOutput struct {
	Count          int             `json:"count"`
	CompletionRate float64         `json:"completion_rate"`
	ByType         []metrics.Group `json:"by_type"`
	ByStatus       []metrics.Group `json:"by_status"`
	Agenda         AgendaOutput    `json:"agenda"`
}

type GetDashboardOutput struct {
	Reference     string                   `json:"reference"`
	Contacts      insights.ContactSummary  `json:"contacts"`
	Leads         insights.LeadSummary     `json:"leads"`
	LeadAgenda    AgendaOutput             `json:"lead_agenda"`
	Pipeline      insights.Pipeline        `json:"pipeline"`
	Projects      insights.ProjectSummary  `json:"projects"`
	Events        EventsOutput             `json:"events"`
	Emails        insights.EmailSummary    `json:"emails"`
	Activities    insights.ActivitySummary `json:"activities"`
	StaleContacts []insights.StaleItem     `json:"stale_contacts"`
	StaleDeals    []insights.StaleItem     `json:"stale_deals"`
}

func (h *InsightHandlers) GetDashboard(_ context.Context, request *mcp.CallToolRequest, input GetDashboardInput) (*mcp.CallToolResult, GetDashboardOutput, error) {
	c, err := h.classifier(input.Reference)
	if err != nil {
		return nil, GetDashboardOutput{}, err
	}

	data, err := h.dataset()
	if err != nil {
		return nil, GetDashboardOutput{}, err
	}

	d := insights.BuildDashboard(data, c, h.settings.Options)
	h.logger.Debug("built dashboard",
		zap.Time("reference", d.Reference),
		zap.Int("leads", d.Leads.Count),
		zap.Int("opportunities", d.Pipeline.Count))

	return &mcp.CallToolResult{}, dashboardToOutput(d), nil
}

func dashboardToOutput(d *insights.Dashboard) GetDashboardOutput {
	out := GetDashboardOutput{
		Reference:  d.Reference.Format(timeLayout),
		Contacts:   d.Contacts,
		Leads:      d.Leads,
		LeadAgenda: agendaToOutput(d.LeadAgenda),
		Pipeline:   d.Pipeline,
		Projects:   d.Projects,
		Events: EventsOutput{
			Count:          d.Events.Count,
			CompletionRate: d.Events.CompletionRate,
			ByType:         d.Events.ByType,
			ByStatus:       d.Events.ByStatus,
			Agenda:         agendaToOutput(d.Events.Agenda),
		},
		Emails:        d.Emails,
		Activities:    d.Activities,
		StaleContacts: d.StaleContacts,
		StaleDeals:    d.StaleDeals,
	}
	if out.StaleContacts == nil {
		out.StaleContacts = []insights.StaleItem{}
	}
	if out.StaleDeals == nil {
		out.StaleDeals = []insights.StaleItem{}
	}
	return out
}

type GetAgendaInput struct {
	EntityType string `json:"entity_type" jsonschema:"What to classify: events (by start time) or leads (by due date)"`
	Reference  string `json:"reference,omitempty" jsonschema:"Reference instant (RFC 3339 or YYYY-MM-DD); defaults to now"`
}

type GetAgendaOutput struct {
	EntityType string       `json:"entity_type"`
	Agenda     AgendaOutput `json:"agenda"`
}

func (h *InsightHandlers) GetAgenda(_ context.Context, request *mcp.CallToolRequest, input GetAgendaInput) (*mcp.CallToolResult, GetAgendaOutput, error) {
	if input.EntityType != "events" && input.EntityType != "leads" {
		return nil, GetAgendaOutput{}, fmt.Errorf("invalid entity_type: %s (valid: events, leads)", input.EntityType)
	}

	c, err := h.classifier(input.Reference)
	if err != nil {
		return nil, GetAgendaOutput{}, err
	}

	data, err := h.dataset()
	if err != nil {
		return nil, GetAgendaOutput{}, err
	}

	var agenda insights.Agenda
	if input.EntityType == "events" {
		agenda = insights.EventAgenda(c, data.Events)
	} else {
		agenda = insights.LeadAgenda(c, data.Leads)
	}

	return &mcp.CallToolResult{}, GetAgendaOutput{
		EntityType: input.EntityType,
		Agenda:     agendaToOutput(agenda),
	}, nil
}
