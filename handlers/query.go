// ABOUTME: Universal query tool handler
// ABOUTME: Implements query_entities with text search, category filters, and numeric ranges
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/harperreed/pulse/filter"
	"github.com/harperreed/pulse/metrics"
	"github.com/harperreed/pulse/models"
)

type QueryHandlers struct {
	source
}

func NewQueryHandlers(database *sql.DB, settings Settings, logger *zap.Logger) *QueryHandlers {
	return &QueryHandlers{source: newSource(database, settings, logger)}
}

type QueryEntitiesInput struct {
	EntityType string             `json:"entity_type" jsonschema:"Type of entity to query (contact, company, lead, opportunity, project, event, email, activity)"`
	Query      string             `json:"query,omitempty" jsonschema:"Case-insensitive text search over names, titles, and descriptions"`
	Filters    map[string]string  `json:"filters,omitempty" jsonschema:"Exact category selections such as status, stage, type, or industry; 'all' means no restriction"`
	Min        map[string]float64 `json:"min,omitempty" jsonschema:"Inclusive lower bounds such as value, score, probability, budget, or progress"`
	Max        map[string]float64 `json:"max,omitempty" jsonschema:"Inclusive upper bounds keyed like min"`
	Limit      int                `json:"limit,omitempty" jsonschema:"Maximum results to return (default 10)"`
}

type QueryEntitiesOutput struct {
	EntityType string        `json:"entity_type"`
	Results    []interface{} `json:"results"`
	Count      int           `json:"count"`
	Matched    int           `json:"matched"`
	TotalValue float64       `json:"total_value"`
}

func (h *QueryHandlers) QueryEntities(_ context.Context, request *mcp.CallToolRequest, input QueryEntitiesInput) (*mcp.CallToolResult, QueryEntitiesOutput, error) {
	// Set default limit
	if input.Limit <= 0 {
		input.Limit = 10
	}

	crit := filter.Criteria{
		Query:      input.Query,
		Selections: input.Filters,
		Min:        input.Min,
		Max:        input.Max,
	}

	run, ok := queries[input.EntityType]
	if !ok {
		return nil, QueryEntitiesOutput{}, fmt.Errorf("invalid entity_type: %s (valid: contact, company, lead, opportunity, project, event, email, activity)", input.EntityType)
	}

	data, err := h.dataset()
	if err != nil {
		return nil, QueryEntitiesOutput{}, err
	}

	out := run(data, crit, input.Limit)
	out.EntityType = input.EntityType
	h.logger.Debug("queried entities",
		zap.String("entity_type", input.EntityType),
		zap.Int("matched", out.Matched))

	return &mcp.CallToolResult{}, out, nil
}

type queryFunc func(data models.Dataset, crit filter.Criteria, limit int) QueryEntitiesOutput

var queries = map[string]queryFunc{
	"contact": func(d models.Dataset, c filter.Criteria, limit int) QueryEntitiesOutput {
		return runQuery(d.Contacts, c, filter.ContactFields, nil, limit)
	},
	"company": func(d models.Dataset, c filter.Criteria, limit int) QueryEntitiesOutput {
		return runQuery(d.Companies, c, filter.CompanyFields, nil, limit)
	},
	"lead": func(d models.Dataset, c filter.Criteria, limit int) QueryEntitiesOutput {
		return runQuery(d.Leads, c, filter.LeadFields, func(l models.Lead) float64 { return l.EstimatedValue }, limit)
	},
	"opportunity": func(d models.Dataset, c filter.Criteria, limit int) QueryEntitiesOutput {
		return runQuery(d.Opportunities, c, filter.OpportunityFields, func(o models.Opportunity) float64 { return o.Value }, limit)
	},
	"project": func(d models.Dataset, c filter.Criteria, limit int) QueryEntitiesOutput {
		return runQuery(d.Projects, c, filter.ProjectFields, func(p models.Project) float64 { return p.Budget }, limit)
	},
	"event": func(d models.Dataset, c filter.Criteria, limit int) QueryEntitiesOutput {
		return runQuery(d.Events, c, filter.EventFields, nil, limit)
	},
	"email": func(d models.Dataset, c filter.Criteria, limit int) QueryEntitiesOutput {
		return runQuery(d.Emails, c, filter.EmailFields, nil, limit)
	},
	"activity": func(d models.Dataset, c filter.Criteria, limit int) QueryEntitiesOutput {
		return runQuery(d.Activities, c, filter.ActivityFields, nil, limit)
	},
}

// runQuery filters items and totals value over every match, then truncates
// the returned rows to limit.
func runQuery[T any](items []T, crit filter.Criteria, fields filter.Fields[T], value func(T) float64, limit int) QueryEntitiesOutput {
	matched := filter.Filter(items, crit, fields)

	out := QueryEntitiesOutput{Matched: len(matched)}
	if value != nil {
		out.TotalValue = metrics.Total(matched, value)
	}

	if len(matched) > limit {
		matched = matched[:limit]
	}
	out.Results = make([]interface{}, len(matched))
	for i, item := range matched {
		out.Results[i] = item
	}
	out.Count = len(out.Results)
	return out
}
