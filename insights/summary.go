// ABOUTME: Per-entity dashboard summaries built on the metrics engine
// ABOUTME: Lead, pipeline, project, email, activity, and contact cards
package insights

import (
	"time"

	"github.com/harperreed/pulse/metrics"
	"github.com/harperreed/pulse/models"
	"github.com/harperreed/pulse/timewindow"
)

// HotLeadScore is the score at or above which a lead counts as hot.
const HotLeadScore = 80

type LeadSummary struct {
	Count          int             `json:"count"`
	TotalValue     float64         `json:"total_value"`
	AverageValue   float64         `json:"average_value"`
	AverageScore   float64         `json:"average_score"`
	ConversionRate float64         `json:"conversion_rate"`
	QualifiedRate  float64         `json:"qualified_rate"`
	HotLeads       int             `json:"hot_leads"`
	ByStatus       []metrics.Group `json:"by_status"`
}

func leadValue(l models.Lead) float64 { return l.EstimatedValue }

func SummarizeLeads(leads []models.Lead) LeadSummary {
	return LeadSummary{
		Count:          len(leads),
		TotalValue:     metrics.Total(leads, leadValue),
		AverageValue:   metrics.Average(leads, leadValue),
		AverageScore:   metrics.Average(leads, func(l models.Lead) float64 { return l.Score }),
		ConversionRate: metrics.Rate(leads, func(l models.Lead) bool { return l.ConvertedToOpportunity }),
		QualifiedRate:  metrics.Rate(leads, models.Lead.Qualified),
		HotLeads:       metrics.Count(leads, func(l models.Lead) bool { return l.Score >= HotLeadScore }),
		ByStatus:       metrics.GroupBy(leads, func(l models.Lead) string { return l.Status }, leadValue, models.LeadStatuses),
	}
}

type Pipeline struct {
	Count           int             `json:"count"`
	TotalValue      float64         `json:"total_value"`
	OpenValue       float64         `json:"open_value"`
	WeightedValue   float64         `json:"weighted_value"`
	WeightedTotal   float64         `json:"weighted_total"`
	WonValue        float64         `json:"won_value"`
	WinRate         float64         `json:"win_rate"`
	AverageDealSize float64         `json:"average_deal_size"`
	ByStage         []metrics.Group `json:"by_stage"`
}

func oppValue(o models.Opportunity) float64 { return o.Value }
func oppProb(o models.Opportunity) float64  { return o.Probability }

// SummarizePipeline computes the opportunity pipeline card. The win rate
// is the share of closed opportunities that were won; with nothing closed
// it is 0. WeightedValue is the open pipeline forecast; WeightedTotal
// weighs every opportunity, closed ones included.
func SummarizePipeline(opps []models.Opportunity) Pipeline {
	var open, closed, won []models.Opportunity
	for _, o := range opps {
		switch {
		case o.Won():
			won = append(won, o)
			closed = append(closed, o)
		case o.Closed():
			closed = append(closed, o)
		default:
			open = append(open, o)
		}
	}

	return Pipeline{
		Count:           len(opps),
		TotalValue:      metrics.Total(opps, oppValue),
		OpenValue:       metrics.Total(open, oppValue),
		WeightedValue:   metrics.WeightedValue(open, oppValue, oppProb),
		WeightedTotal:   metrics.WeightedValue(opps, oppValue, oppProb),
		WonValue:        metrics.Total(won, oppValue),
		WinRate:         metrics.Rate(closed, models.Opportunity.Won),
		AverageDealSize: metrics.Average(opps, oppValue),
		ByStage:         metrics.GroupBy(opps, func(o models.Opportunity) string { return o.Stage }, oppValue, models.OpportunityStages),
	}
}

type ProjectSummary struct {
	Count             int             `json:"count"`
	TotalBudget       float64         `json:"total_budget"`
	TotalActualCost   float64         `json:"total_actual_cost"`
	BudgetUtilization float64         `json:"budget_utilization"`
	AverageProgress   float64         `json:"average_progress"`
	OverBudget        int             `json:"over_budget"`
	CompletionRate    float64         `json:"completion_rate"`
	ByStatus          []metrics.Group `json:"by_status"`
}

func SummarizeProjects(projects []models.Project) ProjectSummary {
	budget := metrics.Total(projects, func(p models.Project) float64 { return p.Budget })
	spent := metrics.Total(projects, func(p models.Project) float64 { return p.ActualCost })

	return ProjectSummary{
		Count:             len(projects),
		TotalBudget:       budget,
		TotalActualCost:   spent,
		BudgetUtilization: metrics.Percent(spent, budget),
		AverageProgress:   metrics.Average(projects, func(p models.Project) float64 { return p.Progress }),
		OverBudget:        metrics.Count(projects, models.Project.OverBudget),
		CompletionRate:    metrics.Rate(projects, func(p models.Project) bool { return p.Status == models.ProjectCompleted }),
		ByStatus: metrics.GroupBy(projects, func(p models.Project) string { return p.Status },
			func(p models.Project) float64 { return p.Budget }, models.ProjectStatuses),
	}
}

type EmailSummary struct {
	Count      int             `json:"count"`
	Sent       int             `json:"sent"`
	OpenRate   float64         `json:"open_rate"`
	ReplyRate  float64         `json:"reply_rate"`
	BounceRate float64         `json:"bounce_rate"`
	ByType     []metrics.Group `json:"by_type"`
	ByStatus   []metrics.Group `json:"by_status"`
}

// SummarizeEmails computes engagement rates over sent mail only, so
// drafts and inbound messages never dilute them.
func SummarizeEmails(emails []models.Email) EmailSummary {
	var sent []models.Email
	for _, e := range emails {
		if e.Sent() {
			sent = append(sent, e)
		}
	}

	return EmailSummary{
		Count:      len(emails),
		Sent:       len(sent),
		OpenRate:   metrics.Rate(sent, models.Email.Opened),
		ReplyRate:  metrics.Rate(sent, func(e models.Email) bool { return e.Status == models.EmailReplied }),
		BounceRate: metrics.Rate(sent, func(e models.Email) bool { return e.Status == models.EmailBounced }),
		ByType:     metrics.CountShares(metrics.GroupBy(emails, func(e models.Email) string { return e.Type }, nil, models.EmailTypes)),
		ByStatus:   metrics.CountShares(metrics.GroupBy(emails, func(e models.Email) string { return e.Status }, nil, models.EmailStatuses)),
	}
}

type ActivitySummary struct {
	Count       int             `json:"count"`
	Recent      int             `json:"recent"`
	RecentDays  int             `json:"recent_days"`
	OutcomeRate float64         `json:"outcome_rate"`
	ByType      []metrics.Group `json:"by_type"`
}

// SummarizeActivities counts activities, including those logged within
// recentDays of ref.
func SummarizeActivities(activities []models.Activity, ref time.Time, recentDays int) ActivitySummary {
	return ActivitySummary{
		Count:       len(activities),
		Recent:      metrics.Count(activities, func(a models.Activity) bool { return timewindow.Within(ref, a.CreatedAt, recentDays) }),
		RecentDays:  recentDays,
		OutcomeRate: metrics.Rate(activities, func(a models.Activity) bool { return a.Outcome != "" }),
		ByType:      metrics.CountShares(metrics.GroupBy(activities, func(a models.Activity) string { return a.Type }, nil, models.ActivityTypes)),
	}
}

type ContactSummary struct {
	Count       int             `json:"count"`
	Active      int             `json:"active"`
	ActiveRate  float64         `json:"active_rate"`
	WithCompany int             `json:"with_company"`
	Companies   int             `json:"companies"`
	ByStatus    []metrics.Group `json:"by_status"`
	ByIndustry  []metrics.Group `json:"by_industry"`
}

func SummarizeContacts(contacts []models.Contact, companies []models.Company) ContactSummary {
	isActive := func(c models.Contact) bool { return c.Status == models.ContactActive }

	return ContactSummary{
		Count:       len(contacts),
		Active:      metrics.Count(contacts, isActive),
		ActiveRate:  metrics.Rate(contacts, isActive),
		WithCompany: metrics.Count(contacts, func(c models.Contact) bool { return c.CompanyID != nil }),
		Companies:   len(companies),
		ByStatus:    metrics.CountShares(metrics.GroupBy(contacts, func(c models.Contact) string { return c.Status }, nil, models.ContactStatuses)),
		ByIndustry:  metrics.CountShares(metrics.GroupBy(companies, func(c models.Company) string { return c.Industry }, nil, nil)),
	}
}
