// ABOUTME: Terminal dashboard rendering
// ABOUTME: Provides a text dashboard for pipeline, agenda, and engagement overview
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/metrics"
	"github.com/harperreed/pulse/timewindow"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// RenderDashboard renders the dashboard as text. styled adds terminal colors
// to headings; plain output is used when writing to a pipe.
func RenderDashboard(d *insights.Dashboard, styled bool) string {
	var out strings.Builder

	heading := func(style lipgloss.Style, s string) string {
		if styled {
			return style.Render(s)
		}
		return s
	}

	// Header
	out.WriteString(rule + "\n")
	out.WriteString("  " + heading(titleStyle, "PULSE CRM DASHBOARD") + "\n")
	out.WriteString(fmt.Sprintf("  as of %s\n", d.Reference.Format("Mon Jan 2 2006 15:04 MST")))
	out.WriteString(rule + "\n\n")

	// Pipeline overview
	out.WriteString(heading(sectionStyle, "PIPELINE OVERVIEW") + "\n")
	renderPipeline(&out, d.Pipeline.ByStage)
	out.WriteString(fmt.Sprintf("  open %s  weighted %s  won %s  win rate %.1f%%\n\n",
		formatMoney(d.Pipeline.OpenValue), formatMoney(d.Pipeline.WeightedValue),
		formatMoney(d.Pipeline.WonValue), d.Pipeline.WinRate))

	// Leads
	out.WriteString(heading(sectionStyle, "LEADS") + "\n")
	out.WriteString(fmt.Sprintf("  %d leads  %s total  avg score %.0f  %d hot  converted %.1f%%\n\n",
		d.Leads.Count, formatMoney(d.Leads.TotalValue), d.Leads.AverageScore,
		d.Leads.HotLeads, d.Leads.ConversionRate))

	// Agenda
	out.WriteString(heading(sectionStyle, "AGENDA") + "\n")
	renderAgenda(&out, "events", d.Events.Agenda)
	renderAgenda(&out, "follow-ups", d.LeadAgenda)
	out.WriteString("\n")

	// Stats
	out.WriteString(heading(sectionStyle, "STATS") + "\n")
	out.WriteString(fmt.Sprintf("  📇 %d contacts  🏢 %d companies  💼 %d opportunities  📁 %d projects\n",
		d.Contacts.Count, d.Contacts.Companies, d.Pipeline.Count, d.Projects.Count))
	out.WriteString(fmt.Sprintf("  budget used %.1f%%  avg progress %.0f%%  %d over budget\n",
		d.Projects.BudgetUtilization, d.Projects.AverageProgress, d.Projects.OverBudget))
	out.WriteString(fmt.Sprintf("  ✉️  %d sent  open %.1f%%  reply %.1f%%  bounce %.1f%%\n",
		d.Emails.Sent, d.Emails.OpenRate, d.Emails.ReplyRate, d.Emails.BounceRate))
	out.WriteString(fmt.Sprintf("  %d activities in the last %d days\n\n",
		d.Activities.Recent, d.Activities.RecentDays))

	// Needs attention
	if len(d.StaleContacts) > 0 || len(d.StaleDeals) > 0 {
		out.WriteString(heading(sectionStyle, "NEEDS ATTENTION") + "\n")

		if len(d.StaleContacts) > 0 {
			out.WriteString(heading(warnStyle, fmt.Sprintf("  ⚠️  %d contacts need a follow-up", len(d.StaleContacts))) + "\n")
		}

		if len(d.StaleDeals) > 0 {
			out.WriteString(heading(warnStyle, fmt.Sprintf("  ⚠️  %d opportunities - stale", len(d.StaleDeals))) + "\n")
		}
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, stages []metrics.Group) {
	// Find max count for scaling
	maxCount := 0
	for _, g := range stages {
		if g.Count > maxCount {
			maxCount = g.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, g := range stages {
		// Calculate bar length (0-10 blocks)
		barLength := (g.Count * 10) / maxCount

		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		out.WriteString(fmt.Sprintf("  %-13s %s  %2d (%s, %.0f%%)\n",
			g.Key, bar, g.Count, formatMoney(g.Total), g.Share))
	}
}

func renderAgenda(out *strings.Builder, label string, a insights.Agenda) {
	parts := make([]string, 0, len(timewindow.Buckets))
	for _, b := range timewindow.Buckets {
		parts = append(parts, fmt.Sprintf("%s %d", b, a.Counts[b]))
	}
	line := fmt.Sprintf("  %-11s %s", label, strings.Join(parts, "  "))
	if n := len(a.Unclassified); n > 0 {
		line += fmt.Sprintf("  (%d undated)", n)
	}
	out.WriteString(line + "\n")
}

// formatMoney abbreviates thousands and millions.
func formatMoney(v float64) string {
	switch {
	case v >= 1_000_000 || v <= -1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000 || v <= -1_000:
		return fmt.Sprintf("$%.1fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
