package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/pulse/insights"
)

func (m Model) renderListView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("PULSE CRM"))
	s.WriteString("\n\n")

	// Tabs
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	// Filter line
	s.WriteString(m.search.View())
	s.WriteString(fmt.Sprintf("   %s: %s", m.categoryField(), m.category()))
	s.WriteString("\n\n")

	// Table
	s.WriteString(m.renderTable())
	s.WriteString("\n\n")

	// Stats
	s.WriteString(statsStyle.Render(m.renderStats()))
	s.WriteString("\n")

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n")
	}

	// Help
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string

	for i, tab := range tabNames {
		if EntityType(i) == m.entityType {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() string {
	switch m.entityType {
	case EntityLeads:
		return m.renderLeadsTable()
	case EntityOpportunities:
		return m.renderOpportunitiesTable()
	case EntityProjects:
		return m.renderProjectsTable()
	case EntityAgenda:
		return m.renderAgendaTable()
	}
	return ""
}

func (m Model) newTable(columns []table.Column, rows []table.Row) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)

	// Set selected row
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) renderLeadsTable() string {
	columns := []table.Column{
		{Title: "Title", Width: 28},
		{Title: "Company", Width: 20},
		{Title: "Status", Width: 12},
		{Title: "Value", Width: 10},
		{Title: "Score", Width: 6},
		{Title: "Due", Width: 11},
	}

	var rows []table.Row
	for _, l := range m.leads() {
		due := "-"
		if l.DueDate != nil {
			due = l.DueDate.Format("2006-01-02")
		}
		rows = append(rows, table.Row{
			l.Title,
			l.CompanyName,
			l.Status,
			formatMoney(l.EstimatedValue),
			fmt.Sprintf("%.0f", l.Score),
			due,
		})
	}

	return m.newTable(columns, rows)
}

func (m Model) renderOpportunitiesTable() string {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Company", Width: 20},
		{Title: "Stage", Width: 12},
		{Title: "Value", Width: 10},
		{Title: "Prob", Width: 6},
	}

	var rows []table.Row
	for _, o := range m.opportunities() {
		rows = append(rows, table.Row{
			o.Name,
			o.CompanyName,
			o.Stage,
			formatMoney(o.Value),
			fmt.Sprintf("%.0f%%", o.Probability),
		})
	}

	return m.newTable(columns, rows)
}

func (m Model) renderProjectsTable() string {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Status", Width: 12},
		{Title: "Budget", Width: 10},
		{Title: "Spent", Width: 10},
		{Title: "Progress", Width: 9},
	}

	var rows []table.Row
	for _, p := range m.projects() {
		spent := formatMoney(p.ActualCost)
		if p.OverBudget() {
			spent += " !"
		}
		rows = append(rows, table.Row{
			p.Name,
			p.Status,
			formatMoney(p.Budget),
			spent,
			fmt.Sprintf("%.0f%%", p.Progress),
		})
	}

	return m.newTable(columns, rows)
}

// renderStats summarises whatever the current filters leave visible.
func (m Model) renderStats() string {
	switch m.entityType {
	case EntityLeads:
		s := insights.SummarizeLeads(m.leads())
		return fmt.Sprintf("%d leads • %s total • avg score %.0f • %d hot • %.1f%% converted",
			s.Count, formatMoney(s.TotalValue), s.AverageScore, s.HotLeads, s.ConversionRate)
	case EntityOpportunities:
		p := insights.SummarizePipeline(m.opportunities())
		return fmt.Sprintf("%d opportunities • open %s • weighted %s • won %s • win rate %.1f%%",
			p.Count, formatMoney(p.OpenValue), formatMoney(p.WeightedValue), formatMoney(p.WonValue), p.WinRate)
	case EntityProjects:
		s := insights.SummarizeProjects(m.projects())
		return fmt.Sprintf("%d projects • %.1f%% of budget used • avg progress %.0f%% • %d over budget",
			s.Count, s.BudgetUtilization, s.AverageProgress, s.OverBudget)
	case EntityAgenda:
		return m.renderAgendaStats()
	}
	return ""
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch tabs",
		"Enter: View details",
		"/: Search",
		"s: Cycle " + m.categoryField(),
		"g: Pipeline graph",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < m.rowCount()-1 {
			m.selectedRow++
		}
	case "tab":
		m.entityType = (m.entityType + 1) % EntityType(len(tabNames))
		m.selectedRow = 0
		m.categoryIndex = 0
	case "shift+tab":
		m.entityType = (m.entityType + EntityType(len(tabNames)) - 1) % EntityType(len(tabNames))
		m.selectedRow = 0
		m.categoryIndex = 0
	case "s":
		m.categoryIndex = (m.categoryIndex + 1) % len(m.categories())
		m.selectedRow = 0
	case "/":
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case "esc":
		m.search.SetValue("")
		m.categoryIndex = 0
		m.selectedRow = 0
	case "enter":
		if m.rowCount() > 0 {
			m.viewMode = ViewDetail
		}
	case "g":
		if err := m.generateGraph(); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.viewMode = ViewGraph
	}

	return m, nil
}

func formatMoney(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
