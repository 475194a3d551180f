package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("DETAIL VIEW"))
	s.WriteString("\n\n")

	// Entity details
	switch m.entityType {
	case EntityLeads:
		s.WriteString(m.renderLeadDetail())
	case EntityOpportunities:
		s.WriteString(m.renderOpportunityDetail())
	case EntityProjects:
		s.WriteString(m.renderProjectDetail())
	case EntityAgenda:
		s.WriteString(m.renderEventDetail())
	}

	s.WriteString("\n\n")

	// Help
	s.WriteString(m.renderDetailHelp())

	return s.String()
}

func (m Model) renderLeadDetail() string {
	leads := m.leads()
	if m.selectedRow >= len(leads) {
		return "Nothing selected"
	}
	l := leads[m.selectedRow]

	var s strings.Builder

	s.WriteString(m.renderField("Title", l.Title))
	s.WriteString(m.renderField("Status", l.Status))
	s.WriteString(m.renderField("Contact", l.ContactName))
	s.WriteString(m.renderField("Company", l.CompanyName))
	s.WriteString(m.renderField("Estimated Value", fmt.Sprintf("$%.2f", l.EstimatedValue)))
	s.WriteString(m.renderField("Score", fmt.Sprintf("%.0f", l.Score)))
	s.WriteString(m.renderField("Converted", fmt.Sprintf("%t", l.ConvertedToOpportunity)))
	if l.DueDate != nil {
		s.WriteString(m.renderField("Due", l.DueDate.Format("2006-01-02")))
		s.WriteString(m.renderField("Window", string(m.classifier.Classify(*l.DueDate, l.Resolved()))))
	}
	s.WriteString(m.renderField("Description", l.Description))

	return s.String()
}

func (m Model) renderOpportunityDetail() string {
	opps := m.opportunities()
	if m.selectedRow >= len(opps) {
		return "Nothing selected"
	}
	o := opps[m.selectedRow]

	var s strings.Builder

	s.WriteString(m.renderField("Name", o.Name))
	s.WriteString(m.renderField("Stage", o.Stage))
	s.WriteString(m.renderField("Contact", o.ContactName))
	s.WriteString(m.renderField("Company", o.CompanyName))
	s.WriteString(m.renderField("Value", fmt.Sprintf("$%.2f", o.Value)))
	s.WriteString(m.renderField("Probability", fmt.Sprintf("%.0f%%", o.Probability)))
	if !o.Closed() {
		s.WriteString(m.renderField("Weighted", fmt.Sprintf("$%.2f", o.Value*o.Probability/100)))
	}
	if o.ExpectedCloseDate != nil {
		s.WriteString(m.renderField("Expected Close", o.ExpectedCloseDate.Format("2006-01-02")))
	}
	if !o.LastActivityAt.IsZero() {
		s.WriteString(m.renderField("Last Activity", o.LastActivityAt.Format("2006-01-02")))
	}
	s.WriteString(m.renderField("Description", o.Description))

	return s.String()
}

func (m Model) renderProjectDetail() string {
	projects := m.projects()
	if m.selectedRow >= len(projects) {
		return "Nothing selected"
	}
	p := projects[m.selectedRow]

	var s strings.Builder

	s.WriteString(m.renderField("Name", p.Name))
	s.WriteString(m.renderField("Status", p.Status))
	s.WriteString(m.renderField("Company", p.CompanyName))
	s.WriteString(m.renderField("Budget", fmt.Sprintf("$%.2f", p.Budget)))
	s.WriteString(m.renderField("Actual Cost", fmt.Sprintf("$%.2f", p.ActualCost)))
	s.WriteString(m.renderField("Progress", fmt.Sprintf("%.0f%%", p.Progress)))
	if p.OverBudget() {
		s.WriteString(errorStyle.Render("Over budget"))
		s.WriteString("\n")
	}
	if p.StartDate != nil {
		s.WriteString(m.renderField("Start", p.StartDate.Format("2006-01-02")))
	}
	if p.EndDate != nil {
		s.WriteString(m.renderField("End", p.EndDate.Format("2006-01-02")))
	}
	s.WriteString(m.renderField("Description", p.Description))

	return s.String()
}

func (m Model) renderEventDetail() string {
	events := m.events()
	if m.selectedRow >= len(events) {
		return "Nothing selected"
	}
	e := events[m.selectedRow]
	loc := m.classifier.Location()

	var s strings.Builder

	s.WriteString(m.renderField("Title", e.Title))
	s.WriteString(m.renderField("Type", e.Type))
	s.WriteString(m.renderField("Status", e.Status))
	s.WriteString(m.renderField("Location", e.Location))
	if !e.StartAt.IsZero() {
		s.WriteString(m.renderField("Starts", e.StartAt.In(loc).Format(time.DateTime)))
		s.WriteString(m.renderField("Window", string(m.classifier.Classify(e.StartAt, e.Resolved()))))
	}
	if !e.EndAt.IsZero() {
		s.WriteString(m.renderField("Ends", e.EndAt.In(loc).Format(time.DateTime)))
	}
	s.WriteString(m.renderField("Description", e.Description))

	return s.String()
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s %s\n",
		fieldLabelStyle.Render(label+":"),
		fieldValueStyle.Render(value))
}

func (m Model) renderDetailHelp() string {
	help := []string{
		"Esc: Back",
		"g: Pipeline graph",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
	case "g":
		if err := m.generateGraph(); err != nil {
			m.err = err
			m.viewMode = ViewList
			return m, nil
		}
		m.viewMode = ViewGraph
	}

	return m, nil
}
