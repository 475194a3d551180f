package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/pulse/filter"
	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/viz"
)

func (m Model) renderGraphView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("PIPELINE GRAPH"))
	s.WriteString("\n\n")

	if m.graphDOT == "" {
		s.WriteString("No graph generated\n")
	} else {
		s.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Render(m.graphDOT))
	}

	s.WriteString("\n\n")

	// Help
	s.WriteString(m.renderGraphHelp())

	return s.String()
}

func (m Model) renderGraphHelp() string {
	help := []string{
		"Esc: Back",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleGraphKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		m.graphDOT = ""
	}

	return m, nil
}

// generateGraph renders the pipeline for the opportunities matching the
// current search. The stage selection only applies on the pipeline tab.
func (m *Model) generateGraph() error {
	crit := filter.Criteria{Query: m.search.Value()}
	if m.entityType == EntityOpportunities {
		crit = m.criteria()
	}
	opps := filter.Filter(m.data.Opportunities, crit, filter.OpportunityFields)

	dot, err := viz.GeneratePipelineGraph(insights.SummarizePipeline(opps))
	if err != nil {
		return err
	}

	m.graphDOT = dot
	return nil
}
