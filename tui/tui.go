// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Browses leads, pipeline, projects, and agenda with live search and filters
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/pulse/filter"
	"github.com/harperreed/pulse/models"
	"github.com/harperreed/pulse/timewindow"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewGraph
)

// EntityType represents the tab being viewed
type EntityType int

const (
	EntityLeads EntityType = iota
	EntityOpportunities
	EntityProjects
	EntityAgenda
)

var tabNames = []string{"Leads", "Pipeline", "Projects", "Agenda"}

// Model is the main bubbletea model. It works on a snapshot of the
// dataset taken when the program starts.
type Model struct {
	data       models.Dataset
	classifier *timewindow.Classifier
	viewMode   ViewMode
	entityType EntityType

	// List view state
	selectedRow   int
	search        textinput.Model
	searching     bool
	categoryIndex int

	// Graph view state
	graphDOT string

	// UI state
	width  int
	height int
	err    error
}

// NewModel creates a new TUI model
func NewModel(data models.Dataset, c *timewindow.Classifier) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"
	search.CharLimit = 64

	return Model{
		data:       data,
		classifier: c,
		viewMode:   ViewList,
		entityType: EntityLeads,
		search:     search,
		width:      80,
		height:     24,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewGraph:
		return m.renderGraphView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.searching {
		return m.handleSearchKeys(msg)
	}
	if msg.String() == "q" {
		return m, tea.Quit
	}

	// Delegate to view-specific handlers
	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewGraph:
		return m.handleGraphKeys(msg)
	}

	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.selectedRow = 0
	return m, cmd
}

// categoryField names the selection the "s" key cycles on this tab.
func (m Model) categoryField() string {
	if m.entityType == EntityOpportunities {
		return "stage"
	}
	return "status"
}

// categories lists the selectable values for this tab, "all" first.
func (m Model) categories() []string {
	var set []string
	switch m.entityType {
	case EntityLeads:
		set = models.LeadStatuses
	case EntityOpportunities:
		set = models.OpportunityStages
	case EntityProjects:
		set = models.ProjectStatuses
	case EntityAgenda:
		set = models.EventStatuses
	}
	return append([]string{filter.All}, set...)
}

func (m Model) category() string {
	cats := m.categories()
	return cats[m.categoryIndex%len(cats)]
}

func (m Model) criteria() filter.Criteria {
	return filter.Criteria{Query: m.search.Value()}.Select(m.categoryField(), m.category())
}

func (m Model) leads() []models.Lead {
	return filter.Filter(m.data.Leads, m.criteria(), filter.LeadFields)
}

func (m Model) opportunities() []models.Opportunity {
	return filter.Filter(m.data.Opportunities, m.criteria(), filter.OpportunityFields)
}

func (m Model) projects() []models.Project {
	return filter.Filter(m.data.Projects, m.criteria(), filter.ProjectFields)
}

func (m Model) events() []models.CalendarEvent {
	return filter.Filter(m.data.Events, m.criteria(), filter.EventFields)
}

func (m Model) rowCount() int {
	switch m.entityType {
	case EntityLeads:
		return len(m.leads())
	case EntityOpportunities:
		return len(m.opportunities())
	case EntityProjects:
		return len(m.projects())
	case EntityAgenda:
		return len(m.events())
	}
	return 0
}

func (m Model) tableHeight() int {
	return max(m.height-12, 5)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)
