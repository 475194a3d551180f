// ABOUTME: Tests for the TUI model
// ABOUTME: Drives key presses through Update and checks filtering, views, and stats
package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/harperreed/pulse/models"
	"github.com/harperreed/pulse/timewindow"
)

var testRef = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

func testModel() Model {
	due := testRef.AddDate(0, 0, -2)
	data := models.Dataset{
		Leads: []models.Lead{
			{ID: uuid.New(), Title: "Website Redesign", Status: models.LeadNew, EstimatedValue: 5000, Score: 40, CompanyName: "Acme"},
			{ID: uuid.New(), Title: "Data Migration", Status: models.LeadQualified, EstimatedValue: 15000, Score: 90, DueDate: &due},
		},
		Opportunities: []models.Opportunity{
			{ID: uuid.New(), Name: "Platform Deal", Stage: models.StageNegotiation, Value: 40000, Probability: 50},
			{ID: uuid.New(), Name: "Support Renewal", Stage: models.StageClosedWon, Value: 10000, Probability: 100},
		},
		Projects: []models.Project{
			{ID: uuid.New(), Name: "Rollout", Status: models.ProjectInProgress, Budget: 1000, ActualCost: 1500, Progress: 40},
		},
		Events: []models.CalendarEvent{
			{ID: uuid.New(), Title: "Kickoff Call", Type: models.EventCall, Status: models.EventScheduled, StartAt: testRef.Add(2 * time.Hour)},
			{ID: uuid.New(), Title: "Undated Reminder", Type: models.EventReminder, Status: models.EventScheduled},
		},
	}
	c := timewindow.New(timewindow.WithReference(testRef), timewindow.WithLocation(time.UTC))
	return NewModel(data, c)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestListViewShowsLeadsAndStats(t *testing.T) {
	m := testModel()
	out := m.View()

	if !strings.Contains(out, "Website Redesign") || !strings.Contains(out, "Data Migration") {
		t.Error("Leads tab should list every lead")
	}
	if !strings.Contains(out, "2 leads") {
		t.Errorf("Stats should count visible leads, got:\n%s", out)
	}
	if !strings.Contains(out, "1 hot") {
		t.Error("Stats should count hot leads")
	}
}

func TestTabCyclesEntities(t *testing.T) {
	m := press(testModel(), "tab")
	if m.entityType != EntityOpportunities {
		t.Fatalf("Expected pipeline tab, got %d", m.entityType)
	}
	if !strings.Contains(m.View(), "win rate 100.0%") {
		t.Error("Pipeline stats should show the win rate")
	}

	m = press(m, "tab", "tab", "tab")
	if m.entityType != EntityLeads {
		t.Errorf("Tabs should wrap around, got %d", m.entityType)
	}
}

func TestCategoryCycleFilters(t *testing.T) {
	m := press(testModel(), "s")
	if m.category() != models.LeadNew {
		t.Fatalf("Expected first status after all, got %s", m.category())
	}
	if n := m.rowCount(); n != 1 {
		t.Errorf("Expected 1 new lead, got %d", n)
	}

	m = press(m, "esc")
	if m.category() != "all" || m.rowCount() != 2 {
		t.Error("Esc should clear the filters")
	}
}

func TestSearchNarrowsRows(t *testing.T) {
	m := press(testModel(), "/")
	if !m.searching {
		t.Fatal("Slash should enter search mode")
	}

	m = press(m, "m", "i", "g")
	if n := m.rowCount(); n != 1 {
		t.Errorf("Expected search to match one lead, got %d", n)
	}

	// q is text while searching
	m = press(m, "q")
	if m.search.Value() != "migq" {
		t.Errorf("Expected q to be typed, got %q", m.search.Value())
	}

	m = press(m, "enter")
	if m.searching {
		t.Error("Enter should leave search mode")
	}
}

func TestDetailView(t *testing.T) {
	m := press(testModel(), "down", "enter")
	if m.viewMode != ViewDetail {
		t.Fatal("Enter should open the detail view")
	}

	out := m.View()
	if !strings.Contains(out, "Data Migration") {
		t.Error("Detail should show the selected lead")
	}
	if !strings.Contains(out, string(timewindow.Overdue)) {
		t.Error("Detail should show the due-date window")
	}

	m = press(m, "esc")
	if m.viewMode != ViewList {
		t.Error("Esc should return to the list")
	}
}

func TestSelectionStaysInBounds(t *testing.T) {
	m := press(testModel(), "down", "down", "down")
	if m.selectedRow != 1 {
		t.Errorf("Expected selection clamped to last row, got %d", m.selectedRow)
	}
}

func TestAgendaTab(t *testing.T) {
	m := press(testModel(), "tab", "tab", "tab")
	out := m.View()

	if !strings.Contains(out, "today 1") {
		t.Errorf("Agenda stats should count today, got:\n%s", out)
	}
	if !strings.Contains(out, "undated 1") {
		t.Error("Agenda stats should count undated events")
	}
}

func TestProjectsTabFlagsOverBudget(t *testing.T) {
	m := press(testModel(), "tab", "tab")
	out := m.View()

	if !strings.Contains(out, "1 over budget") {
		t.Errorf("Project stats should count over-budget projects, got:\n%s", out)
	}
}

func TestGraphView(t *testing.T) {
	m := press(testModel(), "g")
	if m.err != nil {
		t.Fatalf("Graph generation failed: %v", m.err)
	}
	if m.viewMode != ViewGraph {
		t.Fatal("g should open the graph view")
	}
	if !strings.Contains(m.graphDOT, "digraph") {
		t.Error("Graph view should hold DOT source")
	}

	m = press(m, "esc")
	if m.viewMode != ViewList || m.graphDOT != "" {
		t.Error("Esc should leave the graph view")
	}
}

func TestQuit(t *testing.T) {
	_, cmd := testModel().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected a quit message")
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{15000, "$15K"},
		{2500000, "$2.5M"},
	}
	for _, tt := range tests {
		if got := formatMoney(tt.in); got != tt.want {
			t.Errorf("formatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
