// ABOUTME: Tests for dashboard text rendering and pipeline graph output
// ABOUTME: Builds dashboards from fixed datasets and checks the rendered sections
package viz

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/models"
	"github.com/harperreed/pulse/timewindow"
)

var ref = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

func sampleDashboard() *insights.Dashboard {
	data := models.Dataset{
		Opportunities: []models.Opportunity{
			{Name: "A", Value: 1000, Probability: 50, Stage: models.StageProposal, LastActivityAt: ref},
			{Name: "B", Value: 2000, Probability: 25, Stage: models.StageNegotiation, LastActivityAt: ref.AddDate(0, 0, -30)},
			{Name: "C", Value: 4000, Probability: 100, Stage: models.StageClosedWon, LastActivityAt: ref},
		},
		Events: []models.CalendarEvent{
			{Title: "Call", Type: models.EventCall, Status: models.EventScheduled, StartAt: ref.Add(time.Hour)},
			{Title: "Undated", Type: models.EventMeeting, Status: models.EventScheduled},
		},
		Contacts: []models.Contact{{Name: "Never", Status: models.ContactActive}},
	}
	c := timewindow.New(timewindow.WithReference(ref), timewindow.WithLocation(time.UTC))
	return insights.BuildDashboard(data, c, insights.DefaultOptions())
}

func TestRenderDashboardPlain(t *testing.T) {
	out := RenderDashboard(sampleDashboard(), false)

	for _, want := range []string{
		"PULSE CRM DASHBOARD",
		"PIPELINE OVERVIEW",
		"AGENDA",
		"STATS",
		"NEEDS ATTENTION",
		"win rate 100.0%",
		"(1 undated)",
		"1 contacts need a follow-up",
		"1 opportunities - stale",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[", "plain output must not contain escape codes")
}

func TestRenderDashboardStageOrder(t *testing.T) {
	out := RenderDashboard(sampleDashboard(), false)

	var order []string
	for _, stage := range models.OpportunityStages {
		idx := strings.Index(out, "  "+stage+" ")
		require.GreaterOrEqual(t, idx, 0, "stage %s missing", stage)
		order = append(order, stage)
		if len(order) > 1 {
			prev := strings.Index(out, "  "+order[len(order)-2]+" ")
			assert.Less(t, prev, idx)
		}
	}
}

func TestRenderDashboardEmpty(t *testing.T) {
	c := timewindow.New(timewindow.WithReference(ref))
	d := insights.BuildDashboard(models.Dataset{}, c, insights.DefaultOptions())

	out := RenderDashboard(d, true)
	assert.Contains(t, out, "PULSE CRM DASHBOARD")
	assert.Contains(t, out, "░░░░░░░░░░")
	assert.NotContains(t, out, "NEEDS ATTENTION")
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{1500, "$1.5K"},
		{2_500_000, "$2.5M"},
		{-2000, "$-2.0K"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(tt.in))
	}
}

func TestGeneratePipelineGraph(t *testing.T) {
	p := insights.SummarizePipeline([]models.Opportunity{
		{Value: 1000, Probability: 50, Stage: models.StageProposal},
		{Value: 500, Stage: "mystery"},
	})

	dot, err := GeneratePipelineGraph(p)
	require.NoError(t, err)
	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, "stage_proposal")
	assert.Contains(t, dot, "stage_closed_won")
	assert.Contains(t, dot, "stage_unknown")
}
