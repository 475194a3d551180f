// ABOUTME: Tests for CRM data models
// ABOUTME: Validates enum sets, resolution predicates, and boundary normalisation
package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown(LeadStatuses, LeadNegotiation))
	assert.False(t, IsKnown(OpportunityStages, LeadNew), "opportunities never sit in the new stage")
	assert.False(t, IsKnown(OpportunityStages, LeadContacted))
	assert.False(t, IsKnown(EventStatuses, ""))
}

func TestLeadResolved(t *testing.T) {
	open := Lead{Status: LeadProposal}
	assert.False(t, open.Resolved())

	converted := Lead{Status: LeadQualified, ConvertedToOpportunity: true}
	assert.True(t, converted.Resolved())

	lost := Lead{Status: LeadClosedLost}
	assert.True(t, lost.Resolved())
	assert.False(t, lost.Qualified())
}

func TestEventResolved(t *testing.T) {
	assert.True(t, CalendarEvent{Status: EventCompleted}.Resolved())
	assert.True(t, CalendarEvent{Status: EventCancelled}.Resolved())
	assert.False(t, CalendarEvent{Status: EventRescheduled}.Resolved())
	assert.False(t, CalendarEvent{Status: EventScheduled}.Resolved())
}

func TestEmailSent(t *testing.T) {
	assert.False(t, Email{Type: EmailInbound, Status: EmailDelivered}.Sent())
	assert.False(t, Email{Type: EmailOutbound, Status: EmailDraft}.Sent())
	assert.True(t, Email{Type: EmailAutomated, Status: EmailBounced}.Sent())
	assert.True(t, Email{Type: EmailOutbound, Status: EmailReplied}.Opened())
}

func TestProjectOverBudget(t *testing.T) {
	assert.True(t, Project{Budget: 100, ActualCost: 150}.OverBudget())
	assert.False(t, Project{Budget: 0, ActualCost: 150}.OverBudget(), "no budget means nothing to exceed")
}

func TestNormalizeClampsAndCoerces(t *testing.T) {
	lead := NormalizeLead(Lead{EstimatedValue: math.NaN(), Score: 140})
	assert.Equal(t, 0.0, lead.EstimatedValue)
	assert.Equal(t, 100.0, lead.Score)

	opp := NormalizeOpportunity(Opportunity{Value: math.Inf(1), Probability: -5})
	assert.Equal(t, 0.0, opp.Value)
	assert.Equal(t, 0.0, opp.Probability)

	project := NormalizeProject(Project{Budget: 1000, ActualCost: 200, Progress: 55.5})
	assert.Equal(t, 55.5, project.Progress)
	assert.Equal(t, 200.0, project.ActualCost)
}

func TestFromNullable(t *testing.T) {
	v := 12.5
	assert.Equal(t, 12.5, FromNullable(&v))
	assert.Equal(t, 0.0, FromNullable(nil))
}

func TestMissingJSONNumbersDecodeAsZero(t *testing.T) {
	var leads []Lead
	payload := `[
		{"id": "` + uuid.NewString() + `", "title": "a", "status": "new", "estimated_value": 1000},
		{"id": "` + uuid.NewString() + `", "title": "b", "status": "new", "estimated_value": null},
		{"id": "` + uuid.NewString() + `", "title": "c", "status": "new"}
	]`
	require.NoError(t, json.Unmarshal([]byte(payload), &leads))
	require.Len(t, leads, 3)

	assert.Equal(t, 1000.0, leads[0].EstimatedValue)
	assert.Equal(t, 0.0, leads[1].EstimatedValue)
	assert.Equal(t, 0.0, leads[2].EstimatedValue)
}

func TestDatasetNormalizeDoesNotMutateInput(t *testing.T) {
	d := Dataset{Leads: []Lead{{Score: 250}}}
	n := d.Normalize()

	assert.Equal(t, 250.0, d.Leads[0].Score)
	assert.Equal(t, 100.0, n.Leads[0].Score)
}
