// ABOUTME: Sample data generator for demos and manual testing
// ABOUTME: Inserts a small CRM dataset with dates placed relative to a reference time
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/pulse/models"
)

// SeedCounts reports how many rows Seed inserted per table.
type SeedCounts struct {
	Companies     int
	Contacts      int
	Leads         int
	Opportunities int
	Projects      int
	Events        int
	Emails        int
	Activities    int
}

// Seed inserts sample records whose dates fall in every time-window bucket
// relative to ref.
func Seed(db *sql.DB, ref time.Time) (SeedCounts, error) {
	var counts SeedCounts

	at := func(days, hour int) time.Time {
		y, m, d := ref.Date()
		return time.Date(y, m, d+days, hour, 0, 0, 0, ref.Location())
	}
	ptr := func(t time.Time) *time.Time { return &t }

	companies := []*models.Company{
		{Name: "Acme Corp", Industry: "Manufacturing", CreatedAt: at(-120, 9)},
		{Name: "Globex", Industry: "Software", CreatedAt: at(-90, 9)},
		{Name: "Initech", Industry: "Software", CreatedAt: at(-60, 9)},
		{Name: "Umbrella Health", Industry: "Healthcare", CreatedAt: at(-30, 9)},
	}
	for _, c := range companies {
		if err := CreateCompany(db, c); err != nil {
			return counts, fmt.Errorf("failed to seed company %s: %w", c.Name, err)
		}
		counts.Companies++
	}
	acme, globex, initech, umbrella := companies[0], companies[1], companies[2], companies[3]

	contacts := []*models.Contact{
		{Name: "Alice Johnson", Email: "alice@acme.example", CompanyID: &acme.ID, Status: models.ContactActive, LastContactedAt: ptr(at(-2, 10)), CreatedAt: at(-100, 9)},
		{Name: "Bob Smith", Email: "bob@globex.example", CompanyID: &globex.ID, Status: models.ContactActive, LastContactedAt: ptr(at(-45, 10)), CreatedAt: at(-80, 9)},
		{Name: "Carol Diaz", Email: "carol@initech.example", CompanyID: &initech.ID, Status: models.ContactActive, CreatedAt: at(-50, 9)},
		{Name: "Dan Wu", Email: "dan@umbrella.example", CompanyID: &umbrella.ID, Status: models.ContactActive, LastContactedAt: ptr(at(-10, 10)), CreatedAt: at(-25, 9)},
		{Name: "Eve Martin", Email: "eve@acme.example", CompanyID: &acme.ID, Status: models.ContactInactive, LastContactedAt: ptr(at(-200, 10)), CreatedAt: at(-110, 9)},
	}
	for _, c := range contacts {
		if err := CreateContact(db, c); err != nil {
			return counts, fmt.Errorf("failed to seed contact %s: %w", c.Name, err)
		}
		counts.Contacts++
	}
	alice, bob, carol, dan := contacts[0], contacts[1], contacts[2], contacts[3]

	leads := []*models.Lead{
		{Title: "Acme warehouse rollout", Status: models.LeadQualified, EstimatedValue: 50000, Score: 85, ContactID: &alice.ID, CompanyID: &acme.ID, DueDate: ptr(at(0, 15)), CreatedAt: at(-20, 9)},
		{Title: "Globex renewal", Status: models.LeadContacted, EstimatedValue: 20000, Score: 60, ContactID: &bob.ID, CompanyID: &globex.ID, DueDate: ptr(at(-3, 12)), CreatedAt: at(-40, 9)},
		{Title: "Initech pilot", Status: models.LeadNew, EstimatedValue: 8000, Score: 40, ContactID: &carol.ID, CompanyID: &initech.ID, DueDate: ptr(at(4, 11)), CreatedAt: at(-5, 9)},
		{Title: "Umbrella analytics", Status: models.LeadProposal, EstimatedValue: 75000, Score: 92, ContactID: &dan.ID, CompanyID: &umbrella.ID, DueDate: ptr(at(12, 11)), CreatedAt: at(-15, 9)},
		{Title: "Acme support plan", Status: models.LeadClosedWon, EstimatedValue: 12000, Score: 88, ContactID: &alice.ID, CompanyID: &acme.ID, DueDate: ptr(at(-8, 11)), CreatedAt: at(-60, 9)},
		{Title: "Globex add-on", Status: models.LeadClosedLost, EstimatedValue: 5000, Score: 20, ContactID: &bob.ID, CompanyID: &globex.ID, CreatedAt: at(-70, 9)},
	}
	for _, l := range leads {
		if err := CreateLead(db, l); err != nil {
			return counts, fmt.Errorf("failed to seed lead %s: %w", l.Title, err)
		}
		counts.Leads++
	}

	opps := []*models.Opportunity{
		{Name: "Acme expansion", Value: 40000, Probability: 60, Stage: models.StageNegotiation, ContactID: &alice.ID, CompanyID: &acme.ID, ExpectedCloseDate: ptr(at(10, 12)), CreatedAt: at(-30, 9), LastActivityAt: at(-1, 9)},
		{Name: "Globex platform", Value: 25000, Probability: 30, Stage: models.StageProposal, ContactID: &bob.ID, CompanyID: &globex.ID, ExpectedCloseDate: ptr(at(20, 12)), CreatedAt: at(-50, 9), LastActivityAt: at(-21, 9)},
		{Name: "Initech seats", Value: 10000, Probability: 20, Stage: models.StageQualified, ContactID: &carol.ID, CompanyID: &initech.ID, CreatedAt: at(-12, 9), LastActivityAt: at(-12, 9)},
		{Name: "Umbrella onboarding", Value: 30000, Probability: 100, Stage: models.StageClosedWon, ContactID: &dan.ID, CompanyID: &umbrella.ID, CreatedAt: at(-40, 9), LastActivityAt: at(-5, 9)},
		{Name: "Acme legacy migration", Value: 15000, Probability: 0, Stage: models.StageClosedLost, ContactID: &alice.ID, CompanyID: &acme.ID, CreatedAt: at(-80, 9), LastActivityAt: at(-35, 9)},
	}
	for _, o := range opps {
		if err := CreateOpportunity(db, o); err != nil {
			return counts, fmt.Errorf("failed to seed opportunity %s: %w", o.Name, err)
		}
		counts.Opportunities++
	}

	projects := []*models.Project{
		{Name: "Umbrella onboarding", Status: models.ProjectInProgress, Budget: 30000, ActualCost: 12000, Progress: 45, CompanyID: &umbrella.ID, StartDate: ptr(at(-5, 9)), EndDate: ptr(at(40, 17))},
		{Name: "Acme integration", Status: models.ProjectInProgress, Budget: 20000, ActualCost: 23000, Progress: 80, CompanyID: &acme.ID, StartDate: ptr(at(-60, 9)), EndDate: ptr(at(5, 17))},
		{Name: "Globex audit", Status: models.ProjectCompleted, Budget: 8000, ActualCost: 7500, Progress: 100, CompanyID: &globex.ID, StartDate: ptr(at(-90, 9)), EndDate: ptr(at(-30, 17))},
		{Name: "Initech discovery", Status: models.ProjectPlanning, CompanyID: &initech.ID},
	}
	for _, p := range projects {
		if err := CreateProject(db, p); err != nil {
			return counts, fmt.Errorf("failed to seed project %s: %w", p.Name, err)
		}
		counts.Projects++
	}

	events := []*models.CalendarEvent{
		{Title: "Acme negotiation call", Type: models.EventCall, Status: models.EventScheduled, StartAt: at(0, 14), EndAt: at(0, 15)},
		{Title: "Globex follow-up", Type: models.EventFollowUp, Status: models.EventScheduled, StartAt: at(-2, 10), EndAt: at(-2, 11)},
		{Title: "Initech demo", Type: models.EventDemo, Status: models.EventScheduled, Location: "Zoom", StartAt: at(3, 13), EndAt: at(3, 14)},
		{Title: "Umbrella kickoff", Type: models.EventMeeting, Status: models.EventCompleted, Location: "Umbrella HQ", StartAt: at(-5, 9), EndAt: at(-5, 11)},
		{Title: "Quarterly review", Type: models.EventMeeting, Status: models.EventScheduled, StartAt: at(14, 9), EndAt: at(14, 12)},
		{Title: "Proposal deadline", Type: models.EventDeadline, Status: models.EventRescheduled, StartAt: at(7, 17), EndAt: at(7, 17)},
	}
	for _, e := range events {
		if err := CreateEvent(db, e); err != nil {
			return counts, fmt.Errorf("failed to seed event %s: %w", e.Title, err)
		}
		counts.Events++
	}

	emails := []*models.Email{
		{Subject: "Proposal for Acme", Type: models.EmailOutbound, Status: models.EmailReplied, ToAddress: alice.Email, CreatedAt: at(-3, 9), SentAt: ptr(at(-3, 9))},
		{Subject: "Checking in", Type: models.EmailOutbound, Status: models.EmailOpened, ToAddress: bob.Email, CreatedAt: at(-6, 9), SentAt: ptr(at(-6, 9))},
		{Subject: "Pilot details", Type: models.EmailOutbound, Status: models.EmailDelivered, ToAddress: carol.Email, CreatedAt: at(-1, 9), SentAt: ptr(at(-1, 9))},
		{Subject: "Newsletter", Type: models.EmailAutomated, Status: models.EmailBounced, ToAddress: "old@initech.example", CreatedAt: at(-4, 6), SentAt: ptr(at(-4, 6))},
		{Subject: "Re: onboarding", Type: models.EmailInbound, Status: models.EmailDelivered, FromAddress: dan.Email, CreatedAt: at(-2, 16)},
		{Subject: "Draft: renewal terms", Type: models.EmailOutbound, Status: models.EmailDraft, ToAddress: bob.Email, CreatedAt: at(0, 8)},
	}
	for _, e := range emails {
		if err := CreateEmail(db, e); err != nil {
			return counts, fmt.Errorf("failed to seed email %s: %w", e.Subject, err)
		}
		counts.Emails++
	}

	activities := []*models.Activity{
		{Type: models.ActivityCall, Subject: "Pricing discussion", Outcome: "positive", ContactID: &alice.ID, CreatedAt: at(-2, 10)},
		{Type: models.ActivityEmail, Subject: "Sent proposal", ContactID: &alice.ID, CreatedAt: at(-3, 9)},
		{Type: models.ActivityMeeting, Subject: "Kickoff", Outcome: "scheduled next steps", ContactID: &dan.ID, CreatedAt: at(-5, 9)},
		{Type: models.ActivityNote, Subject: "Budget approved", ContactID: &dan.ID, CreatedAt: at(-4, 15)},
		{Type: models.ActivityCall, Subject: "Left voicemail", ContactID: &bob.ID, CreatedAt: at(-21, 11)},
		{Type: models.ActivityEmail, Subject: "Intro email", ContactID: &carol.ID, CreatedAt: at(-12, 9)},
	}
	for _, a := range activities {
		if err := CreateActivity(db, a); err != nil {
			return counts, fmt.Errorf("failed to seed activity %s: %w", a.Subject, err)
		}
		counts.Activities++
	}

	return counts, nil
}
