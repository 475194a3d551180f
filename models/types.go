// ABOUTME: Data models for CRM entities consumed by the insights engine
// ABOUTME: Defines Contact, Company, Lead, Opportunity, Project, CalendarEvent, Email, Activity
package models

import (
	"time"

	"github.com/google/uuid"
)

// Unknown is the catch-all bucket for enum values outside a closed set.
const Unknown = "unknown"

type Contact struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email,omitempty"`
	CompanyID       *uuid.UUID `json:"company_id,omitempty"`
	CompanyName     string     `json:"company_name,omitempty"`
	Status          string     `json:"status"`
	LastContactedAt *time.Time `json:"last_contacted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type Company struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Lead struct {
	ID                     uuid.UUID  `json:"id"`
	Title                  string     `json:"title"`
	Description            string     `json:"description,omitempty"`
	Status                 string     `json:"status"`
	EstimatedValue         float64    `json:"estimated_value"`
	Score                  float64    `json:"score"`
	ConvertedToOpportunity bool       `json:"converted_to_opportunity"`
	ContactID              *uuid.UUID `json:"contact_id,omitempty"`
	ContactName            string     `json:"contact_name,omitempty"`
	CompanyID              *uuid.UUID `json:"company_id,omitempty"`
	CompanyName            string     `json:"company_name,omitempty"`
	DueDate                *time.Time `json:"due_date,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
}

type Opportunity struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	Value             float64    `json:"value"`
	Probability       float64    `json:"probability"`
	Stage             string     `json:"stage"`
	ContactID         *uuid.UUID `json:"contact_id,omitempty"`
	ContactName       string     `json:"contact_name,omitempty"`
	CompanyID         *uuid.UUID `json:"company_id,omitempty"`
	CompanyName       string     `json:"company_name,omitempty"`
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	LastActivityAt    time.Time  `json:"last_activity_at"`
}

type Project struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Budget      float64    `json:"budget"`
	ActualCost  float64    `json:"actual_cost"`
	Progress    float64    `json:"progress"`
	CompanyID   *uuid.UUID `json:"company_id,omitempty"`
	CompanyName string     `json:"company_name,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type CalendarEvent struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Location    string    `json:"location,omitempty"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
}

type Email struct {
	ID          uuid.UUID  `json:"id"`
	Subject     string     `json:"subject"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	FromAddress string     `json:"from_address,omitempty"`
	ToAddress   string     `json:"to_address,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
}

type Activity struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Subject     string     `json:"subject"`
	Outcome     string     `json:"outcome,omitempty"`
	ContactID   *uuid.UUID `json:"contact_id,omitempty"`
	ContactName string     `json:"contact_name,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Dataset is one snapshot of every collection the dashboard reads.
type Dataset struct {
	Contacts      []Contact       `json:"contacts"`
	Companies     []Company       `json:"companies"`
	Leads         []Lead          `json:"leads"`
	Opportunities []Opportunity   `json:"opportunities"`
	Projects      []Project       `json:"projects"`
	Events        []CalendarEvent `json:"events"`
	Emails        []Email         `json:"emails"`
	Activities    []Activity      `json:"activities"`
}

// Contact status constants.
const (
	ContactActive   = "active"
	ContactInactive = "inactive"
)

// Lead status constants.
const (
	LeadNew         = "new"
	LeadContacted   = "contacted"
	LeadQualified   = "qualified"
	LeadProposal    = "proposal"
	LeadNegotiation = "negotiation"
	LeadClosedWon   = "closed_won"
	LeadClosedLost  = "closed_lost"
)

// Opportunity stages share their names with the later lead statuses.
const (
	StageQualified   = LeadQualified
	StageProposal    = LeadProposal
	StageNegotiation = LeadNegotiation
	StageClosedWon   = LeadClosedWon
	StageClosedLost  = LeadClosedLost
)

// Project status constants.
const (
	ProjectPlanning   = "planning"
	ProjectInProgress = "in_progress"
	ProjectOnHold     = "on_hold"
	ProjectCompleted  = "completed"
	ProjectCancelled  = "cancelled"
)

// Calendar event type constants.
const (
	EventMeeting  = "meeting"
	EventCall     = "call"
	EventDemo     = "demo"
	EventFollowUp = "follow_up"
	EventDeadline = "deadline"
	EventReminder = "reminder"
)

// Calendar event status constants.
const (
	EventScheduled   = "scheduled"
	EventCompleted   = "completed"
	EventCancelled   = "cancelled"
	EventRescheduled = "rescheduled"
)

// Email type constants.
const (
	EmailInbound   = "inbound"
	EmailOutbound  = "outbound"
	EmailAutomated = "automated"
)

// Email status constants.
const (
	EmailDraft     = "draft"
	EmailSent      = "sent"
	EmailDelivered = "delivered"
	EmailOpened    = "opened"
	EmailReplied   = "replied"
	EmailBounced   = "bounced"
)

// Activity type constants.
const (
	ActivityCall    = "call"
	ActivityEmail   = "email"
	ActivityMeeting = "meeting"
	ActivityNote    = "note"
)

// Ordered closed sets, in pipeline/display order.
var (
	ContactStatuses   = []string{ContactActive, ContactInactive}
	LeadStatuses      = []string{LeadNew, LeadContacted, LeadQualified, LeadProposal, LeadNegotiation, LeadClosedWon, LeadClosedLost}
	OpportunityStages = []string{StageQualified, StageProposal, StageNegotiation, StageClosedWon, StageClosedLost}
	ProjectStatuses   = []string{ProjectPlanning, ProjectInProgress, ProjectOnHold, ProjectCompleted, ProjectCancelled}
	EventTypes        = []string{EventMeeting, EventCall, EventDemo, EventFollowUp, EventDeadline, EventReminder}
	EventStatuses     = []string{EventScheduled, EventCompleted, EventCancelled, EventRescheduled}
	EmailTypes        = []string{EmailInbound, EmailOutbound, EmailAutomated}
	EmailStatuses     = []string{EmailDraft, EmailSent, EmailDelivered, EmailOpened, EmailReplied, EmailBounced}
	ActivityTypes     = []string{ActivityCall, ActivityEmail, ActivityMeeting, ActivityNote}
)

// IsKnown reports whether value is a member of set.
func IsKnown(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

// Closed reports whether the lead reached a terminal status.
func (l Lead) Closed() bool {
	return l.Status == LeadClosedWon || l.Status == LeadClosedLost
}

// Resolved reports whether the lead no longer needs follow-up: it is closed
// or has been converted into an opportunity.
func (l Lead) Resolved() bool {
	return l.Closed() || l.ConvertedToOpportunity
}

// Qualified reports whether the lead has progressed past initial contact.
func (l Lead) Qualified() bool {
	switch l.Status {
	case LeadQualified, LeadProposal, LeadNegotiation, LeadClosedWon:
		return true
	}
	return false
}

func (o Opportunity) Closed() bool {
	return o.Stage == StageClosedWon || o.Stage == StageClosedLost
}

func (o Opportunity) Won() bool {
	return o.Stage == StageClosedWon
}

// Resolved reports whether the event no longer needs attention.
func (e CalendarEvent) Resolved() bool {
	return e.Status == EventCompleted || e.Status == EventCancelled
}

// OverBudget reports whether spend exceeds a non-zero budget.
func (p Project) OverBudget() bool {
	return p.Budget > 0 && p.ActualCost > p.Budget
}

// Sent reports whether the email left the mailbox. Inbound mail and drafts
// are not counted as sent.
func (e Email) Sent() bool {
	if e.Type == EmailInbound {
		return false
	}
	return e.Status != EmailDraft && e.Status != ""
}

// Opened counts replies as opens since a reply implies the message was read.
func (e Email) Opened() bool {
	return e.Status == EmailOpened || e.Status == EmailReplied
}
