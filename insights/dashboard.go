// ABOUTME: Dashboard assembly from a dataset snapshot
// ABOUTME: Bundles every summary card plus needs-attention lists into one DTO
package insights

import (
	"sort"
	"time"

	"github.com/harperreed/pulse/models"
	"github.com/harperreed/pulse/timewindow"
)

type Options struct {
	StaleDealDays    int
	StaleContactDays int
	RecentDays       int
}

func DefaultOptions() Options {
	return Options{
		StaleDealDays:    14,
		StaleContactDays: 30,
		RecentDays:       7,
	}
}

type Dashboard struct {
	Reference  time.Time       `json:"reference"`
	Contacts   ContactSummary  `json:"contacts"`
	Leads      LeadSummary     `json:"leads"`
	LeadAgenda Agenda          `json:"lead_agenda"`
	Pipeline   Pipeline        `json:"pipeline"`
	Projects   ProjectSummary  `json:"projects"`
	Events     EventSummary    `json:"events"`
	Emails     EmailSummary    `json:"emails"`
	Activities ActivitySummary `json:"activities"`

	StaleContacts []StaleItem `json:"stale_contacts,omitempty"`
	StaleDeals    []StaleItem `json:"stale_deals,omitempty"`
}

// StaleItem is a record that has gone quiet. DaysSince is -1 for records
// that were never touched.
type StaleItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DaysSince int    `json:"days_since"`
}

// BuildDashboard derives every card from one snapshot against the
// classifier's reference instant, read once. The dataset is not modified.
func BuildDashboard(data models.Dataset, c *timewindow.Classifier, opts Options) *Dashboard {
	c = c.Pinned()
	ref := c.Reference()

	return &Dashboard{
		Reference:     ref,
		Contacts:      SummarizeContacts(data.Contacts, data.Companies),
		Leads:         SummarizeLeads(data.Leads),
		LeadAgenda:    LeadAgenda(c, data.Leads),
		Pipeline:      SummarizePipeline(data.Opportunities),
		Projects:      SummarizeProjects(data.Projects),
		Events:        SummarizeEvents(c, data.Events),
		Emails:        SummarizeEmails(data.Emails),
		Activities:    SummarizeActivities(data.Activities, ref, opts.RecentDays),
		StaleContacts: StaleContacts(data.Contacts, ref, opts.StaleContactDays),
		StaleDeals:    StaleOpportunities(data.Opportunities, ref, opts.StaleDealDays),
	}
}

// StaleContacts lists active contacts never contacted, or last contacted
// more than days ago, most neglected first.
func StaleContacts(contacts []models.Contact, ref time.Time, days int) []StaleItem {
	var out []StaleItem
	for _, c := range contacts {
		if c.Status == models.ContactInactive {
			continue
		}
		if c.LastContactedAt == nil {
			out = append(out, StaleItem{ID: c.ID.String(), Name: c.Name, DaysSince: -1})
			continue
		}
		if since := timewindow.DaysSince(ref, *c.LastContactedAt); since > days {
			out = append(out, StaleItem{ID: c.ID.String(), Name: c.Name, DaysSince: since})
		}
	}
	sortStale(out)
	return out
}

// StaleOpportunities lists open opportunities with no activity for more
// than days.
func StaleOpportunities(opps []models.Opportunity, ref time.Time, days int) []StaleItem {
	var out []StaleItem
	for _, o := range opps {
		if o.Closed() {
			continue
		}
		last := o.LastActivityAt
		if last.IsZero() {
			last = o.CreatedAt
		}
		if last.IsZero() {
			out = append(out, StaleItem{ID: o.ID.String(), Name: o.Name, DaysSince: -1})
			continue
		}
		if since := timewindow.DaysSince(ref, last); since > days {
			out = append(out, StaleItem{ID: o.ID.String(), Name: o.Name, DaysSince: since})
		}
	}
	sortStale(out)
	return out
}

// never-touched first, then by age descending, then by name.
func sortStale(items []StaleItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if (a.DaysSince == -1) != (b.DaysSince == -1) {
			return a.DaysSince == -1
		}
		if a.DaysSince != b.DaysSince {
			return a.DaysSince > b.DaysSince
		}
		return a.Name < b.Name
	})
}
