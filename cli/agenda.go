// ABOUTME: Agenda CLI command
// ABOUTME: Lists events or lead follow-ups grouped by time window
package cli

import (
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/pulse/filter"
	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/timewindow"
)

type agendaRow struct {
	label  string
	status string
	when   string
}

// AgendaCommand prints every bucket in display order, followed by anything
// that could not be dated.
func AgendaCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("agenda", flag.ExitOnError)
	entityType := fs.String("type", "events", "What to classify (events, leads)")
	query := fs.String("query", "", "Case-insensitive text search")
	_ = fs.Parse(args)

	c, err := env.classifier()
	if err != nil {
		return err
	}
	data, err := env.dataset()
	if err != nil {
		return err
	}

	crit := filter.Criteria{Query: *query}
	rows := make(map[string]agendaRow)
	var agenda insights.Agenda

	switch *entityType {
	case "events":
		events := filter.Filter(data.Events, crit, filter.EventFields)
		for _, e := range events {
			rows[e.ID.String()] = agendaRow{label: e.Title, status: e.Status, when: e.StartAt.In(c.Location()).Format("Mon Jan 2 15:04")}
		}
		agenda = insights.EventAgenda(c, events)
	case "leads":
		leads := filter.Filter(data.Leads, crit, filter.LeadFields)
		for _, l := range leads {
			rows[l.ID.String()] = agendaRow{label: l.Title, status: l.Status, when: formatDate(l.DueDate)}
		}
		agenda = insights.LeadAgenda(c, leads)
	default:
		return fmt.Errorf("invalid agenda type: %s (use events or leads)", *entityType)
	}

	out := env.out()
	_, _ = fmt.Fprintf(out, "Agenda for %s (%s)\n", c.Reference().Format("Mon Jan 2, 2006"), *entityType)

	for _, b := range timewindow.Buckets {
		ids := agenda.IDs[b]
		_, _ = fmt.Fprintf(out, "\n%s (%d)\n", strings.ToUpper(strings.ReplaceAll(string(b), "_", " ")), len(ids))
		if len(ids) == 0 {
			continue
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, id := range ids {
			r := rows[id]
			_, _ = fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", r.when, r.label, r.status, id[:8])
		}
		_ = w.Flush()
	}

	if len(agenda.Unclassified) > 0 {
		_, _ = fmt.Fprintf(out, "\nUNDATED (%d)\n", len(agenda.Unclassified))
		for _, id := range agenda.Unclassified {
			_, _ = fmt.Fprintf(out, "  %s\t%s\n", rows[id].label, id[:8])
		}
	}
	return nil
}
