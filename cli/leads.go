// ABOUTME: Lead and opportunity CLI commands
// ABOUTME: Filterable lead and pipeline listings with totals and stage breakdowns
package cli

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/harperreed/pulse/filter"
	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/metrics"
)

// LeadsCommand lists leads matching the filter flags.
func LeadsCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("leads", flag.ExitOnError)
	flags := addFilterFlags(fs, "status", "value")
	minScore := fs.Float64("min-score", 0, "Minimum lead score (0-100)")
	_ = fs.Parse(args)

	data, err := env.dataset()
	if err != nil {
		return err
	}

	crit := flags.criteria()
	if *minScore > 0 {
		crit = crit.Range("score", minScore, nil)
	}
	leads := filter.Filter(data.Leads, crit, filter.LeadFields)

	out := env.out()
	if len(leads) == 0 {
		_, _ = fmt.Fprintln(out, "No leads found")
		return nil
	}

	// Pretty print results
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TITLE\tCOMPANY\tSTATUS\tVALUE\tSCORE\tDUE\tID")
	_, _ = fmt.Fprintln(w, "-----\t-------\t------\t-----\t-----\t---\t--")

	for _, l := range leads {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\t%.0f\t%s\t%s\n",
			l.Title, orDash(l.CompanyName), l.Status, l.EstimatedValue, l.Score, formatDate(l.DueDate), shortID(l.ID))
	}
	_ = w.Flush()

	s := insights.SummarizeLeads(leads)
	_, _ = fmt.Fprintf(out, "\nTotal: %d lead(s) - $%.2f (avg $%.2f, avg score %.0f, %d hot, %.1f%% converted)\n",
		s.Count, s.TotalValue, s.AverageValue, s.AverageScore, s.HotLeads, s.ConversionRate)
	return nil
}

// PipelineCommand lists opportunities and the per-stage breakdown.
func PipelineCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("pipeline", flag.ExitOnError)
	flags := addFilterFlags(fs, "stage", "value")
	_ = fs.Parse(args)

	data, err := env.dataset()
	if err != nil {
		return err
	}

	opps := filter.Filter(data.Opportunities, flags.criteria(), filter.OpportunityFields)

	out := env.out()
	if len(opps) == 0 {
		_, _ = fmt.Fprintln(out, "No opportunities found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCOMPANY\tSTAGE\tVALUE\tPROB\tCLOSE\tID")
	_, _ = fmt.Fprintln(w, "----\t-------\t-----\t-----\t----\t-----\t--")

	for _, o := range opps {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\t%.0f%%\t%s\t%s\n",
			o.Name, orDash(o.CompanyName), o.Stage, o.Value, o.Probability, formatDate(o.ExpectedCloseDate), shortID(o.ID))
	}
	_ = w.Flush()

	p := insights.SummarizePipeline(opps)
	_, _ = fmt.Fprintln(out)
	renderGroups(out, "STAGE", p.ByStage)

	_, _ = fmt.Fprintf(out, "\nTotal: %d opportunity(ies) - $%.2f (open $%.2f, weighted $%.2f, won $%.2f, win rate %.1f%%)\n",
		p.Count, p.TotalValue, p.OpenValue, p.WeightedValue, p.WonValue, p.WinRate)
	return nil
}

func renderGroups(out io.Writer, label string, groups []metrics.Group) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "%s\tCOUNT\tTOTAL\tSHARE\n", label)
	for _, g := range groups {
		_, _ = fmt.Fprintf(w, "%s\t%d\t$%.2f\t%.1f%%\n", g.Key, g.Count, g.Total, g.Share)
	}
	_ = w.Flush()
}
