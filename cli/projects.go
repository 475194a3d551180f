// ABOUTME: Project and email CLI commands
// ABOUTME: Lists projects with budget utilisation and emails with engagement rates
package cli

import (
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/pulse/filter"
	"github.com/harperreed/pulse/insights"
)

// ProjectsCommand lists projects with budget and progress totals.
func ProjectsCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("projects", flag.ExitOnError)
	flags := addFilterFlags(fs, "status", "budget")
	_ = fs.Parse(args)

	data, err := env.dataset()
	if err != nil {
		return err
	}

	projects := filter.Filter(data.Projects, flags.criteria(), filter.ProjectFields)

	out := env.out()
	if len(projects) == 0 {
		_, _ = fmt.Fprintln(out, "No projects found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCOMPANY\tSTATUS\tBUDGET\tSPENT\tPROGRESS\tEND\tID")
	_, _ = fmt.Fprintln(w, "----\t-------\t------\t------\t-----\t--------\t---\t--")

	for _, p := range projects {
		warn := ""
		if p.OverBudget() {
			warn = " ⚠️"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\t$%.2f%s\t%.0f%%\t%s\t%s\n",
			p.Name, orDash(p.CompanyName), p.Status, p.Budget, p.ActualCost, warn, p.Progress, formatDate(p.EndDate), shortID(p.ID))
	}
	_ = w.Flush()

	s := insights.SummarizeProjects(projects)
	_, _ = fmt.Fprintf(out, "\nTotal: %d project(s) - $%.2f budget, $%.2f spent (%.1f%% used, avg progress %.0f%%, %d over budget)\n",
		s.Count, s.TotalBudget, s.TotalActualCost, s.BudgetUtilization, s.AverageProgress, s.OverBudget)
	return nil
}

// EmailsCommand lists emails and engagement rates over sent mail.
func EmailsCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("emails", flag.ExitOnError)
	flags := addFilterFlags(fs, "status", "")
	emailType := fs.String("type", filter.All, "Filter by type (inbound, outbound, automated)")
	_ = fs.Parse(args)

	data, err := env.dataset()
	if err != nil {
		return err
	}

	crit := flags.criteria().Select("type", *emailType)
	emails := filter.Filter(data.Emails, crit, filter.EmailFields)

	out := env.out()
	if len(emails) == 0 {
		_, _ = fmt.Fprintln(out, "No emails found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SUBJECT\tTYPE\tSTATUS\tTO\tSENT\tID")
	_, _ = fmt.Fprintln(w, "-------\t----\t------\t--\t----\t--")

	for _, e := range emails {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Subject, e.Type, e.Status, orDash(e.ToAddress), formatDate(e.SentAt), shortID(e.ID))
	}
	_ = w.Flush()

	s := insights.SummarizeEmails(emails)
	_, _ = fmt.Fprintf(out, "\nTotal: %d email(s), %d sent - open %.1f%%, reply %.1f%%, bounce %.1f%%\n",
		s.Count, s.Sent, s.OpenRate, s.ReplyRate, s.BounceRate)
	return nil
}
