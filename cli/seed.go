// ABOUTME: Seed CLI command
// ABOUTME: Fills the database with sample records dated around the reference day
package cli

import (
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/pulse/db"
)

// SeedCommand inserts the sample dataset.
func SeedCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	_ = fs.Parse(args)

	c, err := env.classifier()
	if err != nil {
		return err
	}

	counts, err := db.Seed(env.DB, c.Reference())
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	env.logger().Info("seeded database",
		zap.Int("leads", counts.Leads),
		zap.Int("opportunities", counts.Opportunities),
		zap.Int("events", counts.Events))

	out := env.out()
	_, _ = fmt.Fprintf(out, "✓ Seeded sample data (reference %s)\n", c.Reference().Format(time.DateOnly))
	_, _ = fmt.Fprintf(out, "  Companies:     %d\n", counts.Companies)
	_, _ = fmt.Fprintf(out, "  Contacts:      %d\n", counts.Contacts)
	_, _ = fmt.Fprintf(out, "  Leads:         %d\n", counts.Leads)
	_, _ = fmt.Fprintf(out, "  Opportunities: %d\n", counts.Opportunities)
	_, _ = fmt.Fprintf(out, "  Projects:      %d\n", counts.Projects)
	_, _ = fmt.Fprintf(out, "  Events:        %d\n", counts.Events)
	_, _ = fmt.Fprintf(out, "  Emails:        %d\n", counts.Emails)
	_, _ = fmt.Fprintf(out, "  Activities:    %d\n", counts.Activities)
	return nil
}
