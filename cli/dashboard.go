// ABOUTME: Dashboard CLI command
// ABOUTME: Prints the full CRM dashboard as styled text, plain text, or JSON
package cli

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/viz"
)

// DashboardCommand renders every dashboard card.
func DashboardCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Output JSON instead of text")
	plain := fs.Bool("plain", false, "Disable colors even on a terminal")
	_ = fs.Parse(args)

	c, err := env.classifier()
	if err != nil {
		return err
	}
	data, err := env.dataset()
	if err != nil {
		return err
	}

	d := insights.BuildDashboard(data, c, env.cfg().InsightOptions())

	if *asJSON {
		enc := json.NewEncoder(env.out())
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("failed to encode dashboard: %w", err)
		}
		return nil
	}

	_, err = fmt.Fprint(env.out(), viz.RenderDashboard(d, env.styled() && !*plain))
	return err
}
