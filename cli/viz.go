// ABOUTME: Visualization CLI commands
// ABOUTME: Renders the opportunity pipeline as a Graphviz graph
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/pulse/filter"
	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/viz"
)

// VizPipelineCommand generates the stage-flow graph of the pipeline.
func VizPipelineCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("viz pipeline", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	flags := addFilterFlags(fs, "", "value")
	_ = fs.Parse(args)

	data, err := env.dataset()
	if err != nil {
		return err
	}

	opps := filter.Filter(data.Opportunities, flags.criteria(), filter.OpportunityFields)
	dot, err := viz.GeneratePipelineGraph(insights.SummarizePipeline(opps))
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(dot), 0644); err != nil {
			return fmt.Errorf("failed to write graph: %w", err)
		}
		_, _ = fmt.Fprintf(env.out(), "✓ Wrote pipeline graph to %s\n", *output)
		return nil
	}

	_, _ = fmt.Fprintln(env.out(), dot)
	return nil
}
