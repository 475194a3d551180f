// ABOUTME: Pipeline graph generation using graphviz
// ABOUTME: Renders stage funnel nodes with counts and values as DOT source
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/models"
)

var stageColors = map[string]string{
	models.StageQualified:   "lightblue",
	models.StageProposal:    "lightyellow",
	models.StageNegotiation: "orange",
	models.StageClosedWon:   "lightgreen",
	models.StageClosedLost:  "lightgray",
	models.Unknown:          "white",
}

// GeneratePipelineGraph renders the pipeline stages as a left-to-right
// funnel. Open stages chain in order and each links to both closed
// outcomes; an unknown stage, if present, hangs off the side.
func GeneratePipelineGraph(p insights.Pipeline) (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	graph.SetRankDir(cgraph.LRRank)
	graph.SetLabel(fmt.Sprintf("Pipeline: %d opportunities, %s weighted, %.1f%% win rate",
		p.Count, formatMoney(p.WeightedValue), p.WinRate))

	nodes := make(map[string]*cgraph.Node, len(p.ByStage))
	for _, g := range p.ByStage {
		node, err := graph.CreateNodeByName("stage_" + g.Key)
		if err != nil {
			return "", fmt.Errorf("failed to create stage node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%d deals\n%s", g.Key, g.Count, formatMoney(g.Total)))
		node.SetShape("box")
		node.SetStyle("filled")
		color, ok := stageColors[g.Key]
		if !ok {
			color = "white"
		}
		node.SetFillColor(color)
		nodes[g.Key] = node
	}

	var open []string
	for _, g := range p.ByStage {
		switch g.Key {
		case models.StageClosedWon, models.StageClosedLost, models.Unknown:
		default:
			open = append(open, g.Key)
		}
	}

	link := func(from, to, label string) error {
		a, okA := nodes[from]
		b, okB := nodes[to]
		if !okA || !okB {
			return nil
		}
		edge, err := graph.CreateEdgeByName(from+"_"+to, a, b)
		if err != nil {
			return fmt.Errorf("failed to create edge: %w", err)
		}
		if label != "" {
			edge.SetLabel(label)
		}
		return nil
	}

	for i := 0; i+1 < len(open); i++ {
		if err := link(open[i], open[i+1], ""); err != nil {
			return "", err
		}
	}
	if len(open) > 0 {
		last := open[len(open)-1]
		if err := link(last, models.StageClosedWon, "won"); err != nil {
			return "", err
		}
		if err := link(last, models.StageClosedLost, "lost"); err != nil {
			return "", err
		}
	}
	if n, ok := nodes[models.Unknown]; ok {
		n.SetStyle("dashed")
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}
