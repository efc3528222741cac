package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/astrolabe/pkg/autolayout"
	"github.com/matzehuels/astrolabe/pkg/canvas"
)

// layoutFlags holds the command-line overrides for layout settings.
type layoutFlags struct {
	direction string
	nodeSep   float64
	rankSep   float64
	edgeSep   float64
	margin    float64
	ranker    string
	align     string
}

func (f *layoutFlags) register(fs *pflag.FlagSet) {
	d := autolayout.DefaultSettings()
	fs.StringVarP(&f.direction, "direction", "d", string(d.Direction), "rank direction: TB, BT, LR or RL")
	fs.Float64Var(&f.nodeSep, "node-sep", d.NodeSep, "gap between nodes in the same rank (px)")
	fs.Float64Var(&f.rankSep, "rank-sep", d.RankSep, "gap between ranks (px)")
	fs.Float64Var(&f.edgeSep, "edge-sep", d.EdgeSep, "gap between parallel edges (px)")
	fs.Float64Var(&f.margin, "margin", d.Margin, "margin around the laid-out graph (px)")
	fs.StringVar(&f.ranker, "ranker", string(d.Ranker), "ranking algorithm: network-simplex, tight-tree or longest-path")
	fs.StringVar(&f.align, "align", "auto", "node alignment: auto, UL, UR, DL or DR")
}

// apply overlays the flags the user set onto base.
func (f *layoutFlags) apply(fs *pflag.FlagSet, base autolayout.Settings) (autolayout.Settings, error) {
	s := base
	if fs.Changed("direction") {
		d, err := autolayout.ParseDirection(f.direction)
		if err != nil {
			return s, err
		}
		s.Direction = d
	}
	if fs.Changed("ranker") {
		r, err := autolayout.ParseRanker(f.ranker)
		if err != nil {
			return s, err
		}
		s.Ranker = r
	}
	if fs.Changed("align") {
		a, err := autolayout.ParseAlign(f.align)
		if err != nil {
			return s, err
		}
		s.Align = a
	}
	if fs.Changed("node-sep") {
		s.NodeSep = f.nodeSep
	}
	if fs.Changed("rank-sep") {
		s.RankSep = f.rankSep
	}
	if fs.Changed("edge-sep") {
		s.EdgeSep = f.edgeSep
	}
	if fs.Changed("margin") {
		s.Margin = f.margin
	}
	return s, nil
}

// layoutCommand creates the layout command for arranging a whole canvas.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags   layoutFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Arrange a canvas with a layered graph layout",
		Long: `Layout runs Graphviz dot over the canvas and writes every node's new
top-left position. Conversations are written back as conversations with
updated message coordinates; canvases as canvases.

Spacing values outside their allowed range are clamped. Results are cached
by graph shape and settings, so re-running on an unchanged canvas is free.`,
		Example: `  astrolabe layout canvas.json -o laid-out.json
  astrolabe layout conversation.json --direction LR --rank-sep 150
  cat canvas.json | astrolabe layout - --ranker longest-path`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			cfg, err := c.config()
			if err != nil {
				return err
			}
			settings, err := flags.apply(cmd.Flags(), cfg.Layout)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			toFile := output != "" && output != "-"
			var spinner *Spinner
			if toFile {
				spinner = newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Laying out %d nodes...", len(in.Canvas.Nodes)))
				spinner.Start()
			}
			prog := newProgress(c.Logger)

			res, err := runner.AutoLayout(cmd.Context(), in.Canvas.Nodes, in.Canvas.Edges, settings)
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Laid out %d nodes", len(res.Nodes)))

			data, err := in.encode(canvas.Canvas{Nodes: res.Nodes, Edges: res.Edges})
			if err != nil {
				return err
			}
			if err := writeOutput(data, output, cmd.OutOrStdout()); err != nil {
				return err
			}

			if toFile {
				printSuccess("Layout complete")
				printFile(output)
				printStats(len(res.Nodes), len(res.Edges), res.Cached)
			}
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")

	return cmd
}
