package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/astrolabe/pkg/placement"
)

// placeCommand creates the place command for positioning a new prompt.
func (c *CLI) placeCommand() *cobra.Command {
	var (
		strategy    string
		interactive bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "place [file]",
		Short: "Find a free position for the next prompt",
		Long: `Place computes where the next prompt node goes on a canvas.

The strategy picks a starting point relative to the existing nodes; from
there the position walks outward until the new node overlaps nothing.`,
		Example: `  astrolabe place canvas.json
  astrolabe place conversation.json --strategy right --json
  astrolabe place canvas.json --interactive`,
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

			if !cmd.Flags().Changed("strategy") {
				strategy = cfg.Strategy
			}
			s, err := placement.ParseStrategy(strategy)
			if err != nil {
				return err
			}

			if interactive {
				picked, ok, err := pickStrategy(in.Canvas.Nodes, s)
				if err != nil {
					return err
				}
				if !ok {
					printDetail("No strategy selected")
					return nil
				}
				s = picked
			}

			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.PlacePrompt(cmd.Context(), in.Canvas.Nodes, s)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return err
				}
				return writeOutput(data, "", cmd.OutOrStdout())
			}

			printKeyValue("strategy", string(s))
			printPoint("position", res.Position.X, res.Position.Y)
			printKeyValue("id", res.ID)
			if res.Overlapping {
				printWarning("No free spot within %d attempts; the prompt overlaps an existing node", res.Attempts)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "placement strategy: center, top, right, bottom or left")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the strategy interactively")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	_ = cmd.RegisterFlagCompletionFunc("strategy", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(placement.Strategies))
		for i, s := range placement.Strategies {
			names[i] = string(s)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
