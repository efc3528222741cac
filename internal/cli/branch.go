package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/astrolabe/pkg/errors"
	"github.com/matzehuels/astrolabe/pkg/geometry"
)

// branchCommand creates the branch command for positioning a node off an
// existing one.
func (c *CLI) branchCommand() *cobra.Command {
	var (
		from   string
		side   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "branch [file]",
		Short: "Position a branch off one side of a node",
		Long: `Branch computes where a new node goes when the user drags a connection
out of one side of an existing node, and which handles the connecting edge
attaches to.`,
		Example: `  astrolabe branch conversation.json --from m3 --side right`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := geometry.ParseSide(side)
			if err != nil {
				return err
			}
			in, err := loadInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			origin, ok := in.Canvas.Node(from)
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "node %q not found", from)
			}

			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.PlaceBranch(cmd.Context(), origin, s)
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

			printPoint("position", res.Position.X, res.Position.Y)
			printKeyValue("edge", res.SourceHandle+" "+iconArrow+" "+res.TargetHandle)
			printKeyValue("id", res.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "ID of the node to branch from")
	cmd.Flags().StringVar(&side, "side", "", "side to branch from: top, right, bottom or left")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("side")

	return cmd
}
