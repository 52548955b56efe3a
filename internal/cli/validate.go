package cli

import (
	"fmt"
	"log/slog"

	"github.com/happyhackingspace/hmm"
	"github.com/spf13/cobra"
)

func (c *CLI) newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <modelfile>",
		Short: "Check that a model file is well formed and row-stochastic",
		Args:  cobra.ExactArgs(1),
		Example: `  hmm validate weather.yaml
  hmm validate model.json -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := hmm.Load(args[0])
			if err != nil {
				return err
			}
			m := d.Model()
			slog.Debug("Model valid", "path", args[0], "states", m.States(), "symbols", m.Observations())
			_, err = fmt.Fprintf(c.stdout, "%s: ok (%d states, %d symbols)\n", args[0], m.NumStates(), m.NumSymbols())
			return err
		},
	}
}
