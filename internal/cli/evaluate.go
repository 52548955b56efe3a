package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/happyhackingspace/hmm"
	"github.com/happyhackingspace/hmm/discrete"
	"github.com/spf13/cobra"
)

func (c *CLI) newEvaluateCommand() *cobra.Command {
	var dataFolder string
	var scaleName string

	cmd := &cobra.Command{
		Use:     "evaluate",
		Short:   "Score every sequence in a data folder against its model",
		Example: `  hmm evaluate --data-folder data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scale, err := discrete.ParseScale(scaleName)
			if err != nil {
				return err
			}
			slog.Info("Evaluating", "data-folder", dataFolder, "scale", scale)
			start := time.Now()
			result, err := hmm.Evaluate(dataFolder, &hmm.EvalConfig{
				Scale:   scale,
				Verbose: c.verbose,
			})
			if err != nil {
				return err
			}
			slog.Debug("Evaluation completed", "duration", time.Since(start))

			out := c.stdout
			fmt.Fprintf(out, "Sequences: %d scored, %d skipped, %d impossible\n",
				result.Sequences, result.Skipped, result.Impossible)
			if result.Observations > 0 {
				fmt.Fprintf(out, "Log-likelihood: %.4f (%.4f per symbol, perplexity %.3f)\n",
					result.TotalLogLikelihood, result.PerSymbolLogLikelihood, result.Perplexity)
			}
			if result.StateTotal > 0 {
				fmt.Fprintf(out, "State accuracy: %.1f%% (%d/%d states)\n",
					result.StateAccuracy*100, result.StateCorrect, result.StateTotal)
				fmt.Fprintf(out, "Sequence accuracy: %.1f%% (%d/%d sequences)\n",
					result.SequenceAccuracy*100, result.SequenceCorrect, result.SequenceTotal)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFolder, "data-folder", "data", "Path to the data folder (model file + sequences/*.txt)")
	cmd.Flags().StringVar(&scaleName, "scale", "log", "Viterbi arithmetic scale: log or linear (likelihood is always log)")
	return cmd
}
