package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/happyhackingspace/hmm"
	"github.com/happyhackingspace/hmm/discrete"
	"github.com/spf13/cobra"
)

// inferFlags are shared by the forward, viterbi and posterior commands.
type inferFlags struct {
	modelPath string
	scale     string
}

func (f *inferFlags) register(cmd *cobra.Command, withScale bool) {
	cmd.Flags().StringVar(&f.modelPath, "model", "", "Path to model file (default: model.yaml/.yml/.json in the current directory or a parent)")
	if withScale {
		cmd.Flags().StringVar(&f.scale, "scale", "log", "Arithmetic scale: log or linear")
	}
}

func (c *CLI) newForwardCommand() *cobra.Command {
	var flags inferFlags
	cmd := &cobra.Command{
		Use:   "forward [symbol...]",
		Short: "Total probability of an observation sequence (forward algorithm)",
		Example: `  hmm forward Walk Shop Clean --model weather.yaml
  echo "Walk Shop Clean" | hmm forward --scale linear`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.infer(cmd, args, flags, func(d *hmm.Decoder, obs []string, scale discrete.Scale) (any, error) {
				return d.Forward(obs, scale)
			})
		},
	}
	flags.register(cmd, true)
	return cmd
}

func (c *CLI) newViterbiCommand() *cobra.Command {
	var flags inferFlags
	cmd := &cobra.Command{
		Use:   "viterbi [symbol...]",
		Short: "Most probable hidden state path (Viterbi algorithm)",
		Example: `  hmm viterbi Walk Shop Clean --model weather.yaml
  cat days.txt | hmm viterbi -s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.infer(cmd, args, flags, func(d *hmm.Decoder, obs []string, scale discrete.Scale) (any, error) {
				return d.Viterbi(obs, scale)
			})
		},
	}
	flags.register(cmd, true)
	return cmd
}

func (c *CLI) newPosteriorCommand() *cobra.Command {
	var flags inferFlags
	cmd := &cobra.Command{
		Use:     "posterior [symbol...]",
		Short:   "Per-step state probabilities (forward-backward)",
		Example: `  hmm posterior Walk Shop Clean --model weather.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.infer(cmd, args, flags, func(d *hmm.Decoder, obs []string, _ discrete.Scale) (any, error) {
				return d.Posterior(obs)
			})
		},
	}
	flags.register(cmd, false)
	return cmd
}

func (c *CLI) infer(cmd *cobra.Command, args []string, flags inferFlags, run func(*hmm.Decoder, []string, discrete.Scale) (any, error)) error {
	scale, err := discrete.ParseScale(flags.scale)
	if err != nil {
		return err
	}

	obs := args
	if len(obs) == 0 {
		if isTerminal(c.stdin) {
			return cmd.Help()
		}
		obs, err = readObservations(c.stdin)
		if err != nil {
			return err
		}
	}

	start := time.Now()
	d, err := loadDecoder(flags.modelPath)
	if err != nil {
		return err
	}
	slog.Debug("Model loaded", "states", d.Model().NumStates(), "symbols", d.Model().NumSymbols(), "duration", time.Since(start))

	start = time.Now()
	result, err := run(d, obs, scale)
	if err != nil {
		return err
	}
	slog.Debug("Inference completed", "command", cmd.Name(), "length", len(obs), "duration", time.Since(start))

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, string(output))
	return err
}

func loadDecoder(modelPath string) (*hmm.Decoder, error) {
	if modelPath != "" {
		slog.Debug("Loading model", "path", modelPath)
		return hmm.Load(modelPath)
	}
	return hmm.New()
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func readObservations(r io.Reader) ([]string, error) {
	slog.Debug("Reading from stdin")
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	obs := strings.Fields(string(body))
	if len(obs) == 0 {
		return nil, fmt.Errorf("stdin is empty")
	}
	return obs, nil
}
