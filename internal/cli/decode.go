package cli

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dialogkit/slotmat"
	"github.com/dialogkit/slotmat/codec"
)

// decodeRequest is one value-index vector on the input stream, with an
// optional per-turn candidate override.
type decodeRequest struct {
	Values     []int               `json:"values"`
	Candidates map[string][]string `json:"candidates,omitempty"`
}

type decodeRecord struct {
	State map[string]string `json:"state"`
}

func (c *CLI) newDecodeCommand() *cobra.Command {
	var (
		dataDir string
		output  string
		exclude []string
	)

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode value-index vectors back into slot states",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Decode vectors from a file
  slotmat decode vectors.jsonl --data data/dialogs

  # Pipe vectors from a model run
  cat vectors.jsonl | slotmat decode --data data/dialogs

  # Drop the "none" placeholder from decoded states
  slotmat decode vectors.jsonl --data data/dialogs --exclude none`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cdc, err := slotmat.Load(dataDir, &slotmat.Config{ExcludeValues: exclude})
			if err != nil {
				return err
			}

			if len(args) == 0 && isStdinTerminal() {
				return cmd.Help()
			}
			in := os.Stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			out, closeOut, err := openOutput(output)
			if err != nil {
				return err
			}
			defer closeOut()

			start := time.Now()
			enc := json.NewEncoder(out)
			decoded := 0
			err = scanJSONL(in, func(lineNum int, line string) error {
				var req decodeRequest
				if err := json.Unmarshal([]byte(line), &req); err != nil {
					slog.Warn("Skipping invalid line", "line", lineNum, "error", err)
					return nil
				}
				state, err := cdc.DecodeState(req.Values, codec.Candidates(req.Candidates))
				if err != nil {
					slog.Warn("Skipping vector", "line", lineNum, "error", err)
					return nil
				}
				decoded++
				return enc.Encode(decodeRecord{State: state})
			})
			if err != nil {
				return err
			}
			slog.Debug("Decoding completed", "vectors", decoded, "duration", time.Since(start))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "data/dialogs", "Path to dataset folder")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write states to a file instead of stdout")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Values to drop from decoded states")
	return cmd
}
