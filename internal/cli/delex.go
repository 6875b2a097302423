package cli

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dialogkit/slotmat/bio"
	"github.com/dialogkit/slotmat/internal/dataset"
)

func (c *CLI) newDelexCommand() *cobra.Command {
	var (
		output string
		text   bool
	)

	cmd := &cobra.Command{
		Use:   "delex [turns-file]",
		Short: "Replace slot-tagged tokens with #slot placeholders",
		Args:  cobra.MaximumNArgs(1),
		Example: `  slotmat delex turns.jsonl
  cat turns.jsonl | slotmat delex --text`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			enc := json.NewEncoder(out)
			return scanJSONL(in, func(lineNum int, line string) error {
				var turn dataset.Turn
				if err := json.Unmarshal([]byte(line), &turn); err != nil {
					slog.Warn("Skipping invalid turn line", "line", lineNum, "error", err)
					return nil
				}
				tokens, err := bio.Delexicalize(turn.Tokens, turn.Tags)
				if err != nil {
					slog.Warn("Skipping turn", "line", lineNum, "error", err)
					return nil
				}
				if text {
					_, err := out.Write([]byte(strings.Join(tokens, " ") + "\n"))
					return err
				}
				return enc.Encode(map[string][]string{"tokens": tokens})
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&text, "text", false, "Emit plain space-joined utterances instead of JSON")
	return cmd
}
