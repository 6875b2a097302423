package cli

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dialogkit/slotmat"
	"github.com/dialogkit/slotmat/codec"
	"github.com/dialogkit/slotmat/internal/dataset"
)

// encodeRecord is one encoded turn on the output stream.
type encodeRecord struct {
	Tokens      []string    `json:"tokens"`
	TokenMatrix [][]int     `json:"token_matrix"`
	Values      [][]float64 `json:"values,omitempty"`
	ActionMask  [][]float64 `json:"action_mask,omitempty"`
}

func (c *CLI) newEncodeCommand() *cobra.Command {
	var (
		dataDir   string
		output    string
		mask      bool
		maxValues int
	)

	cmd := &cobra.Command{
		Use:   "encode [turns-file]",
		Short: "Encode BIO-tagged turns into matrix form",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Encode the dataset's own turns file
  slotmat encode --data data/dialogs

  # Encode a specific turns file
  slotmat encode turns.jsonl --data data/dialogs

  # Pipe turns from another tool
  cat turns.jsonl | slotmat encode --data data/dialogs

  # Presence masks instead of candidate indices
  slotmat encode --data data/dialogs --mask

  # Write to a file instead of stdout
  slotmat encode --data data/dialogs -o matrices.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cdc, err := slotmat.Load(dataDir, &slotmat.Config{MaxNumValues: maxValues})
			if err != nil {
				return err
			}
			slog.Debug("Codec loaded", "slots", cdc.Slots(), "actions", cdc.Actions())

			in, closeIn, err := openTurnsInput(args, dataDir)
			if err != nil {
				return err
			}
			defer closeIn()

			out, closeOut, err := openOutput(output)
			if err != nil {
				return err
			}
			defer closeOut()

			start := time.Now()
			enc := json.NewEncoder(out)
			encoded := 0
			err = scanJSONL(in, func(lineNum int, line string) error {
				var turn dataset.Turn
				if err := json.Unmarshal([]byte(line), &turn); err != nil {
					slog.Warn("Skipping invalid turn line", "line", lineNum, "error", err)
					return nil
				}
				rec, err := encodeTurn(cdc, turn, mask)
				if err != nil {
					slog.Warn("Skipping turn", "line", lineNum, "error", err)
					return nil
				}
				encoded++
				return enc.Encode(rec)
			})
			if err != nil {
				return err
			}
			slog.Debug("Encoding completed", "turns", encoded, "duration", time.Since(start))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "data/dialogs", "Path to dataset folder")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write matrices to a file instead of stdout")
	cmd.Flags().BoolVar(&mask, "mask", false, "Mark span starts only instead of candidate indices")
	cmd.Flags().IntVar(&maxValues, "max-values", 0, "Value matrix candidate capacity (0 = longest list)")
	return cmd
}

// encodeTurn builds every matrix the turn's fields call for.
func encodeTurn(cdc *slotmat.Codec, turn dataset.Turn, mask bool) (*encodeRecord, error) {
	cands := codec.Candidates(turn.Candidates)
	rec := &encodeRecord{Tokens: turn.Tokens}

	var err error
	if mask {
		rec.TokenMatrix, err = cdc.TokenMask(turn.Tokens, turn.Tags)
	} else {
		rec.TokenMatrix, err = cdc.TokenMatrix(turn.Tokens, turn.Tags, cands)
	}
	if err != nil {
		return nil, err
	}

	if len(turn.State) > 0 {
		if rec.Values, err = cdc.ValueMatrix(turn.State, cands); err != nil {
			return nil, err
		}
	}
	if len(turn.Acts) > 0 {
		if rec.ActionMask, err = cdc.ActionMask(turn.Acts); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func isStdinTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// openTurnsInput picks the turn source: an explicit file argument, piped
// stdin, or the dataset's own turns file.
func openTurnsInput(args []string, dataDir string) (io.Reader, func(), error) {
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	}
	if !isStdinTerminal() {
		slog.Debug("Reading turns from stdin")
		return os.Stdin, func() {}, nil
	}
	path := filepath.Join(dataDir, dataset.TurnsFile)
	slog.Debug("Reading turns", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// scanJSONL feeds non-blank, non-comment lines to fn with line numbers.
func scanJSONL(r io.Reader, fn func(lineNum int, line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(lineNum, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
