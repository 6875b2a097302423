package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dialogkit/slotmat"
)

func (c *CLI) newCheckCommand() *cobra.Command {
	var (
		dataDir   string
		maxValues int
		exclude   []string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a dataset against its ontology",
		Example: `  slotmat check --data data/dialogs
  slotmat check --data data/dialogs --exclude none`,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Info("Checking dataset", "data", dataDir)
			start := time.Now()
			result, err := slotmat.Check(dataDir, &slotmat.CheckConfig{
				Codec: &slotmat.Config{
					MaxNumValues:  maxValues,
					ExcludeValues: exclude,
				},
			})
			if err != nil {
				return err
			}
			slog.Debug("Check completed", "duration", time.Since(start))

			fmt.Println(result)
			if result.Failed() {
				return fmt.Errorf("dataset check failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "data/dialogs", "Path to dataset folder")
	cmd.Flags().IntVar(&maxValues, "max-values", 0, "Value matrix candidate capacity (0 = longest list)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", []string{"none"}, "State values treated as absent in the round trip")
	return cmd
}
