package harvest

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dialogkit/slotmat/internal/dataset"
)

func (c *CLI) newHarvestCommand() *cobra.Command {
	var (
		seedFile  string
		output    string
		timeout   int
		delay     int
		userAgent string
		maxPages  int
	)

	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Scrape candidate values from seed URLs into a values file",
		Example: `  slotmat-harvest harvest --seeds seeds.jsonl --output values.json
  slotmat-harvest harvest --seeds seeds.jsonl --output values.json --max-pages 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds, err := loadSeeds(seedFile)
			if err != nil {
				return fmt.Errorf("load seeds: %w", err)
			}
			slog.Info("Loaded seeds", "count", len(seeds))

			values, err := loadValues(output)
			if err != nil {
				return fmt.Errorf("load values: %w", err)
			}

			client := newHTTPClient(timeout)
			wait := newPoliteness(time.Duration(delay) * time.Millisecond)

			for _, seed := range seeds {
				pages, err := harvestSeed(client, seed, values, harvestOpts{
					userAgent: userAgent,
					maxPages:  maxPages,
					wait:      wait,
				})
				if err != nil {
					slog.Warn("Failed to harvest seed", "url", seed.URL, "slot", seed.Slot, "error", err)
					continue
				}
				slog.Info("Harvested seed", "url", seed.URL, "slot", seed.Slot, "pages", pages, "values", len(values[seed.Slot]))
			}

			if err := saveValues(output, values); err != nil {
				return fmt.Errorf("save values: %w", err)
			}
			slog.Info("Harvest complete", "slots", len(values))
			return nil
		},
	}

	cmd.Flags().StringVar(&seedFile, "seeds", "", "Path to seed file (JSONL)")
	cmd.Flags().StringVar(&output, "output", "values.json", "Output values file")
	cmd.Flags().IntVar(&timeout, "timeout", 30, "HTTP timeout in seconds")
	cmd.Flags().IntVar(&delay, "delay", 1000, "Delay between requests to one domain in ms")
	cmd.Flags().StringVar(&userAgent, "user-agent", "Mozilla/5.0 (compatible; slotmat-harvest/1.0)", "User-Agent header")
	cmd.Flags().IntVar(&maxPages, "max-pages", 10, "Max pages to follow per seed")
	_ = cmd.MarkFlagRequired("seeds")
	return cmd
}

func (c *CLI) newMergeCommand() *cobra.Command {
	var (
		valuesFile string
		dataDir    string
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge a harvested values file into the dataset ontology",
		Example: `  slotmat-harvest merge --values values.json --data data/dialogs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := loadValues(valuesFile)
			if err != nil {
				return fmt.Errorf("load values: %w", err)
			}
			if len(values) == 0 {
				return fmt.Errorf("no values in %s", valuesFile)
			}

			path := filepath.Join(dataDir, dataset.OntologyFile)
			ont, err := loadOntology(path)
			if err != nil {
				return fmt.Errorf("load ontology: %w", err)
			}

			added := MergeOntology(ont, values)
			if err := saveOntology(path, ont); err != nil {
				return fmt.Errorf("save ontology: %w", err)
			}
			slog.Info("Merged values", "added", added, "slots", len(ont.Slots), "path", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&valuesFile, "values", "values.json", "Harvested values file")
	cmd.Flags().StringVar(&dataDir, "data", "data/dialogs", "Dataset directory")
	return cmd
}

func (c *CLI) newGenSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-seeds",
		Short: "Expand seed templates with a {page} placeholder",
		Example: `  slotmat-harvest gen-seeds --template templates.jsonl --pages 5 --output seeds.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			templateFile, _ := cmd.Flags().GetString("template")
			output, _ := cmd.Flags().GetString("output")
			pages, _ := cmd.Flags().GetInt("pages")

			templates, err := loadSeeds(templateFile)
			if err != nil {
				return fmt.Errorf("load templates: %w", err)
			}

			seeds := ExpandTemplates(templates, pages)
			if err := writeSeeds(output, seeds); err != nil {
				return err
			}

			fmt.Printf("Generated %d seed entries to %s\n", len(seeds), output)
			return nil
		},
	}
	cmd.Flags().String("template", "", "Seed template file (JSONL, {page} in URLs)")
	cmd.Flags().String("output", "seeds.jsonl", "Output seed file")
	cmd.Flags().Int("pages", 1, "Number of pages to expand each template to")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}
