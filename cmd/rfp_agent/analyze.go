package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/A3V1/B2B-RFP/internal/catalog"
	"github.com/A3V1/B2B-RFP/internal/config"
	"github.com/A3V1/B2B-RFP/internal/db"
	"github.com/A3V1/B2B-RFP/internal/ingestion"
	"github.com/A3V1/B2B-RFP/internal/llm"
	"github.com/A3V1/B2B-RFP/internal/observability"
	"github.com/A3V1/B2B-RFP/internal/pipeline"
	"github.com/A3V1/B2B-RFP/internal/types"
)

var (
	analyzeCatalog string
	analyzeOut     string
	analyzeConfig  string
	analyzeVerbose bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [documents...]",
	Short: "Analyze one or more RFP documents",
	Long: `Run the full analysis pipeline on local RFP documents and print the
results as JSON. Without GEMINI_API_KEY every stage runs on its deterministic
path. The catalog comes from --catalog (CSV) or DATABASE_URL. Documents can
be given as arguments or via the "document" field of a --config file.`,
	Args: cobra.ArbitraryArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeCatalog, "catalog", "", "Component catalog CSV file")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "Directory to write per-document result JSON files")
	analyzeCmd.Flags().StringVar(&analyzeConfig, "config", "", "JSON config file with defaults for flags")
	analyzeCmd.Flags().BoolVar(&analyzeVerbose, "verbose", false, "Print stage summaries while analyzing")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := analyzeSettings()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if cfg.Document == "" {
			return fmt.Errorf("no documents given: pass paths as arguments or set 'document' in --config")
		}
		args = []string{cfg.Document}
	}

	source, cleanup, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	var client llm.Client
	if cfg.APIKey != "" {
		client, err = llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return err
		}
		defer client.Close() //nolint:errcheck
	}

	orchestrator := pipeline.New(client, source)
	records := make([]*types.AnalysisRecord, len(args))
	results := make([]types.RunResult, len(args))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range args {
		g.Go(func() error {
			text, err := ingestion.ReadDocument(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			rec := orchestrator.Run(gctx, uuid.New().String(), text)
			records[i] = rec
			results[i] = pipeline.BuildResult(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	for i, path := range args {
		result := results[i]

		if cfg.Verbose {
			fmt.Printf("\n=== %s ===\n", path)
			printer.PrintSections(records[i].Sections)
			printer.PrintRequirements(records[i].Requirements)
			printer.PrintMatches(result.RequirementMatches)
			printer.PrintResult(result)
		}

		if analyzeOut != "" {
			if err := writeResult(analyzeOut, path, result); err != nil {
				return err
			}
			continue
		}

		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
	}

	return nil
}

// analyzeSettings resolves the effective configuration: flags win, then the
// --config file, then the environment.
func analyzeSettings() (config.Config, error) {
	cfg := config.Config{
		Catalog: analyzeCatalog,
		Verbose: analyzeVerbose,
	}

	if analyzeConfig != "" {
		fileCfg, err := config.LoadConfig(analyzeConfig)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
		cfg.Verbose = cfg.Verbose || fileCfg.Verbose
	}

	cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openCatalog builds the catalog source from the resolved configuration.
// Without a CSV path or database URL the pipeline runs catalog-less and
// matching reports an error per requirement.
func openCatalog(ctx context.Context, cfg config.Config) (catalog.Source, func(), error) {
	if cfg.Catalog != "" {
		components, err := catalog.LoadCSV(cfg.Catalog)
		if err != nil {
			return nil, nil, fmt.Errorf("loading catalog: %w", err)
		}
		return catalog.NewMemoryStore(components), func() {}, nil
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return database, database.Close, nil
	}

	return nil, func() {}, nil
}

func writeResult(dir, docPath string, result types.RunResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	outPath := filepath.Join(dir, base+".json")

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, encoded, 0o644)
}
