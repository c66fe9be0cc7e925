package main

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/baditaflorin/go_text_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_text_similarity/internal/adapters/render"
	"github.com/baditaflorin/go_text_similarity/internal/adapters/source"
	"github.com/baditaflorin/go_text_similarity/internal/adapters/store/sqlite"
	"github.com/baditaflorin/go_text_similarity/internal/config"
	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
	"github.com/baditaflorin/go_text_similarity/pkg/similarity"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dbPath     string
	threshold  float64
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "textsim",
	Short: "Compare texts for similarity",
	Long: `A command-line interface for comparing texts with edit distance,
Jaccard and cosine similarity, and for scoring a query against stored documents.`,
	SilenceUsage: true,
}

var compareCmd = &cobra.Command{
	Use:   "compare <file-a> <file-b>",
	Short: "Print the detailed similarity report of two files",
	Long:  `Print the detailed similarity report of two files. Use "-" to read one of them from stdin.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		a, err := app.read(ctx, args[0])
		if err != nil {
			return err
		}
		b, err := app.read(ctx, args[1])
		if err != nil {
			return err
		}

		report, err := app.sim.Compare(ctx, a, b)
		if err != nil {
			return fmt.Errorf("failed to compare: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return render.WriteJSON(cmd.OutOrStdout(), report)
		}
		return render.WriteText(cmd.OutOrStdout(), report)
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <query-file> <candidate-file>...",
	Short: "Score a query file against candidate files",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		query, err := app.read(ctx, args[0])
		if err != nil {
			return err
		}

		candidates := make([]domain.Candidate, 0, len(args)-1)
		for i, path := range args[1:] {
			content, err := app.read(ctx, path)
			if err != nil {
				return err
			}
			candidates = append(candidates, domain.Candidate{
				ID:      strconv.Itoa(i + 1),
				Name:    path,
				Content: content,
			})
		}

		scores, err := app.sim.CompareAgainstCandidates(ctx, query, candidates)
		if err != nil {
			return fmt.Errorf("failed to compare: %w", err)
		}
		return writeScores(cmd, scores)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
}

var configInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write the default configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.WriteSample(args[0]); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", args[0])
		return nil
	},
}

// app bundles what every command needs.
type app struct {
	sim    *similarity.Similarity
	reader *source.Reader
	logger ports.Logger
}

func newApp(cmd *cobra.Command, withStore bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("threshold") {
		cfg.Engine.Threshold = threshold
	}
	if cmd.Flags().Changed("db") || cfg.Store.Path == "" {
		cfg.Store.Path = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lg := logger.NewNopLogger()
	if verbose {
		lg, err = logger.NewWithOptions(logger.Options{Output: cmd.ErrOrStderr(), JSONFormat: cfg.Log.JSON})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	opts := []similarity.Option{
		similarity.WithLoggerAdapter(lg),
		similarity.WithThreshold(cfg.Engine.Threshold),
		similarity.WithMaxInputLength(cfg.Engine.MaxInputLength),
	}
	if cfg.Engine.OptimizedNormalize {
		opts = append(opts, similarity.WithOptimizedNormalizer())
	}
	if withStore {
		repo, err := sqlite.Open(cmd.Context(), cfg.Store.Path, lg)
		if err != nil {
			lg.Close()
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		opts = append(opts, similarity.WithRepository(repo))
	}

	sim, err := similarity.New(opts...)
	if err != nil {
		lg.Close()
		return nil, err
	}

	return &app{
		sim:    sim,
		reader: source.NewReader(lg, 0),
		logger: lg,
	}, nil
}

func (a *app) read(ctx context.Context, path string) (string, error) {
	text, _, err := a.reader.ReadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return text, nil
}

func (a *app) Close() error {
	err := a.sim.Close()
	if cerr := a.logger.Close(); err == nil {
		err = cerr
	}
	return err
}

func writeScores(cmd *cobra.Command, scores []domain.CandidateScore) error {
	if rank, _ := cmd.Flags().GetBool("rank"); rank {
		scores = similarity.Rank(scores)
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return render.WriteJSON(cmd.OutOrStdout(), scores)
	}
	return render.WriteBatchText(cmd.OutOrStdout(), scores)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "textsim.db", "Document database file path")
	rootCmd.PersistentFlags().Float64VarP(&threshold, "threshold", "t", 0.7, "Pass threshold of detailed comparisons")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr")

	compareCmd.Flags().Bool("json", false, "Output as JSON")

	batchCmd.Flags().Bool("json", false, "Output as JSON")
	batchCmd.Flags().Bool("rank", false, "Order results by descending similarity")

	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(
		compareCmd,
		batchCmd,
		docsCmd,
		configCmd,
	)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
