// Package cli provides the command-line interface for contentpipe.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jdelaney/contentpipe-go/internal/agent"
	"github.com/jdelaney/contentpipe-go/internal/config"
	"github.com/jdelaney/contentpipe-go/internal/db"
	"github.com/jdelaney/contentpipe-go/internal/ingest"
	"github.com/jdelaney/contentpipe-go/internal/llm"
	"github.com/jdelaney/contentpipe-go/internal/metrics"
	"github.com/jdelaney/contentpipe-go/internal/models"
	"github.com/jdelaney/contentpipe-go/internal/pipeline"
	"github.com/jdelaney/contentpipe-go/internal/schema"
	"github.com/jdelaney/contentpipe-go/internal/starter"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose  bool
	inMemory bool
	clientID string

	// Global config and wiring
	cfg      config.Config
	logger   *slog.Logger
	logClose func() error
	dbClient *db.Client
	store    dataStore
	runner   agent.Runner
	stats    *metrics.Collector
)

// dataStore is the full persistence surface the CLI commands use. Both the
// SurrealDB store and the in-memory store satisfy it.
type dataStore interface {
	pipeline.Store

	CreatePiece(ctx context.Context, piece *models.Piece) error
	ListRepurposeItems(ctx context.Context, pieceID string) ([]models.RepurposeItem, error)
	ListSeries(ctx context.Context, clientID string) ([]models.ContentSeries, error)
	GetCalendar(ctx context.Context, clientID string) (*models.CalendarPlan, error)
	Stats(ctx context.Context, clientID string) (*models.PipelineStats, error)
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "contentpipe",
	Short: "Content repurposing pipeline for executive coaches",
	Long: `Contentpipe turns long-form coaching content (podcast transcripts,
blog posts, workshop notes) into a month of platform-ready posts.

A chain of agents tags each piece, scores its repurposing potential,
drafts platform variants, groups pieces into series, and lays out a
4-week posting calendar.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB connection for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, logClose = config.SetupLogger(cfg.LogFile, level)

		stats = metrics.NewCollector()

		if inMemory {
			store = db.NewMemoryStore()
		} else {
			ctx := context.Background()
			dbCfg := db.Config{
				URL:       cfg.SurrealDBURL,
				Namespace: cfg.SurrealDBNamespace,
				Database:  cfg.SurrealDBDatabase,
				Username:  cfg.SurrealDBUser,
				Password:  cfg.SurrealDBPass,
			}

			var err error
			dbClient, err = db.NewClient(ctx, dbCfg, logger)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			if err := dbClient.InitSchema(ctx); err != nil {
				return fmt.Errorf("initialize schema: %w", err)
			}
			store = db.NewStore(dbClient)
		}

		return initRunner(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
		if logClose != nil {
			_ = logClose()
		}
	},
}

// initRunner selects the agent backend from config. The mock provider needs
// no credentials and produces deterministic output.
func initRunner(ctx context.Context) error {
	if cfg.LLMProvider == config.ProviderMock {
		runner = agent.MockRunner{}
		return nil
	}

	model, err := llm.NewModel(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init model: %w", err)
	}
	runner = agent.NewModelRunner(model, schema.NewRegistry(),
		agent.WithMaxRetries(cfg.MaxRetries),
		agent.WithLogger(logger),
		agent.WithMetrics(stats),
	)
	return nil
}

// newPipeline builds a pipeline service over the global wiring. An optional
// event sink feeds the progress UI.
func newPipeline(emit pipeline.EmitFunc) *pipeline.Service {
	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	if emit != nil {
		opts = append(opts, pipeline.WithEvents(emit))
	}
	return pipeline.NewService(store, runner, opts...)
}

func newIngester() *ingest.Service {
	return ingest.NewService(store, logger)
}

func newStarter() *starter.Service {
	return starter.NewService(runner, starter.WithLogger(logger))
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&inMemory, "memory", false, "use an in-memory store instead of SurrealDB")
	rootCmd.PersistentFlags().StringVarP(&clientID, "client", "c", "", "client scope (defaults to the shared scope)")

	// Add subcommands
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(piecesCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(starterCmd)
	rootCmd.AddCommand(statsCmd)
}
