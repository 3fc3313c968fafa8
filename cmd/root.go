package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/offsiteio/tripsim/internal/cache"
	"github.com/offsiteio/tripsim/internal/cloudwriter"
	"github.com/offsiteio/tripsim/internal/export"
	"github.com/offsiteio/tripsim/internal/factories"
	"github.com/offsiteio/tripsim/internal/models"
	"github.com/offsiteio/tripsim/internal/repositories/postgres"
	"github.com/offsiteio/tripsim/internal/simulator"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tripsim",
	Short: "Simulates and ranks group trip options by cost and convenience",
	Long: `tripsim enumerates every candidate (location, date window) option for a
group trip, prices a round trip for each attendee through a cached pricing
provider, and ranks the options by a transparent cost/convenience score.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		return runSimulation(cmd, cfg)
	},
}

func runSimulation(cmd *cobra.Command, cfg *models.Config) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store cache.QuoteStore
	var pool *pgxpool.Pool
	if cfg.DatabaseEnabled {
		pool, err = pgxpool.New(ctx, cfg.Database.URL())
		if err != nil {
			return fmt.Errorf("error connecting to database: %w", err)
		}
		defer pool.Close()
		store = postgres.NewQuoteStore(pool)
	} else {
		store = cache.NewMemoryStore()
	}

	sim, err := simulator.New(cfg, store)
	if err != nil {
		return err
	}

	event, attendees, err := loadInputs(ctx, cmd, pool)
	if err != nil {
		return err
	}

	total := len(simulator.Enumerate(event)) * len(attendees)
	bar := progressbar.Default(int64(total), "pricing itineraries")
	sim.Progress = func(done, total int) { _ = bar.Set(done) }

	result, err := sim.Simulate(ctx, event, attendees)
	if err != nil {
		return err
	}
	_ = bar.Finish()

	dest, err := simulator.DetermineOutputDestination(ctx, cfg)
	if err != nil {
		return err
	}
	defer dest.Close()
	if err := simulator.PublishResult(dest, cfg, result); err != nil {
		return err
	}

	if pool != nil {
		if err := postgres.NewResultRepository(pool).Save(ctx, result); err != nil {
			logrus.WithError(err).Warn("failed to persist simulation result")
		}
	}

	if path, _ := cmd.Flags().GetString("export-csv"); path != "" {
		if err := export.WriteFinanceCSVFile(path, result); err != nil {
			return fmt.Errorf("finance export failed: %w", err)
		}
	}
	if path, _ := cmd.Flags().GetString("export-parquet"); path != "" {
		exporter := export.NewParquetExporter()
		if cfg.OutputDestination == "s3" {
			factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region)
			if err != nil {
				return fmt.Errorf("parquet export failed: %w", err)
			}
			exporter = export.NewCloudParquetExporter(factory, cfg.CloudStorage.BucketName)
		}
		if err := exporter.Export(ctx, path, result); err != nil {
			return fmt.Errorf("parquet export failed: %w", err)
		}
	}

	return nil
}

// loadInputs reads the event and attendees from the database when an
// event id is given, otherwise it generates demo data.
func loadInputs(ctx context.Context, cmd *cobra.Command, pool *pgxpool.Pool) (models.Event, []models.Attendee, error) {
	eventID, _ := cmd.Flags().GetString("event-id")
	if eventID != "" {
		if pool == nil {
			return models.Event{}, nil, fmt.Errorf("--event-id requires database_enabled")
		}
		event, err := postgres.NewEventRepository(pool).Get(ctx, eventID)
		if err != nil {
			return models.Event{}, nil, fmt.Errorf("error loading event %s: %w", eventID, err)
		}
		attendees, err := postgres.NewAttendeeRepository(pool).GetByEvent(ctx, eventID)
		if err != nil {
			return models.Event{}, nil, fmt.Errorf("error loading attendees for %s: %w", eventID, err)
		}
		return *event, attendees, nil
	}

	attendeeCount, _ := cmd.Flags().GetInt("demo-attendees")
	event := (&factories.EventFactory{}).CreateEvent()
	attendees := (&factories.AttendeeFactory{}).CreateAttendees(attendeeCount)
	return event, attendees, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.Flags().String("event-id", "", "Simulate a stored event instead of demo data")
	rootCmd.Flags().Int("demo-attendees", 8, "Number of demo attendees when no event id is given")
	rootCmd.Flags().String("pricing-provider", "mock", "Pricing provider (mock or http)")
	rootCmd.Flags().String("fallback-provider", "mock", "Fallback provider (mock, http or none)")
	rootCmd.Flags().Bool("price-volatility", false, "Perturb mock prices by a seeded volatility factor")
	rootCmd.Flags().Int("cache-capacity", 1000, "In-memory price cache capacity")
	rootCmd.Flags().Duration("provider-timeout", 0, "Bounded timeout per provider call")
	rootCmd.Flags().Int("workers", 8, "Resolution worker pool size")
	rootCmd.Flags().Bool("allow-partial-options", false, "Keep options with unresolved attendees")
	rootCmd.Flags().Bool("kafka-enabled", false, "Publish results to Kafka")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().String("output-path", "", "Directory for JSON output (console if empty)")
	rootCmd.Flags().String("export-csv", "", "Write a finance CSV export to this path")
	rootCmd.Flags().String("export-parquet", "", "Write a parquet itinerary export to this path")

	// flag names are dashed, config keys use underscores
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		viper.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
