package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"github.com/xhad/vecseed/internal/models"
	"github.com/xhad/vecseed/internal/types"
	cfgPkg "github.com/xhad/vecseed/pkg/config"
	"github.com/xhad/vecseed/pkg/llm"
	"github.com/xhad/vecseed/pkg/loader"
	"github.com/xhad/vecseed/pkg/seeder"
	"github.com/xhad/vecseed/pkg/store"
)

type Config struct {
	DBUrl        string
	Database     string
	Container    string
	SeedFile     string
	VectorDim    int
	BatchSize    int
	BatchDelayMS int
	OllamaURL    string
	EmbedModel   string
	Query        string
	SkipSeed     bool
	Quiet        bool
}

func main() {
	config := parseFlags()

	if err := run(config); err != nil {
		log.Fatal(err)
	}
}

func parseFlags() Config {
	var config Config
	var configPath string

	// .env is optional; real env always wins
	_ = godotenv.Load()

	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&config.DBUrl, "db-url", "", "PostgreSQL connection string")
	flag.StringVar(&config.Database, "database", "", "Database name")
	flag.StringVar(&config.Container, "container", "", "Container (table) name")
	flag.StringVar(&config.SeedFile, "file", "", "Path to the seed data file")
	flag.IntVar(&config.VectorDim, "vector-dim", 0, "Vector dimension")
	flag.IntVar(&config.BatchSize, "batch-size", 0, "Number of records uploaded per batch")
	flag.IntVar(&config.BatchDelayMS, "batch-delay", -1, "Pause between batches in milliseconds")
	flag.StringVar(&config.OllamaURL, "ollama-url", "", "Ollama server URL for query embedding")
	flag.StringVar(&config.EmbedModel, "embed-model", "", "Embedding model for -query")
	flag.StringVar(&config.Query, "query", "", "Run a similarity search after seeding")
	flag.BoolVar(&config.SkipSeed, "skip-seed", false, "Skip the upload and only query/verify")
	flag.BoolVar(&config.Quiet, "quiet", false, "Disable the progress bar")
	flag.Parse()

	cfg, err := cfgPkg.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Flags override file config when set
	if config.DBUrl == "" {
		config.DBUrl = cfg.Database.URL
	}
	if config.Database == "" {
		config.Database = cfg.Database.Name
	}
	if config.Container == "" {
		config.Container = cfg.Database.Container
	}
	if config.SeedFile == "" {
		config.SeedFile = cfg.Seed.File
	}
	if config.VectorDim == 0 {
		config.VectorDim = cfg.Database.VectorDim
	}
	if config.BatchSize == 0 {
		config.BatchSize = cfg.Database.BatchSize
	}
	if config.BatchDelayMS < 0 {
		config.BatchDelayMS = cfg.Database.BatchDelayMS
	}
	if config.OllamaURL == "" {
		config.OllamaURL = cfg.LLM.BaseURL
	}
	if config.EmbedModel == "" {
		config.EmbedModel = cfg.LLM.Model
	}
	if cfg.UI.Quiet {
		config.Quiet = true
	}

	return config
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("docs"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// envCredentials resolves the database password from the environment.
// The pipeline only sees the CredentialProvider interface; swapping in a
// managed-identity or vault-backed provider happens here.
type envCredentials struct {
	key string
}

func (c envCredentials) Password(ctx context.Context) (string, error) {
	password := os.Getenv(c.key)
	if password == "" {
		return "", fmt.Errorf("environment variable %s is not set", c.key)
	}
	return password, nil
}

func run(config Config) error {
	// Cancellation is checked between batches, so Ctrl-C stops the run
	// at the next batch boundary.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var creds types.CredentialProvider
	if os.Getenv("DATABASE_PASSWORD") != "" {
		creds = envCredentials{key: "DATABASE_PASSWORD"}
	}

	docStore, err := store.NewWithConfig(ctx, store.DocStoreConfig{
		ConnString:  config.DBUrl,
		Database:    config.Database,
		Container:   config.Container,
		VectorDim:   config.VectorDim,
		Credentials: creds,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize document store: %v", err)
	}
	defer docStore.Close()

	if !config.SkipSeed {
		color.Blue("\nSeeding %s/%s from %s\n", config.Database, config.Container, config.SeedFile)

		var bar *progressbar.ProgressBar
		onProgress := func(p models.Progress) {
			if config.Quiet {
				fmt.Println(p)
				return
			}
			if bar == nil {
				bar = getProgressBar(p.Total, " Uploading documents...")
			}
			bar.Set(p.Processed)
			bar.Describe(color.BlueString(
				" Uploading documents... (%d up, %d skip, %d err)",
				p.Uploaded, p.Skipped, p.Errors))
		}

		s := seeder.NewWithConfig(loader.New(), docStore, seeder.SeederConfig{
			FilePath:   config.SeedFile,
			BatchSize:  config.BatchSize,
			BatchDelay: time.Duration(config.BatchDelayMS) * time.Millisecond,
			OnProgress: onProgress,
		})

		summary, err := s.Run(ctx)
		if bar != nil {
			bar.Finish()
			fmt.Println()
		}
		if err != nil {
			return fmt.Errorf("seeding failed: %v", err)
		}

		color.Green("✓ Seeding complete: %s\n", summary)
		if summary.VerifyErr != nil {
			color.Yellow("! %v\n", summary.VerifyErr)
		} else {
			color.Green("✓ Container now holds %d documents\n", summary.Verified)
		}
	}

	if config.Query != "" {
		embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
			Model:   config.EmbedModel,
			BaseURL: config.OllamaURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize embedder: %v", err)
		}

		spinner := getSpinner(" Searching seeded documents...")
		embedding, err := embedder.EmbedQuery(ctx, config.Query)
		if err != nil {
			spinner.Finish()
			return fmt.Errorf("failed to embed query: %v", err)
		}

		results, err := docStore.Search(ctx, embedding, 5)
		spinner.Finish()
		if err != nil {
			return fmt.Errorf("search failed: %v", err)
		}

		color.Cyan("\nTop matches for %q:\n", config.Query)
		for i, r := range results {
			fmt.Printf("%d. %s [%s] (%s)\n", i+1, r.Title, r.Category, r.ID)
		}
	}

	return nil
}
