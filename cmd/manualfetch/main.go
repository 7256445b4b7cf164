// Command manualfetch runs one ingestion pass outside the scheduler.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"volleypro/ingestion/internal/client"
	"volleypro/ingestion/internal/config"
	"volleypro/ingestion/internal/logging"
	"volleypro/ingestion/internal/models"
	"volleypro/ingestion/internal/pipeline"
	"volleypro/ingestion/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "manualfetch",
		Usage: "fetch FIVB tournaments once and upsert them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "sport",
				Aliases: []string{"s"},
				Value:   "all",
				Usage:   "beach, volleyball or all",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("Manual fetch failed")
	}
}

func run(c *cli.Context) error {
	sports, err := parseSports(c.String("sport"))
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.IsDevelopment(), cfg.LogLevel)

	ctx := c.Context
	db, err := repository.NewDatabase(ctx, repository.Config{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DatabaseMaxConns,
		MinConns: cfg.DatabaseMinConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
	}

	feed := client.NewClient(cfg.FIVBBaseURL, cfg.FIVBFirstDate)

	var errs []error
	for _, sport := range sports {
		job := pipeline.NewJob(sport, feed, db.Tournaments(sport))
		if _, err := job.Run(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sport, err))
		}
	}

	return errors.Join(errs...)
}

// parseSports resolves the --sport flag
func parseSports(s string) ([]models.Sport, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return models.AllSports(), nil
	}
	sport, err := models.ParseSport(s)
	if err != nil {
		return nil, err
	}
	return []models.Sport{sport}, nil
}
