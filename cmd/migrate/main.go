// Command migrate creates or resets the tournament tables.
package main

import (
	"errors"
	"fmt"
	"os"

	"volleypro/ingestion/internal/config"
	"volleypro/ingestion/internal/logging"
	"volleypro/ingestion/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "manage the tournament schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "create missing tables, keeping existing rows",
				Action: func(c *cli.Context) error {
					return withDatabase(c, func(db *repository.Database) error {
						return db.Migrate(c.Context)
					})
				},
			},
			{
				Name:  "reset",
				Usage: "drop and recreate the tournament tables",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Usage: "confirm that all stored tournaments are deleted"},
				},
				Action: func(c *cli.Context) error {
					if !c.Bool("yes") {
						return errors.New("reset deletes every stored tournament; rerun with --yes")
					}
					return withDatabase(c, func(db *repository.Database) error {
						return db.Reset(c.Context)
					})
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}

func withDatabase(c *cli.Context, fn func(db *repository.Database) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.IsDevelopment(), cfg.LogLevel)

	db, err := repository.NewDatabase(c.Context, repository.Config{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DatabaseMaxConns,
		MinConns: cfg.DatabaseMinConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return fn(db)
}
