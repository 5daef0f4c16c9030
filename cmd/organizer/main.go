// Package main is the entry point for the study organizer.
//
// USAGE:
//
//	organizer [serve] [flags]   start the web server (default)
//	organizer initdb  [flags]   create the schema and seed data, then exit
//
// Flags, environment variables and an optional YAML file are merged by
// internal/config; see `organizer --help`.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/sakif/study-organizer/internal/config"
	"github.com/sakif/study-organizer/internal/logging"
	sqliteRepo "github.com/sakif/study-organizer/internal/repository/sqlite"
	"github.com/sakif/study-organizer/internal/server"
	"github.com/sakif/study-organizer/internal/service"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "organizer:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("organizer", pflag.ContinueOnError)
	config.RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		return err
	}

	command := "serve"
	if flags.NArg() > 0 {
		command = flags.Arg(0)
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Log, stdout)
	if err != nil {
		return err
	}
	defer closer.Close()

	switch command {
	case "serve":
		return serve(cfg, logger)
	case "initdb":
		return initDB(cfg, logger, stdout)
	default:
		return fmt.Errorf("unknown command %q (want serve or initdb)", command)
	}
}

// serve seeds the database and blocks until the server is shut down.
func serve(cfg *config.Config, logger *slog.Logger) error {
	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	return srv.Start()
}

func initDB(cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	db, err := sqliteRepo.New(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := service.Initialize(context.Background(), db, cfg.Seed.Subjects, logger); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "DB initialized.")
	return nil
}
