package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitxp/internal/config"
	"github.com/2beens/fitxp/internal/db"
	"github.com/2beens/fitxp/internal/docstore"
	"github.com/2beens/fitxp/internal/logging"
)

var CLI struct {
	Config   string `help:"Path of the TOML config file." type:"path" default:"./config.toml"`
	Env      string `help:"Config environment [dev | prod]." default:"development"`
	LogLevel string `help:"Log level." default:"error"`

	Curve    CurveCmd    `cmd:"" help:"Print the level curve up to a prestige tier's cap."`
	Progress ProgressCmd `cmd:"" help:"Print xp progress for a level/xp pair."`
	Streak   StreakCmd   `cmd:"" help:"Compute a user's logging streak."`
	Ledger   LedgerCmd   `cmd:"" help:"List a user's most recent xp events."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("fitxpctl"),
		kong.Description("fitxp admin tool: level curve, progress, streaks, xp ledger"),
		kong.UsageOnError(),
	)

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    CLI.LogLevel,
	})

	appCtx := &Context{
		Out:       os.Stdout,
		OpenStore: openPsqlStore(CLI.Env, CLI.Config),
	}

	if err := kctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openPsqlStore(env, configPath string) func(ctx context.Context) (docstore.Store, func(), error) {
	return func(ctx context.Context) (docstore.Store, func(), error) {
		cfg, err := config.Load(env, configPath)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Storage != config.StoragePostgres {
			return nil, nil, fmt.Errorf("[%s] env uses [%s] storage, postgres needed", env, cfg.Storage)
		}

		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:   cfg.PostgresHost,
			DBPort:   cfg.PostgresPort,
			DBName:   cfg.PostgresDBName,
			MaxConns: 2,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("new db pool: %w", err)
		}
		log.Debugf("connected to db [%s]", cfg.PostgresDBName)

		return docstore.NewPsqlStore(dbPool), dbPool.Close, nil
	}
}
