package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/riskecrp/meridian-bot/internal/config"
	"github.com/riskecrp/meridian-bot/internal/discord"
	"github.com/riskecrp/meridian-bot/internal/dossier"
	"github.com/riskecrp/meridian-bot/internal/log"
	"github.com/riskecrp/meridian-bot/internal/store"
)

var (
	BuildVersion = "master" //nolint:gochecknoglobals
	BuildCommit  = ""       //nolint:gochecknoglobals
	BuildDate    = ""       //nolint:gochecknoglobals
	SentryDSN    = ""       //nolint:gochecknoglobals
)

type App struct {
	config    config.Config
	store     *store.Client
	factions  *dossier.FactionCache
	dossiers  *dossier.Dossiers
	bot       *discord.Bot
	sentry    *sentry.Client
	logCloser func()
}

func NewApp() (*App, error) {
	var cfgFiles []string
	if cfgFile != "" {
		cfgFiles = append(cfgFiles, cfgFile)
	}

	conf, errConfig := config.Read(cfgFiles...)
	if errConfig != nil {
		slog.Error("Failed to read config", log.ErrAttr(errConfig))

		return nil, errConfig
	}

	return &App{config: conf}, nil
}

func (app *App) Init(ctx context.Context) error {
	conf := app.config

	// Build time DSN wins, then env, then the config file.
	if SentryDSN == "" {
		if value, found := os.LookupEnv("SENTRY_DSN"); found && value != "" {
			SentryDSN = value
		} else {
			SentryDSN = conf.Log.SentryDSN
		}
	}

	app.setupSentry()

	app.logCloser = log.MustCreateLogger(ctx, conf.Log.File, log.Level(conf.Log.Level), SentryDSN != "", BuildVersion)

	slog.Info("Starting meridian-bot...",
		slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit),
		slog.String("date", BuildDate))

	schema := dossier.Schema{
		DossierSheet:    conf.Sheets.DossierSheet,
		RewardsSheet:    conf.Sheets.RewardsSheet,
		PersonColumns:   conf.Sheets.PersonColumns,
		LocationColumns: conf.Sheets.LocationColumns,
		RewardColumns:   conf.Sheets.RewardColumns,
		MaxRows:         conf.Sheets.MaxRows,
	}
	if errSchema := schema.Validate(); errSchema != nil {
		slog.Error("Invalid sheet schema", log.ErrAttr(errSchema))

		return errSchema
	}

	client, errClient := store.NewClient(ctx, conf.Sheets.SpreadsheetID,
		conf.Sheets.CredentialsFile, conf.Sheets.RequestsPerSecond)
	if errClient != nil {
		slog.Error("Cannot initialize sheets client", log.ErrAttr(errClient))

		return errClient
	}
	app.store = client

	app.factions = dossier.NewFactionCache(client, schema, conf.Cache.TTL)
	app.dossiers = dossier.NewDossiers(client, schema, app.factions)

	bot, errBot := discord.NewBot(discord.Config{
		Token:            conf.Discord.Token,
		AppID:            conf.Discord.AppID,
		GuildID:          conf.Discord.GuildID,
		ManagementRoleID: conf.Discord.ManagementRoleID,
		DossierRoleID:    conf.Discord.DossierRoleID,
		Status:           conf.Discord.Status,
	}, app.dossiers, app.factions)
	if errBot != nil {
		return errBot
	}
	app.bot = bot

	return nil
}

// Serve connects to discord and blocks until the process is signalled.
func (app *App) Serve(rootCtx context.Context) error {
	ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if errStart := app.bot.Start(ctx); errStart != nil {
		slog.Error("Failed to start bot", log.ErrAttr(errStart))

		return errStart
	}

	<-ctx.Done()

	slog.Info("Exiting...")

	return nil
}

func (app *App) Close(_ context.Context) error {
	if app.bot != nil {
		app.bot.Shutdown()
	}

	if app.sentry != nil {
		app.sentry.Flush(2 * time.Second)
	}

	if app.logCloser != nil {
		app.logCloser()
	}

	return nil
}

func (app *App) setupSentry() {
	if SentryDSN != "" {
		sentryClient, err := log.NewSentryClient(SentryDSN, true, 0.25, BuildVersion, app.config.General.Mode.String())
		if err != nil {
			slog.Error("Failed to setup sentry client")
		} else {
			slog.Info("Sentry.io support is enabled.")
			app.sentry = sentryClient
		}
	} else {
		slog.Info("Sentry.io support is disabled. To enable at runtime, set SENTRY_DSN.")
	}
}
