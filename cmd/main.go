package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KotFed0t/loi_bazaar_bot/config"
	"github.com/KotFed0t/loi_bazaar_bot/data"
	"github.com/KotFed0t/loi_bazaar_bot/data/cache"
	"github.com/KotFed0t/loi_bazaar_bot/data/repository/postgres"
	"github.com/KotFed0t/loi_bazaar_bot/data/session"
	"github.com/KotFed0t/loi_bazaar_bot/internal/catalog"
	"github.com/KotFed0t/loi_bazaar_bot/internal/converter/telebotConverter"
	"github.com/KotFed0t/loi_bazaar_bot/internal/externalApi/cloudStorageApi/googleDriveApi"
	"github.com/KotFed0t/loi_bazaar_bot/internal/externalApi/crmApi"
	"github.com/KotFed0t/loi_bazaar_bot/internal/reportGenerator/xslsxGenerator"
	"github.com/KotFed0t/loi_bazaar_bot/internal/scheduler"
	"github.com/KotFed0t/loi_bazaar_bot/internal/service/leadService"
	"github.com/KotFed0t/loi_bazaar_bot/internal/submission"
	"github.com/KotFed0t/loi_bazaar_bot/internal/tgbot"
	"github.com/KotFed0t/loi_bazaar_bot/internal/transport/telegram"
	"github.com/KotFed0t/loi_bazaar_bot/internal/wizard"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	slog.Debug("config", slog.Any("cfg", cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgClient := data.NewPostgresClient(cfg)
	defer pgClient.Close()

	pgRepo := postgres.NewPostgres(cfg, pgClient)

	redisClient := data.NewRedisClient(cfg)
	defer redisClient.Close()

	redisCache := cache.NewRedisCache(redisClient, cfg)
	redisSession := session.NewRedisSession(redisClient, cfg)

	cat := catalog.MustLoad(cfg.Wizard.CatalogFile)
	formatter := submission.NewFormatter(cfg.Wizard.WhatsAppNumber, cfg.Wizard.MessageGreeting)
	clock := clockwork.NewRealClock()
	pacer := wizard.NewPacer(clock, cfg.Wizard.AutoAdvanceDelay)

	crmApiClient := crmApi.New(cfg)
	reportGenerator := xslsxGenerator.New()

	var cloudStorage leadService.CloudStorage
	if cfg.GoogleDrive.Enabled() {
		cloudStorage = googleDriveApi.New(ctx, cfg)
	}

	leadSrv := leadService.New(cfg, cat, formatter, pgRepo, redisSession, redisCache, crmApiClient, reportGenerator, cloudStorage, clock)

	tgController := telegram.NewController(cfg, leadSrv, pacer)

	tgBot := tgbot.New(cfg, tgController)

	sched := scheduler.New()
	if cloudStorage != nil {
		sched.NewIntervalJob("export leads report", func(ctx context.Context) error {
			link, count, err := leadSrv.ExportLeadsReport(ctx)
			if err != nil || count == 0 {
				return err
			}
			err = tgBot.SendToAdmin(ctx, telebotConverter.ReportResponse(link, count))
			if errors.Is(err, tgbot.ErrNoAdminChat) {
				slog.Info("leads report uploaded", slog.String("link", link), slog.Int("leads", count))
				return nil
			}
			return err
		}, cfg.Jobs.ExportLeadsInterval, false)
		sched.NewIntervalJob("delete old reports", leadSrv.DeleteOldReports, cfg.Jobs.DeleteOldReportsInterval, true)
	}
	sched.Start()
	defer sched.Stop()

	slog.Info("scheduler started", slog.Any("jobs", sched.Jobs()), slog.Bool("crm", crmApiClient.Enabled()))

	tgBot.Start()
	defer tgBot.Stop()

	// Waiting interruption signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-interrupt
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
