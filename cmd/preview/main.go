package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/KotFed0t/loi_bazaar_bot/config"
	"github.com/KotFed0t/loi_bazaar_bot/internal/catalog"
	"github.com/KotFed0t/loi_bazaar_bot/internal/submission"
	"github.com/KotFed0t/loi_bazaar_bot/internal/tui"
	"github.com/KotFed0t/loi_bazaar_bot/internal/wizard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg := config.MustLoadWizard()

	// stdout belongs to the terminal UI
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		slog.Error("failed to load catalog", slog.String("err", err.Error()))
		os.Exit(1)
	}

	model := tui.New(
		cat,
		wizard.NewPacer(clockwork.NewRealClock(), cfg.AutoAdvanceDelay),
		submission.NewFormatter(cfg.WhatsAppNumber, cfg.MessageGreeting),
	)

	if _, err = tea.NewProgram(model).Run(); err != nil {
		slog.Error("preview failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	if sub := model.Submission(); sub != nil {
		fmt.Println(sub.Message)
		fmt.Println()
		fmt.Println(sub.Link)
	}
}
