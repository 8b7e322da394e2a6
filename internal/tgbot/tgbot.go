package tgbot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KotFed0t/loi_bazaar_bot/config"
	"github.com/KotFed0t/loi_bazaar_bot/internal/model/tg/tgCallback"
	"github.com/KotFed0t/loi_bazaar_bot/internal/transport/telegram"
	customMW "github.com/KotFed0t/loi_bazaar_bot/internal/transport/telegram/middleware"
	"github.com/KotFed0t/loi_bazaar_bot/utils"
	tele "gopkg.in/telebot.v4"
	"gopkg.in/telebot.v4/middleware"
)

var ErrNoAdminChat = errors.New("admin chat is not configured")

type TGBot struct {
	bot         *tele.Bot
	ctrl        *telegram.Controller
	adminChatID int64
}

func New(cfg *config.Config, ctrl *telegram.Controller) *TGBot {
	settings := tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &tele.LongPoller{Timeout: cfg.Telegram.UpdTimeout},
	}

	b, err := tele.NewBot(settings)
	if err != nil {
		slog.Error("error while tele.NewBot", slog.String("err", err.Error()))
		panic(err)
	}

	return &TGBot{bot: b, ctrl: ctrl, adminChatID: cfg.Telegram.AdminChatID}
}

func (b *TGBot) Start() {
	b.bot.Use(middleware.Recover(), customMW.Logger())

	b.setupRoutes()

	go b.bot.Start()
	slog.Info("tgbot started!")
}

func (b *TGBot) Stop() {
	slog.Info("start stopping tgbot")
	b.bot.Stop()
	slog.Info("tgbot stopped")
}

// SendToAdmin delivers text to the admin chat, if one is configured.
func (b *TGBot) SendToAdmin(ctx context.Context, text string) error {
	if b.adminChatID == 0 {
		return ErrNoAdminChat
	}

	_, err := b.bot.Send(&tele.Chat{ID: b.adminChatID}, text)
	if err != nil {
		slog.Error("failed to send message to admin chat", slog.String("rqID", utils.GetRequestIDFromCtx(ctx)), slog.String("err", err.Error()))
	}
	return err
}

func (b *TGBot) setupRoutes() {
	b.bot.Handle("/start", b.ctrl.Start)
	b.bot.Handle("/help", b.ctrl.Help)
	b.bot.Handle("/cancel", b.ctrl.Cancel)

	b.bot.Handle(tele.OnText, b.ctrl.OnText)

	for unique, step := range tgCallback.SelectionUniques() {
		b.bot.Handle(&tele.Btn{Unique: unique}, b.ctrl.Select(step))
	}

	b.bot.Handle(&tele.Btn{Unique: tgCallback.Back}, b.ctrl.Back)
	b.bot.Handle(&tele.Btn{Unique: tgCallback.Submit}, b.ctrl.Submit)
	b.bot.Handle(&tele.Btn{Unique: tgCallback.Restart}, b.ctrl.Restart)
}
