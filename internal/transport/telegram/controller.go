package telegram

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KotFed0t/loi_bazaar_bot/config"
	"github.com/KotFed0t/loi_bazaar_bot/internal/converter/telebotConverter"
	"github.com/KotFed0t/loi_bazaar_bot/internal/model"
	"github.com/KotFed0t/loi_bazaar_bot/internal/model/tg/tgCallback"
	"github.com/KotFed0t/loi_bazaar_bot/internal/service"
	"github.com/KotFed0t/loi_bazaar_bot/internal/wizard"
	"github.com/KotFed0t/loi_bazaar_bot/utils"
	tele "gopkg.in/telebot.v4"
)

const (
	internalErrMsg = "Something went wrong, please try again later."
	welcomeMsg     = "👋 Welcome to LOI Bazaar!\nAnswer a few questions and we will prepare your request."
	textHintMsg    = "Please use the buttons under the message. Send /start to begin a new request."
	expiredMsg     = "Your previous request has expired, let's start again."
	staleMsg       = "This button is no longer active."
	alreadySentMsg = "This request has already been prepared. Tap \"Start over\" for a new one."
	cancelledMsg   = "Request cancelled. Send /start to begin again."
)

const helpMsg = "Use the buttons under the message to answer each question.\n\n" +
	"/start - begin a new request\n" +
	"/cancel - drop the current request\n" +
	"/help - show this message"

type LeadService interface {
	Start(ctx context.Context, chatID int64) (wizard.Screen, error)
	Cancel(ctx context.Context, chatID int64) error
	Select(ctx context.Context, chatID int64, formID string, step wizard.Step, value string) (wizard.Screen, error)
	AdvanceFrom(ctx context.Context, chatID int64, formID string, from wizard.Step) (wizard.Screen, bool, error)
	Back(ctx context.Context, chatID int64, formID string, from wizard.Step) (wizard.Screen, error)
	Submit(ctx context.Context, chatID int64, formID, username string) (model.Lead, wizard.Screen, error)
}

type Controller struct {
	leadService LeadService
	pacer       *wizard.Pacer
	adminChatID int64
}

func NewController(cfg *config.Config, leadService LeadService, pacer *wizard.Pacer) *Controller {
	return &Controller{
		leadService: leadService,
		pacer:       pacer,
		adminChatID: cfg.Telegram.AdminChatID,
	}
}

func (ctrl *Controller) Start(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	return ctrl.sendNewForm(ctx, c, welcomeMsg)
}

func (ctrl *Controller) Help(c tele.Context) error {
	return c.Send(helpMsg)
}

func (ctrl *Controller) Cancel(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	if err := ctrl.leadService.Cancel(ctx, c.Chat().ID); err != nil {
		slog.Error("got error from leadService.Cancel", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}
	return c.Send(cancelledMsg)
}

func (ctrl *Controller) OnText(c tele.Context) error {
	return c.Send(textHintMsg)
}

// Select handles the option buttons of step. The chosen option is marked
// at once; the move to the next step follows after the pacer delay by
// editing the same message.
func (ctrl *Controller) Select(step wizard.Step) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := utils.CreateCtxWithRqID(c)
		rqID := utils.GetRequestIDFromCtx(ctx)
		chatID := c.Chat().ID

		formID, value := tgCallback.ParsePayload(c.Callback().Data)
		screen, err := ctrl.leadService.Select(ctx, chatID, formID, step, value)
		if err != nil {
			return ctrl.respondErr(ctx, c, err)
		}
		_ = c.Respond()

		ctrl.edit(ctx, c, screen)

		bot, msg := c.Bot(), c.Message()
		ctrl.pacer.After(func() {
			next, moved, err := ctrl.leadService.AdvanceFrom(ctx, chatID, formID, step)
			if err != nil {
				slog.Error("got error from leadService.AdvanceFrom", slog.String("rqID", rqID), slog.String("err", err.Error()))
				return
			}
			if !moved {
				slog.Debug("delayed advance dropped", slog.String("rqID", rqID), slog.String("from", step.String()))
				return
			}

			text, markup := telebotConverter.ScreenResponse(next)
			if _, err = bot.Edit(msg, text, markup); err != nil {
				slog.Error("failed to edit message on advance", slog.String("rqID", rqID), slog.String("err", err.Error()))
			}
		})

		return nil
	}
}

func (ctrl *Controller) Back(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)

	formID, from, err := tgCallback.ParseStepPayload(c.Callback().Data)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: staleMsg})
	}

	screen, err := ctrl.leadService.Back(ctx, c.Chat().ID, formID, from)
	if err != nil {
		return ctrl.respondErr(ctx, c, err)
	}
	_ = c.Respond()

	ctrl.edit(ctx, c, screen)
	return nil
}

func (ctrl *Controller) Submit(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	var username string
	if c.Sender() != nil {
		username = c.Sender().Username
	}

	lead, _, err := ctrl.leadService.Submit(ctx, c.Chat().ID, c.Callback().Data, username)
	if err != nil {
		if errors.Is(err, service.ErrNotOnSummary) {
			return c.Respond(&tele.CallbackResponse{Text: staleMsg})
		}
		return ctrl.respondErr(ctx, c, err)
	}
	_ = c.Respond()

	text, markup := telebotConverter.SubmittedResponse(lead)
	if err = c.Edit(text, markup); err != nil {
		slog.Error("failed to edit message on submit", slog.String("rqID", rqID), slog.String("err", err.Error()))
		if err = c.Send(text, markup); err != nil {
			return err
		}
	}

	if ctrl.adminChatID != 0 {
		_, err = c.Bot().Send(&tele.Chat{ID: ctrl.adminChatID}, telebotConverter.LeadNotification(lead))
		if err != nil {
			slog.Error("failed to notify admin chat", slog.String("rqID", rqID), slog.String("err", err.Error()))
		}
	}

	return nil
}

// Restart opens a new form in a new message, leaving the old one with its
// WhatsApp link in place.
func (ctrl *Controller) Restart(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	_ = c.Respond()
	return ctrl.sendNewForm(ctx, c, "")
}

func (ctrl *Controller) sendNewForm(ctx context.Context, c tele.Context, intro string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)

	screen, err := ctrl.leadService.Start(ctx, c.Chat().ID)
	if err != nil {
		slog.Error("got error from leadService.Start", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	text, markup := telebotConverter.ScreenResponse(screen)
	if intro != "" {
		text = intro + "\n\n" + text
	}
	return c.Send(text, markup)
}

func (ctrl *Controller) edit(ctx context.Context, c tele.Context, screen wizard.Screen) {
	text, markup := telebotConverter.ScreenResponse(screen)
	err := c.Edit(text, markup)
	if err != nil && !errors.Is(err, tele.ErrSameMessageContent) {
		slog.Error("failed to edit message", slog.String("rqID", utils.GetRequestIDFromCtx(ctx)), slog.String("err", err.Error()))
	}
}

// respondErr answers a callback that the service refused.
func (ctrl *Controller) respondErr(ctx context.Context, c tele.Context, err error) error {
	rqID := utils.GetRequestIDFromCtx(ctx)

	switch {
	case errors.Is(err, service.ErrStaleAction), errors.Is(err, wizard.ErrUnknownOption):
		return c.Respond(&tele.CallbackResponse{Text: staleMsg})
	case errors.Is(err, service.ErrAlreadySent):
		return c.Respond(&tele.CallbackResponse{Text: alreadySentMsg})
	case errors.Is(err, service.ErrSessionExpired):
		_ = c.Respond()
		return ctrl.sendNewForm(ctx, c, expiredMsg)
	default:
		slog.Error("callback failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		_ = c.Respond()
		return c.Send(internalErrMsg)
	}
}
