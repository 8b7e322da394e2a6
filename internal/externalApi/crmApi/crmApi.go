package crmApi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KotFed0t/loi_bazaar_bot/config"
	"github.com/KotFed0t/loi_bazaar_bot/internal/externalApi"
	"github.com/KotFed0t/loi_bazaar_bot/internal/model"
	"github.com/KotFed0t/loi_bazaar_bot/utils"
	"github.com/go-resty/resty/v2"
)

type leadPayload struct {
	Reference    string    `json:"reference"`
	Source       string    `json:"source"`
	ChatID       int64     `json:"chat_id"`
	Username     string    `json:"username,omitempty"`
	Intent       string    `json:"intent"`
	Location     string    `json:"location"`
	Block        string    `json:"block,omitempty"`
	PropertyType string    `json:"property_type"`
	Size         string    `json:"size"`
	Link         string    `json:"whatsapp_link"`
	CreatedAt    time.Time `json:"created_at"`
}

// CrmApi posts submitted leads to an external webhook. With no webhook
// configured every call is a no-op.
type CrmApi struct {
	client     *resty.Client
	webhookUrl string
}

func New(cfg *config.Config) *CrmApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &CrmApi{client: client, webhookUrl: cfg.API.CrmApi.WebhookUrl}
}

func (a *CrmApi) Enabled() bool {
	return a.webhookUrl != ""
}

func (a *CrmApi) NotifyLead(ctx context.Context, lead model.Lead) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "CrmApi.NotifyLead"

	if !a.Enabled() {
		slog.Debug("crm webhook is not configured, skip", slog.String("rqID", rqID), slog.String("op", op))
		return nil
	}

	slog.Debug("NotifyLead start", slog.String("rqID", rqID), slog.String("op", op), slog.String("reference", lead.Reference))

	payload := leadPayload{
		Reference:    lead.Reference,
		Source:       "telegram",
		ChatID:       lead.ChatID,
		Username:     lead.Username,
		Intent:       lead.Intent,
		Location:     lead.Location,
		Block:        lead.Block,
		PropertyType: lead.PropertyType,
		Size:         lead.Size,
		Link:         lead.Link,
		CreatedAt:    lead.DtCreate,
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Request-ID", rqID).
		SetBody(payload).
		Post(a.webhookUrl)
	if err != nil {
		slog.Error("error while dialing crm webhook", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	if resp.IsError() {
		slog.Error(
			"crm webhook responded with error",
			slog.String("rqID", rqID),
			slog.String("op", op),
			slog.Int("status", resp.StatusCode()),
			slog.String("body", resp.String()),
		)
		return fmt.Errorf("%w: %d", externalApi.ErrUnexpectedStatus, resp.StatusCode())
	}

	slog.Debug("NotifyLead completed", slog.String("rqID", rqID), slog.String("op", op))

	return nil
}
