package crmApi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KotFed0t/loi_bazaar_bot/config"
	"github.com/KotFed0t/loi_bazaar_bot/internal/externalApi"
	"github.com/KotFed0t/loi_bazaar_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApi(url string) *CrmApi {
	cfg := &config.Config{}
	cfg.API.Timeout = time.Second
	cfg.API.CrmApi.WebhookUrl = url
	return New(cfg)
}

func TestNotifyLead(t *testing.T) {
	var got leadPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	lead := model.Lead{
		Reference:    "ref-1",
		ChatID:       42,
		Intent:       "Buy",
		Location:     "Aerotropolis",
		Block:        "B",
		PropertyType: "Residential",
		Size:         "300 Gaj",
		Link:         "https://wa.me/1?text=x",
	}

	err := newTestApi(srv.URL).NotifyLead(context.Background(), lead)
	require.NoError(t, err)

	assert.Equal(t, "ref-1", got.Reference)
	assert.Equal(t, "telegram", got.Source)
	assert.Equal(t, "B", got.Block)
	assert.Equal(t, "https://wa.me/1?text=x", got.Link)
}

func TestNotifyLead_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := newTestApi(srv.URL).NotifyLead(context.Background(), model.Lead{})
	assert.ErrorIs(t, err, externalApi.ErrUnexpectedStatus)
}

func TestNotifyLead_Disabled(t *testing.T) {
	api := newTestApi("")
	assert.False(t, api.Enabled())
	assert.NoError(t, api.NotifyLead(context.Background(), model.Lead{}))
}
