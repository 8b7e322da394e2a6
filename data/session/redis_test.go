package session

import (
	"context"
	"testing"
	"time"

	"github.com/KotFed0t/loi_bazaar_bot/config"
	"github.com/KotFed0t/loi_bazaar_bot/internal/model"
	"github.com/KotFed0t/loi_bazaar_bot/internal/wizard"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*RedisSession, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{SessionExpiration: time.Hour}
	return NewRedisSession(client, cfg), mr
}

func TestGetSession_NotFound(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.GetSession(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetGetSession_RoundTrip(t *testing.T) {
	s, mr := newTestSession(t)
	ctx := context.Background()

	chatSession := model.NewSession(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
	chatSession.Record.SetIntent(wizard.IntentBuy)
	chatSession.Record.SetLocation("aerotropolis", "Aerotropolis", true)
	chatSession.Record.SetBlock("B")
	chatSession.Record.Step = wizard.StepType

	require.NoError(t, s.SetSession(ctx, "42", chatSession))
	assert.True(t, mr.Exists("session:42"))
	assert.Equal(t, time.Hour, mr.TTL("session:42"))

	got, err := s.GetSession(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, chatSession.Record, got.Record)
	assert.True(t, chatSession.StartedAt.Equal(got.StartedAt))
}

func TestSession_Expires(t *testing.T) {
	s, mr := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, s.SetSession(ctx, "42", model.NewSession(time.Now())))
	mr.FastForward(2 * time.Hour)

	_, err := s.GetSession(ctx, "42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSession_Corrupted(t *testing.T) {
	s, mr := newTestSession(t)
	require.NoError(t, mr.Set("session:42", "{not json"))

	_, err := s.GetSession(context.Background(), "42")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDeleteSession(t *testing.T) {
	s, mr := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, s.SetSession(ctx, "42", model.NewSession(time.Now())))
	require.NoError(t, s.DeleteSession(ctx, "42"))
	assert.False(t, mr.Exists("session:42"))
}
