package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PG_HOST", "localhost")
	t.Setenv("PG_PORT", "5432")
	t.Setenv("PG_DB_NAME", "leads")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_USER", "bot")
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "919855071280", cfg.Wizard.WhatsAppNumber)
	assert.Equal(t, 200*time.Millisecond, cfg.Wizard.AutoAdvanceDelay)
	assert.Equal(t, []string{"Hello LOI Bazaar,", "Happy : 9855071280", "Sri Ambe Realtors"}, cfg.Wizard.MessageGreeting)
	assert.Equal(t, 24*time.Hour, cfg.SessionExpiration)
	assert.Equal(t, 1000, cfg.LeadsPerReport)
	assert.False(t, cfg.GoogleDrive.Enabled())
	assert.Empty(t, cfg.API.CrmApi.WebhookUrl)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WHATSAPP_NUMBER", "15550001111")
	t.Setenv("AUTO_ADVANCE_DELAY", "1s")
	t.Setenv("MESSAGE_GREETING", "Hi,|Team")
	t.Setenv("GOOGLE_DRIVE_CREDENTIALS_FILE", "/etc/creds.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "15550001111", cfg.Wizard.WhatsAppNumber)
	assert.Equal(t, time.Second, cfg.Wizard.AutoAdvanceDelay)
	assert.Equal(t, []string{"Hi,", "Team"}, cfg.Wizard.MessageGreeting)
	assert.True(t, cfg.GoogleDrive.Enabled())
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	require.NoError(t, os.Unsetenv("TELEGRAM_TOKEN"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_LeadsPerReportMustBePositive(t *testing.T) {
	for _, v := range []string{"0", "-5"} {
		t.Run(v, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("LEADS_PER_REPORT", v)

			_, err := Load()
			assert.ErrorContains(t, err, "LEADS_PER_REPORT")
		})
	}
}
