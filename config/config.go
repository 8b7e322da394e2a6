package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	Postgres          Postgres
	Telegram          Telegram
	Redis             Redis
	API               API
	Wizard            Wizard
	Jobs              Jobs
	GoogleDrive       GoogleDrive
	SessionExpiration time.Duration `env:"SESSION_EXPIRATION" envDefault:"24h"`
	LeadsPerReport    int           `env:"LEADS_PER_REPORT" envDefault:"1000"`
}

type Postgres struct {
	Host            string `env:"PG_HOST"`
	Port            int    `env:"PG_PORT"`
	DbName          string `env:"PG_DB_NAME"`
	Password        string `env:"PG_PASSWORD"`
	User            string `env:"PG_USER"`
	SSLMode         string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxOpenConns    int    `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	ConnMaxLifetime int    `env:"PG_CONN_MAX_LIFETIME" envDefault:"300"`
	MaxIdleConns    int    `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxIdleTime int    `env:"PG_CONN_MAX_IDLE_TIME" envDefault:"60"`
	MigrationDir    string `env:"PG_MIGRATION_DIR" envDefault:"migrations"`
}

type Telegram struct {
	Token       string        `env:"TELEGRAM_TOKEN"`
	UpdTimeout  time.Duration `env:"TELEGRAM_UPD_TIMEOUT" envDefault:"10s"`
	AdminChatID int64         `env:"TELEGRAM_ADMIN_CHAT_ID" envDefault:"0"`
}

type Redis struct {
	Host     string `env:"REDIS_HOST"`
	Port     int    `env:"REDIS_PORT"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type API struct {
	Debug   bool          `env:"API_DEBUG" envDefault:"false"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	CrmApi  CrmApi
}

// CrmApi is an optional webhook receiving every submitted lead.
type CrmApi struct {
	WebhookUrl string `env:"CRM_WEBHOOK_URL" envDefault:""`
}

// Wizard holds everything the lead form needs and nothing else, so the
// terminal preview can load it without database or telegram settings.
type Wizard struct {
	WhatsAppNumber   string        `env:"WHATSAPP_NUMBER" envDefault:"919855071280"`
	AutoAdvanceDelay time.Duration `env:"AUTO_ADVANCE_DELAY" envDefault:"200ms"`
	MessageGreeting  []string      `env:"MESSAGE_GREETING" envSeparator:"|" envDefault:"Hello LOI Bazaar,|Happy : 9855071280|Sri Ambe Realtors"`
	CatalogFile      string        `env:"CATALOG_FILE" envDefault:""`
}

type Jobs struct {
	ExportLeadsInterval      time.Duration `env:"EXPORT_LEADS_JOB_INTERVAL" envDefault:"24h"`
	DeleteOldReportsInterval time.Duration `env:"DELETE_OLD_REPORTS_JOB_INTERVAL" envDefault:"24h"`
}

type GoogleDrive struct {
	CredentialsFile string        `env:"GOOGLE_DRIVE_CREDENTIALS_FILE" envDefault:""`
	FolderID        string        `env:"GOOGLE_DRIVE_FOLDER_ID" envDefault:""`
	FileTTL         time.Duration `env:"GOOGLE_DRIVE_FILE_TTL" envDefault:"720h"`
}

// Enabled reports whether report uploads are configured.
func (g GoogleDrive) Enabled() bool {
	return g.CredentialsFile != ""
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.LeadsPerReport <= 0 {
		return nil, fmt.Errorf("LEADS_PER_REPORT must be positive, got %d", cfg.LeadsPerReport)
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}

// MustLoadWizard parses only the wizard section.
func MustLoadWizard() Wizard {
	_ = godotenv.Load(".env")

	var w Wizard
	if err := env.ParseWithOptions(&w, env.Options{RequiredIfNoDef: true}); err != nil {
		log.Fatalf("parse wizard config error: %s", err)
	}

	return w
}
