package postgres

import (
	"github.com/KotFed0t/loi_bazaar_bot/config"
	"github.com/jmoiron/sqlx"
)

type Postgres struct {
	db  *sqlx.DB
	cfg *config.Config
}

func NewPostgres(cfg *config.Config, db *sqlx.DB) *Postgres {
	return &Postgres{db: db, cfg: cfg}
}
