package dbModel

import (
	"database/sql"
	"time"
)

type Lead struct {
	LeadID       int64          `db:"lead_id"`
	Reference    string         `db:"reference"`
	ChatID       int64          `db:"chat_id"`
	Username     sql.NullString `db:"username"`
	Intent       string         `db:"intent"`
	Location     string         `db:"location"`
	Block        sql.NullString `db:"block"`
	PropertyType string         `db:"property_type"`
	Size         string         `db:"size"`
	Message      string         `db:"message"`
	Link         string         `db:"link"`
	DtCreate     time.Time      `db:"dt_create"`
}
