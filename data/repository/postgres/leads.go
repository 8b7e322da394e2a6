package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/KotFed0t/loi_bazaar_bot/data/repository"
	"github.com/KotFed0t/loi_bazaar_bot/internal/converter/dbConverter"
	"github.com/KotFed0t/loi_bazaar_bot/internal/model"
	"github.com/KotFed0t/loi_bazaar_bot/internal/model/dbModel"
	"github.com/KotFed0t/loi_bazaar_bot/utils"
	"github.com/jackc/pgx/v5/pgconn"
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *Postgres) InsertLead(ctx context.Context, lead model.Lead) (leadID int64, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.InsertLead"
	query := `
		INSERT INTO leads(reference, chat_id, username, intent, location, block, property_type, size, message, link, dt_create)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING lead_id
	`

	slog.Debug("InsertLead start", slog.String("rqID", rqID), slog.String("op", op), slog.String("reference", lead.Reference))
	defer func() {
		if err != nil {
			slog.Error("InsertLead failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("InsertLead completed", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("leadID", leadID))
		}
	}()

	err = r.db.QueryRowxContext(
		ctx,
		query,
		lead.Reference,
		lead.ChatID,
		nullString(lead.Username),
		lead.Intent,
		lead.Location,
		nullString(lead.Block),
		lead.PropertyType,
		lead.Size,
		lead.Message,
		lead.Link,
		lead.DtCreate,
	).Scan(&leadID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return 0, repository.ErrAlreadyExists
			}
		}
		return 0, err
	}

	return leadID, nil
}

// GetLeadsAfter returns up to limit leads with lead_id greater than afterID,
// oldest first.
func (r *Postgres) GetLeadsAfter(ctx context.Context, afterID int64, limit int) (leads []model.Lead, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetLeadsAfter"
	params := map[string]any{
		"afterID": afterID,
		"limit":   limit,
	}
	query := `
		SELECT lead_id, reference, chat_id, username, intent, location, block, property_type, size, message, link, dt_create
		FROM leads
		WHERE lead_id > $1
		ORDER BY lead_id
		LIMIT $2
	`

	slog.Debug("GetLeadsAfter start", slog.String("rqID", rqID), slog.String("op", op), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("GetLeadsAfter failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetLeadsAfter completed", slog.String("rqID", rqID), slog.String("op", op), slog.Int("count", len(leads)))
		}
	}()

	rows, err := r.db.QueryxContext(ctx, query, afterID, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	leads = make([]model.Lead, 0)
	for rows.Next() {
		var lead dbModel.Lead
		err = rows.StructScan(&lead)
		if err != nil {
			return nil, err
		}
		leads = append(leads, dbConverter.ConvertLead(lead))
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return leads, nil
}
