package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/KotFed0t/loi_bazaar_bot/config"
	"github.com/KotFed0t/loi_bazaar_bot/data/repository"
	"github.com/KotFed0t/loi_bazaar_bot/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgres(&config.Config{}, sqlx.NewDb(db, "sqlmock")), mock
}

func testLead() model.Lead {
	return model.Lead{
		Reference:    "0b6e1c2a-4c1f-4e0e-9d7a-0d3c0c6a8f11",
		ChatID:       42,
		Username:     "buyer",
		Intent:       "Buy",
		Location:     "Sector 101 Dhurali",
		PropertyType: "Industrial Plots",
		Size:         "550 Gaj",
		Message:      "msg",
		Link:         "https://wa.me/1?text=msg",
		DtCreate:     time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
	}
}

func TestInsertLead(t *testing.T) {
	repo, mock := newMockRepo(t)
	lead := testLead()

	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(lead.Reference, lead.ChatID, "buyer", "Buy", "Sector 101 Dhurali", nil, "Industrial Plots", "550 Gaj", "msg", lead.Link, lead.DtCreate).
		WillReturnRows(sqlmock.NewRows([]string{"lead_id"}).AddRow(int64(7)))

	id, err := repo.InsertLead(context.Background(), lead)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertLead_Duplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO leads").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.InsertLead(context.Background(), testLead())
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)
}

func TestInsertLead_Error(t *testing.T) {
	repo, mock := newMockRepo(t)
	dbErr := errors.New("connection reset")

	mock.ExpectQuery("INSERT INTO leads").WillReturnError(dbErr)

	_, err := repo.InsertLead(context.Background(), testLead())
	assert.ErrorIs(t, err, dbErr)
}

func TestGetLeadsAfter(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	columns := []string{"lead_id", "reference", "chat_id", "username", "intent", "location", "block", "property_type", "size", "message", "link", "dt_create"}
	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs(int64(5), 100).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(6), "ref-6", int64(1), nil, "Buy", "Sector 101 Dhurali", nil, "Showrooms", "60 Gaj Bay Shop", "m", "l", created).
			AddRow(int64(7), "ref-7", int64(2), "seller", "Sell", "Aerotropolis", "B", "Residential", "300 Gaj", "m", "l", created))

	leads, err := repo.GetLeadsAfter(context.Background(), 5, 100)
	require.NoError(t, err)
	require.Len(t, leads, 2)

	assert.Equal(t, int64(6), leads[0].LeadID)
	assert.Empty(t, leads[0].Username)
	assert.Empty(t, leads[0].Block)
	assert.Equal(t, "seller", leads[1].Username)
	assert.Equal(t, "B", leads[1].Block)
	assert.Equal(t, created, leads[1].DtCreate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLeadsAfter_NoLimitHint(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs(int64(0), -1).
		WillReturnRows(sqlmock.NewRows([]string{"lead_id"}))

	leads, err := repo.GetLeadsAfter(context.Background(), 0, -1)
	require.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
}
