package repository_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowpoint/recruiting-backend/internal/apperrors"
	"github.com/glowpoint/recruiting-backend/internal/model"
	"github.com/glowpoint/recruiting-backend/internal/repository"
)

func TestCampaignActivateFlipsAllThenOne(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE campaigns SET is_active=false WHERE is_active=true`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE campaigns SET is_active=true WHERE id=$1`)).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := &repository.CampaignRepository{DB: db}
	require.NoError(t, repo.Activate(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignActivateUnknownIDRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE campaigns SET is_active=false WHERE is_active=true`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE campaigns SET is_active=true WHERE id=$1`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := &repository.CampaignRepository{DB: db}
	err = repo.Activate(99)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet(), "the deactivate-all write must not be committed")
}

func TestCampaignActivateErrorRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE campaigns SET is_active=false WHERE is_active=true`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	repo := &repository.CampaignRepository{DB: db}
	require.Error(t, repo.Activate(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignGetActiveReturnsNilWhenNoneActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, is_active, created_at FROM campaigns WHERE is_active=true`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active", "created_at"}))

	repo := &repository.CampaignRepository{DB: db}
	c, err := repo.GetActive()
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestCampaignDeactivateUnknownID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE campaigns SET is_active=false WHERE id=$1`)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &repository.CampaignRepository{DB: db}
	err = repo.Deactivate(5)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCampaignCreateStartsInactive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO campaigns (name, is_active) VALUES ($1, false) RETURNING id, created_at`)).
		WithArgs("Fall 2026").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, created))

	repo := &repository.CampaignRepository{DB: db}
	c := &model.Campaign{Name: "Fall 2026"}
	require.NoError(t, repo.Create(c))
	assert.Equal(t, 3, c.ID)
	assert.False(t, c.IsActive)
	assert.Equal(t, created, c.CreatedAt)
}
