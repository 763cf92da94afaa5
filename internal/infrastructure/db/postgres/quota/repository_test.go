package quota

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "media-fetch-api/internal/domain/quota"
)

var quotaColumns = []string{
	"user_id", "user_name", "total_downloads", "downloads_today", "last_download_date", "joined_date",
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, domain.Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewRepository(mock)
}

func TestRepository_FetchQuota(t *testing.T) {
	mock, repo := newMockRepo(t)

	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	joined := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_stats")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(quotaColumns).AddRow(
			int64(7), "alice", 120, 12, &day, joined,
		))

	q, err := repo.FetchQuota(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, q)

	assert.Equal(t, int64(7), q.UserID)
	assert.Equal(t, "alice", q.UserName)
	assert.Equal(t, 120, q.TotalDownloads)
	assert.Equal(t, 12, q.DownloadsToday)
	require.NotNil(t, q.LastDownloadDate)
	assert.Equal(t, day, *q.LastDownloadDate)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchQuota_UnknownUser(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_stats")).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	q, err := repo.FetchQuota(context.Background(), 404)
	require.NoError(t, err, "an unseen user is not an error")
	assert.Nil(t, q)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchQuota_Error(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_stats")).
		WithArgs(int64(7)).
		WillReturnError(errors.New("db down"))

	q, err := repo.FetchQuota(context.Background(), 7)
	require.Error(t, err)
	assert.Nil(t, q)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RecordDownload(t *testing.T) {
	mock, repo := newMockRepo(t)

	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	joined := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_stats")).
		WithArgs(int64(7), "alice", day).
		WillReturnRows(pgxmock.NewRows(quotaColumns).AddRow(
			int64(7), "alice", 121, 13, &day, joined,
		))

	q, err := repo.RecordDownload(context.Background(), 7, "alice", day)
	require.NoError(t, err)
	require.NotNil(t, q)

	assert.Equal(t, 121, q.TotalDownloads)
	assert.Equal(t, 13, q.DownloadsToday)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RecordDownload_Error(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_stats")).
		WithArgs(int64(7), "alice", pgxmock.AnyArg()).
		WillReturnError(errors.New("db down"))

	q, err := repo.RecordDownload(context.Background(), 7, "alice", time.Now())
	require.Error(t, err)
	assert.Nil(t, q)

	require.NoError(t, mock.ExpectationsWereMet())
}
