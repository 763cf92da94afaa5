package quota

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"media-fetch-api/internal/domain/quota"
	"media-fetch-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) quota.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchQuota(ctx context.Context, userID int64) (*quota.Quota, error) {
	q := new(Quota)
	err := r.db.QueryRow(ctx, SelectQuota, userID).Scan(
		&q.UserID,
		&q.UserName,
		&q.TotalDownloads,
		&q.DownloadsToday,
		&q.LastDownloadDate,
		&q.JoinedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(q), err
}

func (r *Repository) RecordDownload(ctx context.Context, userID int64, userName string, day time.Time) (*quota.Quota, error) {
	q := new(Quota)
	err := r.db.QueryRow(ctx, UpsertRecordDownload, userID, userName, day).Scan(
		&q.UserID,
		&q.UserName,
		&q.TotalDownloads,
		&q.DownloadsToday,
		&q.LastDownloadDate,
		&q.JoinedDate,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(q), err
}
