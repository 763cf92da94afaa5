package download

import (
	"context"
	"time"

	"media-fetch-api/internal/domain/download"
	"media-fetch-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) download.Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateRecord(ctx context.Context, req *download.Record) (*download.Record, error) {
	rec := new(Record)

	err := r.db.QueryRow(
		ctx,
		InsertRecord,
		req.UserID, req.UserName, req.Platform, req.URL, req.Filename, req.FilePath, req.FileSize,
	).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.UserName,
		&rec.Platform,
		&rec.URL,
		&rec.Filename,
		&rec.FilePath,
		&rec.FileSize,
		&rec.Status,

		&rec.DownloadTime,
		&rec.SentTime,
		&rec.Deleted,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(rec), err
}

func (r *Repository) MarkSent(ctx context.Context, id download.ID) error {
	// Unknown or already-sent ids are fine: zero rows affected is not an error.
	_, err := r.db.Exec(ctx, UpdateMarkSent, uint64(id))
	return err
}

func (r *Repository) MarkDeleted(ctx context.Context, id download.ID) error {
	_, err := r.db.Exec(ctx, UpdateMarkDeleted, uint64(id))
	return err
}

func (r *Repository) FetchExpired(ctx context.Context, cutoff time.Time) (download.Records, error) {
	rows, err := r.db.Query(ctx, SelectExpired, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs Records
	for rows.Next() {
		rec := new(Record)

		if err = rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.UserName,
			&rec.Platform,
			&rec.URL,
			&rec.Filename,
			&rec.FilePath,
			&rec.FileSize,
			&rec.Status,

			&rec.DownloadTime,
			&rec.SentTime,
			&rec.Deleted,
		); err != nil {
			return nil, err
		}

		recs = append(recs, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&recs), nil
}

func (r *Repository) FetchRecent(ctx context.Context, page int) (download.Records, error) {
	rows, err := r.db.Query(ctx, SelectRecent, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs Records
	for rows.Next() {
		rec := new(Record)

		if err = rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.UserName,
			&rec.Platform,
			&rec.URL,
			&rec.Filename,
			&rec.FilePath,
			&rec.FileSize,
			&rec.Status,

			&rec.DownloadTime,
			&rec.SentTime,
			&rec.Deleted,
		); err != nil {
			return nil, err
		}

		recs = append(recs, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&recs), nil
}
