package ports

import (
	"context"

	"media-fetch-api/internal/domain/download"
	"media-fetch-api/internal/domain/quota"
)

type (
	// DownloadRequest is what the front-end hands the orchestrator.
	DownloadRequest struct {
		UserID   int64
		UserName string
		URL      string
		Format   string
	}
)

// DownloadService runs one request through admission, the fallback chain and
// delivery. The returned error, when non-nil, is always a *download.Failure.
type DownloadService interface {
	Download(ctx context.Context, req DownloadRequest, deliverer Deliverer) (*download.Record, error)
}

// Ledger is the per-user quota counter set used for admission.
type Ledger interface {
	CanDownload(ctx context.Context, userID int64) (bool, string, error)
	RecordDownload(ctx context.Context, userID int64, userName string) (*quota.Quota, error)
	Stats(ctx context.Context, userID int64) (*quota.Stats, error)
}

// Catalog is the record store over downloaded artifacts.
type Catalog interface {
	CreateRecord(ctx context.Context, req *download.Record) (*download.Record, error)
	MarkSent(ctx context.Context, id download.ID) error
	GetUserStats(ctx context.Context, userID int64) (*quota.Stats, error)
	Recent(ctx context.Context, page int) (download.Records, error)
}

// Sweeper reclaims expired artifacts.
type Sweeper interface {
	SweepOnce(ctx context.Context) (int, error)
	Worker(ctx context.Context)
}

type Auth interface {
	GenerateToken(username, password string) (string, error)
}
