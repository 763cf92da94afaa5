package services

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"media-fetch-api/internal/application/ports"
	domain "media-fetch-api/internal/domain/download"
	"media-fetch-api/internal/domain/quota"
)

// CatalogService is the record store over downloaded artifacts. It owns the
// downloads table and is the only caller of Ledger.RecordDownload.
type CatalogService struct {
	downloadRepository domain.Repository
	ledger             ports.Ledger
	logger             *zap.Logger
	mCounter           *prometheus.CounterVec
}

func NewCatalogService(
	downloadRepository domain.Repository,
	ledger ports.Ledger,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.Catalog {
	return &CatalogService{
		downloadRepository: downloadRepository,
		ledger:             ledger,
		logger:             logger,
		mCounter:           mCounter,
	}
}

func (cs *CatalogService) CreateRecord(ctx context.Context, req *domain.Record) (*domain.Record, error) {
	req.FileSize = fileSize(req.FilePath)

	rec, err := cs.downloadRepository.CreateRecord(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, err = cs.ledger.RecordDownload(ctx, rec.UserID, rec.UserName); err != nil {
		// the artifact record exists, the quota write is what failed
		cs.logger.Error("quota update failed", zap.Error(err), zap.Uint64("record_id", rec.ID))
		return nil, err
	}

	cs.mCounter.WithLabelValues("downloads_recorded_total").Inc()

	return rec, nil
}

func (cs *CatalogService) MarkSent(ctx context.Context, id domain.ID) error {
	return cs.downloadRepository.MarkSent(ctx, id)
}

func (cs *CatalogService) GetUserStats(ctx context.Context, userID int64) (*quota.Stats, error) {
	return cs.ledger.Stats(ctx, userID)
}

func (cs *CatalogService) Recent(ctx context.Context, page int) (domain.Records, error) {
	return cs.downloadRepository.FetchRecent(ctx, page)
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
