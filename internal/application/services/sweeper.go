package services

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"media-fetch-api/internal/application/ports"
	domain "media-fetch-api/internal/domain/download"
)

// SweeperService reclaims disk space on a fixed interval, fully decoupled
// from request handling. It talks to the world only through the catalog and
// the filesystem.
type SweeperService struct {
	downloadRepository domain.Repository
	logger             *zap.Logger
	mCounter           *prometheus.CounterVec

	downloadDir     string
	retentionWindow time.Duration
	interval        time.Duration
	now             func() time.Time
}

func NewSweeperService(
	downloadRepository domain.Repository,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
	downloadDir string,
	retentionWindow time.Duration,
	interval time.Duration,
) ports.Sweeper {
	return &SweeperService{
		downloadRepository: downloadRepository,
		logger:             logger,
		mCounter:           mCounter,
		downloadDir:        downloadDir,
		retentionWindow:    retentionWindow,
		interval:           interval,
		now:                time.Now,
	}
}

func (ss *SweeperService) Worker(ctx context.Context) {
	ss.logger.Info("starting sweeper worker",
		zap.Duration("interval", ss.interval),
		zap.Duration("retention", ss.retentionWindow),
	)

	defer func() {
		ss.logger.Info("sweeper worker gracefully stopped")
	}()

	ticker := time.NewTicker(ss.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := ss.SweepOnce(ctx)
			if err != nil {
				ss.logger.Error("sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				ss.logger.Info("sweep finished", zap.Int("reclaimed", n))
			}
		case <-ctx.Done():
			return
		}
	}
}

// SweepOnce expires every record older than the retention window: best-effort
// file removal, then the deleted flag regardless, so a missing file can never
// leave a permanently stale record. Returns the number of records reclaimed.
func (ss *SweeperService) SweepOnce(ctx context.Context) (int, error) {
	cutoff := ss.now().Add(-ss.retentionWindow)

	expired, err := ss.downloadRepository.FetchExpired(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	reclaimed := 0
	for _, rec := range expired {
		if err := os.Remove(rec.FilePath); err != nil && !os.IsNotExist(err) {
			ss.logger.Warn("could not remove expired file",
				zap.String("path", rec.FilePath),
				zap.Error(err),
			)
		}
		if err := ss.downloadRepository.MarkDeleted(ctx, domain.ID(rec.ID)); err != nil {
			ss.logger.Error("mark deleted failed", zap.Uint64("record_id", rec.ID), zap.Error(err))
			continue
		}
		reclaimed++
		ss.mCounter.WithLabelValues("files_reclaimed_total").Inc()
	}

	ss.pruneEmptyDirs()

	return reclaimed, nil
}

// pruneEmptyDirs collapses empty subdirectories bottom-up so nested empty
// parents go too. The download root itself stays.
func (ss *SweeperService) pruneEmptyDirs() {
	var dirs []string
	_ = filepath.WalkDir(ss.downloadDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && path != ss.downloadDir {
			dirs = append(dirs, path)
		}
		return nil
	})

	// deepest first
	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], string(os.PathSeparator)) > strings.Count(dirs[j], string(os.PathSeparator))
	})

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		_ = os.Remove(dir)
	}
}
