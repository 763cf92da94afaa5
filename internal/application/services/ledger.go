package services

import (
	"context"
	"fmt"
	"time"

	"media-fetch-api/internal/application/ports"
	domain "media-fetch-api/internal/domain/quota"
)

type LedgerService struct {
	quotaRepository domain.Repository
	dailyLimit      int
	now             func() time.Time
}

func NewLedgerService(quotaRepository domain.Repository, dailyLimit int) ports.Ledger {
	return &LedgerService{
		quotaRepository: quotaRepository,
		dailyLimit:      dailyLimit,
		now:             time.Now,
	}
}

func (ls *LedgerService) CanDownload(ctx context.Context, userID int64) (bool, string, error) {
	q, err := ls.quotaRepository.FetchQuota(ctx, userID)
	if err != nil {
		return false, "", err
	}
	if q == nil {
		// never seen before, nothing counted yet
		return true, "", nil
	}

	if ls.downloadsToday(q) >= ls.dailyLimit {
		reason := fmt.Sprintf(
			"You've reached your daily limit (%d downloads). Try again tomorrow!",
			ls.dailyLimit,
		)
		return false, reason, nil
	}

	return true, "", nil
}

func (ls *LedgerService) RecordDownload(ctx context.Context, userID int64, userName string) (*domain.Quota, error) {
	day := truncateToDay(ls.now())
	return ls.quotaRepository.RecordDownload(ctx, userID, userName, day)
}

func (ls *LedgerService) Stats(ctx context.Context, userID int64) (*domain.Stats, error) {
	q, err := ls.quotaRepository.FetchQuota(ctx, userID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return &domain.Stats{
			DailyLimit:     ls.dailyLimit,
			RemainingToday: ls.dailyLimit,
			JoinedDate:     ls.now(),
		}, nil
	}

	today := ls.downloadsToday(q)
	remaining := ls.dailyLimit - today
	if remaining < 0 {
		remaining = 0
	}

	return &domain.Stats{
		TotalDownloads: q.TotalDownloads,
		DownloadsToday: today,
		DailyLimit:     ls.dailyLimit,
		RemainingToday: remaining,
		JoinedDate:     q.JoinedDate,
	}, nil
}

// downloadsToday treats a stale last-download date as zero so yesterday's
// counter never blocks today's first download.
func (ls *LedgerService) downloadsToday(q *domain.Quota) int {
	if q.LastDownloadDate == nil {
		return 0
	}
	if !sameDay(*q.LastDownloadDate, ls.now()) {
		return 0
	}
	return q.DownloadsToday
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
