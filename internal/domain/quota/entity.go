package quota

import (
	"time"
)

type (
	// Quota is the per-user ledger row.
	Quota struct {
		UserID           int64
		UserName         string
		TotalDownloads   int
		DownloadsToday   int
		LastDownloadDate *time.Time
		JoinedDate       time.Time
	}

	// Stats is the read-only snapshot handed to callers.
	Stats struct {
		TotalDownloads int
		DownloadsToday int
		DailyLimit     int
		RemainingToday int
		JoinedDate     time.Time
	}
)
