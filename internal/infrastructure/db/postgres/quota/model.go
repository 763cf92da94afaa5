package quota

import (
	"time"
)

type Quota struct {
	UserID           int64
	UserName         string
	TotalDownloads   int
	DownloadsToday   int
	LastDownloadDate *time.Time
	JoinedDate       time.Time
}
