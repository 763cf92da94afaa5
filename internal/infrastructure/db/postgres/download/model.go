package download

import (
	"time"
)

type (
	Record struct {
		ID       uint64
		UserID   int64
		UserName string
		Platform string
		URL      string
		Filename string
		FilePath string
		FileSize int64
		Status   string

		DownloadTime time.Time
		SentTime     *time.Time
		Deleted      bool
	}
	Records []*Record
)
