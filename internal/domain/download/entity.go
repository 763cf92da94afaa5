package download

import (
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusDownloaded Status = "downloaded"
	StatusSent       Status = "sent"
)

type (
	ID     uint64
	Record struct {
		ID       uint64
		UserID   int64
		UserName string
		Platform string
		URL      string
		Filename string
		FilePath string
		FileSize int64
		Status   Status

		DownloadTime time.Time
		SentTime     *time.Time
		Deleted      bool
	}
	Records []*Record
)
