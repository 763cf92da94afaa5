package download

import (
	"time"
)

type (
	Record struct {
		ID           uint64     `json:"id"`
		UserID       int64      `json:"user_id"`
		UserName     string     `json:"user_name"`
		Platform     string     `json:"platform"`
		URL          string     `json:"url"`
		Filename     string     `json:"filename"`
		FileSize     int64      `json:"file_size"`
		Status       string     `json:"status"`
		DownloadTime time.Time  `json:"download_time"`
		SentTime     *time.Time `json:"sent_time,omitempty"`
		Deleted      bool       `json:"deleted"`
	}
	Records      []Record
	ResponseData struct {
		Data Records `json:"data"`
	}
)
