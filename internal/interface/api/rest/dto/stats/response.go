package stats

import (
	"time"
)

type Response struct {
	TotalDownloads int       `json:"total_downloads"`
	DownloadsToday int       `json:"downloads_today"`
	DailyLimit     int       `json:"daily_limit"`
	RemainingToday int       `json:"remaining_today"`
	JoinedDate     time.Time `json:"joined_date"`
}
