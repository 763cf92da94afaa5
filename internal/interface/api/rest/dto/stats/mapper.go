package stats

import (
	domain "media-fetch-api/internal/domain/quota"
)

func ToResponse(s domain.Stats) Response {
	var r = Response{
		TotalDownloads: s.TotalDownloads,
		DownloadsToday: s.DownloadsToday,
		DailyLimit:     s.DailyLimit,
		RemainingToday: s.RemainingToday,
		JoinedDate:     s.JoinedDate,
	}

	return r
}
