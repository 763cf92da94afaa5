package quota

import (
	domain "media-fetch-api/internal/domain/quota"
)

func fromDBModel(model *Quota) *domain.Quota {
	var q = &domain.Quota{
		UserID:           model.UserID,
		UserName:         model.UserName,
		TotalDownloads:   model.TotalDownloads,
		DownloadsToday:   model.DownloadsToday,
		LastDownloadDate: model.LastDownloadDate,
		JoinedDate:       model.JoinedDate,
	}

	return q
}
