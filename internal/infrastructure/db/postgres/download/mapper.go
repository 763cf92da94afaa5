package download

import (
	domain "media-fetch-api/internal/domain/download"
)

func fromDBModel(model *Record) *domain.Record {
	var rec = &domain.Record{
		ID:       model.ID,
		UserID:   model.UserID,
		UserName: model.UserName,
		Platform: model.Platform,
		URL:      model.URL,
		Filename: model.Filename,
		FilePath: model.FilePath,
		FileSize: model.FileSize,
		Status:   domain.Status(model.Status),

		DownloadTime: model.DownloadTime,
		SentTime:     model.SentTime,
		Deleted:      model.Deleted,
	}

	return rec
}

func fromDBModels(models *Records) domain.Records {
	recs := make(domain.Records, len(*models))
	for idx, rec := range *models {
		recs[idx] = fromDBModel(rec)
	}

	return recs
}
