package download

import (
	domain "media-fetch-api/internal/domain/download"
)

func ToResponseRecord(rec domain.Record) Record {
	var r = Record{
		ID:           rec.ID,
		UserID:       rec.UserID,
		UserName:     rec.UserName,
		Platform:     rec.Platform,
		URL:          rec.URL,
		Filename:     rec.Filename,
		FileSize:     rec.FileSize,
		Status:       string(rec.Status),
		DownloadTime: rec.DownloadTime,
		SentTime:     rec.SentTime,
		Deleted:      rec.Deleted,
	}

	return r
}

func ToResponseRecords(recs domain.Records) Records {
	rs := make(Records, len(recs))
	for idx, rec := range recs {
		rs[idx] = ToResponseRecord(*rec)
	}

	return rs
}
