package quota

const (
	SelectQuota = `
		SELECT user_id, user_name, total_downloads, downloads_today, last_download_date, joined_date
		FROM user_stats
		WHERE user_id = $1
	`
	// Single atomic upsert: a first-ever download inserts the row with both
	// counters at 1; an existing row increments, resetting the daily counter
	// when the stored date is not the given day.
	UpsertRecordDownload = `
		INSERT INTO user_stats (user_id, user_name, total_downloads, downloads_today, last_download_date)
		VALUES ($1, $2, 1, 1, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET user_name = EXCLUDED.user_name,
		    total_downloads = user_stats.total_downloads + 1,
		    downloads_today = CASE
		        WHEN user_stats.last_download_date = EXCLUDED.last_download_date THEN user_stats.downloads_today + 1
		        ELSE 1
		    END,
		    last_download_date = EXCLUDED.last_download_date
		RETURNING user_id, user_name, total_downloads, downloads_today, last_download_date, joined_date
	`
)
