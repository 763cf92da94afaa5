package download

const (
	InsertRecord = `
		INSERT INTO downloads (user_id, user_name, platform, url, filename, file_path, file_size, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'downloaded')
		RETURNING
		  id, user_id, user_name, platform, url, filename, file_path, file_size, status, download_time, sent_time, deleted
	`
	UpdateMarkSent = `
		UPDATE downloads
		SET status = 'sent',
		    sent_time = now()
		WHERE id = $1 AND status = 'downloaded'
	`
	UpdateMarkDeleted = `
		UPDATE downloads
		SET deleted = TRUE
		WHERE id = $1 AND NOT deleted
	`
	SelectExpired = `
		SELECT id, user_id, user_name, platform, url, filename, file_path, file_size, status, download_time, sent_time, deleted
		FROM downloads
		WHERE download_time < $1 AND NOT deleted
	`
	SelectRecent = `
		SELECT id, user_id, user_name, platform, url, filename, file_path, file_size, status, download_time, sent_time, deleted
		FROM downloads
		ORDER BY id DESC
		LIMIT 50 OFFSET ( ($1 - 1) * 50 )
	`
)
