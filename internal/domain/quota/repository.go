package quota

import (
	"context"
	"time"
)

type Repository interface {
	FetchQuota(ctx context.Context, userID int64) (*Quota, error)
	// RecordDownload upserts the ledger row for one completed download on the
	// given calendar day. A new day resets the daily counter to 1.
	RecordDownload(ctx context.Context, userID int64, userName string, day time.Time) (*Quota, error)
}
