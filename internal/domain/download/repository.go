package download

import (
	"context"
	"time"
)

type Repository interface {
	CreateRecord(ctx context.Context, req *Record) (*Record, error)
	MarkSent(ctx context.Context, id ID) error
	MarkDeleted(ctx context.Context, id ID) error
	FetchExpired(ctx context.Context, cutoff time.Time) (Records, error)
	FetchRecent(ctx context.Context, page int) (Records, error)
}
