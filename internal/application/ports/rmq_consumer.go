package ports

import (
	"context"
)

type RMQConsumer interface {
	Connect(dsn string) error
	Init() error
	RequestWorker(ctx context.Context)
}
