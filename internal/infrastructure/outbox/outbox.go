package outbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"media-fetch-api/internal/application/ports"
)

// Outbox delivers finished files by moving them into a directory shared with
// the chat front-end. The rename is the handoff: once it succeeds the bytes
// belong to the front-end, not to us.
type Outbox struct {
	logger *zap.Logger
	dir    string
}

func New(logger *zap.Logger, dir string) *Outbox {
	return &Outbox{logger: logger, dir: dir}
}

func (o *Outbox) Deliver(ctx context.Context, d ports.Delivery) error {
	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return fmt.Errorf("outbox dir: %w", err)
	}

	dest := filepath.Join(o.dir, d.Filename)
	if err := os.Rename(d.FilePath, dest); err != nil {
		return fmt.Errorf("outbox handoff: %w", err)
	}

	o.logger.Info("file handed off to outbox",
		zap.String("file", d.Filename),
		zap.Int64("size", d.FileSize),
	)

	return nil
}

func (o *Outbox) Dir() string { return o.dir }
