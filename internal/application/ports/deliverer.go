package ports

import (
	"context"
)

type (
	// Delivery is the finished artifact handed to the front-end collaborator.
	Delivery struct {
		Filename string
		FilePath string
		FileSize int64
		Title    string
		Platform string
	}
)

// Deliverer hands a downloaded file over to whoever asked for it. A nil error
// means the handoff is confirmed and the local copy may be removed.
type Deliverer interface {
	Deliver(ctx context.Context, d Delivery) error
}
