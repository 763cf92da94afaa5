package ports

import (
	"context"
	"time"
)

type (
	// ExtractOptions is everything one engine invocation needs.
	ExtractOptions struct {
		Format         string
		OutputTemplate string
		ExtractAudio   bool
		ExtractorArgs  []string
		UserAgent      string
		CookiesFile    string
		Retries        int
		SocketTimeout  time.Duration
	}

	// ExtractResult reports a finished extraction. FilePath is the engine's
	// predicted output path; postprocessing may have changed the extension.
	ExtractResult struct {
		FilePath string
		Title    string
	}
)

type Extractor interface {
	Extract(ctx context.Context, url string, opts ExtractOptions) (*ExtractResult, error)
}
