package download

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExhausted_Classification(t *testing.T) {
	tests := []struct {
		name     string
		last     error
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "auth required",
			last:     errors.New("ERROR: Sign in to confirm you're not a bot"),
			wantKind: KindAuthRequired,
			wantMsg:  "the source requires authentication, try a lower quality",
		},
		{
			name:     "format unavailable",
			last:     errors.New("ERROR: Requested format is not available"),
			wantKind: KindFormatUnavailable,
			wantMsg:  "format not available, try a different quality",
		},
		{
			name:     "private",
			last:     errors.New("ERROR: Private video"),
			wantKind: KindPrivate,
			wantMsg:  "this content is private",
		},
		{
			name:     "unavailable uppercase",
			last:     errors.New("ERROR: Video Unavailable"),
			wantKind: KindUnavailable,
			wantMsg:  "content not available or restricted",
		},
		{
			name:     "unavailable lowercase",
			last:     errors.New("this video is unavailable in your region"),
			wantKind: KindUnavailable,
			wantMsg:  "content not available or restricted",
		},
		{
			name:     "too large",
			last:     errors.New("file too large (40MB), limit is 25MB"),
			wantKind: KindTooLarge,
			wantMsg:  "file too large, try a lower quality",
		},
		{
			name:     "unknown",
			last:     errors.New("connection reset by peer"),
			wantKind: KindUnknown,
			wantMsg:  "download failed: connection reset by peer",
		},
		{
			name:     "nil last error",
			last:     nil,
			wantKind: KindUnknown,
			wantMsg:  "download failed for an unknown reason",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := Exhausted(tt.last)
			require.NotNil(t, f)
			assert.Equal(t, tt.wantKind, f.Kind)
			assert.Equal(t, tt.wantMsg, f.Message)
			if tt.last != nil {
				assert.ErrorIs(t, f, tt.last)
				assert.Contains(t, f.Error(), "all download methods failed")
			}
		})
	}
}

func TestExhausted_TruncatesLongEngineOutput(t *testing.T) {
	long := strings.Repeat("x", 500)
	f := Exhausted(errors.New(long))

	assert.Equal(t, KindUnknown, f.Kind)
	assert.LessOrEqual(t, len(f.Message), len("download failed: ")+200)
}

func TestFailure_Error(t *testing.T) {
	f := NewFailure(KindQuotaExceeded, "limit reached")
	assert.Equal(t, "quota_exceeded: limit reached", f.Error())
	assert.Nil(t, f.Unwrap())

	inner := errors.New("boom")
	f = &Failure{Kind: KindUnknown, Message: "internal error", Err: inner}
	assert.Equal(t, "unknown: boom", f.Error())
	assert.ErrorIs(t, f, inner)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "abc", Truncate("abcde", 3))
	assert.Equal(t, "", Truncate("", 3))
}
