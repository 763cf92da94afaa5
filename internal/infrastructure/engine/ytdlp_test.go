package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"media-fetch-api/config"
	"media-fetch-api/internal/application/ports"
)

func TestBuildArgs(t *testing.T) {
	e := New(zap.NewNop(), config.Engine{BinPath: "yt-dlp"})

	opts := ports.ExtractOptions{
		Format:         "bv*+ba/b",
		OutputTemplate: "/data/%(title)s.%(ext)s",
		ExtractorArgs:  []string{"youtube:player_client=android,web"},
		UserAgent:      "Mozilla/5.0",
		CookiesFile:    "/etc/cookies.txt",
		Retries:        10,
		SocketTimeout:  30 * time.Second,
	}
	args := e.buildArgs(opts)
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "--no-simulate")
	assert.Contains(t, joined, "--print title")
	assert.Contains(t, joined, "--print filename")
	assert.Contains(t, joined, "-f bv*+ba/b")
	assert.Contains(t, joined, "-o /data/%(title)s.%(ext)s")
	assert.Contains(t, joined, "--retries 10")
	assert.Contains(t, joined, "--fragment-retries 10")
	assert.Contains(t, joined, "--socket-timeout 30")
	assert.Contains(t, joined, "--user-agent Mozilla/5.0")
	assert.Contains(t, joined, "--extractor-args youtube:player_client=android,web")
	assert.Contains(t, joined, "--cookies /etc/cookies.txt")
	assert.NotContains(t, joined, "-x", "no audio extraction unless asked")
}

func TestBuildArgs_AudioExtraction(t *testing.T) {
	e := New(zap.NewNop(), config.Engine{})

	args := e.buildArgs(ports.ExtractOptions{
		Format:       "bestaudio",
		ExtractAudio: true,
	})
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-x")
	assert.Contains(t, joined, "--audio-format mp3")
	assert.Contains(t, joined, "--audio-quality 192K")
}

func TestBuildArgs_OptionalFlagsOmitted(t *testing.T) {
	e := New(zap.NewNop(), config.Engine{})

	args := e.buildArgs(ports.ExtractOptions{Format: "best"})
	joined := strings.Join(args, " ")

	assert.NotContains(t, joined, "--retries")
	assert.NotContains(t, joined, "--socket-timeout")
	assert.NotContains(t, joined, "--user-agent")
	assert.NotContains(t, joined, "--cookies")
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		wantT    string
		wantPath string
		wantErr  bool
	}{
		{
			name:     "title and path",
			out:      "Some Title\n/data/Some Title_20260829.mp4\n",
			wantT:    "Some Title",
			wantPath: "/data/Some Title_20260829.mp4",
		},
		{
			name:     "extra progress noise between prints",
			out:      "Some Title\n[download] 100%\n/data/clip.mp4\n",
			wantT:    "Some Title",
			wantPath: "/data/clip.mp4",
		},
		{
			name:    "single line",
			out:     "only-title\n",
			wantErr: true,
		},
		{
			name:    "empty",
			out:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			title, path, err := parseOutput(tt.out)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantT, title)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}

func TestTail(t *testing.T) {
	assert.Equal(t, "abc", tail("abc", 10))
	assert.Equal(t, "cde", tail("abcde", 3))
	assert.Equal(t, "abc", tail("  abc  ", 10))
}
