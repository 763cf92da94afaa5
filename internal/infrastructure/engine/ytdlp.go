package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"media-fetch-api/config"
	"media-fetch-api/internal/application/ports"
)

// stderrTail bounds how much engine output is carried inside a wrapped error.
const stderrTail = 2000

const probeURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

// Extractor drives the external yt-dlp binary.
type Extractor struct {
	logger *zap.Logger
	cfg    config.Engine
}

func New(logger *zap.Logger, cfg config.Engine) *Extractor {
	return &Extractor{logger: logger, cfg: cfg}
}

func (e *Extractor) Extract(ctx context.Context, url string, opts ports.ExtractOptions) (*ports.ExtractResult, error) {
	args := e.buildArgs(opts)
	args = append(args, url)

	cmd := exec.CommandContext(ctx, e.cfg.BinPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp failed: %s: %w", tail(stderr.String(), stderrTail), err)
	}

	title, filePath, err := parseOutput(stdout.String())
	if err != nil {
		return nil, err
	}

	return &ports.ExtractResult{FilePath: filePath, Title: title}, nil
}

func (e *Extractor) buildArgs(opts ports.ExtractOptions) []string {
	args := []string{
		"--no-warnings",
		"--no-color",
		"--no-simulate",
		"--print", "title",
		"--print", "filename",
		"-f", opts.Format,
		"-o", opts.OutputTemplate,
	}

	if opts.Retries > 0 {
		args = append(args,
			"--retries", strconv.Itoa(opts.Retries),
			"--fragment-retries", strconv.Itoa(opts.Retries),
		)
	}
	if opts.SocketTimeout > 0 {
		args = append(args, "--socket-timeout", strconv.Itoa(int(opts.SocketTimeout/time.Second)))
	}
	if opts.UserAgent != "" {
		args = append(args,
			"--user-agent", opts.UserAgent,
			"--add-header", "Accept-Language: en-US,en;q=0.5",
		)
	}
	for _, ea := range opts.ExtractorArgs {
		args = append(args, "--extractor-args", ea)
	}
	if opts.CookiesFile != "" {
		args = append(args, "--cookies", opts.CookiesFile)
	}
	if opts.ExtractAudio {
		args = append(args,
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", "192K",
		)
	}

	return args
}

// SelfTest runs a flat extraction probe against a known URL so a broken or
// bot-blocked engine shows up in the logs at startup, not on the first request.
func (e *Extractor) SelfTest(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.cfg.BinPath,
		"--simulate", "--flat-playlist", "--print", "id", probeURL)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		e.logger.Warn("engine self-test failed, downloads may be limited",
			zap.String("stderr", tail(stderr.String(), stderrTail)),
			zap.Error(err))
		return
	}
	e.logger.Info("engine self-test ok")
}

// parseOutput reads the two --print lines: title first, predicted path last.
func parseOutput(out string) (title, filePath string, err error) {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return "", "", fmt.Errorf("unexpected yt-dlp output: %q", tail(out, 200))
	}

	return lines[0], lines[len(lines)-1], nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
