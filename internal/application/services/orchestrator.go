package services

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"media-fetch-api/config"
	"media-fetch-api/internal/application/ports"
	domain "media-fetch-api/internal/domain/download"
	"media-fetch-api/internal/infrastructure/mq"
	dto "media-fetch-api/internal/interface/api/rest/dto/download"
	"media-fetch-api/internal/platform"
)

const spoofedUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// probeExtensions covers containers postprocessing may have swapped in after
// the engine predicted its output name.
var probeExtensions = []string{".mp4", ".mkv", ".webm", ".mp3", ".m4a", ".m4v"}

// OrchestratorService turns one URL request into a delivered file or a single
// structured failure, driving the engine through the platform fallback chain.
type OrchestratorService struct {
	extractor ports.Extractor
	catalog   ports.Catalog
	ledger    ports.Ledger
	mq        ports.RabbitMQ
	logger    *zap.Logger
	mCounter  *prometheus.CounterVec

	downloadDir string
	maxFileSize int64
	engineCfg   config.Engine
	now         func() time.Time
}

func NewOrchestratorService(
	extractor ports.Extractor,
	catalog ports.Catalog,
	ledger ports.Ledger,
	rabbit ports.RabbitMQ,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
	downloadDir string,
	maxFileSize int64,
	engineCfg config.Engine,
) ports.DownloadService {
	return &OrchestratorService{
		extractor:   extractor,
		catalog:     catalog,
		ledger:      ledger,
		mq:          rabbit,
		logger:      logger,
		mCounter:    mCounter,
		downloadDir: downloadDir,
		maxFileSize: maxFileSize,
		engineCfg:   engineCfg,
		now:         time.Now,
	}
}

func (osvc *OrchestratorService) Download(
	ctx context.Context,
	req ports.DownloadRequest,
	deliverer ports.Deliverer,
) (*domain.Record, error) {
	if !validScheme(req.URL) {
		return nil, domain.NewFailure(domain.KindInvalidURL,
			"please send a valid URL starting with http:// or https://")
	}

	allowed, reason, err := osvc.ledger.CanDownload(ctx, req.UserID)
	if err != nil {
		return nil, &domain.Failure{Kind: domain.KindUnknown, Message: "internal error", Err: err}
	}
	if !allowed {
		return nil, domain.NewFailure(domain.KindQuotaExceeded, reason)
	}

	plat := platform.Detect(req.URL)
	attempts := platform.Attempts(plat, platform.Format(req.Format))

	filePath, title, err := osvc.runChain(ctx, req.URL, plat, attempts)
	if err != nil {
		osvc.mCounter.WithLabelValues("downloads_failed_total").Inc()
		osvc.publishFailed(req, plat, err)
		return nil, err
	}

	rec, err := osvc.finish(ctx, req, plat, filePath, title, deliverer)
	if err != nil {
		osvc.mCounter.WithLabelValues("downloads_failed_total").Inc()
		osvc.publishFailed(req, plat, err)
		return nil, err
	}

	osvc.mCounter.WithLabelValues("downloads_succeeded_total").Inc()
	osvc.publishCompleted(rec)

	return rec, nil
}

// runChain walks the ordered strategy list, strictly sequentially, stopping at
// the first attempt that produces an acceptable file. Every attempt failure
// except a missing output file advances the chain.
func (osvc *OrchestratorService) runChain(
	ctx context.Context,
	rawURL string,
	plat platform.Platform,
	attempts []platform.Attempt,
) (string, string, error) {
	template := osvc.outputTemplate()

	var lastErr error
	for _, attempt := range attempts {
		res, err := osvc.extractor.Extract(ctx, rawURL, osvc.extractOptions(attempt, template))
		if err != nil {
			lastErr = err
			osvc.logger.Warn("download attempt failed",
				zap.String("platform", plat.String()),
				zap.String("method", attempt.Label),
				zap.String("error", domain.Truncate(err.Error(), 100)),
			)
			continue
		}

		filePath, ok := resolveOutputFile(res.FilePath)
		if !ok {
			// the engine claimed success but left nothing usable behind
			return "", "", domain.NewFailure(domain.KindMissingOutput, "downloaded file not found")
		}

		if size := fileSize(filePath); size > osvc.maxFileSize {
			_ = os.Remove(filePath)
			lastErr = fmt.Errorf("file too large (%dMB), limit is %dMB",
				size/1024/1024, osvc.maxFileSize/1024/1024)
			osvc.logger.Warn("download attempt produced oversized file",
				zap.String("method", attempt.Label),
				zap.Int64("size", size),
			)
			continue
		}

		return filePath, res.Title, nil
	}

	return "", "", domain.Exhausted(lastErr)
}

// finish persists the record, hands the file off and removes the local copy.
// Whatever happens past this point, the bytes do not stay on disk.
func (osvc *OrchestratorService) finish(
	ctx context.Context,
	req ports.DownloadRequest,
	plat platform.Platform,
	filePath, title string,
	deliverer ports.Deliverer,
) (*domain.Record, error) {
	rec, err := osvc.catalog.CreateRecord(ctx, &domain.Record{
		UserID:   req.UserID,
		UserName: req.UserName,
		Platform: plat.String(),
		URL:      req.URL,
		Filename: sanitizeFileName(filepath.Base(filePath)),
		FilePath: filePath,
		Status:   domain.StatusDownloaded,
	})
	if err != nil {
		osvc.removeLocal(filePath)
		return nil, &domain.Failure{Kind: domain.KindUnknown, Message: "internal error", Err: err}
	}

	if err = deliverer.Deliver(ctx, ports.Delivery{
		Filename: rec.Filename,
		FilePath: rec.FilePath,
		FileSize: rec.FileSize,
		Title:    title,
		Platform: rec.Platform,
	}); err != nil {
		osvc.removeLocal(filePath)
		return nil, &domain.Failure{
			Kind:    domain.KindDeliveryFailed,
			Message: "could not send the file, please try again",
			Err:     err,
		}
	}

	if err = osvc.catalog.MarkSent(ctx, domain.ID(rec.ID)); err != nil {
		osvc.logger.Error("mark sent failed", zap.Uint64("record_id", rec.ID), zap.Error(err))
	}
	osvc.removeLocal(filePath)

	return rec, nil
}

func (osvc *OrchestratorService) extractOptions(attempt platform.Attempt, template string) ports.ExtractOptions {
	return ports.ExtractOptions{
		Format:         attempt.Selector,
		OutputTemplate: template,
		ExtractAudio:   attempt.ExtractAudio,
		ExtractorArgs:  attempt.ExtractorArgs,
		UserAgent:      spoofedUserAgent,
		CookiesFile:    osvc.engineCfg.CookiesFile,
		Retries:        osvc.engineCfg.Retries,
		SocketTimeout:  osvc.engineCfg.SocketTimeout,
	}
}

// outputTemplate keeps concurrent requests apart with a nanosecond timestamp
// in the predicted name.
func (osvc *OrchestratorService) outputTemplate() string {
	ts := osvc.now().Format("20060102_150405.000000000")
	return filepath.Join(osvc.downloadDir, "%(title)s_"+ts+".%(ext)s")
}

func (osvc *OrchestratorService) removeLocal(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		osvc.logger.Warn("could not remove local file", zap.String("path", path), zap.Error(err))
	}
}

func (osvc *OrchestratorService) publishCompleted(rec *domain.Record) {
	osvc.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      osvc.now(),
		Action:  mq.ActionCompleted,
		UserID:  strconv.FormatInt(rec.UserID, 10),
		Payload: dto.ToResponseRecord(*rec),
	}
}

func (osvc *OrchestratorService) publishFailed(req ports.DownloadRequest, plat platform.Platform, err error) {
	osvc.mq.GetInputChan() <- mq.Event{
		Id:     uuid.New(),
		TS:     osvc.now(),
		Action: mq.ActionFailed,
		UserID: strconv.FormatInt(req.UserID, 10),
		Payload: dto.Record{
			UserID:   req.UserID,
			UserName: req.UserName,
			Platform: plat.String(),
			URL:      req.URL,
		},
		Failure: domain.Truncate(err.Error(), 200),
	}
}

// resolveOutputFile locates the real artifact: the predicted path when it
// exists, otherwise the base name probed against the plausible extensions.
func resolveOutputFile(predicted string) (string, bool) {
	if _, err := os.Stat(predicted); err == nil {
		return predicted, true
	}

	base := strings.TrimSuffix(predicted, filepath.Ext(predicted))
	for _, ext := range probeExtensions {
		candidate := base + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}

	return "", false
}

func validScheme(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
