package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"media-fetch-api/internal/application/ports"
	domain "media-fetch-api/internal/domain/download"
	dto "media-fetch-api/internal/interface/api/rest/dto/download"
	"media-fetch-api/internal/interface/api/rest/validator"
)

type DownloadController struct {
	downloadService ports.DownloadService
	logger          *zap.Logger
	requestTimeout  time.Duration
}

func NewDownloadController(
	r *gin.Engine,
	downloadService ports.DownloadService,
	logger *zap.Logger,
	requestTimeout time.Duration,
) *DownloadController {
	dc := &DownloadController{
		downloadService: downloadService,
		logger:          logger,
		requestTimeout:  requestTimeout,
	}

	r.POST(RouteDownloads, dc.CreateDownloadHandler)

	return dc
}

// responseDeliverer streams the finished file back as the HTTP response; a
// fully written attachment is the confirmed handoff.
type responseDeliverer struct {
	c *gin.Context
}

func (d *responseDeliverer) Deliver(ctx context.Context, del ports.Delivery) error {
	d.c.FileAttachment(del.FilePath, del.Filename)
	if status := d.c.Writer.Status(); status >= http.StatusBadRequest {
		return fmt.Errorf("file streaming failed with status %d", status)
	}
	return nil
}

func (dc *DownloadController) CreateDownloadHandler(c *gin.Context) {
	var req dto.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateDownload(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dc.requestTimeout)
	defer cancel()

	_, err := dc.downloadService.Download(ctx, ports.DownloadRequest{
		UserID:   req.UserID,
		UserName: req.UserName,
		URL:      req.URL,
		Format:   req.Format,
	}, &responseDeliverer{c: c})
	if err != nil {
		dc.renderFailure(c, err)
		return
	}
	// success: the file is already on the wire
}

func (dc *DownloadController) renderFailure(c *gin.Context, err error) {
	var f *domain.Failure
	if !errors.As(err, &f) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "download failed"})
		dc.logger.Error("Download() error", zap.Error(err))
		return
	}

	if f.Kind == domain.KindUnknown || f.Kind == domain.KindDeliveryFailed {
		dc.logger.Error("Download() error", zap.String("kind", string(f.Kind)), zap.Error(err))
	}

	if c.Writer.Written() {
		// headers already on the wire, nothing sensible left to say
		return
	}

	c.JSON(failureStatus(f.Kind), gin.H{
		"error": f.Message,
		"kind":  string(f.Kind),
	})
}

func failureStatus(kind domain.Kind) int {
	switch kind {
	case domain.KindQuotaExceeded:
		return http.StatusTooManyRequests
	case domain.KindInvalidURL:
		return http.StatusBadRequest
	case domain.KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case domain.KindAuthRequired,
		domain.KindFormatUnavailable,
		domain.KindUnavailable,
		domain.KindPrivate,
		domain.KindMissingOutput:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
