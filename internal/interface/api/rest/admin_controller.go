package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"media-fetch-api/internal/application/ports"
	"media-fetch-api/internal/infrastructure/jwt"
	dto "media-fetch-api/internal/interface/api/rest/dto/download"
	"media-fetch-api/internal/interface/api/rest/middleware"
	"media-fetch-api/internal/interface/api/rest/validator"
)

// AdminController exposes the operator surface: catalog inspection and a
// manual sweep trigger.
type AdminController struct {
	catalog ports.Catalog
	sweeper ports.Sweeper
	logger  *zap.Logger
}

func NewAdminController(
	r *gin.Engine,
	catalog ports.Catalog,
	sweeper ports.Sweeper,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *AdminController {
	ac := &AdminController{
		catalog: catalog,
		sweeper: sweeper,
		logger:  logger,
	}

	r.GET(RouteAdminDownloads, middleware.AuthMiddleware(jwtService), ac.GetDownloadsHandler)
	r.POST(RouteAdminCleanup, middleware.AuthMiddleware(jwtService), ac.CleanupHandler)

	return ac
}

func (ac *AdminController) GetDownloadsHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	recs, err := ac.catalog.Recent(c.Request.Context(), page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get downloads"},
		)
		ac.logger.Error("Recent() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dto.ResponseData{
		Data: dto.ToResponseRecords(recs),
	})
}

func (ac *AdminController) CleanupHandler(c *gin.Context) {
	n, err := ac.sweeper.SweepOnce(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "cleanup failed"},
		)
		ac.logger.Error("SweepOnce() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"reclaimed": n})
}
