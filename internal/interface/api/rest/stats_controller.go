package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"media-fetch-api/internal/application/ports"
	"media-fetch-api/internal/interface/api/rest/dto/stats"
	"media-fetch-api/internal/interface/api/rest/validator"
)

type StatsController struct {
	catalog ports.Catalog
	logger  *zap.Logger
}

func NewStatsController(
	r *gin.Engine,
	catalog ports.Catalog,
	logger *zap.Logger,
) *StatsController {
	sc := &StatsController{
		catalog: catalog,
		logger:  logger,
	}

	r.GET(RouteUserStats, sc.GetUserStatsHandler)

	return sc
}

func (sc *StatsController) GetUserStatsHandler(c *gin.Context) {
	userID, err := validator.ValidateUserID(c.Param("user_id"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	s, err := sc.catalog.GetUserStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get user stats"},
		)
		sc.logger.Error("GetUserStats() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, stats.ToResponse(*s))
}
