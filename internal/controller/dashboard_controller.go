package controller

import (
	"time"

	"github.com/A25-CS206/backend-service/internal/config"
	"github.com/A25-CS206/backend-service/internal/service"
	"github.com/A25-CS206/backend-service/internal/util"
	"github.com/A25-CS206/backend-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	TrackingService  *service.TrackingService
	InsightService   *service.InsightService
	Cfg              *config.Config
}

func NewDashboardController(
	dashboardService *service.DashboardService,
	trackingService *service.TrackingService,
	insightService *service.InsightService,
	cfg *config.Config,
) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
		TrackingService:  trackingService,
		InsightService:   insightService,
		Cfg:              cfg,
	}
}

// referenceTime resolves "now" for derived views. The showcase account gets
// the configured anchor date so its seeded data always lands inside the
// 7-day window; everyone else gets the wall clock.
func (c *DashboardController) referenceTime(userID string) time.Time {
	if c.Cfg.Demo.UserID == "" || userID != c.Cfg.Demo.UserID {
		return time.Now()
	}

	anchor, err := time.Parse("2006-01-02", c.Cfg.Demo.AnchorDate)
	if err != nil {
		logger.Log.Warn("demo anchor date is unparseable, falling back to wall clock",
			zap.String("anchorDate", c.Cfg.Demo.AnchorDate), zap.Error(err))
		return time.Now()
	}
	// End of the anchor day, so the whole day counts as "this week".
	return anchor.AddDate(0, 0, 1).Add(-time.Second)
}

// GetDashboard godoc
// @Summary The learning-insight dashboard for the current user
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	ref := c.referenceTime(claims.UserID)
	view, err := c.DashboardService.BuildDashboard(ctx.Request.Context(), claims.UserID, ref)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// GetMyCourses godoc
// @Summary Per-journey progress rollup for the current user
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /my-courses [get]
func (c *DashboardController) GetMyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.TrackingService.GetMyCourses(claims.UserID, c.referenceTime(claims.UserID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"courses": courses})
}

// AnalyzeMe godoc
// @Summary Run learner-type analysis for the current user and persist the result
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /insights [get]
func (c *DashboardController) AnalyzeMe(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	insight, err := c.InsightService.GenerateStudentInsight(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, insight)
}
