package controller

import (
	"errors"

	"github.com/A25-CS206/backend-service/internal/service"
	"github.com/A25-CS206/backend-service/internal/util"
	"github.com/gin-gonic/gin"
)

type TrackingController struct {
	TrackingService *service.TrackingService
}

func NewTrackingController(trackingService *service.TrackingService) *TrackingController {
	return &TrackingController{TrackingService: trackingService}
}

type RecordViewRequest struct {
	JourneyID  string `json:"journeyId" binding:"required"`
	TutorialID string `json:"tutorialId" binding:"required"`
}

// RecordView godoc
// @Summary Record that the current user opened a tutorial
// @Description Idempotent per (user, tutorial): repeated calls advance the last-viewed timestamp on a single record.
// @Tags trackings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body RecordViewRequest true "tracking payload"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /trackings [post]
func (c *TrackingController) RecordView(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RecordViewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	trackingID, err := c.TrackingService.RecordView(claims.UserID, req.JourneyID, req.TutorialID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrJourneyNotFound):
			util.NotFound(ctx, "Journey not found")
		case errors.Is(err, util.ErrTutorialNotFound):
			util.NotFound(ctx, "Tutorial not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"trackingId": trackingID})
}

// GetMyActivities godoc
// @Summary The current user's tracking history, most recent first
// @Tags trackings
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /trackings/me [get]
func (c *TrackingController) GetMyActivities(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	activities, err := c.TrackingService.GetActivityHistory(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"activities": activities})
}
