package controller

import (
	"errors"

	"github.com/A25-CS206/backend-service/internal/model"
	"github.com/A25-CS206/backend-service/internal/service"
	"github.com/A25-CS206/backend-service/internal/util"
	"github.com/gin-gonic/gin"
)

type JourneyController struct {
	JourneyService *service.JourneyService
}

func NewJourneyController(journeyService *service.JourneyService) *JourneyController {
	return &JourneyController{JourneyService: journeyService}
}

type CreateJourneyRequest struct {
	Name       string `json:"name" binding:"required"`
	Summary    string `json:"summary"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
}

// CreateJourney godoc
// @Summary Create a learning journey
// @Tags journeys
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateJourneyRequest true "journey payload"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /journeys [post]
func (c *JourneyController) CreateJourney(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateJourneyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	journey := &model.Journey{
		Name:         req.Name,
		Summary:      req.Summary,
		Difficulty:   req.Difficulty,
		InstructorID: claims.UserID,
	}

	id, err := c.JourneyService.CreateJourney(journey)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"journeyId": id})
}

// GetJourneys godoc
// @Summary List journeys in the catalog
// @Tags journeys
// @Produce json
// @Success 200 {object} util.Response
// @Router /journeys [get]
func (c *JourneyController) GetJourneys(ctx *gin.Context) {
	journeys, err := c.JourneyService.GetJourneys()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"journeys": journeys})
}

// GetJourneyDetail godoc
// @Summary Journey detail with its tutorials
// @Tags journeys
// @Produce json
// @Param id path string true "journey id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /journeys/{id} [get]
func (c *JourneyController) GetJourneyDetail(ctx *gin.Context) {
	detail, err := c.JourneyService.GetJourneyDetail(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrJourneyNotFound) {
			util.NotFound(ctx, "Journey not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

type AddTutorialRequest struct {
	Title    string `json:"title" binding:"required"`
	Position int    `json:"position"`
}

// AddTutorial godoc
// @Summary Append a tutorial to a journey
// @Tags journeys
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "journey id"
// @Param body body AddTutorialRequest true "tutorial payload"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /journeys/{id}/tutorials [post]
func (c *JourneyController) AddTutorial(ctx *gin.Context) {
	var req AddTutorialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tutorial := &model.Tutorial{
		Title:    req.Title,
		Position: req.Position,
	}

	id, err := c.JourneyService.AddTutorial(ctx.Param("id"), tutorial)
	if err != nil {
		if errors.Is(err, util.ErrJourneyNotFound) {
			util.NotFound(ctx, "Journey not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"tutorialId": id})
}
