package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models/dto"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/services"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/middleware"
)

// EventController handles event endpoints
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// List returns every event
// @Summary List events
// @Tags events
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Event}
// @Router /events [get]
func (c *EventController) List(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.eventService.List())
}

// Get returns one event
// @Summary Get event
// @Tags events
// @Produce json
// @Security CookieAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) Get(ctx *gin.Context) {
	event, err := c.eventService.Get(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, event)
}

// Create schedules a new event organized by the caller
// @Summary Create event
// @Tags events
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body models.Event true "Event"
// @Success 201 {object} dto.APIResponse{data=models.Event}
// @Failure 400 {object} dto.ErrorResponse "Invalid event data"
// @Failure 409 {object} dto.ErrorResponse "Id already in use"
// @Router /events [post]
func (c *EventController) Create(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var event models.Event
	if !middleware.BindJSON(ctx, &event, "event data") {
		return
	}
	created, err := c.eventService.Create(ctx.Request.Context(), principal, &event)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, created)
}

// Update merge-patches an event
// @Summary Update event
// @Description The organizer or an admin may update
// @Tags events
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Event ID"
// @Param request body object true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [put]
func (c *EventController) Update(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	patch, ok := middleware.BindPatch(ctx)
	if !ok {
		return
	}
	updated, err := c.eventService.Update(ctx.Request.Context(), principal, ctx.Param("id"), patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, updated)
}

// Delete cancels an event
// @Summary Delete event
// @Tags events
// @Produce json
// @Security CookieAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (c *EventController) Delete(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	if err := c.eventService.Delete(ctx.Request.Context(), principal, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Event deleted successfully"})
}

// RSVP registers the caller for an event
// @Summary RSVP to event
// @Tags events
// @Produce json
// @Security CookieAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Already RSVP'd"
// @Router /events/{id}/rsvp [post]
func (c *EventController) RSVP(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	if err := c.eventService.RSVP(ctx.Request.Context(), principal, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "RSVP successful"})
}
