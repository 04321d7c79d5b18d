package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/activity-tracker-api/internal/constants"
	"github.com/yukikurage/activity-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/activity-tracker-api/internal/errors"
	"github.com/yukikurage/activity-tracker-api/internal/services"
)

type InteractionHandler struct {
	interactionService *services.InteractionService
}

func NewInteractionHandler(interactionService *services.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

// ListRecent returns the latest ?limit interactions (default 50)
func (h *InteractionHandler) ListRecent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultInteractionLimit)))
	if err != nil {
		apierrors.BadRequest(c, "Invalid limit")
		return
	}

	interactions, err := h.interactionService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInteractionDTOs(interactions))
}

func (h *InteractionHandler) CreateInteraction(c *gin.Context) {
	type CreateInteractionRequest struct {
		Type     string `json:"type"`
		Element  string `json:"element"`
		Position string `json:"position"`
	}

	var req CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	interaction, err := h.interactionService.RecordInteraction(c.Request.Context(), services.CreateInteractionInput{
		Type:     req.Type,
		Element:  req.Element,
		Position: req.Position,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInteractionDTO(*interaction))
}

func (h *InteractionHandler) ListByType(c *gin.Context) {
	interactions, err := h.interactionService.ListByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInteractionDTOs(interactions))
}
