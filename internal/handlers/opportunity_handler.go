package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"salescrm/internal/models"
	"salescrm/internal/repositories"
	"salescrm/internal/services"
)

type OpportunityHandler struct {
	Opportunities repositories.OpportunityStore
	Transitions   *services.StageTransitionService
}

func NewOpportunityHandler(opps repositories.OpportunityStore, transitions *services.StageTransitionService) *OpportunityHandler {
	return &OpportunityHandler{Opportunities: opps, Transitions: transitions}
}

func (h *OpportunityHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	opp, err := h.Opportunities.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opp)
}

func (h *OpportunityHandler) List(c *gin.Context) {
	opps, err := h.Opportunities.ListViews(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opps)
}

func (h *OpportunityHandler) History(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	entries, err := h.Transitions.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type advanceStageRequest struct {
	StageID int64 `json:"stage_id" binding:"required"`
}

func (h *OpportunityHandler) Advance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req advanceStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Transitions.AdvanceOpportunity(c.Request.Context(), id, req.StageID, time.Now()); err != nil {
		respondError(c, err)
		return
	}
	opp, err := h.Opportunities.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opp)
}

type closeOpportunityRequest struct {
	Status models.OpportunityStatus `json:"status" binding:"required"`
}

func (h *OpportunityHandler) Close(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req closeOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Terminal() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be WON or LOST"})
		return
	}
	if err := h.Transitions.CloseOpportunity(c.Request.Context(), id, req.Status, time.Now()); err != nil {
		respondError(c, err)
		return
	}
	opp, err := h.Opportunities.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opp)
}
