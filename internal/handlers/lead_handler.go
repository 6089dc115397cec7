package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"salescrm/internal/models"
	"salescrm/internal/services"
)

type LeadHandler struct {
	Service     *services.LeadService
	Conversions *services.ConversionService
}

func NewLeadHandler(service *services.LeadService, conversions *services.ConversionService) *LeadHandler {
	return &LeadHandler{Service: service, Conversions: conversions}
}

type createLeadRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	OwnerID  int64  `json:"owner_id" binding:"required"`
	SourceID int64  `json:"source_id" binding:"required"`
	Score    int    `json:"lead_score"`
}

func (h *LeadHandler) Create(c *gin.Context) {
	var req createLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lead := &models.Lead{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		OwnerID:  req.OwnerID,
		SourceID: req.SourceID,
		Score:    req.Score,
	}
	if err := h.Service.Create(c.Request.Context(), lead); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

func (h *LeadHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	lead, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) List(c *gin.Context) {
	leads, err := h.Service.ListViews(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

type updateLeadStatusRequest struct {
	Status models.LeadStatus `json:"status" binding:"required"`
}

func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	updated, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type convertLeadRequest struct {
	OwnerID int64           `json:"owner_id" binding:"required"`
	StageID int64           `json:"stage_id" binding:"required"`
	Value   decimal.Decimal `json:"value"`
}

func (h *LeadHandler) Convert(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req convertLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opportunityID, err := h.Conversions.Convert(
		c.Request.Context(), id, req.OwnerID, req.StageID, req.Value, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrNegativeValue) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"opportunity_id": opportunityID})
}
