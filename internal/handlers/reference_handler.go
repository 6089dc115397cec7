package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salescrm/internal/repositories"
)

// ReferenceHandler serves the read-only dimension tables the dashboard filter
// widgets are populated from.
type ReferenceHandler struct {
	Stages  repositories.StageStore
	Sources repositories.SourceStore
	Users   repositories.UserStore
}

func NewReferenceHandler(stages repositories.StageStore, sources repositories.SourceStore, users repositories.UserStore) *ReferenceHandler {
	return &ReferenceHandler{Stages: stages, Sources: sources, Users: users}
}

func (h *ReferenceHandler) ListStages(c *gin.Context) {
	stages, err := h.Stages.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stages)
}

func (h *ReferenceHandler) ListSources(c *gin.Context) {
	sources, err := h.Sources.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sources)
}

func (h *ReferenceHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
