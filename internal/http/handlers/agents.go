package handlers

import (
	"net/http"

	"travelbackend/internal/http/middleware"
	"travelbackend/internal/services"
	"travelbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

// AgentHandler exposes the agent's own profile, the tier-progress summary and
// the admin tier override.
type AgentHandler struct {
	Agents services.AgentService
}

// GET /api/agents/me
func (h AgentHandler) Me(c *gin.Context) {
	rc := middleware.Identity(c)
	agent, err := h.Agents.Get(rc.AgentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	progress, err := h.Agents.Progress(rc.AgentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent": agent, "tier_progress": progress})
}

// GET /api/agents/me/tier-progress
func (h AgentHandler) TierProgress(c *gin.Context) {
	progress, err := h.Agents.Progress(middleware.Identity(c).AgentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

type tierUpdateRequest struct {
	Tier string `json:"tier" binding:"required"`
}

// PUT /api/agents/:id/tier (admin)
//
// Quotes keep the discount percentage captured at calculation time, so a tier
// change here never reprices an issued quote.
func (h AgentHandler) UpdateTier(c *gin.Context) {
	var req tierUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	agent, err := h.Agents.UpdateTier(c.Param("id"), req.Tier)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "agents", "tier_update",
		"agent "+agent.ID+" -> "+agent.Tier)
	c.JSON(http.StatusOK, agent)
}
