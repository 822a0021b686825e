package handlers

import (
	"net/http"
	"time"

	"travelbackend/internal/domain"
	"travelbackend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues agent tokens. Identity is resolved here once; everything
// downstream works from the resolved agent id and role.
type AuthHandler struct {
	Agents services.AgentService
	Secret []byte
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	agent, err := h.Agents.GetByEmail(req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusUnauthorized, "unauthorized", "wrong email or password", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "unauthorized", "wrong email or password", nil)
		return
	}
	if agent.Status != "" && agent.Status != "approved" && agent.Status != "active" {
		respondError(c, http.StatusForbidden, "forbidden", "agent account is not approved", nil)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"agent_id": agent.ID,
		"role":     agent.Role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString(h.Secret)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to sign token", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": signed,
		"agent": agent,
	})
}
