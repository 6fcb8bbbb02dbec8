package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pausenhof-backend/internal/engine"
	"pausenhof-backend/internal/models"
)

type UserHandler struct {
	engine *engine.Engine
}

func NewUserHandler(eng *engine.Engine) *UserHandler {
	return &UserHandler{engine: eng}
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	profile, err := h.engine.Profile(accountName(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) Leaderboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"leaderboard": h.engine.Ledger().Leaderboard()})
}

func (h *UserHandler) ClaimDailyBonus(c *gin.Context) {
	res, err := h.engine.ClaimDailyBonus(accountName(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *UserHandler) Transfer(c *gin.Context) {
	var req models.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.engine.Transfer(accountName(c), req.To, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *UserHandler) AdminGrant(c *gin.Context) {
	var req models.AdminGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.engine.AdminGrant(accountName(c), req.Target, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
