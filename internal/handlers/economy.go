package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pausenhof-backend/internal/engine"
	"pausenhof-backend/internal/models"
)

type EconomyHandler struct {
	engine *engine.Engine
}

func NewEconomyHandler(eng *engine.Engine) *EconomyHandler {
	return &EconomyHandler{engine: eng}
}

func (h *EconomyHandler) ListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": models.Jobs})
}

func (h *EconomyHandler) Work(c *gin.Context) {
	var req models.WorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.engine.Work(accountName(c), req.Job)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *EconomyHandler) ListCrimes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"crimes": models.Crimes})
}

func (h *EconomyHandler) CommitCrime(c *gin.Context) {
	var req models.CrimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.engine.CommitCrime(accountName(c), req.Crime)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *EconomyHandler) ListItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": models.Items})
}

func (h *EconomyHandler) BuyItem(c *gin.Context) {
	var req models.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.engine.BuyItem(accountName(c), req.Item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *EconomyHandler) UseItem(c *gin.Context) {
	var req models.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.engine.UseItem(accountName(c), req.Item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *EconomyHandler) ListBusinesses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"businesses": models.Businesses})
}

func (h *EconomyHandler) BuyBusiness(c *gin.Context) {
	var req models.BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.engine.BuyBusiness(accountName(c), req.Business)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *EconomyHandler) CollectIncome(c *gin.Context) {
	res, err := h.engine.CollectIncome(accountName(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListStocks runs the traffic-driven market tick before reading prices.
func (h *EconomyHandler) ListStocks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stocks": h.engine.TickMarket()})
}

func (h *EconomyHandler) BuyStock(c *gin.Context) {
	var req models.StockTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.engine.BuyStock(accountName(c), req.Symbol, req.Shares)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *EconomyHandler) SellStock(c *gin.Context) {
	var req models.StockTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.engine.SellStock(accountName(c), req.Symbol, req.Shares)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
