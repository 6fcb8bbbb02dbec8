package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"pausenhof-backend/internal/engine"
	"pausenhof-backend/internal/models"
	"pausenhof-backend/internal/services"
	"pausenhof-backend/internal/store"
)

type AuthHandler struct {
	ledger     *store.Ledger
	engine     *engine.Engine
	jwtService *services.JWTService
	starting   float64
}

func NewAuthHandler(ledger *store.Ledger, eng *engine.Engine, jwtService *services.JWTService, startingBalance float64) *AuthHandler {
	return &AuthHandler{
		ledger:     ledger,
		engine:     eng,
		jwtService: jwtService,
		starting:   startingBalance,
	}
}

// Register creates an account keyed by name, one per client origin. The
// credential secret is stored bcrypt-hashed, never in the clear.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	acc, err := h.ledger.Create(req.Name, string(hash), c.ClientIP(), h.starting)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.jwtService.GenerateToken(acc.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created. Go work!",
		"token":   token,
		"name":    acc.Name,
		"balance": acc.Balance,
		"level":   acc.Level,
	})
}

// Login verifies the secret and returns a token plus the resumable state:
// balance, holdings, and any live blackjack hand (concealed).
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var storedHash string
	err := h.ledger.Read(req.Name, func(acc *models.Account) error {
		storedHash = acc.PasswordHash
		return nil
	})
	if err != nil {
		// Same response as a bad password, so names cannot be probed.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong name or password"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong name or password"})
		return
	}

	token, err := h.jwtService.GenerateToken(req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	profile, err := h.engine.Profile(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"account": profile,
	})
}
