package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pausenhof-backend/internal/engine"
	"pausenhof-backend/internal/store"
)

// respondError maps engine and store errors onto status codes. Every
// engine error is recoverable: the client gets the reason and the account
// is left untouched.
func respondError(c *gin.Context, err error) {
	status := http.StatusBadRequest

	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrNameTaken), errors.Is(err, store.ErrOriginTaken):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrInsufficientFunds), errors.Is(err, engine.ErrInsufficientShares):
		status = http.StatusPaymentRequired
	case errors.Is(err, engine.ErrGameInProgress),
		errors.Is(err, engine.ErrNoActiveGame),
		errors.Is(err, engine.ErrOnCooldown),
		errors.Is(err, engine.ErrInJail),
		errors.Is(err, engine.ErrLevelTooLow),
		errors.Is(err, engine.ErrAlreadyClaimed):
		status = http.StatusPreconditionFailed
	case errors.Is(err, engine.ErrForbidden):
		status = http.StatusForbidden
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func accountName(c *gin.Context) string {
	return c.GetString("account")
}
