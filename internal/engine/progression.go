package engine

import (
	"math"

	"pausenhof-backend/internal/models"
)

// RequiredXP is the XP needed to leave the given level.
func RequiredXP(level int) int {
	return int(math.Floor(100 * math.Pow(float64(level), 1.2)))
}

// GrantXP adds XP and applies level-ups until the remainder no longer
// covers the current requirement. One large grant can cross several
// thresholds. Returns whether at least one level-up happened and the
// resulting level.
func GrantXP(acc *models.Account, amount int) (bool, int) {
	acc.XP += amount
	leveled := false
	for acc.XP >= RequiredXP(acc.Level) {
		acc.XP -= RequiredXP(acc.Level)
		acc.Level++
		leveled = true
	}
	return leveled, acc.Level
}
