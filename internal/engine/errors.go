package engine

import "errors"

// Every engine error is recoverable at the call boundary: the handler maps
// it to a status code and returns the unmutated account state.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrInvalidStake       = errors.New("stake must be positive")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidBet         = errors.New("malformed bet")

	ErrGameInProgress = errors.New("a game is already running")
	ErrNoActiveGame   = errors.New("no active game")
	ErrOnCooldown     = errors.New("action is still on cooldown")
	ErrInJail         = errors.New("you are in jail")
	ErrLevelTooLow    = errors.New("level too low for this action")
	ErrAlreadyClaimed = errors.New("daily bonus already claimed today")

	ErrUnknownJob      = errors.New("unknown job")
	ErrUnknownCrime    = errors.New("unknown crime")
	ErrUnknownItem     = errors.New("unknown item")
	ErrUnknownBusiness = errors.New("unknown business")
	ErrUnknownStock    = errors.New("unknown stock symbol")
	ErrNotConsumable   = errors.New("item is not consumable")
	ErrItemNotOwned    = errors.New("item not in inventory")

	ErrForbidden = errors.New("admin only")
)
