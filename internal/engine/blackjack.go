package engine

import (
	"fmt"

	"pausenhof-backend/internal/models"
)

const (
	blackjackPayout = 2.0 // regular win pays stake × 2
	naturalPayout   = 2.5 // two-card 21 at deal time
)

type BlackjackResult struct {
	AccountState
	Game    *models.BlackjackView `json:"blackjack"`
	Payout  float64               `json:"payout,omitempty"`
	Message string                `json:"message"`
}

// StartBlackjack deals a fresh hand. The stake is deducted up front; a
// natural two-card 21 resolves immediately at 2.5x without dealer play.
// While the hand stays live the response conceals the dealer hole card
// and never carries the deck.
func (e *Engine) StartBlackjack(name string, stake float64) (*BlackjackResult, error) {
	if stake <= 0 {
		return nil, ErrInvalidStake
	}

	var res *BlackjackResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		if acc.Blackjack != nil {
			return ErrGameInProgress
		}
		if acc.Balance < stake {
			return ErrInsufficientFunds
		}

		deck := models.OrderedDeck()
		e.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

		game := &models.BlackjackGame{Deck: deck, Bet: stake, Status: models.BlackjackPlaying}
		game.Player = []models.Card{game.Draw(), game.Draw()}
		game.Dealer = []models.Card{game.Draw(), game.Draw()}

		acc.Balance -= stake

		if models.HandValue(game.Player) == 21 {
			game.Status = models.BlackjackWin
			payout := stake * naturalPayout
			acc.Balance += payout
			recordGame(acc, payout, stake)
			res = &BlackjackResult{
				AccountState: stateOf(acc),
				Game:         game.View(),
				Payout:       payout,
				Message:      "BLACKJACK!",
			}
			return nil
		}

		acc.Blackjack = game
		res = &BlackjackResult{
			AccountState: stateOf(acc),
			Game:         game.View(),
			Message:      "Your move: hit, double, or stand",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// HitBlackjack draws one card for the player. Busting resolves the hand
// as a loss on the spot.
func (e *Engine) HitBlackjack(name string) (*BlackjackResult, error) {
	var res *BlackjackResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		game := acc.Blackjack
		if game == nil {
			return ErrNoActiveGame
		}

		game.Player = append(game.Player, game.Draw())
		score := models.HandValue(game.Player)

		if score > 21 {
			game.Status = models.BlackjackLose
			acc.Blackjack = nil
			recordGame(acc, 0, game.Bet)
			res = &BlackjackResult{
				AccountState: stateOf(acc),
				Game:         game.View(),
				Message:      fmt.Sprintf("Bust! (%d)", score),
			}
			return nil
		}

		res = &BlackjackResult{
			AccountState: stateOf(acc),
			Game:         game.View(),
			Message:      fmt.Sprintf("You have %d", score),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DoubleBlackjack doubles the stake, draws exactly one card and forces a
// stand, unless that card already busts the hand.
func (e *Engine) DoubleBlackjack(name string) (*BlackjackResult, error) {
	var res *BlackjackResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		game := acc.Blackjack
		if game == nil {
			return ErrNoActiveGame
		}
		if acc.Balance < game.Bet {
			return ErrInsufficientFunds
		}

		acc.Balance -= game.Bet
		game.Bet *= 2
		game.Player = append(game.Player, game.Draw())

		if models.HandValue(game.Player) > 21 {
			game.Status = models.BlackjackLose
			acc.Blackjack = nil
			recordGame(acc, 0, game.Bet)
			res = &BlackjackResult{
				AccountState: stateOf(acc),
				Game:         game.View(),
				Message:      fmt.Sprintf("Bust! (%d)", models.HandValue(game.Player)),
			}
			return nil
		}

		res = e.resolveDealer(acc, game)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// StandBlackjack ends the player's turn and plays out the dealer.
func (e *Engine) StandBlackjack(name string) (*BlackjackResult, error) {
	var res *BlackjackResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		game := acc.Blackjack
		if game == nil {
			return ErrNoActiveGame
		}
		res = e.resolveDealer(acc, game)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// resolveDealer draws dealer cards to 17 (stand on any 17) and settles
// the hand. The slot is cleared and the full dealer hand revealed.
func (e *Engine) resolveDealer(acc *models.Account, game *models.BlackjackGame) *BlackjackResult {
	for models.HandValue(game.Dealer) < 17 {
		game.Dealer = append(game.Dealer, game.Draw())
	}

	playerScore := models.HandValue(game.Player)
	dealerScore := models.HandValue(game.Dealer)

	var payout float64
	var message string
	switch {
	case dealerScore > 21:
		game.Status = models.BlackjackWin
		payout = game.Bet * blackjackPayout
		message = fmt.Sprintf("Dealer busts with %d. You win!", dealerScore)
	case playerScore > dealerScore:
		game.Status = models.BlackjackWin
		payout = game.Bet * blackjackPayout
		message = fmt.Sprintf("%d beats %d. You win!", playerScore, dealerScore)
	case playerScore == dealerScore:
		game.Status = models.BlackjackPush
		payout = game.Bet
		message = fmt.Sprintf("Push at %d. Stake returned.", playerScore)
	default:
		game.Status = models.BlackjackLose
		message = fmt.Sprintf("Dealer has %d, you have %d. You lose.", dealerScore, playerScore)
	}

	acc.Balance += payout
	acc.Blackjack = nil
	recordGame(acc, payout, game.Bet)

	return &BlackjackResult{
		AccountState: stateOf(acc),
		Game:         game.View(),
		Payout:       payout,
		Message:      message,
	}
}
