package engine

import (
	"errors"
	"testing"

	"pausenhof-backend/internal/models"
)

func TestStartBlackjackRejectsBadStakes(t *testing.T) {
	e := newTestEngine(t, &fakeRNG{})

	if _, err := e.StartBlackjack("alice", 0); !errors.Is(err, ErrInvalidStake) {
		t.Fatalf("expected ErrInvalidStake, got %v", err)
	}
	if _, err := e.StartBlackjack("alice", -5); !errors.Is(err, ErrInvalidStake) {
		t.Fatalf("expected ErrInvalidStake, got %v", err)
	}
	if _, err := e.StartBlackjack("alice", 5000); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if acc := mustAccount(t, e, "alice"); acc.Balance != 1000 {
		t.Fatalf("rejected starts must not touch the balance, got %.2f", acc.Balance)
	}
}

func TestNaturalBlackjackResolvesImmediately(t *testing.T) {
	e := newTestEngine(t, &fakeRNG{deck: []models.Card{
		card("A", "♠"), card("K", "♠"), // player: natural 21
		card("9", "♥"), card("9", "♦"), // dealer
	}})

	res, err := e.StartBlackjack("alice", 100)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if res.Game.Status != models.BlackjackWin {
		t.Fatalf("expected win, got %s", res.Game.Status)
	}
	if res.Payout != 250 {
		t.Fatalf("natural should pay 2.5x, got %.2f", res.Payout)
	}
	if res.Balance != 1000-100+250 {
		t.Fatalf("expected balance 1150, got %.2f", res.Balance)
	}

	// The slot is already cleared; the hand cannot be played on.
	if _, err := e.HitBlackjack("alice"); !errors.Is(err, ErrNoActiveGame) {
		t.Fatalf("expected ErrNoActiveGame after natural, got %v", err)
	}
	if _, err := e.StandBlackjack("alice"); !errors.Is(err, ErrNoActiveGame) {
		t.Fatalf("expected ErrNoActiveGame after natural, got %v", err)
	}

	acc := mustAccount(t, e, "alice")
	if acc.GamesPlayed != 1 || acc.GamesWon != 1 {
		t.Fatalf("expected stats 1/1, got %d/%d", acc.GamesPlayed, acc.GamesWon)
	}
}

func TestBlackjackConcealsDealerHoleCard(t *testing.T) {
	e := newTestEngine(t, &fakeRNG{deck: []models.Card{
		card("10", "♥"), card("8", "♥"),
		card("6", "♠"), card("5", "♠"),
	}})

	res, err := e.StartBlackjack("alice", 50)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if res.Game.Status != models.BlackjackPlaying {
		t.Fatalf("expected playing, got %s", res.Game.Status)
	}
	if len(res.Game.Dealer) != 2 {
		t.Fatalf("expected two dealer cards in view, got %d", len(res.Game.Dealer))
	}
	if res.Game.Dealer[1] != models.HiddenCard {
		t.Fatalf("dealer hole card leaked: %+v", res.Game.Dealer[1])
	}
	if res.Game.DealerScore != 0 {
		t.Fatalf("dealer score leaked: %d", res.Game.DealerScore)
	}

	if _, err := e.StartBlackjack("alice", 50); !errors.Is(err, ErrGameInProgress) {
		t.Fatalf("expected ErrGameInProgress, got %v", err)
	}
}

func TestDealerDrawsToSeventeen(t *testing.T) {
	// Dealer shows 6+5=11 and must keep drawing; the K brings it to 21.
	e := newTestEngine(t, &fakeRNG{deck: []models.Card{
		card("10", "♥"), card("8", "♥"), // player: 18
		card("6", "♠"), card("5", "♠"), // dealer: 11
		card("K", "♦"), // dealer draw: 21
	}})

	if _, err := e.StartBlackjack("alice", 100); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	res, err := e.StandBlackjack("alice")
	if err != nil {
		t.Fatalf("stand failed: %v", err)
	}

	if res.Game.Status != models.BlackjackLose {
		t.Fatalf("expected lose against dealer 21, got %s", res.Game.Status)
	}
	if len(res.Game.Dealer) != 3 {
		t.Fatalf("dealer at 11 must draw, got %d cards", len(res.Game.Dealer))
	}
	if res.Game.DealerScore != 21 {
		t.Fatalf("expected dealer 21, got %d", res.Game.DealerScore)
	}
}

func TestDealerStandsOnSeventeen(t *testing.T) {
	// Dealer holds 10+7=17 and must not draw; player's 18 wins 2x.
	e := newTestEngine(t, &fakeRNG{deck: []models.Card{
		card("9", "♥"), card("9", "♦"), // player: 18
		card("10", "♠"), card("7", "♠"), // dealer: 17
	}})

	if _, err := e.StartBlackjack("alice", 100); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	res, err := e.StandBlackjack("alice")
	if err != nil {
		t.Fatalf("stand failed: %v", err)
	}

	if res.Game.Status != models.BlackjackWin {
		t.Fatalf("expected win, got %s", res.Game.Status)
	}
	if len(res.Game.Dealer) != 2 {
		t.Fatalf("dealer on 17 must stand, drew to %d cards", len(res.Game.Dealer))
	}
	if res.Payout != 200 {
		t.Fatalf("expected 2x payout 200, got %.2f", res.Payout)
	}
	if res.Balance != 1000-100+200 {
		t.Fatalf("expected balance 1100, got %.2f", res.Balance)
	}
}

func TestHitBust(t *testing.T) {
	e := newTestEngine(t, &fakeRNG{deck: []models.Card{
		card("10", "♥"), card("6", "♥"), // player: 16
		card("10", "♠"), card("7", "♠"),
		card("K", "♦"), // player hit: 26, bust
	}})

	if _, err := e.StartBlackjack("alice", 100); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	res, err := e.HitBlackjack("alice")
	if err != nil {
		t.Fatalf("hit failed: %v", err)
	}
	if res.Game.Status != models.BlackjackLose {
		t.Fatalf("expected lose on bust, got %s", res.Game.Status)
	}
	if res.Balance != 900 {
		t.Fatalf("stake should stay lost, balance %.2f", res.Balance)
	}
	if _, err := e.StandBlackjack("alice"); !errors.Is(err, ErrNoActiveGame) {
		t.Fatalf("expected cleared slot after bust, got %v", err)
	}
}

func TestPushReturnsStake(t *testing.T) {
	e := newTestEngine(t, &fakeRNG{deck: []models.Card{
		card("10", "♥"), card("8", "♥"), // player: 18
		card("10", "♠"), card("8", "♠"), // dealer: 18
	}})

	if _, err := e.StartBlackjack("alice", 100); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	res, err := e.StandBlackjack("alice")
	if err != nil {
		t.Fatalf("stand failed: %v", err)
	}

	if res.Game.Status != models.BlackjackPush {
		t.Fatalf("expected push, got %s", res.Game.Status)
	}
	if res.Balance != 1000 {
		t.Fatalf("push must return the stake, balance %.2f", res.Balance)
	}

	acc := mustAccount(t, e, "alice")
	if acc.GamesPlayed != 1 || acc.GamesWon != 0 {
		t.Fatalf("a push counts as played but not won, got %d/%d", acc.GamesPlayed, acc.GamesWon)
	}
}

func TestDoubleDrawsOneCardAndForcesStand(t *testing.T) {
	e := newTestEngine(t, &fakeRNG{deck: []models.Card{
		card("6", "♥"), card("5", "♥"), // player: 11
		card("10", "♠"), card("7", "♠"), // dealer: 17
		card("K", "♦"), // player double draw: 21
	}})

	if _, err := e.StartBlackjack("alice", 100); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	res, err := e.DoubleBlackjack("alice")
	if err != nil {
		t.Fatalf("double failed: %v", err)
	}

	if res.Game.Status != models.BlackjackWin {
		t.Fatalf("expected win, got %s", res.Game.Status)
	}
	if res.Game.Bet != 200 {
		t.Fatalf("double must double the stake, got %.2f", res.Game.Bet)
	}
	if len(res.Game.Player) != 3 {
		t.Fatalf("double draws exactly one card, got %d", len(res.Game.Player))
	}
	// Staked 200 total, won 400.
	if res.Balance != 1000-200+400 {
		t.Fatalf("expected balance 1200, got %.2f", res.Balance)
	}
}

func TestDoubleBustLosesDoubledStake(t *testing.T) {
	e := newTestEngine(t, &fakeRNG{deck: []models.Card{
		card("10", "♥"), card("6", "♥"), // player: 16
		card("10", "♠"), card("7", "♠"),
		card("9", "♦"), // player double draw: 25, bust
	}})

	if _, err := e.StartBlackjack("alice", 100); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	res, err := e.DoubleBlackjack("alice")
	if err != nil {
		t.Fatalf("double failed: %v", err)
	}

	if res.Game.Status != models.BlackjackLose {
		t.Fatalf("expected lose, got %s", res.Game.Status)
	}
	if res.Balance != 800 {
		t.Fatalf("expected both stakes lost (balance 800), got %.2f", res.Balance)
	}
	if len(res.Game.Player) != 3 {
		t.Fatalf("double draws exactly one card, got %d", len(res.Game.Player))
	}
}

func TestDoubleRequiresMatchingBalance(t *testing.T) {
	e := newTestEngine(t, &fakeRNG{deck: []models.Card{
		card("6", "♥"), card("5", "♥"),
		card("10", "♠"), card("7", "♠"),
	}})

	// Stake 600 of 1000: the remaining 400 cannot cover the double.
	if _, err := e.StartBlackjack("alice", 600); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := e.DoubleBlackjack("alice"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	acc := mustAccount(t, e, "alice")
	if acc.Blackjack == nil {
		t.Fatal("rejected double must leave the game running")
	}
	if acc.Balance != 400 {
		t.Fatalf("rejected double must not touch the balance, got %.2f", acc.Balance)
	}
}
