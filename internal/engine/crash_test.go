package engine

import (
	"errors"
	"math"
	"testing"

	"pausenhof-backend/internal/models"
)

func TestCrashPointDistributionBounds(t *testing.T) {
	// Instant crash roll.
	e := newTestEngine(t, &fakeRNG{floats: []float64{0.01}})
	if got := e.rollCrashPoint(); got != 1.0 {
		t.Fatalf("instant crash must land at 1.00x, got %.2f", got)
	}

	// 0.97 / (1 - 0.9) = 9.7.
	e = newTestEngine(t, &fakeRNG{floats: []float64{0.5, 0.9}})
	if got := e.rollCrashPoint(); math.Abs(got-9.7) > 1e-9 {
		t.Fatalf("expected crash point 9.70, got %.2f", got)
	}

	// Extreme draw clamps to the cap.
	e = newTestEngine(t, &fakeRNG{floats: []float64{0.5, 0.9999999}})
	if got := e.rollCrashPoint(); got != maxCrashPoint {
		t.Fatalf("expected cap %.2f, got %.2f", maxCrashPoint, got)
	}
}

func TestStartCrashHidesCrashPoint(t *testing.T) {
	e := newTestEngine(t, &fakeRNG{floats: []float64{0.5, 0.9}})

	res, err := e.StartCrash("alice", 100)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if res.CrashPoint != 0 {
		t.Fatalf("crash point must not be returned at start, got %.2f", res.CrashPoint)
	}
	if res.Balance != 900 {
		t.Fatalf("stake not deducted, balance %.2f", res.Balance)
	}

	if _, err := e.StartCrash("alice", 100); !errors.Is(err, ErrGameInProgress) {
		t.Fatalf("expected ErrGameInProgress, got %v", err)
	}
}

func TestCrashCashoutAboveCrashPointLoses(t *testing.T) {
	e := newTestEngine(t, &fakeRNG{floats: []float64{0.5, 0.9}}) // crash point 9.7

	if _, err := e.StartCrash("alice", 100); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	res, err := e.CashoutCrash("alice", 9.71)
	if err != nil {
		t.Fatalf("cashout failed: %v", err)
	}

	if res.Status != models.CrashCrashed {
		t.Fatalf("claim above the hidden point must lose, got %s", res.Status)
	}
	if math.Abs(res.CrashPoint-9.7) > 1e-9 {
		t.Fatalf("resolution must reveal the crash point, got %.2f", res.CrashPoint)
	}
	if res.Balance != 900 {
		t.Fatalf("stake must stay forfeited, balance %.2f", res.Balance)
	}

	if _, err := e.CashoutCrash("alice", 2); !errors.Is(err, ErrNoActiveGame) {
		t.Fatalf("slot must be cleared after loss, got %v", err)
	}
}

func TestCrashCashoutAtOrBelowCrashPointPaysExactly(t *testing.T) {
	e := newTestEngine(t, &fakeRNG{floats: []float64{0.5, 0.9}}) // crash point 9.7

	if _, err := e.StartCrash("alice", 100); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	res, err := e.CashoutCrash("alice", 5.5)
	if err != nil {
		t.Fatalf("cashout failed: %v", err)
	}

	if res.Status != models.CrashCashedOut {
		t.Fatalf("expected cashed_out, got %s", res.Status)
	}
	if res.Payout != 550 {
		t.Fatalf("payout must be stake x claimed exactly, got %.2f", res.Payout)
	}
	if res.Balance != 900+550 {
		t.Fatalf("expected balance 1450, got %.2f", res.Balance)
	}

	acc := mustAccount(t, e, "alice")
	if acc.GamesPlayed != 1 || acc.GamesWon != 1 {
		t.Fatalf("expected stats 1/1, got %d/%d", acc.GamesPlayed, acc.GamesWon)
	}
}

func TestCrashCashoutAtExactlyOneIsNotAWin(t *testing.T) {
	e := newTestEngine(t, &fakeRNG{floats: []float64{0.5, 0.9}})

	if _, err := e.StartCrash("alice", 100); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	res, err := e.CashoutCrash("alice", 1.0)
	if err != nil {
		t.Fatalf("cashout failed: %v", err)
	}
	if res.Payout != 100 {
		t.Fatalf("1.00x pays the stake back, got %.2f", res.Payout)
	}

	acc := mustAccount(t, e, "alice")
	if acc.GamesWon != 0 {
		t.Fatal("breaking even must not count as a win")
	}
}

func TestReportCrashIsIdempotent(t *testing.T) {
	e := newTestEngine(t, &fakeRNG{floats: []float64{0.5, 0.9}})

	if _, err := e.StartCrash("alice", 100); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	res, err := e.ReportCrash("alice")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if res.Status != models.CrashCrashed {
		t.Fatalf("expected crashed, got %s", res.Status)
	}
	if math.Abs(res.CrashPoint-9.7) > 1e-9 {
		t.Fatalf("report must reveal the crash point, got %.2f", res.CrashPoint)
	}

	// A duplicate report is a no-op, not an error.
	res, err = e.ReportCrash("alice")
	if err != nil {
		t.Fatalf("duplicate report must not fail: %v", err)
	}
	if res.Status != "idle" {
		t.Fatalf("expected idle, got %s", res.Status)
	}
	if res.Balance != 900 {
		t.Fatalf("duplicate report must not move the balance, got %.2f", res.Balance)
	}
}
