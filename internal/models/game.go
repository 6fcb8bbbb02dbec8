package models

const (
	BlackjackPlaying = "playing"
	BlackjackWin     = "win"
	BlackjackLose    = "lose"
	BlackjackPush    = "push"
)

const (
	CrashCashedOut = "cashed_out"
	CrashCrashed   = "crashed"
)

// BlackjackGame is the single active hand an account may hold. The deck
// and the dealer hole card are server state; responses go through
// BlackjackView, which conceals both until the hand resolves.
type BlackjackGame struct {
	Deck   []Card  `json:"deck"`
	Player []Card  `json:"player"`
	Dealer []Card  `json:"dealer"`
	Bet    float64 `json:"bet"`
	Status string  `json:"status"`
}

// Draw removes and returns the top card. A deck instance hands out each
// card at most once; a 52-card deck cannot run dry within one hand.
func (g *BlackjackGame) Draw() Card {
	c := g.Deck[len(g.Deck)-1]
	g.Deck = g.Deck[:len(g.Deck)-1]
	return c
}

type BlackjackView struct {
	Player      []Card  `json:"player"`
	Dealer      []Card  `json:"dealer"`
	Status      string  `json:"status"`
	Bet         float64 `json:"bet"`
	PlayerScore int     `json:"player_score"`
	DealerScore int     `json:"dealer_score,omitempty"`
}

// View renders the game for the client. While the hand is live the dealer
// hole card is replaced with HiddenCard and the dealer score is withheld;
// terminal states reveal the full dealer hand.
func (g *BlackjackGame) View() *BlackjackView {
	v := &BlackjackView{
		Player:      g.Player,
		Status:      g.Status,
		Bet:         g.Bet,
		PlayerScore: HandValue(g.Player),
	}
	if g.Status == BlackjackPlaying {
		v.Dealer = []Card{g.Dealer[0], HiddenCard}
		return v
	}
	v.Dealer = g.Dealer
	v.DealerScore = HandValue(g.Dealer)
	return v
}

// CrashGame holds the stake and the crash point fixed at start time. The
// crash point is never serialized toward the client before resolution.
type CrashGame struct {
	Bet        float64 `json:"bet"`
	CrashPoint float64 `json:"crash_point"`
	StartedAt  int64   `json:"started_at"`
}
