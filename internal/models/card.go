package models

// Card is an immutable rank/suit pair. The concealed dealer hole card is
// represented by HiddenCard in responses; the real card never leaves the
// server while a hand is live.
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

var HiddenCard = Card{Rank: "?", Suit: "?"}

var (
	Suits = []string{"♥", "♦", "♠", "♣"}
	Ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
)

// OrderedDeck returns all 52 rank-suit combinations in a fixed order.
// Callers shuffle it through the RNG provider before dealing.
func OrderedDeck() []Card {
	deck := make([]Card, 0, len(Suits)*len(Ranks))
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// HandValue scores a blackjack hand: faces count 10, aces count 11 and
// are re-counted as 1 one at a time while the total busts.
func HandValue(hand []Card) int {
	score := 0
	aces := 0
	for _, c := range hand {
		switch c.Rank {
		case "J", "Q", "K":
			score += 10
		case "A":
			aces++
			score += 11
		case "10":
			score += 10
		default:
			score += int(c.Rank[0] - '0')
		}
	}
	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}
	return score
}
