package domain

import (
	"fmt"
	"sort"
)

// Suit identifies one of the four standard suits.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists all four suits in deal order.
var Suits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	default:
		return "?"
	}
}

// Valid reports whether the suit is one of the four playable suits.
func (s Suit) Valid() bool {
	return s >= Clubs && s <= Spades
}

// Rank is a card rank from Two (2) up to Ace (14). Higher rank always wins
// within a suit.
type Rank int

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Ten {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Valid reports whether the rank is within the playable range.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card is an immutable (suit, rank) pair.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// SortHand orders a hand by suit then ascending rank, for stable display and
// deterministic bot choices.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Suit != cards[j].Suit {
			return cards[i].Suit < cards[j].Suit
		}
		return cards[i].Rank < cards[j].Rank
	})
}

// HasSuit reports whether any card of the given suit is held.
func HasSuit(hand []Card, suit Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// CardsOfSuit returns the cards of the given suit, in hand order.
func CardsOfSuit(hand []Card, suit Suit) []Card {
	var out []Card
	for _, c := range hand {
		if c.Suit == suit {
			out = append(out, c)
		}
	}
	return out
}

// ContainsCard reports whether the exact card is present in the hand.
func ContainsCard(hand []Card, card Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}

// RemoveCard removes one occurrence of the card and returns the updated hand.
func RemoveCard(hand []Card, card Card) []Card {
	out := make([]Card, 0, len(hand))
	removed := false
	for _, c := range hand {
		if !removed && c == card {
			removed = true
			continue
		}
		out = append(out, c)
	}
	return out
}

// HasFaceCardOrBetter reports whether the hand holds at least one card ranked
// Jack or higher. A hand failing this check forces a redeal.
func HasFaceCardOrBetter(hand []Card) bool {
	for _, c := range hand {
		if c.Rank >= Jack {
			return true
		}
	}
	return false
}
