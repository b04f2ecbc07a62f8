package domain

import (
	"errors"
	"math/rand"
)

// ErrEmptyDeck is returned by Draw when no cards remain. Dealing arithmetic
// guarantees this never happens in a correctly sequenced round; seeing it
// indicates a dealing bug.
var ErrEmptyDeck = errors.New("draw from empty deck")

// ShuffleMode selects how a new deck is randomized before dealing.
type ShuffleMode int

const (
	// ShuffleUniform is a full Fisher-Yates shuffle, used for round one.
	ShuffleUniform ShuffleMode = iota
	// ShuffleRiffle simulates four physical riffle passes over the ordered
	// deck. Intentionally a weaker shuffle than uniform.
	ShuffleRiffle
)

const riffleShufflePasses = 4

// Deck is an ordered pile of cards drawn from the top.
type Deck struct {
	cards []Card
}

// NewDeck returns the 52-card deck in sorted order.
func NewDeck() *Deck {
	cards := make([]Card, 0, 52)
	for _, s := range Suits {
		for r := Two; r <= Ace; r++ {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	return &Deck{cards: cards}
}

// NewStackedDeck returns a deck that draws the given cards in order. Used to
// script specific deals.
func NewStackedDeck(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// NewShuffledDeck builds a fresh deck and randomizes it with the given mode.
func NewShuffledDeck(rng *rand.Rand, mode ShuffleMode) *Deck {
	d := NewDeck()
	switch mode {
	case ShuffleRiffle:
		for i := 0; i < riffleShufflePasses; i++ {
			d.riffle(rng)
		}
	default:
		d.Shuffle(rng)
	}
	return d
}

// Shuffle randomizes the deck uniformly in place.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// riffle cuts the deck near the middle and interleaves the halves in short
// runs, the way a physical riffle does.
func (d *Deck) riffle(rng *rand.Rand) {
	n := len(d.cards)
	if n < 2 {
		return
	}
	cut := n/2 + rng.Intn(5) - 2
	if cut < 1 {
		cut = 1
	}
	if cut > n-1 {
		cut = n - 1
	}

	left := append([]Card(nil), d.cards[:cut]...)
	right := append([]Card(nil), d.cards[cut:]...)

	merged := make([]Card, 0, n)
	li, ri := 0, 0
	for li < len(left) && ri < len(right) {
		run := 1 + rng.Intn(2)
		if rng.Intn(2) == 0 {
			for k := 0; k < run && li < len(left); k++ {
				merged = append(merged, left[li])
				li++
			}
		} else {
			for k := 0; k < run && ri < len(right); k++ {
				merged = append(merged, right[ri])
				ri++
			}
		}
	}
	merged = append(merged, left[li:]...)
	merged = append(merged, right[ri:]...)
	d.cards = merged
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	top := d.cards[0]
	d.cards = d.cards[1:]
	return top, nil
}

// Remaining returns the number of undrawn cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
