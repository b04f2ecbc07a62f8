package domain

import (
	"math/rand"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if deck.Remaining() != 52 {
		t.Fatalf("deck size = %d, want 52", deck.Remaining())
	}

	seen := make(map[Card]bool)
	for deck.Remaining() > 0 {
		c, err := deck.Draw()
		if err != nil {
			t.Fatalf("Draw() failed: %v", err)
		}
		if seen[c] {
			t.Fatalf("duplicate card drawn: %v", c)
		}
		seen[c] = true
		if !c.Suit.Valid() || !c.Rank.Valid() {
			t.Fatalf("card out of range: %v", c)
		}
	}
}

func TestDrawEmptyDeck(t *testing.T) {
	deck := NewDeck()
	for i := 0; i < 52; i++ {
		if _, err := deck.Draw(); err != nil {
			t.Fatalf("unexpected error on draw %d: %v", i, err)
		}
	}
	if _, err := deck.Draw(); err != ErrEmptyDeck {
		t.Fatalf("Draw() on empty deck = %v, want ErrEmptyDeck", err)
	}
}

func TestStackedDeckDrawsInOrder(t *testing.T) {
	cards := []Card{{Spades, Ace}, {Hearts, Two}, {Clubs, Nine}}
	deck := NewStackedDeck(cards)
	for i, want := range cards {
		got, err := deck.Draw()
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if got != want {
			t.Errorf("draw %d = %v, want %v", i, got, want)
		}
	}
	if _, err := deck.Draw(); err != ErrEmptyDeck {
		t.Fatalf("Draw() past the stack = %v, want ErrEmptyDeck", err)
	}
}

func TestShuffledDeckPreservesCards(t *testing.T) {
	for _, mode := range []ShuffleMode{ShuffleUniform, ShuffleRiffle} {
		rng := rand.New(rand.NewSource(42))
		deck := NewShuffledDeck(rng, mode)
		if deck.Remaining() != 52 {
			t.Fatalf("mode %v: deck size = %d, want 52", mode, deck.Remaining())
		}

		seen := make(map[Card]bool)
		for deck.Remaining() > 0 {
			c, _ := deck.Draw()
			if seen[c] {
				t.Fatalf("mode %v: duplicate card %v", mode, c)
			}
			seen[c] = true
		}
		if len(seen) != 52 {
			t.Fatalf("mode %v: %d distinct cards, want 52", mode, len(seen))
		}
	}
}

func TestRiffleChangesOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	shuffled := NewShuffledDeck(rng, ShuffleRiffle)
	ordered := NewDeck()

	same := true
	for ordered.Remaining() > 0 {
		a, _ := ordered.Draw()
		b, _ := shuffled.Draw()
		if a != b {
			same = false
			break
		}
	}
	if same {
		t.Fatal("riffle shuffle left the deck in sorted order")
	}
}
