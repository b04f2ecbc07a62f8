package domain

// PlayedCard is one card on the table together with the seat that played it.
type PlayedCard struct {
	Seat int  `json:"seat"`
	Card Card `json:"card"`
}

// TrickWinner returns the winning play of a trick. The running winner starts
// at the first card; a trump beats any non-trump winner, a higher trump beats
// a lower trump, and a lead-suit card beats a non-trump winner of lower rank.
// Off-suit, non-trump cards never win.
func TrickWinner(played []PlayedCard, trump Suit) PlayedCard {
	winner := played[0]
	lead := played[0].Card.Suit
	for _, p := range played[1:] {
		c := p.Card
		w := winner.Card
		switch {
		case c.Suit == trump && w.Suit != trump:
			winner = p
		case c.Suit == trump && w.Suit == trump && c.Rank > w.Rank:
			winner = p
		case c.Suit != trump && w.Suit != trump && c.Suit == lead && c.Rank > w.Rank:
			winner = p
		}
	}
	return winner
}

// LegalMoves returns the subset of hand that may legally be played onto the
// current trick. It never returns an empty set for a non-empty hand.
//
// Priority order:
//  1. Leading: everything is legal.
//  2. Holding the lead suit: must follow. While the trick is won by a
//     non-trump card, a held lead-suit card that beats the winner must be
//     played. Once a trump has won the trick (and the lead is not trump), no
//     lead-suit card can win, so any lead-suit card is legal; held trumps
//     that cannot beat the winning trump are also released, so the player is
//     never forced to preserve cards for an unwinnable trick.
//  3. Void in the lead suit but holding trump: must cut with any trump if the
//     trick is not yet trump-won; must over-trump if possible, but a player
//     whose trumps all lose is free to discard anything instead.
//  4. Void in both: everything is legal.
func LegalMoves(hand []Card, played []PlayedCard, trump Suit) []Card {
	if len(hand) == 0 {
		return nil
	}
	if len(played) == 0 {
		return append([]Card(nil), hand...)
	}

	lead := played[0].Card.Suit
	winner := TrickWinner(played, trump).Card

	leadCards := CardsOfSuit(hand, lead)
	if len(leadCards) > 0 {
		if winner.Suit == trump && lead != trump {
			// The trick is already lost to a trump: no forced high play, and
			// losing trumps may be thrown rather than preserved.
			out := append([]Card(nil), leadCards...)
			for _, c := range CardsOfSuit(hand, trump) {
				if c.Rank < winner.Rank {
					out = append(out, c)
				}
			}
			return out
		}
		if winner.Suit == lead && winner.Suit != trump {
			var beating []Card
			for _, c := range leadCards {
				if c.Rank > winner.Rank {
					beating = append(beating, c)
				}
			}
			if len(beating) > 0 {
				return beating
			}
		}
		return leadCards
	}

	trumps := CardsOfSuit(hand, trump)
	if len(trumps) > 0 {
		if winner.Suit != trump {
			return trumps
		}
		var over []Card
		for _, c := range trumps {
			if c.Rank > winner.Rank {
				over = append(over, c)
			}
		}
		if len(over) > 0 {
			return over
		}
		// No held trump can win: discard freely rather than burning one.
		return append([]Card(nil), hand...)
	}

	return append([]Card(nil), hand...)
}
