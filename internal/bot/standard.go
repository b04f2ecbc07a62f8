package bot

import (
	"kaat/internal/domain"
)

// StandardBot evaluates suit strength from high cards and length. It bids in
// the auction only when its best suit clears the tuning threshold, predicts
// tricks from aces, kings, trump length and ruffing chances, and plays the
// cheapest card that takes the current trick.
type StandardBot struct {
	Tuning BotTuning
}

// suitScore rates one suit of the hand: high-card weights plus half a point
// per card of length.
func (b *StandardBot) suitScore(hand []domain.Card, suit domain.Suit) float64 {
	score := 0.0
	for _, c := range domain.CardsOfSuit(hand, suit) {
		switch c.Rank {
		case domain.Ace:
			score += b.Tuning.AceWeight
		case domain.King:
			score += b.Tuning.KingWeight
		case domain.Queen:
			score += b.Tuning.QueenWeight
		}
		score += 0.5
	}
	return score
}

// GetAuctionBid bids from the strongest candidate suit, never proposing the
// suit that already stands as trump.
func (b *StandardBot) GetAuctionBid(view domain.SeatView) (int, error) {
	best := 0.0
	for _, s := range domain.Suits {
		if s == view.Trump {
			continue
		}
		if score := b.suitScore(view.Hand, s); score > best {
			best = score
		}
	}
	if best < b.Tuning.AuctionThreshold {
		return 0, nil
	}

	bid := 5 + int(best-b.Tuning.AuctionThreshold)
	if bid > b.Tuning.MaxAuctionBid {
		bid = b.Tuning.MaxAuctionBid
	}
	min := 5
	if view.HighestBid >= min {
		min = view.HighestBid + 1
	}
	if bid < min {
		return 0, nil
	}
	return bid, nil
}

// GetSuitChoice picks the strongest suit other than the one already standing.
func (b *StandardBot) GetSuitChoice(view domain.SeatView) (domain.Suit, error) {
	choice := view.Trump
	best := -1.0
	for _, s := range domain.Suits {
		if s == view.Trump {
			continue
		}
		if score := b.suitScore(view.Hand, s); score > best {
			best = score
			choice = s
		}
	}
	return choice, nil
}

// GetFinalBid estimates tricks from top honours, trump length and ruffing
// potential, clamped to the seat's minimum.
func (b *StandardBot) GetFinalBid(view domain.SeatView) (int, error) {
	estimate := 0.0
	trumpLen := len(domain.CardsOfSuit(view.Hand, view.Trump))

	for _, s := range domain.Suits {
		cards := domain.CardsOfSuit(view.Hand, s)
		for _, c := range cards {
			switch c.Rank {
			case domain.Ace:
				estimate += b.Tuning.AceWeight
			case domain.King:
				estimate += b.Tuning.KingWeight
			case domain.Queen:
				estimate += b.Tuning.QueenWeight
			}
		}
		if s != view.Trump && trumpLen > 0 {
			switch len(cards) {
			case 0:
				estimate += b.Tuning.VoidBonus
			case 1:
				estimate += b.Tuning.SingletonBonus
			}
		}
	}
	if trumpLen > 3 {
		estimate += float64(trumpLen-3) * b.Tuning.TrumpLengthBonus
	}

	bid := int(estimate + 0.5)
	if bid < view.MinBid {
		bid = view.MinBid
	}
	if bid > domain.TricksPerRound {
		bid = domain.TricksPerRound
	}
	return bid, nil
}

// GetCardToPlay leads high from a plain suit, and otherwise plays the cheapest
// legal card that wins the trick as it stands, falling back to the cheapest
// discard.
func (b *StandardBot) GetCardToPlay(view domain.SeatView) (domain.Card, error) {
	if len(view.Trick) == 0 {
		return b.lead(view), nil
	}

	winners := make([]domain.Card, 0, len(view.Legal))
	for _, c := range view.Legal {
		trick := append(append([]domain.PlayedCard(nil), view.Trick...), domain.PlayedCard{Seat: view.Seat, Card: c})
		if domain.TrickWinner(trick, view.Trump).Seat == view.Seat {
			winners = append(winners, c)
		}
	}
	if len(winners) > 0 {
		return b.cheapest(winners, view.Trump), nil
	}
	return b.cheapest(view.Legal, view.Trump), nil
}

// lead prefers the highest card outside trump, saving trumps for cuts.
func (b *StandardBot) lead(view domain.SeatView) domain.Card {
	var best domain.Card
	found := false
	for _, c := range view.Legal {
		if c.Suit == view.Trump {
			continue
		}
		if !found || c.Rank > best.Rank {
			best = c
			found = true
		}
	}
	if found {
		return best
	}
	best = view.Legal[0]
	for _, c := range view.Legal[1:] {
		if c.Rank > best.Rank {
			best = c
		}
	}
	return best
}

// cheapest ranks trumps above every plain card so the bot spends them last.
func (b *StandardBot) cheapest(cards []domain.Card, trump domain.Suit) domain.Card {
	cost := func(c domain.Card) int {
		v := int(c.Rank)
		if c.Suit == trump {
			v += 20
		}
		return v
	}
	best := cards[0]
	for _, c := range cards[1:] {
		if cost(c) < cost(best) {
			best = c
		}
	}
	return best
}
