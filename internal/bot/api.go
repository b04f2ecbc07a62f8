package bot

import (
	"kaat/internal/domain"
)

// BotLevel selects a strategy implementation.
type BotLevel int

const (
	BotLevelEasy BotLevel = iota
	BotLevelStandard
)

// Brain is the interface that all bot strategies must implement. Each method
// receives the seat's view of the match and returns one decision; the
// coordinator validates the decision like any other input.
type Brain interface {
	GetAuctionBid(view domain.SeatView) (int, error)
	GetSuitChoice(view domain.SeatView) (domain.Suit, error)
	GetFinalBid(view domain.SeatView) (int, error)
	GetCardToPlay(view domain.SeatView) (domain.Card, error)
}
