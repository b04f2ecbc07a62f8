package nakama

import (
	"kaat/internal/domain"
)

// Client request payloads, JSON-encoded on their op codes.

type auctionBidRequest struct {
	Value int `json:"value"` // 0 to pass
}

type selectTrumpRequest struct {
	Suit domain.Suit `json:"suit"`
}

type finalBidRequest struct {
	Value int `json:"value"`
}

type playCardRequest struct {
	Card domain.Card `json:"card"`
}

// Server payloads without an app-level event behind them.

type playerState struct {
	UserID      string `json:"user_id"`
	Seat        int    `json:"seat"`
	DisplayName string `json:"display_name"`
	IsOwner     bool   `json:"is_owner"`
	IsBot       bool   `json:"is_bot"`
	AvatarIndex int    `json:"avatar_index"`
	Score       int    `json:"score"`
}

// matchSnapshot is broadcast on seat changes so clients can render the table.
type matchSnapshot struct {
	Seats     []string      `json:"seats"`
	OwnerSeat int           `json:"owner_seat"`
	Players   []playerState `json:"players"`
}

type matchStartedEvent struct {
	Seats       []string `json:"seats"`
	RoundsTotal int      `json:"rounds_total"`
	DealerSeat  int      `json:"dealer_seat"`
}

type matchErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// matchLabel is the JSON match label quick-match queries run against.
type matchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}
