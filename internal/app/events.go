package app

import "kaat/internal/domain"

// EventKind identifies emitted coordinator events for dispatch.
type EventKind string

const (
	EventCardDealt    EventKind = "card_dealt"
	EventTrumpSet     EventKind = "trump_set"
	EventBidRecorded  EventKind = "bid_recorded"
	EventCardPlayed   EventKind = "card_played"
	EventTrickWon     EventKind = "trick_won"
	EventRoundScored  EventKind = "round_scored"
	EventPhaseChanged EventKind = "phase_changed"
	EventMisdeal      EventKind = "misdeal"
	EventMatchEnded   EventKind = "match_ended"
	EventTurnPrompt   EventKind = "turn_prompt"
)

// Event is a coordinator event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

// CardDealtPayload carries one seat's dealt batch. Always targeted at the
// receiving seat only.
type CardDealtPayload struct {
	Seat  int           `json:"seat"`
	Cards []domain.Card `json:"cards"`
}

// TrumpSetPayload announces the active trump for the round. BySeat is -1 when
// the default suit applies without a selection.
type TrumpSetPayload struct {
	Suit   domain.Suit `json:"suit"`
	BySeat int         `json:"by_seat"`
	Locked bool        `json:"locked"`
}

// BidRecordedPayload reports an auction action or a final-bid commitment.
// Auction passes carry Pass=true and Value 0. Forced marks a bid overridden
// by a call-ten declaration.
type BidRecordedPayload struct {
	Seat    int  `json:"seat"`
	Value   int  `json:"value"`
	Pass    bool `json:"pass"`
	Auction bool `json:"auction"`
	Forced  bool `json:"forced"`
}

type CardPlayedPayload struct {
	Seat     int         `json:"seat"`
	Card     domain.Card `json:"card"`
	NextSeat int         `json:"next_seat"` // -1 when the trick is complete
}

type TrickWonPayload struct {
	Seat        int `json:"seat"`
	TrickNumber int `json:"trick_number"` // 1-based
}

type RoundScoredPayload struct {
	Round  int    `json:"round"`
	Deltas [4]int `json:"deltas"`
	Totals [4]int `json:"totals"`
}

type PhaseChangedPayload struct {
	Phase       domain.Phase `json:"phase"`
	RoundNumber int          `json:"round_number"`
	DealerSeat  int          `json:"dealer_seat"`
}

// MisdealPayload reports an invalid deal. Reason is one of "low_bids" or
// "weak_hand". The same round is redealt with the same dealer.
type MisdealPayload struct {
	Round  int    `json:"round"`
	Reason string `json:"reason"`
}

type MatchEndedPayload struct {
	Totals     [4]int `json:"totals"`
	WinnerSeat int    `json:"winner_seat"`
}

// TurnPromptPayload tells the acting seat what input is expected. Targeted at
// that seat only; Legal is populated for card plays, MinBid for bids.
type TurnPromptPayload struct {
	Seat       int               `json:"seat"`
	Action     domain.ActionType `json:"action"`
	MinBid     int               `json:"min_bid,omitempty"`
	HighestBid int               `json:"highest_bid,omitempty"`
	Legal      []domain.Card     `json:"legal,omitempty"`
}

const (
	MisdealReasonLowBids  = "low_bids"
	MisdealReasonWeakHand = "weak_hand"
)
