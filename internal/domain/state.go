package domain

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseSetup is the pre-deal state at the start of each round.
	PhaseSetup Phase = "setup"
	// PhaseAuction collects one bid-or-pass per seat for trump rights.
	PhaseAuction Phase = "auction"
	// PhaseSuitSelect waits for the contractor (or a call-ten caller) to
	// choose the trump suit.
	PhaseSuitSelect Phase = "suit_select"
	// PhaseFinalBidding collects each seat's trick prediction.
	PhaseFinalBidding Phase = "final_bidding"
	// PhasePlay runs the thirteen tricks.
	PhasePlay Phase = "play"
	// PhaseMatchOver is the terminal state after the last round is scored.
	PhaseMatchOver Phase = "match_over"
)

// ActionType names the input the coordinator is waiting for.
type ActionType string

const (
	ActionAuctionBid ActionType = "auction_bid"
	ActionSuitChoice ActionType = "suit_choice"
	ActionFinalBid   ActionType = "final_bid"
	ActionPlayCard   ActionType = "play_card"
	ActionNone       ActionType = ""
)

// TricksPerRound is fixed by the 52-card, four-seat deal.
const TricksPerRound = 13

// SeatState holds the per-seat state that survives across rounds.
type SeatState struct {
	UserID string
	IsBot  bool
	Hand   []Card
	Score  int
}

// RoundState is created at round start and rolled into match totals at round
// end.
type RoundState struct {
	Number     int
	DealerSeat int

	Trump       Suit
	TrumpLocked bool

	// Auction.
	HighestBid     int
	ContractorSeat int // -1 when nobody bid
	AuctionActed   [4]bool

	// Final bids.
	Bids        [4]int
	BidsMade    [4]bool
	CallTenSeat int // -1 when no seat called ten

	// Play.
	Trick        []PlayedCard
	LeadSeat     int
	TricksWon    [4]int
	TricksPlayed int
}

// NewRoundState returns a round with auction and call-ten markers cleared.
func NewRoundState(number, dealerSeat int, trump Suit) *RoundState {
	return &RoundState{
		Number:         number,
		DealerSeat:     dealerSeat,
		Trump:          trump,
		ContractorSeat: -1,
		CallTenSeat:    -1,
	}
}

// Game holds the authoritative state for one match. It is owned and mutated
// exclusively by the coordinator service.
type Game struct {
	Phase       Phase
	Seats       [4]SeatState
	RoundsTotal int
	Round       *RoundState
	CurrentSeat int
	Deck        *Deck
}

// NextSeat returns the seat to the left of the given one.
func NextSeat(seat int) int {
	return (seat + 1) % 4
}

// LowestScoreSeat returns the seat with the lowest cumulative score, the
// first such seat on ties. Used for dealer selection after round one.
func (g *Game) LowestScoreSeat() int {
	idx := 0
	for i := 1; i < 4; i++ {
		if g.Seats[i].Score < g.Seats[idx].Score {
			idx = i
		}
	}
	return idx
}

// SeatByUserID returns the seat index for a user id, or -1.
func (g *Game) SeatByUserID(userID string) int {
	for i := range g.Seats {
		if g.Seats[i].UserID == userID {
			return i
		}
	}
	return -1
}

// CardsInRound counts cards across hands, deck and the open trick. It must
// equal 52 at all times within a dealt round.
func (g *Game) CardsInRound() int {
	n := 0
	for i := range g.Seats {
		n += len(g.Seats[i].Hand)
	}
	if g.Deck != nil {
		n += g.Deck.Remaining()
	}
	if g.Round != nil {
		n += len(g.Round.Trick)
	}
	// Resolved tricks are out of circulation.
	if g.Round != nil {
		n += g.Round.TricksPlayed * 4
	}
	return n
}

// LeadSuit returns the suit led in the open trick, and false when leading.
func (r *RoundState) LeadSuit() (Suit, bool) {
	if len(r.Trick) == 0 {
		return 0, false
	}
	return r.Trick[0].Card.Suit, true
}

// MinFinalBid returns the minimum trick prediction for a seat: 2, raised to
// the contractor's auction bid when that is higher.
func (r *RoundState) MinFinalBid(seat int) int {
	min := 2
	if seat == r.ContractorSeat && r.HighestBid > min {
		min = r.HighestBid
	}
	return min
}

// SeatView is the per-seat state surface exposed to actors: everything a
// client needs to render, plus the acting seat's own hand and legal cards.
type SeatView struct {
	Seat        int          `json:"seat"`
	Phase       Phase        `json:"phase"`
	RoundNumber int          `json:"round_number"`
	DealerSeat  int          `json:"dealer_seat"`
	Trump       Suit         `json:"trump"`
	TrumpLocked bool         `json:"trump_locked"`
	HighestBid  int          `json:"highest_bid"`
	Contractor  int          `json:"contractor"`
	MinBid      int          `json:"min_bid"`
	Bids        [4]int       `json:"bids"`
	TricksWon   [4]int       `json:"tricks_won"`
	Scores      [4]int       `json:"scores"`
	Trick       []PlayedCard `json:"trick"`
	Hand        []Card       `json:"hand"`
	Legal       []Card       `json:"legal"`
}

// ViewFor builds the state surface for one seat. Hands of other seats are
// never included.
func (g *Game) ViewFor(seat int) SeatView {
	v := SeatView{
		Seat:  seat,
		Phase: g.Phase,
		Hand:  append([]Card(nil), g.Seats[seat].Hand...),
	}
	for i := range g.Seats {
		v.Scores[i] = g.Seats[i].Score
	}
	if r := g.Round; r != nil {
		v.RoundNumber = r.Number
		v.DealerSeat = r.DealerSeat
		v.Trump = r.Trump
		v.TrumpLocked = r.TrumpLocked
		v.HighestBid = r.HighestBid
		v.Contractor = r.ContractorSeat
		v.MinBid = r.MinFinalBid(seat)
		v.Bids = r.Bids
		v.TricksWon = r.TricksWon
		v.Trick = append([]PlayedCard(nil), r.Trick...)
		if g.Phase == PhasePlay && g.CurrentSeat == seat {
			v.Legal = LegalMoves(g.Seats[seat].Hand, r.Trick, r.Trump)
		}
	}
	return v
}
