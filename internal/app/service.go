package app

import (
	"errors"
	"math/rand"
	"time"

	"kaat/internal/config"
	"kaat/internal/domain"
)

// SeatSpec describes one participant when a match is created.
type SeatSpec struct {
	UserID string
	IsBot  bool
}

// Service contains the match coordinator use-cases. It is the only component
// that mutates match state; every action is validated here regardless of
// whether it came from a human client or a bot.
type Service struct {
	rng *rand.Rand
	cfg *config.GameConfig
}

// NewService constructs a Service with the provided rng or a time-seeded
// default, and the provided config or the built-in defaults.
func NewService(rng *rand.Rand, cfg *config.GameConfig) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Service{rng: rng, cfg: cfg}
}

var (
	ErrWrongPhase  = errors.New("action not valid in current phase")
	ErrWrongSeat   = errors.New("not this seat's turn")
	ErrInvalidBid  = errors.New("bid outside the legal range")
	ErrInvalidSuit = errors.New("suit not selectable")
	ErrCardNotHeld = errors.New("card not in hand")
	ErrIllegalCard = errors.New("card is not a legal move")
	ErrMatchOver   = errors.New("match already over")
)

// NewMatch creates the authoritative match state for four seats, deals round
// one and returns the resulting events. The round-one dealer is chosen
// uniformly at random; round-one trump is the configured default suit.
func (s *Service) NewMatch(seats [4]SeatSpec) (*domain.Game, []Event, error) {
	g := &domain.Game{
		Phase:       domain.PhaseSetup,
		RoundsTotal: s.cfg.RoundsTotal,
		CurrentSeat: -1,
	}
	for i, spec := range seats {
		g.Seats[i] = domain.SeatState{UserID: spec.UserID, IsBot: spec.IsBot}
	}

	var events []Event
	s.beginRound(g, 1, s.rng.Intn(4), &events)
	return g, events, nil
}

// Awaiting reports which seat the coordinator is suspended on and for which
// input. Returns (-1, ActionNone) when no input is expected.
func (s *Service) Awaiting(g *domain.Game) (int, domain.ActionType) {
	switch g.Phase {
	case domain.PhaseAuction:
		return g.CurrentSeat, domain.ActionAuctionBid
	case domain.PhaseSuitSelect:
		return g.CurrentSeat, domain.ActionSuitChoice
	case domain.PhaseFinalBidding:
		return g.CurrentSeat, domain.ActionFinalBid
	case domain.PhasePlay:
		return g.CurrentSeat, domain.ActionPlayCard
	default:
		return -1, domain.ActionNone
	}
}

// SubmitAuctionBid applies one auction action: pass (value 0) or a bid
// strictly greater than max(4, current highest).
func (s *Service) SubmitAuctionBid(g *domain.Game, seat, value int) ([]Event, error) {
	if g.Phase != domain.PhaseAuction {
		return nil, ErrWrongPhase
	}
	if seat != g.CurrentSeat {
		return nil, ErrWrongSeat
	}
	r := g.Round

	if value != 0 {
		min := 5
		if r.HighestBid >= min {
			min = r.HighestBid + 1
		}
		if value < min || value > domain.TricksPerRound {
			return nil, ErrInvalidBid
		}
	}

	r.AuctionActed[seat] = true
	events := []Event{{
		Kind:    EventBidRecorded,
		Payload: BidRecordedPayload{Seat: seat, Value: value, Pass: value == 0, Auction: true},
	}}
	if value > 0 {
		r.HighestBid = value
		r.ContractorSeat = seat
	}

	next := domain.NextSeat(seat)
	if !r.AuctionActed[next] {
		g.CurrentSeat = next
		s.promptTurn(g, &events)
		return events, nil
	}

	// Auction complete.
	if r.ContractorSeat < 0 {
		// Nobody bid; trump stays the default suit.
		s.setTrump(g, r.Trump, -1, false, &events)
		s.continueAfterTrump(g, &events)
		return events, nil
	}
	g.Phase = domain.PhaseSuitSelect
	g.CurrentSeat = r.ContractorSeat
	s.promptTurn(g, &events)
	return events, nil
}

// SelectTrump applies a trump suit choice. It serves both the auction
// winner's selection and the call-ten caller's one-time late change; the
// caller keeps the current trump by selecting it.
func (s *Service) SelectTrump(g *domain.Game, seat int, suit domain.Suit) ([]Event, error) {
	if g.Phase != domain.PhaseSuitSelect {
		return nil, ErrWrongPhase
	}
	if seat != g.CurrentSeat {
		return nil, ErrWrongSeat
	}
	if !suit.Valid() {
		return nil, ErrInvalidSuit
	}
	r := g.Round

	var events []Event
	if r.CallTenSeat >= 0 {
		// Late change under call-ten: one-time, then locked.
		if r.TrumpLocked {
			return nil, ErrInvalidSuit
		}
		s.setTrump(g, suit, seat, true, &events)
		s.beginPlay(g, &events)
		return events, nil
	}

	if !s.cfg.Rules.AllowDefaultTrump && suit == s.cfg.DefaultTrumpSuit() {
		return nil, ErrInvalidSuit
	}
	s.setTrump(g, suit, seat, false, &events)
	s.continueAfterTrump(g, &events)
	return events, nil
}

// SubmitFinalBid applies one seat's trick prediction. A bid of exactly ten is
// the call-ten declaration: every other seat's bid is force-set to 2, and the
// caller may change trump once before play when the variant is enabled.
func (s *Service) SubmitFinalBid(g *domain.Game, seat, value int) ([]Event, error) {
	if g.Phase != domain.PhaseFinalBidding {
		return nil, ErrWrongPhase
	}
	if seat != g.CurrentSeat {
		return nil, ErrWrongSeat
	}
	r := g.Round

	if value < r.MinFinalBid(seat) || value > domain.TricksPerRound {
		return nil, ErrInvalidBid
	}

	r.Bids[seat] = value
	r.BidsMade[seat] = true
	events := []Event{{
		Kind:    EventBidRecorded,
		Payload: BidRecordedPayload{Seat: seat, Value: value},
	}}

	if value == 10 {
		r.CallTenSeat = seat
		for i := 0; i < 4; i++ {
			if i == seat {
				continue
			}
			r.Bids[i] = 2
			r.BidsMade[i] = true
			events = append(events, Event{
				Kind:    EventBidRecorded,
				Payload: BidRecordedPayload{Seat: i, Value: 2, Forced: true},
			})
		}
		if s.cfg.Rules.LateTrumpChange && !r.TrumpLocked {
			g.Phase = domain.PhaseSuitSelect
			g.CurrentSeat = seat
			s.promptTurn(g, &events)
			return events, nil
		}
		s.beginPlay(g, &events)
		return events, nil
	}

	next := domain.NextSeat(seat)
	if !r.BidsMade[next] {
		g.CurrentSeat = next
		s.promptTurn(g, &events)
		return events, nil
	}

	// All four predictions are in; check for a misdeal.
	sum := 0
	for _, b := range r.Bids {
		sum += b
	}
	if sum < 11 {
		events = append(events, Event{
			Kind:    EventMisdeal,
			Payload: MisdealPayload{Round: r.Number, Reason: MisdealReasonLowBids},
		})
		s.beginRound(g, r.Number, r.DealerSeat, &events)
		return events, nil
	}

	s.beginPlay(g, &events)
	return events, nil
}

// PlayCard applies one card play after re-checking legality against the
// legal-move engine.
func (s *Service) PlayCard(g *domain.Game, seat int, card domain.Card) ([]Event, error) {
	if g.Phase != domain.PhasePlay {
		return nil, ErrWrongPhase
	}
	if seat != g.CurrentSeat {
		return nil, ErrWrongSeat
	}
	r := g.Round
	hand := g.Seats[seat].Hand

	if !domain.ContainsCard(hand, card) {
		return nil, ErrCardNotHeld
	}
	if !domain.ContainsCard(domain.LegalMoves(hand, r.Trick, r.Trump), card) {
		return nil, ErrIllegalCard
	}

	g.Seats[seat].Hand = domain.RemoveCard(hand, card)
	r.Trick = append(r.Trick, domain.PlayedCard{Seat: seat, Card: card})

	next := -1
	if len(r.Trick) < 4 {
		next = domain.NextSeat(seat)
	}
	events := []Event{{
		Kind:    EventCardPlayed,
		Payload: CardPlayedPayload{Seat: seat, Card: card, NextSeat: next},
	}}

	if len(r.Trick) < 4 {
		g.CurrentSeat = next
		s.promptTurn(g, &events)
		return events, nil
	}

	// Trick complete.
	winner := domain.TrickWinner(r.Trick, r.Trump)
	r.Trick = nil
	r.TricksWon[winner.Seat]++
	r.TricksPlayed++
	events = append(events, Event{
		Kind:    EventTrickWon,
		Payload: TrickWonPayload{Seat: winner.Seat, TrickNumber: r.TricksPlayed},
	})

	if r.TricksPlayed < domain.TricksPerRound {
		r.LeadSeat = winner.Seat
		g.CurrentSeat = winner.Seat
		s.promptTurn(g, &events)
		return events, nil
	}

	s.scoreRound(g, &events)
	return events, nil
}
