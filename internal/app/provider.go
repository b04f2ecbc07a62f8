package app

import "kaat/internal/domain"

// ActionProvider supplies decisions for one seat. Bot implementations answer
// synchronously from the seat view; human seats have no provider and submit
// through the coordinator's entry points instead.
type ActionProvider interface {
	GetAuctionBid(view domain.SeatView) (int, error)
	GetSuitChoice(view domain.SeatView) (domain.Suit, error)
	GetFinalBid(view domain.SeatView) (int, error)
	GetCardToPlay(view domain.SeatView) (domain.Card, error)
}

// StepProvider obtains one decision from the provider for the awaiting seat
// and applies it through the same validated entry points human input uses.
// Returns (nil, nil) when no provider-driven seat is awaited.
func (s *Service) StepProvider(g *domain.Game, providers [4]ActionProvider) ([]Event, error) {
	seat, action := s.Awaiting(g)
	if seat < 0 || providers[seat] == nil {
		return nil, nil
	}
	p := providers[seat]
	view := g.ViewFor(seat)

	switch action {
	case domain.ActionAuctionBid:
		value, err := p.GetAuctionBid(view)
		if err != nil {
			return nil, err
		}
		return s.SubmitAuctionBid(g, seat, value)
	case domain.ActionSuitChoice:
		suit, err := p.GetSuitChoice(view)
		if err != nil {
			return nil, err
		}
		return s.SelectTrump(g, seat, suit)
	case domain.ActionFinalBid:
		value, err := p.GetFinalBid(view)
		if err != nil {
			return nil, err
		}
		return s.SubmitFinalBid(g, seat, value)
	case domain.ActionPlayCard:
		card, err := p.GetCardToPlay(view)
		if err != nil {
			return nil, err
		}
		return s.PlayCard(g, seat, card)
	}
	return nil, nil
}

// AdvanceProviders drains consecutive provider-driven turns until a seat
// without a provider is awaited or the match ends.
func (s *Service) AdvanceProviders(g *domain.Game, providers [4]ActionProvider) ([]Event, error) {
	var events []Event
	for {
		step, err := s.StepProvider(g, providers)
		events = append(events, step...)
		if err != nil {
			return events, err
		}
		if len(step) == 0 {
			return events, nil
		}
	}
}

// ApplyDefaultAction forfeits the awaiting seat's turn with its default legal
// action: pass the auction, keep the current trump, bid the minimum, or play
// the lowest legal card. Used for turn timeouts and disconnected seats.
func (s *Service) ApplyDefaultAction(g *domain.Game) ([]Event, error) {
	seat, action := s.Awaiting(g)
	if seat < 0 {
		return nil, nil
	}
	r := g.Round

	switch action {
	case domain.ActionAuctionBid:
		return s.SubmitAuctionBid(g, seat, 0)
	case domain.ActionSuitChoice:
		suit := r.Trump
		if r.CallTenSeat < 0 && !s.cfg.Rules.AllowDefaultTrump && suit == s.cfg.DefaultTrumpSuit() {
			for _, alt := range domain.Suits {
				if alt != suit {
					suit = alt
					break
				}
			}
		}
		return s.SelectTrump(g, seat, suit)
	case domain.ActionFinalBid:
		return s.SubmitFinalBid(g, seat, r.MinFinalBid(seat))
	case domain.ActionPlayCard:
		legal := domain.LegalMoves(g.Seats[seat].Hand, r.Trick, r.Trump)
		lowest := legal[0]
		for _, c := range legal[1:] {
			if c.Rank < lowest.Rank {
				lowest = c
			}
		}
		return s.PlayCard(g, seat, lowest)
	}
	return nil, nil
}
