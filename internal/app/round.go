package app

import "kaat/internal/domain"

// beginRound resets the round state and runs the deal for the given round
// number and dealer. Redeals pass the same number and dealer back in.
func (s *Service) beginRound(g *domain.Game, number, dealer int, events *[]Event) {
	g.Round = domain.NewRoundState(number, dealer, s.cfg.DefaultTrumpSuit())

	mode := domain.ShuffleUniform
	if number > 1 {
		mode = domain.ShuffleRiffle
	}
	g.Deck = domain.NewShuffledDeck(s.rng, mode)
	for i := range g.Seats {
		g.Seats[i].Hand = nil
	}

	s.dealPhaseOne(g, events)

	if number == 1 {
		// Round one has no auction; trump is fixed to the default suit.
		s.setTrump(g, g.Round.Trump, -1, false, events)
		s.continueAfterTrump(g, events)
		return
	}

	g.Phase = domain.PhaseAuction
	g.CurrentSeat = domain.NextSeat(dealer)
	s.emitPhase(g, events)
	s.promptTurn(g, events)
}

// dealPhaseOne draws the dealer's peek card, then five cards to every seat
// one at a time starting left of the dealer.
func (s *Service) dealPhaseOne(g *domain.Game, events *[]Event) {
	dealer := g.Round.DealerSeat

	peek := s.mustDraw(g)
	g.Seats[dealer].Hand = append(g.Seats[dealer].Hand, peek)

	start := domain.NextSeat(dealer)
	for sub := 0; sub < 5; sub++ {
		seat := start
		for k := 0; k < 4; k++ {
			g.Seats[seat].Hand = append(g.Seats[seat].Hand, s.mustDraw(g))
			seat = domain.NextSeat(seat)
		}
	}

	s.emitHands(g, events)
}

// dealPhaseTwo completes every hand to thirteen: eight more cards per seat,
// except the dealer who already holds the peek card and receives seven.
func (s *Service) dealPhaseTwo(g *domain.Game, events *[]Event) {
	dealer := g.Round.DealerSeat
	start := domain.NextSeat(dealer)
	for sub := 0; sub < 8; sub++ {
		seat := start
		for k := 0; k < 4; k++ {
			if !(seat == dealer && sub == 7) {
				g.Seats[seat].Hand = append(g.Seats[seat].Hand, s.mustDraw(g))
			}
			seat = domain.NextSeat(seat)
		}
	}
	for i := range g.Seats {
		domain.SortHand(g.Seats[i].Hand)
	}
	s.emitHands(g, events)
}

// mustDraw draws from the deck. The 52-card deal arithmetic makes an empty
// draw impossible; if it happens the dealing sequence itself is broken.
func (s *Service) mustDraw(g *domain.Game) domain.Card {
	c, err := g.Deck.Draw()
	if err != nil {
		panic("dealing sequence drew from an empty deck")
	}
	return c
}

// continueAfterTrump runs the second deal and the weak-hand check, then opens
// final bidding.
func (s *Service) continueAfterTrump(g *domain.Game, events *[]Event) {
	s.dealPhaseTwo(g, events)

	for i := range g.Seats {
		if !domain.HasFaceCardOrBetter(g.Seats[i].Hand) {
			*events = append(*events, Event{
				Kind:    EventMisdeal,
				Payload: MisdealPayload{Round: g.Round.Number, Reason: MisdealReasonWeakHand},
			})
			s.beginRound(g, g.Round.Number, g.Round.DealerSeat, events)
			return
		}
	}

	g.Phase = domain.PhaseFinalBidding
	g.CurrentSeat = domain.NextSeat(g.Round.DealerSeat)
	s.emitPhase(g, events)
	s.promptTurn(g, events)
}

// beginPlay opens the play phase. The contractor leads the first trick, or
// the seat left of the dealer when nobody won the auction.
func (s *Service) beginPlay(g *domain.Game, events *[]Event) {
	r := g.Round
	leader := r.ContractorSeat
	if leader < 0 {
		leader = domain.NextSeat(r.DealerSeat)
	}
	r.LeadSeat = leader
	g.Phase = domain.PhasePlay
	g.CurrentSeat = leader
	s.emitPhase(g, events)
	s.promptTurn(g, events)
}

// scoreRound rolls the finished round into match totals and either starts the
// next round or ends the match. The next dealer is the seat with the lowest
// cumulative score.
func (s *Service) scoreRound(g *domain.Game, events *[]Event) {
	r := g.Round
	deltas := domain.RoundScores(r.Bids, r.TricksWon, r.CallTenSeat)
	var totals [4]int
	for i := range g.Seats {
		g.Seats[i].Score += deltas[i]
		totals[i] = g.Seats[i].Score
	}
	*events = append(*events, Event{
		Kind:    EventRoundScored,
		Payload: RoundScoredPayload{Round: r.Number, Deltas: deltas, Totals: totals},
	})

	if r.Number >= g.RoundsTotal {
		g.Phase = domain.PhaseMatchOver
		g.CurrentSeat = -1
		winner := 0
		for i := 1; i < 4; i++ {
			if totals[i] > totals[winner] {
				winner = i
			}
		}
		*events = append(*events, Event{
			Kind:    EventMatchEnded,
			Payload: MatchEndedPayload{Totals: totals, WinnerSeat: winner},
		})
		s.emitPhase(g, events)
		return
	}

	s.beginRound(g, r.Number+1, g.LowestScoreSeat(), events)
}

func (s *Service) setTrump(g *domain.Game, suit domain.Suit, bySeat int, lock bool, events *[]Event) {
	g.Round.Trump = suit
	if lock {
		g.Round.TrumpLocked = true
	}
	*events = append(*events, Event{
		Kind:    EventTrumpSet,
		Payload: TrumpSetPayload{Suit: suit, BySeat: bySeat, Locked: g.Round.TrumpLocked},
	})
}

func (s *Service) emitPhase(g *domain.Game, events *[]Event) {
	p := PhaseChangedPayload{Phase: g.Phase}
	if g.Round != nil {
		p.RoundNumber = g.Round.Number
		p.DealerSeat = g.Round.DealerSeat
	}
	*events = append(*events, Event{Kind: EventPhaseChanged, Payload: p})
}

// emitHands sends every seat its current hand, each event targeted at that
// seat's user only.
func (s *Service) emitHands(g *domain.Game, events *[]Event) {
	for i := range g.Seats {
		*events = append(*events, Event{
			Kind:       EventCardDealt,
			Payload:    CardDealtPayload{Seat: i, Cards: append([]domain.Card(nil), g.Seats[i].Hand...)},
			Recipients: []string{g.Seats[i].UserID},
		})
	}
}

// promptTurn tells the acting seat what input the coordinator is suspended
// on.
func (s *Service) promptTurn(g *domain.Game, events *[]Event) {
	seat, action := s.Awaiting(g)
	if seat < 0 {
		return
	}
	p := TurnPromptPayload{Seat: seat, Action: action}
	r := g.Round
	switch action {
	case domain.ActionAuctionBid:
		p.HighestBid = r.HighestBid
	case domain.ActionFinalBid:
		p.MinBid = r.MinFinalBid(seat)
	case domain.ActionPlayCard:
		p.Legal = domain.LegalMoves(g.Seats[seat].Hand, r.Trick, r.Trump)
	}
	*events = append(*events, Event{
		Kind:       EventTurnPrompt,
		Payload:    p,
		Recipients: []string{g.Seats[seat].UserID},
	})
}
