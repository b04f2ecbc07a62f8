package bot

import (
	"fmt"
	"math/rand"
	"testing"

	"kaat/internal/app"
	"kaat/internal/config"
	"kaat/internal/domain"
)

// TestBotsCompleteMatches drives full matches with every seat run by a brain.
// The coordinator validates each decision, so any illegal bid or card play
// surfaces as an error here.
func TestBotsCompleteMatches(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			s := app.NewService(rand.New(rand.NewSource(seed)), config.Default())

			var seats [4]app.SeatSpec
			for i := range seats {
				seats[i] = app.SeatSpec{UserID: fmt.Sprintf("bot-%d", i), IsBot: true}
			}
			g, _, err := s.NewMatch(seats)
			if err != nil {
				t.Fatalf("NewMatch() failed: %v", err)
			}

			providers := [4]app.ActionProvider{
				&StandardBot{Tuning: DefaultTuning},
				&StandardBot{Tuning: DefaultTuning},
				&EasyBot{},
				&EasyBot{},
			}
			events, err := s.AdvanceProviders(g, providers)
			if err != nil {
				t.Fatalf("AdvanceProviders() failed: %v", err)
			}

			if g.Phase != domain.PhaseMatchOver {
				t.Fatalf("Phase = %v, want %v", g.Phase, domain.PhaseMatchOver)
			}
			scored := 0
			var ended *app.MatchEndedPayload
			for _, e := range events {
				switch e.Kind {
				case app.EventRoundScored:
					scored++
				case app.EventMatchEnded:
					p := e.Payload.(app.MatchEndedPayload)
					ended = &p
				}
			}
			if scored != g.RoundsTotal {
				t.Errorf("%d rounds scored, want %d", scored, g.RoundsTotal)
			}
			if ended == nil {
				t.Fatal("no match_ended event")
			}
			for i := range g.Seats {
				if g.Seats[i].Score != ended.Totals[i] {
					t.Errorf("seat %d score %d != reported total %d", i, g.Seats[i].Score, ended.Totals[i])
				}
				if len(g.Seats[i].Hand) != 0 {
					t.Errorf("seat %d still holds %d cards", i, len(g.Seats[i].Hand))
				}
			}
			for i := range ended.Totals {
				if ended.Totals[i] > ended.Totals[ended.WinnerSeat] {
					t.Errorf("seat %d total %d exceeds winner's %d", i, ended.Totals[i], ended.Totals[ended.WinnerSeat])
				}
			}
		})
	}
}

// TestAgentActsAsProvider checks that an agent built from an identity plugs
// into the coordinator's provider slot.
func TestAgentActsAsProvider(t *testing.T) {
	agent := NewAgent(BotIdentity{UserID: "b-1", DisplayName: "Nina", Difficulty: "easy"})
	var _ app.ActionProvider = agent

	bid, err := agent.GetFinalBid(domain.SeatView{MinBid: 2})
	if err != nil {
		t.Fatal(err)
	}
	if bid != 3 {
		t.Errorf("easy agent bid = %d, want 3", bid)
	}
}
