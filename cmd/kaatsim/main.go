// Command kaatsim runs headless bot-only matches through the real match
// coordinator. It is used to exercise the rules engine and to eyeball bot
// behaviour without a Nakama server.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"kaat/internal/app"
	"kaat/internal/bot"
	"kaat/internal/config"
	"kaat/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	var (
		matches = flag.Int("matches", 1, "number of matches to simulate")
		rounds  = flag.Int("rounds", 0, "rounds per match (0 uses the config default)")
		seed    = flag.Int64("seed", 0, "rng seed (0 seeds from the clock)")
		level   = flag.String("level", "standard", "bot level: easy or standard")
		verbose = flag.Bool("v", false, "log every event")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	cfg := config.Default()
	if *rounds > 0 {
		cfg.RoundsTotal = *rounds
	}

	botLevel := bot.BotLevelStandard
	if *level == "easy" {
		botLevel = bot.BotLevelEasy
	}

	var wins [4]int
	for m := 0; m < *matches; m++ {
		matchID := uuid.NewString()
		matchLog := log.With().Str("match_id", matchID).Int("match", m+1).Logger()

		s := app.NewService(rand.New(rand.NewSource(*seed+int64(m))), cfg)
		var seats [4]app.SeatSpec
		var providers [4]app.ActionProvider
		for i := range seats {
			seats[i] = app.SeatSpec{UserID: fmt.Sprintf("sim-%d", i), IsBot: true}
			brain, err := bot.NewBrain(botLevel)
			if err != nil {
				matchLog.Fatal().Err(err).Msg("failed to create brain")
			}
			providers[i] = brain
		}

		g, events, err := s.NewMatch(seats)
		if err != nil {
			matchLog.Fatal().Err(err).Msg("failed to start match")
		}
		logEvents(matchLog, events, *verbose)

		events, err = s.AdvanceProviders(g, providers)
		if err != nil {
			matchLog.Fatal().Err(err).Msg("match aborted")
		}
		logEvents(matchLog, events, *verbose)

		if g.Phase != domain.PhaseMatchOver {
			matchLog.Fatal().Str("phase", string(g.Phase)).Msg("match did not finish")
		}
		winner := winnerOf(events)
		wins[winner]++
		matchLog.Info().
			Int("winner_seat", winner).
			Ints("totals", totalsOf(g)).
			Msg("match finished")
	}

	log.Info().
		Int("matches", *matches).
		Ints("wins_by_seat", wins[:]).
		Msg("simulation done")
}

func logEvents(log zerolog.Logger, events []app.Event, verbose bool) {
	for _, ev := range events {
		switch p := ev.Payload.(type) {
		case app.RoundScoredPayload:
			log.Info().
				Int("round", p.Round).
				Ints("deltas", p.Deltas[:]).
				Ints("totals", p.Totals[:]).
				Msg("round scored")
		case app.MisdealPayload:
			log.Info().Int("round", p.Round).Str("reason", p.Reason).Msg("misdeal, redealing")
		default:
			if verbose {
				log.Debug().Str("kind", string(ev.Kind)).Interface("payload", ev.Payload).Msg("event")
			}
		}
	}
}

func winnerOf(events []app.Event) int {
	for _, ev := range events {
		if ev.Kind == app.EventMatchEnded {
			return ev.Payload.(app.MatchEndedPayload).WinnerSeat
		}
	}
	return -1
}

func totalsOf(g *domain.Game) []int {
	totals := make([]int, len(g.Seats))
	for i := range g.Seats {
		totals[i] = g.Seats[i].Score
	}
	return totals
}
