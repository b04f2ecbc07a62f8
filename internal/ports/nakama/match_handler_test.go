package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"kaat/internal/app"
	"kaat/internal/bot"
	"kaat/internal/config"
	"kaat/internal/domain"
	"kaat/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

func init() {
	// Load bot identities for testing.
	if err := bot.LoadIdentities("test_bot_identities.json"); err != nil {
		panic("Failed to load bot identities for tests: " + err.Error())
	}
}

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcastCount int
	labelUpdates   int
	lastLabel      string
	lastOpCode     int64
	lastData       []byte
	opCodesSeen    map[int64]int
	privateSends   map[int64]int
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcastCount++
	md.lastOpCode = opCode
	md.lastData = append([]byte(nil), data...)
	if md.opCodesSeen == nil {
		md.opCodesSeen = make(map[int64]int)
	}
	md.opCodesSeen[opCode]++
	if len(presences) > 0 {
		if md.privateSends == nil {
			md.privateSends = make(map[int64]int)
		}
		md.privateSends[opCode]++
	}
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	md.lastLabel = label
	return nil
}

// testPresence satisfies runtime.Presence for a connected test user.
type testPresence struct {
	userID string
}

func (p testPresence) GetUserId() string                 { return p.userID }
func (p testPresence) GetSessionId() string              { return "session-" + p.userID }
func (p testPresence) GetNodeId() string                 { return "node-1" }
func (p testPresence) GetHidden() bool                   { return false }
func (p testPresence) GetPersistence() bool              { return true }
func (p testPresence) GetUsername() string               { return p.userID }
func (p testPresence) GetStatus() string                 { return "" }
func (p testPresence) GetReason() runtime.PresenceReason { return runtime.PresenceReason(0) }

// testMessage satisfies runtime.MatchData for a client op code payload.
type testMessage struct {
	testPresence
	opCode int64
	data   []byte
}

func (m testMessage) GetOpCode() int64      { return m.opCode }
func (m testMessage) GetData() []byte       { return m.data }
func (m testMessage) GetReliable() bool     { return true }
func (m testMessage) GetReceiveTime() int64 { return 0 }

type mockEconomy struct {
	updates []ports.WalletUpdate
}

func (me *mockEconomy) GetBalance(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (me *mockEconomy) UpdateBalances(ctx context.Context, updates []ports.WalletUpdate) error {
	me.updates = append(me.updates, updates...)
	return nil
}

// newTestState builds an in-lobby match state without going through MatchInit.
func newTestState(seed int64) *MatchState {
	return &MatchState{
		OwnerSeat:      -1,
		LastWinnerSeat: -1,
		Presences:      make(map[string]runtime.Presence),
		App:            app.NewService(rand.New(rand.NewSource(seed)), config.Default()),
		Bots:           make(map[string]*bot.Agent),
		Economy:        &mockEconomy{},
		BotsEnabled:    true,
		BotMaxDelay:    0,
		TurnTimeout:    30,
		AwaitSeat:      -1,
	}
}

func TestFindFirstHumanSeat(t *testing.T) {
	bot1 := bot.GetBotIdentity(0).UserID
	bot2 := bot.GetBotIdentity(1).UserID

	tests := []struct {
		name  string
		seats []string
		want  int
	}{
		{name: "FirstHumanAfterBot", seats: []string{bot1, "user-1", "", ""}, want: 1},
		{name: "AllBots", seats: []string{bot1, bot2, "", ""}, want: -1},
		{name: "AllEmpty", seats: []string{"", "", "", ""}, want: -1},
		{name: "FirstHumanIsSeatZero", seats: []string{"user-1", bot1, "user-2", ""}, want: 0},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := findFirstHumanSeat(test.seats); got != test.want {
				t.Fatalf("findFirstHumanSeat() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestMatchLabelMarshal(t *testing.T) {
	payload, err := json.Marshal(matchLabel{Open: 3, Game: "kaat", Phase: "lobby"})
	if err != nil {
		t.Fatalf("Failed to marshal label: %v", err)
	}
	want := `{"open":3,"game":"kaat","phase":"lobby"}`
	if string(payload) != want {
		t.Errorf("Got %s, want %s", payload, want)
	}
}

func TestMatchJoinAssignsSeatsAndOwner(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState(1)

	out := handler.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state,
		[]runtime.Presence{testPresence{userID: "user-1"}, testPresence{userID: "user-2"}})
	state = out.(*MatchState)

	if state.Seats[0] != "user-1" || state.Seats[1] != "user-2" {
		t.Fatalf("Seats = %v, want user-1 and user-2 in the first two", state.Seats)
	}
	if state.OwnerSeat != 0 {
		t.Errorf("OwnerSeat = %d, want 0", state.OwnerSeat)
	}
	if dispatcher.opCodesSeen[OpPlayerJoined] == 0 {
		t.Error("no player_joined snapshot broadcast")
	}
	if dispatcher.labelUpdates == 0 {
		t.Error("label not updated after join")
	}
}

func TestAutoFillBotsForSoloHuman(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState(2)
	state.Seats[0] = "user-1"
	state.Presences["user-1"] = testPresence{userID: "user-1"}
	state.BotAutoFillDelay = 2
	state.LastSinglePlayerTick = 8
	state.Tick = 10

	handler.autoFillBots(state, dispatcher, noopLogger{})

	botCount := 0
	for _, seat := range state.Seats {
		if isBotUserId(seat) {
			botCount++
		}
	}
	if botCount != 3 {
		t.Fatalf("Expected 3 bots after auto-fill, got %d", botCount)
	}
	if state.GetOpenSeatsCount() != 0 {
		t.Fatalf("Expected a full table after auto-fill, got %d open", state.GetOpenSeatsCount())
	}
	if state.LastSinglePlayerTick != 0 {
		t.Fatalf("Expected auto-fill timer reset, got %d", state.LastSinglePlayerTick)
	}
	if len(state.Bots) != 3 {
		t.Fatalf("Expected 3 bot agents, got %d", len(state.Bots))
	}
	if dispatcher.broadcastCount == 0 || dispatcher.labelUpdates == 0 {
		t.Fatal("Expected snapshot broadcast and label update after auto-fill")
	}

	// Bot seats carry their pool identity (display name and avatar) in the
	// snapshot.
	var snap matchSnapshot
	if err := json.Unmarshal(dispatcher.lastData, &snap); err != nil {
		t.Fatalf("snapshot unmarshal failed: %v", err)
	}
	for _, p := range snap.Players {
		if p.IsBot && p.AvatarIndex == 0 {
			t.Errorf("bot %s has no avatar index in the snapshot", p.DisplayName)
		}
	}
}

func TestMatchLeaveInLobbyFreesSeat(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState(3)
	state.Seats = [4]string{"user-1", "user-2", "", ""}
	state.OwnerSeat = 0
	state.Presences["user-1"] = testPresence{userID: "user-1"}
	state.Presences["user-2"] = testPresence{userID: "user-2"}

	out := handler.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 5, state,
		[]runtime.Presence{testPresence{userID: "user-1"}})
	state = out.(*MatchState)

	if state.Seats[0] != "" {
		t.Errorf("seat 0 not freed: %q", state.Seats[0])
	}
	if state.OwnerSeat != 1 {
		t.Errorf("OwnerSeat = %d, want 1", state.OwnerSeat)
	}
}

func TestMatchLeaveLastHumanTerminates(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState(4)
	state.Seats = [4]string{"user-1", "", "", ""}
	state.OwnerSeat = 0
	state.Presences["user-1"] = testPresence{userID: "user-1"}

	out := handler.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 5, state,
		[]runtime.Presence{testPresence{userID: "user-1"}})
	if out != nil {
		t.Fatal("expected match termination when the last human leaves")
	}
}

// fillTableWithBots seats one human owner and three pool bots with agents.
func fillTableWithBots(state *MatchState) {
	state.Seats[0] = "user-1"
	state.OwnerSeat = 0
	state.Presences["user-1"] = testPresence{userID: "user-1"}
	for i := 1; i < 4; i++ {
		identity := bot.GetBotIdentity(i - 1)
		state.Seats[i] = identity.UserID
		state.Bots[identity.UserID] = bot.NewAgent(identity)
	}
}

func TestStartMatchDealsAndPrompts(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState(5)
	fillTableWithBots(state)
	state.Tick = 1

	msg := testMessage{testPresence: testPresence{userID: "user-1"}, opCode: OpStartMatch}
	handler.handleStartMatch(context.Background(), state, dispatcher, noopLogger{}, msg)

	if state.Game == nil {
		t.Fatal("Game not created")
	}
	if dispatcher.opCodesSeen[OpMatchStarted] != 1 {
		t.Errorf("match_started broadcasts = %d, want 1", dispatcher.opCodesSeen[OpMatchStarted])
	}
	// Only the connected human receives private hand events.
	if dispatcher.privateSends[OpHandDealt] == 0 {
		t.Error("no private hand sent to the human seat")
	}
	if state.AwaitSeat < 0 {
		t.Fatal("no awaited seat after the deal")
	}

	// Starting again while a match is running is rejected.
	dispatcher2 := &mockDispatcher{}
	handler.handleStartMatch(context.Background(), state, dispatcher2, noopLogger{},
		testMessage{testPresence: testPresence{userID: "user-1"}, opCode: OpStartMatch})
	if dispatcher2.opCodesSeen[OpMatchStarted] != 0 {
		t.Error("second start while running should not deal again")
	}
}

// TestMatchRunsToCompletion drives a full match through the loop: bots act on
// their ticks and the human seat answers every prompt with a minimal action.
func TestMatchRunsToCompletion(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	economy := &mockEconomy{}
	state := newTestState(6)
	state.Economy = economy
	fillTableWithBots(state)
	state.Tick = 1

	handler.handleStartMatch(context.Background(), state, dispatcher, noopLogger{},
		testMessage{testPresence: testPresence{userID: "user-1"}, opCode: OpStartMatch})
	if state.Game == nil {
		t.Fatal("Game not created")
	}

	humanSeat := 0
	for tick := int64(2); tick < 20000 && state.Game != nil; tick++ {
		var messages []runtime.MatchData
		if state.AwaitSeat == humanSeat {
			messages = append(messages, humanAnswer(t, state))
		}
		out := handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, tick, state, messages)
		state = out.(*MatchState)
	}

	if state.Game != nil {
		t.Fatalf("match did not finish; stuck awaiting seat %d action %q", state.AwaitSeat, state.AwaitAction)
	}
	if dispatcher.opCodesSeen[OpMatchEnded] != 1 {
		t.Errorf("match_ended broadcasts = %d, want 1", dispatcher.opCodesSeen[OpMatchEnded])
	}
	if dispatcher.opCodesSeen[OpRoundScored] != config.Default().RoundsTotal {
		t.Errorf("round_scored broadcasts = %d, want %d", dispatcher.opCodesSeen[OpRoundScored], config.Default().RoundsTotal)
	}
	if state.LastWinnerSeat < 0 || state.LastWinnerSeat > 3 {
		t.Errorf("LastWinnerSeat = %d after match", state.LastWinnerSeat)
	}
	if state.LastWinnerSeat == humanSeat && len(economy.updates) == 0 {
		t.Error("human winner was not paid the match reward")
	}
}

// humanAnswer builds the minimal legal client message for the awaited action.
func humanAnswer(t *testing.T, state *MatchState) runtime.MatchData {
	t.Helper()
	var opCode int64
	var payload interface{}
	switch state.AwaitAction {
	case domain.ActionAuctionBid:
		opCode = OpAuctionBid
		payload = auctionBidRequest{Value: 0}
	case domain.ActionSuitChoice:
		opCode = OpSelectTrump
		payload = selectTrumpRequest{Suit: state.Game.Round.Trump}
	case domain.ActionFinalBid:
		opCode = OpFinalBid
		bid := state.Game.Round.MinFinalBid(state.AwaitSeat)
		if bid < 3 {
			bid = 3
		}
		payload = finalBidRequest{Value: bid}
	case domain.ActionPlayCard:
		opCode = OpPlayCard
		legal := domain.LegalMoves(state.Game.Seats[state.AwaitSeat].Hand, state.Game.Round.Trick, state.Game.Round.Trump)
		payload = playCardRequest{Card: legal[0]}
	default:
		t.Fatalf("unexpected awaited action %q", state.AwaitAction)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	return testMessage{testPresence: testPresence{userID: state.Seats[state.AwaitSeat]}, opCode: opCode, data: data}
}

func TestTurnTimeoutPlaysDefaultAction(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState(7)
	state.TurnTimeout = 5

	// Four humans so the awaited seat is never bot-driven.
	var seats [4]app.SeatSpec
	for i := range seats {
		uid := fmt.Sprintf("user-%d", i)
		seats[i] = app.SeatSpec{UserID: uid}
		state.Seats[i] = uid
		state.Presences[uid] = testPresence{userID: uid}
	}
	game, _, err := state.App.NewMatch(seats)
	if err != nil {
		t.Fatal(err)
	}
	state.Game = game
	state.Tick = 100
	handler.refreshTurn(state, state.Tick)

	if state.TurnDeadline != 105 {
		t.Fatalf("TurnDeadline = %d, want 105", state.TurnDeadline)
	}
	before := state.AwaitSeat

	// Deadline not reached yet: nothing happens.
	state.Tick = 104
	handler.processTurn(context.Background(), state, dispatcher, noopLogger{})
	if state.AwaitSeat != before || dispatcher.broadcastCount != 0 {
		t.Fatal("turn advanced before the deadline")
	}

	state.Tick = 105
	handler.processTurn(context.Background(), state, dispatcher, noopLogger{})
	if state.AwaitSeat == before && state.AwaitAction == domain.ActionFinalBid {
		t.Fatal("timeout did not advance the awaited seat")
	}
	if dispatcher.opCodesSeen[OpBidRecorded] == 0 {
		t.Error("default action did not record a bid")
	}
}

func TestMatchLeaveDuringGameEnablesAutopilot(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState(8)
	state.Seats = [4]string{"user-1", "user-2", "", ""}
	state.OwnerSeat = 0
	state.Presences["user-1"] = testPresence{userID: "user-1"}
	state.Presences["user-2"] = testPresence{userID: "user-2"}

	var seats [4]app.SeatSpec
	for i := range seats {
		seats[i] = app.SeatSpec{UserID: fmt.Sprintf("user-%d", i+1)}
		state.Seats[i] = seats[i].UserID
	}
	game, _, err := state.App.NewMatch(seats)
	if err != nil {
		t.Fatal(err)
	}
	state.Game = game

	out := handler.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 5, state,
		[]runtime.Presence{testPresence{userID: "user-2"}})
	state = out.(*MatchState)

	if !state.Autopilot[1] {
		t.Error("departed seat 1 not on autopilot")
	}
	if state.Seats[1] != "user-2" {
		t.Error("in-game seat must stay assigned after a disconnect")
	}
}
