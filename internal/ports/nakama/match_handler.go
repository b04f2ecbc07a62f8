package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"

	"kaat/internal/app"
	"kaat/internal/bot"
	"kaat/internal/config"
	"kaat/internal/domain"
	"kaat/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// winnerRewardCoins is paid to the winning seat's wallet after the last round.
const winnerRewardCoins = 500

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats          [4]string `json:"seats"`            // User IDs, empty string means the seat is open
	OwnerSeat      int       `json:"owner_seat"`       // Seat index of the match owner
	LastWinnerSeat int       `json:"last_winner_seat"` // Winner of the previous match at this table
	Tick           int64     `json:"tick"`

	Presences map[string]runtime.Presence `json:"-"`
	App       *app.Service                `json:"-"`
	Game      *domain.Game                `json:"-"` // nil while in the lobby
	Bots      map[string]*bot.Agent       `json:"-"`
	Providers [4]app.ActionProvider       `json:"-"` // non-nil for bot seats during a match
	Economy   ports.EconomyPort           `json:"-"`

	BotsEnabled          bool  `json:"bots_enabled"`
	BotMinDelay          int   `json:"bot_min_delay"`
	BotMaxDelay          int   `json:"bot_max_delay"`
	BotAutoFillDelay     int   `json:"bot_auto_fill_delay"`
	BotWaitUntil         int64 `json:"bot_wait_until"` // Tick when the acting bot seat moves
	LastSinglePlayerTick int64 `json:"last_single_player_tick"`

	TurnTimeout  int      `json:"turn_timeout"`  // Seconds before a human turn forfeits, 0 disables
	TurnDeadline int64    `json:"turn_deadline"` // Tick when the awaited human forfeits
	Autopilot    [4]bool  `json:"autopilot"`     // Seats abandoned mid-match play default actions

	AwaitSeat   int               `json:"await_seat"`
	AwaitAction domain.ActionType `json:"await_action"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return len(ms.Seats) - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: initializing match handler")

	if err := bot.LoadIdentities(botIdentitiesFile); err != nil {
		logger.Warn("MatchInit: could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig(gameConfigFile); err != nil {
		logger.Warn("MatchInit: could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()

	state := &MatchState{
		OwnerSeat:      -1,
		LastWinnerSeat: -1,
		Presences:      make(map[string]runtime.Presence),
		App:            app.NewService(nil, cfg),
		Bots:           make(map[string]*bot.Agent),
		Economy:        NewNakamaEconomyAdapter(nk),

		BotsEnabled:      true,
		BotMinDelay:      cfg.BotMinDelaySeconds,
		BotMaxDelay:      cfg.BotMaxDelaySeconds,
		BotAutoFillDelay: cfg.BotAutoFillDelaySeconds,
		TurnTimeout:      cfg.TurnTimeoutSeconds,
		AwaitSeat:        -1,
	}

	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if val, ok := env["kaat_bots_enabled"]; ok {
			state.BotsEnabled = val == "true"
		}
	}

	labelBytes, err := json.Marshal(matchLabel{Open: state.GetOpenSeatsCount(), Game: "kaat", Phase: "lobby"})
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Rejoining players keep their seat through the whole match.
	for _, seat := range matchState.Seats {
		if seat == presence.GetUserId() {
			return state, true, ""
		}
	}

	// Allow join if there is an empty seat OR a bot to replace before the deal.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Game == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if seat := mh.seatOf(matchState, p.GetUserId()); seat >= 0 {
			// Reconnect: hand control back and resend the private state.
			matchState.Autopilot[seat] = false
			mh.resendSeatState(matchState, dispatcher, logger, seat)
			continue
		}

		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Game == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: replacing bot %s with %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: user %s joined but no seat was available", p.GetUserId())
		}
	}

	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(matchState, dispatcher, OpPlayerJoined)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		seat := mh.seatOf(matchState, p.GetUserId())
		if seat < 0 {
			continue
		}
		if matchState.Game != nil {
			// Seats are fixed once dealt; the coordinator plays default
			// actions for the seat until the player returns.
			matchState.Autopilot[seat] = true
			logger.Debug("MatchLeave: seat %d on autopilot", seat)
			mh.refreshTurn(matchState, tick)
		} else {
			matchState.Seats[seat] = ""
			logger.Debug("MatchLeave: user %s left, seat %d freed", p.GetUserId(), seat)
		}
	}

	if newOwner := findFirstHumanSeat(matchState.Seats[:]); newOwner != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwner
	}

	if findFirstHumanSeat(matchState.Seats[:]) == -1 || mh.allHumansGone(matchState) {
		logger.Info("MatchLeave: terminating match with no connected humans")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(matchState, dispatcher, OpPlayerLeft)

	return matchState
}

// allHumansGone reports whether every human seat has disconnected.
func (mh *matchHandler) allHumansGone(state *MatchState) bool {
	for i, uid := range state.Seats {
		if isHumanSeat(state.Seats[:], i) {
			if _, connected := state.Presences[uid]; connected {
				return false
			}
		}
	}
	return true
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartMatch:
			mh.handleStartMatch(ctx, matchState, dispatcher, logger, msg)
		case OpAuctionBid:
			mh.handleAuctionBid(ctx, matchState, dispatcher, logger, msg)
		case OpSelectTrump:
			mh.handleSelectTrump(ctx, matchState, dispatcher, logger, msg)
		case OpFinalBid:
			mh.handleFinalBid(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.autoFillBots(matchState, dispatcher, logger)
	}
	mh.processTurn(ctx, matchState, dispatcher, logger)

	return matchState
}

// autoFillBots fills the remaining seats with bots when a single human has
// been waiting in the lobby past the configured delay.
func (mh *matchHandler) autoFillBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game != nil {
		return
	}
	if state.GetHumanPlayerCount() != 1 {
		state.LastSinglePlayerTick = 0
		return
	}
	if state.LastSinglePlayerTick == 0 {
		state.LastSinglePlayerTick = state.Tick
		return
	}
	if state.Tick-state.LastSinglePlayerTick < int64(state.BotAutoFillDelay) {
		return
	}

	added := false
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		identity := bot.GetBotIdentity(i)
		state.Seats[i] = identity.UserID
		state.Bots[identity.UserID] = bot.NewAgent(identity)
		logger.Info("autoFillBots: added bot %s to seat %d", identity.DisplayName, i)
		added = true
	}
	if added {
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastSnapshot(state, dispatcher, OpPlayerJoined)
	}
	state.LastSinglePlayerTick = 0
}

// processTurn advances the match when the awaited seat is a bot, an abandoned
// seat, or a human past the turn deadline.
func (mh *matchHandler) processTurn(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil || state.AwaitSeat < 0 {
		return
	}
	seat := state.AwaitSeat
	uid := state.Seats[seat]

	var events []app.Event
	var err error
	switch {
	case isBotUserId(uid), state.Autopilot[seat]:
		if state.BotWaitUntil == 0 || state.Tick < state.BotWaitUntil {
			return
		}
		if isBotUserId(uid) {
			events, err = state.App.StepProvider(state.Game, state.Providers)
		} else {
			events, err = state.App.ApplyDefaultAction(state.Game)
		}
	default:
		if state.TurnTimeout <= 0 || state.TurnDeadline == 0 || state.Tick < state.TurnDeadline {
			return
		}
		logger.Info("processTurn: seat %d timed out, playing default action", seat)
		events, err = state.App.ApplyDefaultAction(state.Game)
	}

	if err != nil {
		// A broken strategy must not stall the table.
		logger.Error("processTurn: seat %d action failed: %v", seat, err)
		events, err = state.App.ApplyDefaultAction(state.Game)
		if err != nil {
			logger.Error("processTurn: default action failed for seat %d: %v", seat, err)
			return
		}
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.refreshTurn(state, state.Tick)
}

// refreshTurn re-arms the bot delay or the human turn deadline after the
// awaited seat changes.
func (mh *matchHandler) refreshTurn(state *MatchState, tick int64) {
	if state.Game == nil {
		state.AwaitSeat = -1
		state.AwaitAction = domain.ActionNone
		return
	}
	seat, action := state.App.Awaiting(state.Game)
	state.AwaitSeat = seat
	state.AwaitAction = action
	state.BotWaitUntil = 0
	state.TurnDeadline = 0
	if seat < 0 {
		return
	}

	uid := state.Seats[seat]
	_, connected := state.Presences[uid]
	switch {
	case isBotUserId(uid), state.Autopilot[seat], !connected:
		delay := state.BotMinDelay
		if state.BotMaxDelay > state.BotMinDelay {
			delay += rand.Intn(state.BotMaxDelay - state.BotMinDelay + 1)
		}
		state.BotWaitUntil = tick + int64(delay)
		if !isBotUserId(uid) {
			state.Autopilot[seat] = true
		}
	case state.TurnTimeout > 0:
		state.TurnDeadline = tick + int64(state.TurnTimeout)
	}
}

func (mh *matchHandler) seatOf(state *MatchState, userID string) int {
	for i, seatUserId := range state.Seats {
		if seatUserId != "" && seatUserId == userID {
			return i
		}
	}
	return -1
}

func (mh *matchHandler) handleStartMatch(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := mh.seatOf(state, senderID)

	if state.Game != nil {
		mh.sendError(state, dispatcher, logger, senderID, 409, "match already running")
		return
	}
	if senderSeat != state.OwnerSeat {
		logger.Warn("handleStartMatch: user %s is not the owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}
	if state.GetOccupiedSeatCount() < len(state.Seats) {
		mh.sendError(state, dispatcher, logger, senderID, 400, "table not full")
		return
	}

	var seats [4]app.SeatSpec
	for i, uid := range state.Seats {
		seats[i] = app.SeatSpec{UserID: uid, IsBot: isBotUserId(uid)}
		if agent, ok := state.Bots[uid]; ok {
			state.Providers[i] = agent
		} else {
			state.Providers[i] = nil
		}
	}
	state.Autopilot = [4]bool{}

	game, events, err := state.App.NewMatch(seats)
	if err != nil {
		logger.Error("handleStartMatch: failed to start: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 500, err.Error())
		return
	}
	state.Game = game

	started, _ := json.Marshal(matchStartedEvent{
		Seats:       state.Seats[:],
		RoundsTotal: game.RoundsTotal,
		DealerSeat:  game.Round.DealerSeat,
	})
	dispatcher.BroadcastMessage(OpMatchStarted, started, nil, nil, true)

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.refreshTurn(state, state.Tick)

	logger.Info("handleStartMatch: match started, dealer seat %d", game.Round.DealerSeat)
}

func (mh *matchHandler) handleAuctionBid(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := mh.actionSender(state, dispatcher, logger, msg)
	if !ok {
		return
	}
	var req auctionBidRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "malformed bid")
		return
	}
	events, err := state.App.SubmitAuctionBid(state.Game, seat, req.Value)
	mh.finishAction(ctx, state, dispatcher, logger, msg.GetUserId(), events, err)
}

func (mh *matchHandler) handleSelectTrump(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := mh.actionSender(state, dispatcher, logger, msg)
	if !ok {
		return
	}
	var req selectTrumpRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "malformed suit choice")
		return
	}
	events, err := state.App.SelectTrump(state.Game, seat, req.Suit)
	mh.finishAction(ctx, state, dispatcher, logger, msg.GetUserId(), events, err)
}

func (mh *matchHandler) handleFinalBid(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := mh.actionSender(state, dispatcher, logger, msg)
	if !ok {
		return
	}
	var req finalBidRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "malformed bid")
		return
	}
	events, err := state.App.SubmitFinalBid(state.Game, seat, req.Value)
	mh.finishAction(ctx, state, dispatcher, logger, msg.GetUserId(), events, err)
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := mh.actionSender(state, dispatcher, logger, msg)
	if !ok {
		return
	}
	var req playCardRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "malformed card")
		return
	}
	events, err := state.App.PlayCard(state.Game, seat, req.Card)
	mh.finishAction(ctx, state, dispatcher, logger, msg.GetUserId(), events, err)
}

// actionSender resolves the sender's seat for an in-game action.
func (mh *matchHandler) actionSender(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) (int, bool) {
	if state.Game == nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "no match running")
		return -1, false
	}
	seat := mh.seatOf(state, msg.GetUserId())
	if seat < 0 {
		logger.Warn("actionSender: message from non-seated user %s", msg.GetUserId())
		return -1, false
	}
	return seat, true
}

// finishAction reports a rejected action to its sender or fans out the events.
func (mh *matchHandler) finishAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, events []app.Event, err error) {
	if err != nil {
		logger.Warn("finishAction: action by %s rejected: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.refreshTurn(state, state.Tick)
}

// broadcastEvent fans an app event out on its op code, honoring targeted
// recipients.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	switch ev.Kind {
	case app.EventCardDealt:
		opCode = OpHandDealt
	case app.EventTrumpSet:
		opCode = OpTrumpSet
	case app.EventBidRecorded:
		opCode = OpBidRecorded
	case app.EventCardPlayed:
		opCode = OpCardPlayed
	case app.EventTrickWon:
		opCode = OpTrickWon
	case app.EventRoundScored:
		opCode = OpRoundScored
	case app.EventPhaseChanged:
		opCode = OpPhaseChanged
	case app.EventMisdeal:
		opCode = OpMisdeal
	case app.EventMatchEnded:
		opCode = OpMatchEnded
		mh.settleMatch(ctx, state, dispatcher, logger, ev.Payload.(app.MatchEndedPayload))
	case app.EventTurnPrompt:
		opCode = OpTurnPrompt
	default:
		logger.Warn("broadcastEvent: unknown event kind %q", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("broadcastEvent: failed to marshal %q: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Targeted events with no connected recipient (bot seats) must not
		// fall back to a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// settleMatch pays the winner and returns the table to the lobby.
func (mh *matchHandler) settleMatch(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, p app.MatchEndedPayload) {
	winnerID := state.Seats[p.WinnerSeat]
	if state.Economy != nil && !isBotUserId(winnerID) {
		update := ports.WalletUpdate{
			UserID: winnerID,
			Amount: winnerRewardCoins,
			Metadata: map[string]interface{}{
				"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
				"reason":   "match_reward",
			},
		}
		if err := state.Economy.UpdateBalances(ctx, []ports.WalletUpdate{update}); err != nil {
			logger.Error("settleMatch: failed to pay winner %s: %v", winnerID, err)
		}
	}

	state.LastWinnerSeat = p.WinnerSeat
	state.Game = nil
	state.Providers = [4]app.ActionProvider{}
	state.Autopilot = [4]bool{}
	state.AwaitSeat = -1
	state.AwaitAction = domain.ActionNone
	mh.updateLabel(state, dispatcher, logger)
}

// resendSeatState re-sends a reconnecting player their hand and any pending
// prompt.
func (mh *matchHandler) resendSeatState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat int) {
	if state.Game == nil {
		return
	}
	p, ok := state.Presences[state.Seats[seat]]
	if !ok {
		return
	}
	view := state.Game.ViewFor(seat)
	bytes, err := json.Marshal(view)
	if err != nil {
		logger.Error("resendSeatState: failed to marshal view: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpHandDealt, bytes, []runtime.Presence{p}, nil, true)
	mh.refreshTurn(state, state.Tick)
}

func (mh *matchHandler) broadcastSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, opCode int64) {
	var players []playerState
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}
		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(userId); name != "" {
			displayName = name
		}
		avatarIndex := 0
		if cfg, ok := bot.GetBotConfig(userId); ok {
			avatarIndex = cfg.AvatarIndex
		}
		score := 0
		if state.Game != nil {
			score = state.Game.Seats[i].Score
		}
		players = append(players, playerState{
			UserID:      userId,
			Seat:        i,
			DisplayName: displayName,
			IsOwner:     i == state.OwnerSeat,
			IsBot:       isBotUserId(userId),
			AvatarIndex: avatarIndex,
			Score:       score,
		})
	}

	bytes, _ := json.Marshal(matchSnapshot{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Players:   players,
	})
	dispatcher.BroadcastMessage(opCode, bytes, nil, nil, true)
}

// sendError sends a matchErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	bytes, err := json.Marshal(matchErrorEvent{Code: code, Message: message})
	if err != nil {
		logger.Error("sendError: failed to marshal: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpMatchError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Game != nil {
		phase = "playing"
	}
	labelBytes, err := json.Marshal(matchLabel{Open: state.GetOpenSeatsCount(), Game: "kaat", Phase: phase})
	if err != nil {
		logger.Error("updateLabel: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
