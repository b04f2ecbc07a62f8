package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameKaat is the authoritative match handler name registered with Nakama.
	MatchNameKaat = "kaat_match"

	// MatchLabelKey_OpenSeats is the label key quick-match queries filter on.
	MatchLabelKey_OpenSeats = "open"
)

// Data files, relative to the Nakama working directory.
const (
	botIdentitiesFile = "data/bot_identities.json"
	gameConfigFile    = "data/game_config.json"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartMatch  int64 = 1
	OpAuctionBid  int64 = 2
	OpSelectTrump int64 = 3
	OpFinalBid    int64 = 4
	OpPlayCard    int64 = 5

	// Server -> Client events
	OpPlayerJoined int64 = 101
	OpPlayerLeft   int64 = 102
	OpMatchStarted int64 = 103
	OpHandDealt    int64 = 104 // send privately
	OpTrumpSet     int64 = 105
	OpBidRecorded  int64 = 106
	OpCardPlayed   int64 = 107
	OpTrickWon     int64 = 108
	OpRoundScored  int64 = 109
	OpPhaseChanged int64 = 110
	OpMisdeal      int64 = 111
	OpMatchEnded   int64 = 112
	OpTurnPrompt   int64 = 113 // send privately
	OpMatchError   int64 = 114
)
