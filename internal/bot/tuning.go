package bot

// BotTuning holds the weights behind the standard strategy's hand evaluation.
type BotTuning struct {
	// Per-card trick expectation used when estimating the final bid.
	AceWeight   float64
	KingWeight  float64
	QueenWeight float64

	// Extra expected tricks per trump beyond the third.
	TrumpLengthBonus float64

	// Ruffing potential in short non-trump suits, counted only while the
	// hand still holds trumps.
	VoidBonus      float64
	SingletonBonus float64

	// Auction entry: the strongest suit must reach this score before the
	// bot competes for trump rights, and it never bids past MaxAuctionBid.
	// The auction is decided on the five-card first deal, where a suit
	// score tops out near four.
	AuctionThreshold float64
	MaxAuctionBid    int
}

// DefaultTuning biases the standard bot toward conservative bids; undershooting
// a prediction loses ten times the bid while overtricks cost one point each.
var DefaultTuning = BotTuning{
	AceWeight:        1.0,
	KingWeight:       0.75,
	QueenWeight:      0.5,
	TrumpLengthBonus: 0.75,
	VoidBonus:        1.0,
	SingletonBonus:   0.5,
	AuctionThreshold: 2.5,
	MaxAuctionBid:    8,
}
