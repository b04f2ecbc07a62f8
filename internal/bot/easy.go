package bot

import (
	"kaat/internal/domain"
)

// EasyBot never competes for trump rights and predicts the floor of three
// tricks, playing its lowest legal card every turn.
type EasyBot struct{}

func (b *EasyBot) GetAuctionBid(view domain.SeatView) (int, error) {
	return 0, nil
}

func (b *EasyBot) GetSuitChoice(view domain.SeatView) (domain.Suit, error) {
	for _, s := range domain.Suits {
		if s != view.Trump {
			return s, nil
		}
	}
	return view.Trump, nil
}

func (b *EasyBot) GetFinalBid(view domain.SeatView) (int, error) {
	bid := view.MinBid
	if bid < 3 {
		bid = 3
	}
	return bid, nil
}

func (b *EasyBot) GetCardToPlay(view domain.SeatView) (domain.Card, error) {
	lowest := view.Legal[0]
	for _, c := range view.Legal[1:] {
		if c.Rank < lowest.Rank {
			lowest = c
		}
	}
	return lowest, nil
}
