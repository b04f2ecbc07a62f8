package domain

// CallTenScore is the stake for a call-ten declaration: the caller wins or
// loses this flat amount.
const CallTenScore = 100

// RoundScores converts bids versus tricks won into per-seat score deltas.
//
// Standard seats score bid*10 plus one point per overtrick when they make
// their bid, and -bid*10 when they fall short. Under a call-ten declaration
// the caller scores +-CallTenScore on reaching ten tricks, and every forced
// seat scores its tricks won flat with no penalty.
func RoundScores(bids, tricks [4]int, callTenSeat int) [4]int {
	var deltas [4]int
	for i := 0; i < 4; i++ {
		if callTenSeat >= 0 {
			if i == callTenSeat {
				if tricks[i] >= 10 {
					deltas[i] = CallTenScore
				} else {
					deltas[i] = -CallTenScore
				}
			} else {
				deltas[i] = tricks[i]
			}
			continue
		}
		if tricks[i] >= bids[i] {
			deltas[i] = bids[i]*10 + (tricks[i] - bids[i])
		} else {
			deltas[i] = -bids[i] * 10
		}
	}
	return deltas
}
