package bidding

import (
	"sort"

	"github.com/draftnight/auction-go/internal/dependencies/random"
	"github.com/draftnight/auction-go/internal/model"
)

// Resolve settles a closed round's ledger: the highest bid wins, and a tie at
// the maximum is broken by a uniform random pick among the tied entries only.
// Returns ok=false for an empty ledger. The tied set is sorted by connection
// handle before the pick so a seeded source resolves deterministically.
func Resolve(l *Ledger, rnd random.Random) (winner model.Bid, ok bool) {
	if l.Len() == 0 {
		return model.Bid{}, false
	}

	highest := -1
	var tied []model.Bid
	for _, bid := range l.Entries() {
		switch {
		case bid.Amount > highest:
			highest = bid.Amount
			tied = tied[:0]
			tied = append(tied, bid)
		case bid.Amount == highest:
			tied = append(tied, bid)
		}
	}

	if len(tied) == 1 {
		return tied[0], true
	}

	sort.Slice(tied, func(i, j int) bool { return tied[i].ConnID < tied[j].ConnID })
	return tied[rnd.Intn(len(tied))], true
}
