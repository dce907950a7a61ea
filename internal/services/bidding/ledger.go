// Package bidding holds the sealed-bid ledger for one round and the resolver
// that settles it.
package bidding

import (
	"time"

	"github.com/draftnight/auction-go/internal/model"
)

// Ledger collects the sealed bids of one round, at most one per captain.
// Eligibility and budget validation happen in the room state machine before a
// bid reaches the ledger; the ledger only records.
type Ledger struct {
	entries map[model.ConnectionID]model.Bid
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[model.ConnectionID]model.Bid)}
}

// Record stores a captain's sealed bid. A resubmission before reveal silently
// replaces the prior value.
func (l *Ledger) Record(conn model.ConnectionID, amount int, at time.Time) {
	l.entries[conn] = model.Bid{ConnID: conn, Amount: amount, PlacedAt: at}
}

// Len returns the number of captains with a recorded bid
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Has reports whether the captain has a recorded bid
func (l *Ledger) Has(conn model.ConnectionID) bool {
	_, ok := l.entries[conn]
	return ok
}

// Get returns the captain's recorded bid, if any
func (l *Ledger) Get(conn model.ConnectionID) (model.Bid, bool) {
	bid, ok := l.entries[conn]
	return bid, ok
}

// Entries returns every recorded bid in unspecified order
func (l *Ledger) Entries() []model.Bid {
	bids := make([]model.Bid, 0, len(l.entries))
	for _, bid := range l.entries {
		bids = append(bids, bid)
	}
	return bids
}

// Rebind moves a captain's recorded bid to a new connection handle. Used when
// a captain reconnects mid-round so the ledger keeps tracking one entry per
// captain.
func (l *Ledger) Rebind(old, replacement model.ConnectionID) {
	bid, ok := l.entries[old]
	if !ok {
		return
	}
	delete(l.entries, old)
	bid.ConnID = replacement
	l.entries[replacement] = bid
}
