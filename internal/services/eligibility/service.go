// Package eligibility decides whether a captain may bid on a candidate player.
package eligibility

import (
	"github.com/draftnight/auction-go/internal/model"
)

// CanBid reports whether winning the candidate player would keep the
// captain's roster within both the candidate pool's cap and the team cap.
// It recomputes pool counts from the roster each call; eligibility is never
// cached across rounds because rosters change between rounds.
func CanBid(captain *model.Captain, candidate model.Player, caps model.Caps) bool {
	poolCount := 0
	totalSlots := 0
	for _, p := range captain.Roster {
		if p.Pool == candidate.Pool {
			poolCount++
		}
		totalSlots += p.Slots()
	}

	if poolCount >= caps.PoolCaps[candidate.Pool] {
		return false
	}
	if totalSlots+candidate.Slots() > caps.TeamCap {
		return false
	}
	return true
}
