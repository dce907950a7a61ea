// Package caps derives and reports roster capacity limits for an auction room.
package caps

import (
	"github.com/draftnight/auction-go/internal/model"
)

// Calculate derives per-pool and team-wide caps from the full player list and
// the declared team count. Pool cap = ceil(poolCount / teamCount); team cap =
// ceil(totalSlots / teamCount) where duo players contribute 2 slots.
// teamCount must be validated (>= 1) at the room-creation boundary.
func Calculate(players []model.Player, teamCount int) model.Caps {
	poolCounts := make(map[model.Pool]int)
	totalSlots := 0
	for _, p := range players {
		poolCounts[p.Pool]++
		totalSlots += p.Slots()
	}

	poolCaps := make(map[model.Pool]int, len(poolCounts))
	for pool, count := range poolCounts {
		poolCaps[pool] = ceilDiv(count, teamCount)
	}

	original := make(map[model.Pool]int, len(poolCounts))
	for pool, count := range poolCounts {
		original[pool] = count
	}

	return model.Caps{
		PoolCaps:           poolCaps,
		TeamCap:            ceilDiv(totalSlots, teamCount),
		OriginalPoolCounts: original,
	}
}

// RemainingPoolCounts counts players not yet auctioned, per pool. The player
// currently on the block (currentIndex >= 0) is excluded from its pool's
// count; pass -1 when no round is open.
func RemainingPoolCounts(players []model.Player, completed map[int]struct{}, currentIndex int) map[model.Pool]int {
	remaining := make(map[model.Pool]int)
	for i, p := range players {
		if _, done := completed[i]; done {
			continue
		}
		if i == currentIndex {
			continue
		}
		remaining[p.Pool]++
	}
	return remaining
}

// UsageFor summarizes a captain's roster against the room's caps, including
// pools the captain holds nothing from.
func UsageFor(captain *model.Captain, caps model.Caps) model.CaptainUsage {
	usage := model.CaptainUsage{
		PoolUsage: make(map[model.Pool]model.PoolUsage, len(caps.PoolCaps)),
		TeamCap:   caps.TeamCap,
	}
	for pool, limit := range caps.PoolCaps {
		usage.PoolUsage[pool] = model.PoolUsage{Cap: limit}
	}
	for _, p := range captain.Roster {
		pu := usage.PoolUsage[p.Pool]
		pu.Current++
		pu.Slots += p.Slots()
		usage.PoolUsage[p.Pool] = pu
		usage.TotalSlots += p.Slots()
	}
	return usage
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
