package model

// Caps holds the roster limits derived once at room creation from the full
// player pool and the declared team count. They never change for the life of
// a room.
type Caps struct {
	// PoolCaps is the max players a single team may hold from each pool
	PoolCaps map[Pool]int `json:"pool_caps"`
	// TeamCap is the max total roster slots per team (duos count as 2)
	TeamCap int `json:"team_cap"`
	// OriginalPoolCounts records the pool sizes at load time, for
	// "remaining of original" displays
	OriginalPoolCounts map[Pool]int `json:"original_pool_counts"`
}

// PoolUsage describes one pool's share of a captain's roster
type PoolUsage struct {
	Current int `json:"current"`
	Cap     int `json:"cap"`
	Slots   int `json:"slots"`
}

// CaptainUsage summarizes a captain's roster against the room's caps
type CaptainUsage struct {
	PoolUsage  map[Pool]PoolUsage `json:"pool_usage"`
	TotalSlots int                `json:"total_slots"`
	TeamCap    int                `json:"team_cap"`
}
