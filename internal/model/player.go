package model

// PlayerID identifies a player within a pool
type PlayerID string

// Pool is a named bucket of players sharing a capacity rule
type Pool string

// PoolDuos is the special two-person pool; its entries occupy two roster slots
const PoolDuos Pool = "Duos"

// Stats is an arbitrary key -> numeric/nested value mapping as produced by the
// stats scraper (combat, total, ehb, ehp, plus a "bosses" sub-map)
type Stats map[string]any

// Well-known stat keys referenced by the reveal-masking rule
const (
	StatCombat = "combat"
	StatTotal  = "total"
	StatEHB    = "ehb"
	StatEHP    = "ehp"
	StatBosses = "bosses"
)

// Player is one auctionable entry. Immutable once loaded for a room, except
// RevealedName which is written exactly once at settlement.
type Player struct {
	ID           PlayerID `json:"id"`
	Name         string   `json:"name"`
	Pool         Pool     `json:"pool"`
	Stats        Stats    `json:"stats"`
	RevealedName string   `json:"revealed_name,omitempty"`
}

// Slots returns how many roster slots this player occupies when won
func (p Player) Slots() int {
	if p.Pool == PoolDuos {
		return 2
	}
	return 1
}
