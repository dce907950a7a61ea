package room

import (
	"sort"

	"github.com/draftnight/auction-go/internal/dependencies/random"
	"github.com/draftnight/auction-go/internal/model"
)

// maskStats builds the partial stat view broadcast when a round opens.
// Combat level, total level and every boss-kill stat are always exposed;
// exactly one of {ehb, ehp} is chosen uniformly at random for the round and
// the other is masked. Returns the masked player copy and the list of visible
// stat keys (boss stats as "boss_<name>").
func maskStats(p model.Player, rnd random.Random) (model.Player, []string) {
	visible := []string{model.StatCombat, model.StatTotal}

	efficiency := model.StatEHB
	if rnd.Intn(2) == 1 {
		efficiency = model.StatEHP
	}
	visible = append(visible, efficiency)

	masked := make(model.Stats)
	for _, key := range []string{model.StatCombat, model.StatTotal, efficiency} {
		if v, ok := p.Stats[key]; ok {
			masked[key] = v
		}
	}

	if bosses, ok := p.Stats[model.StatBosses].(map[string]any); ok {
		kept := make(map[string]any, len(bosses))
		names := make([]string, 0, len(bosses))
		for name, kills := range bosses {
			kept[name] = kills
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			visible = append(visible, "boss_"+name)
		}
		masked[model.StatBosses] = kept
	}

	p.Stats = masked
	return p, visible
}
