// Package pool parses the players.json files produced by the stats scraper
// into the flat player list the auction engine works with.
package pool

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/draftnight/auction-go/internal/model"
)

// file shape: {"pools": {"A": [...], "B": [...], "Duos": [...]}}
type poolFile struct {
	Pools map[string][]json.RawMessage `json:"pools"`
}

type soloEntry struct {
	Name  string      `json:"name"`
	Stats model.Stats `json:"stats"`
}

type duoEntry struct {
	Name    string `json:"name"`
	Players []struct {
		Name  string      `json:"name"`
		Stats model.Stats `json:"stats"`
	} `json:"players"`
}

// LoadFile reads and parses a players.json file
func LoadFile(path string) ([]model.Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a players.json document. Pools are visited in sorted name
// order and entries in file order, so IDs are stable across loads. Duo
// entries are flattened to a single player carrying the pair's combined
// stats and occupying two roster slots.
func Parse(r io.Reader) ([]model.Player, error) {
	var doc poolFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing players file: %w", err)
	}

	poolNames := make([]string, 0, len(doc.Pools))
	for name := range doc.Pools {
		poolNames = append(poolNames, name)
	}
	sort.Strings(poolNames)

	var players []model.Player
	nextID := 0
	for _, poolName := range poolNames {
		for _, raw := range doc.Pools[poolName] {
			if model.Pool(poolName) == model.PoolDuos {
				var duo duoEntry
				if err := json.Unmarshal(raw, &duo); err != nil {
					return nil, fmt.Errorf("parsing duo entry in pool %q: %w", poolName, err)
				}
				if len(duo.Players) != 2 {
					return nil, fmt.Errorf("duo entry %q has %d players, want 2", duo.Name, len(duo.Players))
				}
				players = append(players, model.Player{
					ID:    model.PlayerID(fmt.Sprintf("duo-%d", nextID)),
					Name:  duo.Name,
					Pool:  model.PoolDuos,
					Stats: combineDuoStats(duo),
				})
			} else {
				var solo soloEntry
				if err := json.Unmarshal(raw, &solo); err != nil {
					return nil, fmt.Errorf("parsing entry in pool %q: %w", poolName, err)
				}
				players = append(players, model.Player{
					ID:    model.PlayerID(fmt.Sprintf("player-%d", nextID)),
					Name:  solo.Name,
					Pool:  model.Pool(poolName),
					Stats: solo.Stats,
				})
			}
			nextID++
		}
	}
	return players, nil
}

// combineDuoStats merges a pair's stats into one synthetic block: combat is
// the pair's max, total/ehb/ehp are summed, boss kills are summed per boss,
// and the individual stat blocks ride along under "players".
func combineDuoStats(duo duoEntry) model.Stats {
	a, b := duo.Players[0].Stats, duo.Players[1].Stats

	combined := model.Stats{
		model.StatCombat: maxStat(a, b, model.StatCombat),
		model.StatTotal:  sumStat(a, b, model.StatTotal),
		model.StatEHB:    sumStat(a, b, model.StatEHB),
		model.StatEHP:    sumStat(a, b, model.StatEHP),
	}

	bosses := make(map[string]any)
	for name, kills := range bossMap(a) {
		bosses[name] = kills
	}
	for name, kills := range bossMap(b) {
		if prev, ok := bosses[name].(float64); ok {
			bosses[name] = prev + kills
		} else {
			bosses[name] = kills
		}
	}
	combined[model.StatBosses] = bosses

	members := make([]any, 0, 2)
	for _, p := range duo.Players {
		member := map[string]any{"name": p.Name}
		for k, v := range p.Stats {
			member[k] = v
		}
		members = append(members, member)
	}
	combined["players"] = members

	return combined
}

func statValue(s model.Stats, key string) float64 {
	v, ok := s[key].(float64)
	if !ok {
		return 0
	}
	return v
}

func maxStat(a, b model.Stats, key string) float64 {
	av, bv := statValue(a, key), statValue(b, key)
	if av > bv {
		return av
	}
	return bv
}

func sumStat(a, b model.Stats, key string) float64 {
	return statValue(a, key) + statValue(b, key)
}

func bossMap(s model.Stats) map[string]float64 {
	raw, ok := s[model.StatBosses].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(raw))
	for name, v := range raw {
		if kills, ok := v.(float64); ok {
			out[name] = kills
		}
	}
	return out
}
