package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Eda2353/nfl/internal/domain/stats"
)

// MemoryStore is an in-memory stat store. It implements every repository
// interface the engine consumes and is safe for concurrent use, making it the
// backing store for tests and for synthetic-data runs.
type MemoryStore struct {
	mu          sync.RWMutex
	schedule    map[int][]stats.Game
	offense     map[int][]stats.TeamOffenseGame
	defense     map[int][]stats.TeamDefenseGame
	players     map[string]stats.PlayerInfo
	playerGames map[string][]stats.PlayerGame
	injuries    []stats.InjuryRecord
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		schedule:    make(map[int][]stats.Game),
		offense:     make(map[int][]stats.TeamOffenseGame),
		defense:     make(map[int][]stats.TeamDefenseGame),
		players:     make(map[string]stats.PlayerInfo),
		playerGames: make(map[string][]stats.PlayerGame),
	}
}

// AddGame records a scheduled game.
func (m *MemoryStore) AddGame(g stats.Game) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedule[g.Season] = append(m.schedule[g.Season], g)
}

// AddOffenseGame records a team offensive line.
func (m *MemoryStore) AddOffenseGame(g stats.TeamOffenseGame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offense[g.Season] = append(m.offense[g.Season], g)
}

// AddDefenseGame records a team defensive line.
func (m *MemoryStore) AddDefenseGame(g stats.TeamDefenseGame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defense[g.Season] = append(m.defense[g.Season], g)
}

// AddPlayer registers a player.
func (m *MemoryStore) AddPlayer(p stats.PlayerInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p.ID] = p
}

// AddPlayerGame records a player game line.
func (m *MemoryStore) AddPlayerGame(g stats.PlayerGame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playerGames[g.PlayerID] = append(m.playerGames[g.PlayerID], g)
}

// SetInjuries replaces the current injury report.
func (m *MemoryStore) SetInjuries(report []stats.InjuryRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.injuries = append([]stats.InjuryRecord(nil), report...)
}

// Schedule returns every game of a season.
func (m *MemoryStore) Schedule(_ context.Context, season int) ([]stats.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]stats.Game(nil), m.schedule[season]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out, nil
}

// OffenseGames returns every team's offensive lines for a season.
func (m *MemoryStore) OffenseGames(_ context.Context, season int) ([]stats.TeamOffenseGame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]stats.TeamOffenseGame(nil), m.offense[season]...), nil
}

// DefenseGames returns every team's defensive lines for a season.
func (m *MemoryStore) DefenseGames(_ context.Context, season int) ([]stats.TeamDefenseGame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]stats.TeamDefenseGame(nil), m.defense[season]...), nil
}

// Players returns every player with at least one game line in a season.
func (m *MemoryStore) Players(_ context.Context, season int) ([]stats.PlayerInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []stats.PlayerInfo
	for id, p := range m.players {
		for _, g := range m.playerGames[id] {
			if g.Season == season {
				out = append(out, p)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Games returns a player's history, most recent first.
func (m *MemoryStore) Games(_ context.Context, playerID string) ([]stats.PlayerGame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]stats.PlayerGame(nil), m.playerGames[playerID]...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season > out[j].Season
		}
		return out[i].Week > out[j].Week
	})
	return out, nil
}

// Current returns the injury report.
func (m *MemoryStore) Current(_ context.Context) ([]stats.InjuryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]stats.InjuryRecord(nil), m.injuries...), nil
}
