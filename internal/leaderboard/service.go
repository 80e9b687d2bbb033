package leaderboard

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"
)

const (
	StartingElo = 1500
	kFactor     = 32
)

type Service struct {
	mu    sync.RWMutex
	stats map[string]*LeaderboardEntry
	now   func() time.Time
}

func NewService() *Service {
	return &Service{
		stats: make(map[string]*LeaderboardEntry),
		now:   time.Now,
	}
}

type LeaderboardEntry struct {
	PlayerID  string    `json:"player_id"`
	Wins      int       `json:"wins"`
	Losses    int       `json:"losses"`
	Elo       int       `json:"elo"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordResult updates wins, losses and Elo of both players of a finished match.
func (s *Service) RecordResult(winnerID, loserID string) error {
	if winnerID == "" || loserID == "" {
		return fmt.Errorf("winner and loser must be set")
	}
	if winnerID == loserID {
		return fmt.Errorf("player %s cannot play against itself", winnerID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	winner := s.entry(winnerID)
	loser := s.entry(loserID)

	//  ELO update
	expectedWinner := 1 / (1 + math.Pow(10, float64(loser.Elo-winner.Elo)/400))
	expectedLoser := 1 / (1 + math.Pow(10, float64(winner.Elo-loser.Elo)/400))
	winner.Elo += int(float64(kFactor) * (1 - expectedWinner))
	loser.Elo += int(float64(kFactor) * (0 - expectedLoser))

	winner.Wins++
	loser.Losses++
	now := s.now()
	winner.UpdatedAt = now
	loser.UpdatedAt = now
	return nil
}

// GetLeaderboard returns up to limit entries ordered by Elo, best first.
// A limit of 0 or less returns every entry.
func (s *Service) GetLeaderboard(limit int) []LeaderboardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	leaderboard := make([]LeaderboardEntry, 0, len(s.stats))
	for _, entry := range s.stats {
		leaderboard = append(leaderboard, *entry)
	}
	sort.Slice(leaderboard, func(i, j int) bool {
		if leaderboard[i].Elo != leaderboard[j].Elo {
			return leaderboard[i].Elo > leaderboard[j].Elo
		}
		return leaderboard[i].PlayerID < leaderboard[j].PlayerID
	})
	if limit > 0 && len(leaderboard) > limit {
		leaderboard = leaderboard[:limit]
	}
	return leaderboard
}

func (s *Service) Stats(playerID string) (LeaderboardEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.stats[playerID]
	if !ok {
		return LeaderboardEntry{}, false
	}
	return *entry, true
}

// entry must be called with the lock held.
func (s *Service) entry(playerID string) *LeaderboardEntry {
	entry, ok := s.stats[playerID]
	if !ok {
		entry = &LeaderboardEntry{PlayerID: playerID, Elo: StartingElo}
		s.stats[playerID] = entry
	}
	return entry
}
