package leaderboard_test

import (
	"sync"
	"testing"

	"github.com/krishanu7/turnbased-games/internal/leaderboard"
)

func TestRecordResult(t *testing.T) {
	s := leaderboard.NewService()
	if err := s.RecordResult("alice", "bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alice, ok := s.Stats("alice")
	if !ok {
		t.Fatal("alice missing")
	}
	bob, _ := s.Stats("bob")

	// equal ratings: the winner takes half the K factor
	if want, have := 1516, alice.Elo; want != have {
		t.Errorf("winner elo: want=%d, have=%d", want, have)
	}
	if want, have := 1484, bob.Elo; want != have {
		t.Errorf("loser elo: want=%d, have=%d", want, have)
	}
	if alice.Wins != 1 || alice.Losses != 0 || bob.Wins != 0 || bob.Losses != 1 {
		t.Errorf("unexpected tallies: alice=%+v bob=%+v", alice, bob)
	}
	if alice.UpdatedAt.IsZero() {
		t.Error("updated_at not set")
	}
}

func TestRecordResult_Invalid(t *testing.T) {
	s := leaderboard.NewService()
	for _, pair := range [][2]string{{"", "bob"}, {"alice", ""}, {"alice", "alice"}} {
		if err := s.RecordResult(pair[0], pair[1]); err == nil {
			t.Errorf("RecordResult(%q, %q): expected error but got nil", pair[0], pair[1])
		}
	}
	if n := len(s.GetLeaderboard(0)); n != 0 {
		t.Errorf("rejected results created %d entries", n)
	}
}

func TestGetLeaderboard(t *testing.T) {
	s := leaderboard.NewService()
	results := [][2]string{
		{"carol", "bob"},
		{"carol", "alice"},
		{"bob", "alice"},
		{"carol", "bob"},
	}
	for _, r := range results {
		if err := s.RecordResult(r[0], r[1]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	board := s.GetLeaderboard(0)
	if want, have := 3, len(board); want != have {
		t.Fatalf("entries: want=%d, have=%d", want, have)
	}
	want := []string{"carol", "bob", "alice"}
	for i, entry := range board {
		if entry.PlayerID != want[i] {
			t.Errorf("position %d: want=%s, have=%s", i, want[i], entry.PlayerID)
		}
		if i > 0 && board[i-1].Elo < entry.Elo {
			t.Errorf("not sorted by elo: %+v", board)
		}
	}

	if want, have := 2, len(s.GetLeaderboard(2)); want != have {
		t.Errorf("limited entries: want=%d, have=%d", want, have)
	}
}

func TestRecordResult_Concurrent(t *testing.T) {
	s := leaderboard.NewService()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = s.RecordResult("alice", "bob")
			} else {
				_ = s.RecordResult("bob", "alice")
			}
		}(i)
	}
	wg.Wait()

	alice, _ := s.Stats("alice")
	bob, _ := s.Stats("bob")
	if want, have := 50, alice.Wins+alice.Losses; want != have {
		t.Errorf("alice games: want=%d, have=%d", want, have)
	}
	if alice.Wins != bob.Losses || alice.Losses != bob.Wins {
		t.Errorf("tallies disagree: alice=%+v bob=%+v", alice, bob)
	}
}
