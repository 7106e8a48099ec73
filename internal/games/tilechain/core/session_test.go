package core

import "testing"

func TestSessionSpendMove(t *testing.T) {
	tests := []struct {
		name      string
		moves     int
		spend     int
		wantMoves int
		wantStars int
	}{
		{"within budget", 3, 2, 1, 3},
		{"exactly spent", 2, 2, 0, 3},
		{"one over", 2, 3, 0, 2},
		{"far over", 1, 6, 0, 2},
		{"no budget", 0, 1, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(100, tt.moves)
			for range tt.spend {
				s.SpendMove()
			}
			if s.MovesRemaining != tt.wantMoves || s.Stars != tt.wantStars {
				t.Errorf("moves=%d stars=%d, want moves=%d stars=%d",
					s.MovesRemaining, s.Stars, tt.wantMoves, tt.wantStars)
			}
		})
	}
}

func TestSessionCompleteIsTerminal(t *testing.T) {
	s := newSession(50, 0)
	s.Award(30)
	if s.settle() {
		t.Fatal("complete below target")
	}
	s.Award(30)
	if !s.settle() {
		t.Fatal("not complete at 60/50")
	}
	s.Award(10)
	s.SpendMove()
	if s.Score != 60 || s.Stars != MaxStars {
		t.Errorf("session changed after completion: %+v", s)
	}
}
