package core

// Session is the bookkeeping of one level attempt.
type Session struct {
	Score          int
	Target         int
	MovesRemaining int
	Stars          int
	Complete       bool
}

// MaxStars is the rating a session starts with.
const MaxStars = 3

func newSession(target, moves int) Session {
	return Session{Target: target, MovesRemaining: moves, Stars: MaxStars}
}

// SpendMove charges one successful confirm against the move budget. Once
// the budget is spent, further moves cost the top star instead.
func (s *Session) SpendMove() {
	if s.Complete {
		return
	}
	if s.MovesRemaining > 0 {
		s.MovesRemaining--
		return
	}
	s.Stars = min(s.Stars, MaxStars-1)
}

// Award adds the points of one cleared tile.
func (s *Session) Award(points int) {
	if s.Complete {
		return
	}
	s.Score += points
}

// settle marks the session complete once the target is met. The engine
// calls it only after a clear sequence has fully played out.
func (s *Session) settle() bool {
	if !s.Complete && s.Score >= s.Target {
		s.Complete = true
	}
	return s.Complete
}
