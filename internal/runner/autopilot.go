package runner

// Autopilot is a simple bot that jumps over approaching barriers.
// It powers the headless demo and soak tests.
type Autopilot struct {
	// LeadTicks is how many ticks ahead of contact the bot jumps.
	LeadTicks float64
}

// NewAutopilot returns a bot tuned for the default physics.
func NewAutopilot() Autopilot {
	return Autopilot{LeadTicks: 9}
}

// ShouldJump decides from a snapshot whether to jump before the next tick.
func (a Autopilot) ShouldJump(s Snapshot) bool {
	if s.Phase != PhaseRunning {
		return false
	}

	reach := s.ScrollSpeed * a.LeadTicks
	front := s.Player.X + s.Player.HitBox
	for _, b := range s.Barriers {
		gap := b.Pos.X - front
		if gap < 0 || gap > reach {
			continue
		}
		if s.Player.Grounded {
			return true
		}
		// Falling onto a barrier: spend the air jump.
		return s.Player.VelocityY > 0 &&
			s.Player.JumpsUsed < MaxJumps &&
			s.Player.Y+s.Player.HitBox > b.Pos.Y
	}
	return false
}
