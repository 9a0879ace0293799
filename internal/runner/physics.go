package runner

import (
	"math"

	"github.com/vovakirdan/coin-runner/internal/config"
	"github.com/vovakirdan/coin-runner/internal/core"
)

// Grounded reports whether the player rests on the floor line.
func Grounded(cfg *config.RunnerConfig, p PlayerState) bool {
	return p.Pos.Y >= cfg.FloorY()
}

// ApplyGravity accelerates the player downward and integrates position.
// Passing the floor line counts as landing: position is clamped, velocity
// zeroed and the jump counter reset.
func ApplyGravity(cfg *config.RunnerConfig, p PlayerState) PlayerState {
	floorY := cfg.FloorY()

	p.VelocityY += cfg.Physics.Gravity
	p.Pos.Y += p.VelocityY

	if p.Pos.Y > floorY || math.IsNaN(p.Pos.Y) {
		p.Pos.Y = floorY
		p.VelocityY = 0
		p.JumpsUsed = 0
	}
	return p
}

// RequestJump applies the jump impulse when the player is grounded or still
// has an air jump left. Otherwise the player is returned unchanged.
func RequestJump(cfg *config.RunnerConfig, p PlayerState) PlayerState {
	grounded := Grounded(cfg, p)
	if !grounded && p.JumpsUsed >= MaxJumps {
		return p
	}

	p.VelocityY = cfg.Physics.JumpImpulse
	if grounded {
		p.JumpsUsed = 1
	} else {
		p.JumpsUsed++
	}
	return p
}

// HitBox returns the player's collision box. It is anchored at the sprite's
// top-left corner and smaller than the sprite, which makes near misses count
// as misses.
func HitBox(cfg *config.RunnerConfig, p PlayerState) core.Box {
	return core.NewBox(p.Pos.X, p.Pos.Y, cfg.Player.HitBox, cfg.Player.HitBox)
}
