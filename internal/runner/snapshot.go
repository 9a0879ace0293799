package runner

import (
	"github.com/vovakirdan/coin-runner/internal/config"
)

// PlayerView is the player as seen by a renderer.
type PlayerView struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VelocityY float64 `json:"velocity_y"`
	Size      float64 `json:"size"`
	HitBox    float64 `json:"hit_box"`
	JumpsUsed int     `json:"jumps_used"`
	Grounded  bool    `json:"grounded"`
}

// Snapshot is a deep copy of the state a renderer needs. Mutating it has no
// effect on the engine.
type Snapshot struct {
	Phase        Phase      `json:"phase"`
	PlayerName   string     `json:"player_name"`
	Player       PlayerView `json:"player"`
	Barriers     []Barrier  `json:"barriers"`
	Coins        []Coin     `json:"coins"`
	Score        int        `json:"score"`
	ScrollSpeed  float64    `json:"scroll_speed"`
	ElapsedMs    float64    `json:"elapsed_ms"`
	Ticks        int        `json:"ticks"`
	CanvasWidth  float64    `json:"canvas_width"`
	CanvasHeight float64    `json:"canvas_height"`
	GroundY      float64    `json:"ground_y"`
}

// NewSnapshot builds a snapshot of s.
func NewSnapshot(cfg *config.RunnerConfig, s RunState) Snapshot {
	return Snapshot{
		Phase:      s.Phase,
		PlayerName: s.PlayerName,
		Player: PlayerView{
			X:         s.Player.Pos.X,
			Y:         s.Player.Pos.Y,
			VelocityY: s.Player.VelocityY,
			Size:      s.Player.Size,
			HitBox:    cfg.Player.HitBox,
			JumpsUsed: s.Player.JumpsUsed,
			Grounded:  Grounded(cfg, s.Player),
		},
		Barriers:     append([]Barrier(nil), s.Barriers...),
		Coins:        append([]Coin(nil), s.Coins...),
		Score:        s.Difficulty.Score,
		ScrollSpeed:  s.Difficulty.ScrollSpeed,
		ElapsedMs:    s.Difficulty.ElapsedMs,
		Ticks:        s.Ticks,
		CanvasWidth:  cfg.Canvas.Width,
		CanvasHeight: cfg.Canvas.Height,
		GroundY:      cfg.GroundY(),
	}
}
