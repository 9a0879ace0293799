package spectate

import (
	"github.com/invopop/jsonschema"

	"github.com/vovakirdan/coin-runner/internal/leaderboard"
	"github.com/vovakirdan/coin-runner/internal/runner"
)

// Frame types.
const (
	FrameSnapshot = "snapshot"
	FrameGameOver = "game_over"
)

// Box is an axis-aligned rectangle in canvas coordinates.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w" jsonschema:"minimum=0"`
	H float64 `json:"h" jsonschema:"minimum=0"`
}

// Player is the runner as seen by spectators.
type Player struct {
	Box
	HitBox    float64 `json:"hitBox" jsonschema:"description=Side of the square collision box anchored at the top-left corner"`
	JumpsUsed int     `json:"jumpsUsed" jsonschema:"minimum=0,maximum=2"`
	Grounded  bool    `json:"grounded"`
}

// Score is one leaderboard row.
type Score struct {
	Name  string `json:"name"`
	Score int    `json:"score" jsonschema:"minimum=0"`
}

// Frame is one message sent to spectators.
type Frame struct {
	Type        string  `json:"type" jsonschema:"enum=snapshot,enum=game_over,required"`
	Seq         uint64  `json:"seq" jsonschema:"description=Monotonic frame counter per hub"`
	Phase       string  `json:"phase" jsonschema:"enum=idle,enum=running,enum=ended"`
	Name        string  `json:"name,omitempty"`
	Score       int     `json:"score" jsonschema:"minimum=0"`
	Speed       float64 `json:"speed"`
	ElapsedMs   float64 `json:"elapsedMs"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	GroundY     float64 `json:"groundY"`
	Player      *Player `json:"player,omitempty"`
	Barriers    []Box   `json:"barriers,omitempty"`
	Coins       []Box   `json:"coins,omitempty"`
	Leaderboard []Score `json:"leaderboard,omitempty" jsonschema:"description=Top scores, sent with game_over frames"`
}

// SnapshotFrame converts an engine snapshot into a wire frame.
func SnapshotFrame(s runner.Snapshot) Frame {
	f := Frame{
		Type:      FrameSnapshot,
		Phase:     s.Phase.String(),
		Name:      leaderboard.DisplayName(s.PlayerName),
		Score:     s.Score,
		Speed:     s.ScrollSpeed,
		ElapsedMs: s.ElapsedMs,
		Width:     s.CanvasWidth,
		Height:    s.CanvasHeight,
		GroundY:   s.GroundY,
		Player: &Player{
			Box:       Box{X: s.Player.X, Y: s.Player.Y, W: s.Player.Size, H: s.Player.Size},
			HitBox:    s.Player.HitBox,
			JumpsUsed: s.Player.JumpsUsed,
			Grounded:  s.Player.Grounded,
		},
	}

	f.Barriers = make([]Box, len(s.Barriers))
	for i, b := range s.Barriers {
		f.Barriers[i] = Box{X: b.Pos.X, Y: b.Pos.Y, W: b.Width, H: b.Height}
	}
	f.Coins = make([]Box, len(s.Coins))
	for i, c := range s.Coins {
		f.Coins[i] = Box{X: c.Pos.X, Y: c.Pos.Y, W: c.Size, H: c.Size}
	}
	return f
}

// GameOverFrame announces a finished run with the current leaderboard.
func GameOverFrame(r runner.Result, top []leaderboard.Entry) Frame {
	f := Frame{
		Type:      FrameGameOver,
		Phase:     runner.PhaseEnded.String(),
		Name:      leaderboard.DisplayName(r.Name),
		Score:     r.Score,
		ElapsedMs: r.ElapsedMs,
	}
	for _, e := range top {
		f.Leaderboard = append(f.Leaderboard, Score{Name: leaderboard.DisplayName(e.Name), Score: e.Score})
	}
	return f
}

// FrameSchema returns the JSON schema of Frame.
func FrameSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(Frame))
	schema.Title = "Coin Runner spectator frame"
	schema.Description = "Messages streamed by the spectator websocket"
	return schema
}
