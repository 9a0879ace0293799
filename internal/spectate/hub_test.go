package spectate

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/coin-runner/internal/config"
	"github.com/vovakirdan/coin-runner/internal/leaderboard"
	"github.com/vovakirdan/coin-runner/internal/runner"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func waitClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Clients() = %d, expected %d", hub.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read frame: %v", err)
	}
	var f Frame
	if err := json.Unmarshal(payload, &f); err != nil {
		t.Fatalf("bad frame %s: %v", payload, err)
	}
	return f
}

func testSnapshot(t *testing.T) runner.Snapshot {
	t.Helper()
	e := runner.NewEngine(config.DefaultRunnerConfig(), runner.WithSource(runner.NewSource(1)))
	if err := e.Start("@ash"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		e.Tick(16)
	}
	return e.Snapshot()
}

func TestHubBroadcastsSnapshots(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	waitClients(t, hub, 1)

	hub.Publish(testSnapshot(t))

	f := readFrame(t, conn)
	if f.Type != FrameSnapshot || f.Seq != 1 {
		t.Errorf("frame header = %s/%d", f.Type, f.Seq)
	}
	if f.Phase != "running" || f.Name != "ash" {
		t.Errorf("phase=%q name=%q", f.Phase, f.Name)
	}
	if f.Player == nil || f.Player.W != 50 || f.Player.HitBox != 40 {
		t.Errorf("player = %+v", f.Player)
	}
	if len(f.Coins) == 0 {
		t.Error("expected coins in the frame")
	}
}

func TestHubLateJoinerGetsLastFrame(t *testing.T) {
	hub, url := startHub(t)
	hub.Publish(testSnapshot(t))
	hub.PublishGameOver(runner.Result{Name: "ash", Score: 4}, []leaderboard.Entry{{Name: "@bea", Score: 9}})

	conn := dial(t, url)
	f := readFrame(t, conn)

	if f.Type != FrameGameOver || f.Seq != 2 || f.Score != 4 {
		t.Errorf("late joiner got %+v", f)
	}
	if len(f.Leaderboard) != 1 || f.Leaderboard[0].Name != "bea" {
		t.Errorf("leaderboard = %+v", f.Leaderboard)
	}
}

func TestHubCloseDisconnects(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	waitClients(t, hub, 1)

	hub.Close()
	hub.Close()

	if hub.Clients() != 0 {
		t.Errorf("Clients() = %d after Close", hub.Clients())
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected the connection to close")
	}

	// Publishing after close is a no-op.
	hub.Publish(testSnapshot(t))
}

func TestHubRemovesDepartedViewers(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	waitClients(t, hub, 1)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	waitClients(t, hub, 0)
}

func TestFrameSchema(t *testing.T) {
	data, err := json.Marshal(FrameSchema())
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
	for _, want := range []string{"game_over", "leaderboard", "jumpsUsed", "Coin Runner spectator frame"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("schema is missing %q", want)
		}
	}
}
