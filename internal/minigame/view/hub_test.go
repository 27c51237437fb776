package view

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"g38_lotto_minigame/internal/minigame/gameflow"
	"g38_lotto_minigame/pkg/websocket"

	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCommandHandler 模擬的會話管理器
type MockCommandHandler struct {
	mock.Mock
}

func (m *MockCommandHandler) Start(autoPick bool) (bool, gameflow.Snapshot, error) {
	args := m.Called(autoPick)
	return args.Bool(0), args.Get(1).(gameflow.Snapshot), args.Error(2)
}

func (m *MockCommandHandler) Finalize(number int) (bool, gameflow.Snapshot, error) {
	args := m.Called(number)
	return args.Bool(0), args.Get(1).(gameflow.Snapshot), args.Error(2)
}

func (m *MockCommandHandler) Draw() (bool, gameflow.Snapshot, error) {
	args := m.Called()
	return args.Bool(0), args.Get(1).(gameflow.Snapshot), args.Error(2)
}

func (m *MockCommandHandler) Restart() (gameflow.Snapshot, error) {
	args := m.Called()
	return args.Get(0).(gameflow.Snapshot), args.Error(1)
}

func (m *MockCommandHandler) Snapshot() (gameflow.Snapshot, error) {
	args := m.Called()
	return args.Get(0).(gameflow.Snapshot), args.Error(1)
}

type received struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func startHub(t *testing.T) (*Hub, *gorilla.Conn) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ws := websocket.NewManager(zap.NewNop())
	hub := NewHub(ws, zap.NewNop())
	go ws.Start(ctx)

	server := httptest.NewServer(http.HandlerFunc(ws.ServeWs))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return hub, conn
}

func readMessage(t *testing.T, conn *gorilla.Conn) received {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg received
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

// readUntil 讀取消息直到出現指定類型
func readUntil(t *testing.T, conn *gorilla.Conn, msgType string) received {
	t.Helper()
	for i := 0; i < 500; i++ {
		msg := readMessage(t, conn)
		if msg.Type == msgType {
			return msg
		}
	}
	t.Fatalf("沒有收到 %s 消息", msgType)
	return received{}
}

func TestHubWelcomeAndCommands(t *testing.T) {
	handler := new(MockCommandHandler)
	idle := gameflow.Snapshot{SessionID: "s1", Phase: gameflow.PhaseIdle}
	selecting := gameflow.Snapshot{SessionID: "s1", Phase: gameflow.PhaseSelecting}
	handler.On("Snapshot").Return(idle, nil)
	handler.On("Start", true).Return(true, selecting, nil)
	handler.On("Finalize", 7).Return(false, selecting, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ws := websocket.NewManager(zap.NewNop())
	hub := NewHub(ws, zap.NewNop())
	hub.Bind(handler)
	go ws.Start(ctx)

	server := httptest.NewServer(http.HandlerFunc(ws.ServeWs))
	defer server.Close()
	conn, _, err := gorilla.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	welcome := readMessage(t, conn)
	assert.Equal(t, MessageWelcome, welcome.Type)
	var snapshot gameflow.Snapshot
	require.NoError(t, json.Unmarshal(welcome.Data, &snapshot))
	assert.Equal(t, "s1", snapshot.SessionID)

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"type":"start","autoPick":true}`)))
	ack := readMessage(t, conn)
	assert.Equal(t, MessageAck, ack.Type)
	var payload AckPayload
	require.NoError(t, json.Unmarshal(ack.Data, &payload))
	assert.Equal(t, CommandStart, payload.Command)
	assert.True(t, payload.Accepted)
	assert.Equal(t, gameflow.PhaseSelecting, payload.Snapshot.Phase)

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"type":"finalize","number":7}`)))
	ack = readMessage(t, conn)
	require.NoError(t, json.Unmarshal(ack.Data, &payload))
	assert.False(t, payload.Accepted)

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"type":"jump"}`)))
	assert.Equal(t, MessageError, readMessage(t, conn).Type)

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`not json`)))
	assert.Equal(t, MessageError, readMessage(t, conn).Type)

	handler.AssertExpectations(t)
}

func TestHubBroadcastsPresentationRequests(t *testing.T) {
	hub, conn := startHub(t)

	require.Eventually(t, func() bool { return hub.ws.ClientCount() == 1 }, 2*time.Second, 5*time.Millisecond)

	hub.RequestHighlight(gameflow.PaytableRowEntity(4))
	msg := readMessage(t, conn)
	assert.Equal(t, MessageHighlight, msg.Type)
	assert.JSONEq(t, `{"entity":"paytable/row/4"}`, string(msg.Data))

	hub.RenderBall(gameflow.EntityDrawnPanel, 2, gameflow.Ball{Number: 15, Tint: gameflow.ColorBlue}, false)
	msg = readMessage(t, conn)
	assert.Equal(t, MessageRenderBall, msg.Type)
	var ball RenderBallPayload
	require.NoError(t, json.Unmarshal(msg.Data, &ball))
	assert.Equal(t, 15, ball.Ball.Number)
	assert.False(t, ball.Final)

	hub.RequestTransition(gameflow.Transition{
		Entity:   gameflow.EntityChooseButton,
		Property: gameflow.PropertyX,
		Target:   2000,
		Duration: 750 * time.Millisecond,
	})
	msg = readMessage(t, conn)
	assert.Equal(t, MessageTransition, msg.Type)
	assert.JSONEq(t, `{"entity":"button/choose","property":"x","target":2000,"durationMs":750}`, string(msg.Data))
}

func TestHubTransitionCompletesAfterDuration(t *testing.T) {
	ws := websocket.NewManager(zap.NewNop())
	hub := NewHub(ws, zap.NewNop())

	immediate := hub.RequestTransition(gameflow.Transition{Entity: gameflow.EntityDrawnPanel, Duration: 0})
	select {
	case <-immediate:
	default:
		t.Fatal("零時長動畫應立即完成")
	}

	started := time.Now()
	timed := hub.RequestTransition(gameflow.Transition{Entity: gameflow.EntityDrawnPanel, Duration: 30 * time.Millisecond})
	select {
	case <-timed:
		assert.GreaterOrEqual(t, time.Since(started), 30*time.Millisecond)
	case <-time.After(2 * time.Second):
		t.Fatal("動畫沒有完成")
	}
}

func TestHubDrivesFullGame(t *testing.T) {
	hub, conn := startHub(t)

	settings := gameflow.DefaultSettings()
	settings.FlickerCount = 2
	settings.FlickerInterval = time.Millisecond
	settings.AutoPickInterval = time.Millisecond
	settings.PanelFadeDuration = time.Millisecond
	settings.ButtonSlideDuration = time.Millisecond

	factory := func(ctx context.Context, sessionID string) (*gameflow.Controller, error) {
		return gameflow.NewController(ctx, sessionID, settings, gameflow.Dependencies{View: hub})
	}
	manager := gameflow.NewManager(factory, zap.NewNop())
	defer manager.Close()
	hub.Bind(manager)

	_, err := manager.Restart()
	require.NoError(t, err)

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"type":"start","autoPick":true}`)))
	ack := readUntil(t, conn, MessageAck)
	var payload AckPayload
	require.NoError(t, json.Unmarshal(ack.Data, &payload))
	require.True(t, payload.Accepted)

	require.Eventually(t, func() bool {
		s, _ := manager.Snapshot()
		return s.Phase == gameflow.PhaseAwaitingDraw
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"type":"draw"}`)))
	outcome := readUntil(t, conn, MessageOutcome)

	var result gameflow.Outcome
	require.NoError(t, json.Unmarshal(outcome.Data, &result))
	assert.NotEmpty(t, result.Message)

	snapshot, err := manager.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, gameflow.PhaseSettled, snapshot.Phase)
	assert.Equal(t, result.MatchingBalls, gameflow.CountMatches(snapshot.Chosen, snapshot.Winning))
}
