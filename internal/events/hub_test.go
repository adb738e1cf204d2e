package events

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/cluegame-go/internal/model"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

func receive(t *testing.T, client *Client) string {
	t.Helper()

	select {
	case msg, ok := <-client.send:
		require.True(t, ok, "client channel closed")
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "game",
			data:      `{"currentPlayerId":1}`,
			expected:  "event: game\ndata: {\"currentPlayerId\":1}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "lobby",
			data:      "{\n  \"isFull\": false\n}",
			expected:  "event: lobby\ndata: {\ndata:   \"isFull\": false\ndata: }\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2\r\n",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatMessage(tt.eventName, tt.data)))
		})
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := newTestHub(t)

	client := NewClient(1)
	require.True(t, hub.Register(client))
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("game", "data")
	assert.Equal(t, "event: game\ndata: data\n\n", receive(t, client))
}

func TestHub_Unregister(t *testing.T) {
	hub := newTestHub(t)

	client := NewClient(1)
	require.True(t, hub.Register(client))
	hub.Unregister(client)

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	// Unregistering closes the send channel
	_, ok := <-client.send
	assert.False(t, ok)
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := newTestHub(t)

	clients := []*Client{NewClient(1), NewClient(2), NewClient(3)}
	for _, c := range clients {
		require.True(t, hub.Register(c))
	}

	hub.BroadcastEvent("update", "data")

	for _, c := range clients {
		assert.Equal(t, "event: update\ndata: data\n\n", receive(t, c))
	}
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := newTestHub(t)

	client := NewClient(1)
	require.True(t, hub.Register(client))

	hub.Close()
	hub.Close()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-client.send:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	// A closed hub refuses new clients without blocking
	assert.False(t, hub.Register(NewClient(2)))
	hub.Unregister(client)
}

func TestPublisher(t *testing.T) {
	hub := newTestHub(t)
	publisher := NewPublisher(hub, slog.New(slog.NewTextHandler(io.Discard, nil)))

	client := NewClient(1)
	require.True(t, hub.Register(client))

	publisher.GameChanged(model.GameState{CurrentPlayerID: 2, Action: model.ActionTurnEnded})
	assert.Equal(t,
		"event: game\ndata: {\"currentPlayerId\":2,\"action\":\"turnEnded\",\"isGameOver\":false}\n\n",
		receive(t, client))

	publisher.LobbyChanged(model.LobbyStatus{MaxPlayers: 6, Members: []model.LobbyMember{}})
	assert.Equal(t,
		"event: lobby\ndata: {\"members\":[],\"maxPlayers\":6,\"isFull\":false,\"isGameStarted\":false}\n\n",
		receive(t, client))
}
