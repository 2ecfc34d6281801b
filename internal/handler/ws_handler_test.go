package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ws "github.com/campusgrid/registrar/internal/websocket"
)

// dialSeatStream spins up a bare upgrade endpoint and returns both ends of
// the connection so writeUpdate can be exercised against a real socket.
func dialSeatStream(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()

	upgrader := buildUpgrader(nil)
	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-serverConns:
	case <-time.After(2 * time.Second):
		t.Fatal("server connection never arrived")
	}
	t.Cleanup(func() { server.Close() })
	return server, client
}

func TestWriteUpdateDeliversSeatCounts(t *testing.T) {
	server, client := dialSeatStream(t)

	sent := ws.SeatUpdate{
		Event:     ws.EventSeats,
		SectionID: 42,
		Capacity:  30,
		Enrolled:  12,
		Remaining: 18,
	}
	require.NoError(t, writeUpdate(server, sent))

	var got ws.SeatUpdate
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, client.ReadJSON(&got))
	assert.Equal(t, sent, got)
}

func TestWriteUpdateFailsOnClosedConnection(t *testing.T) {
	server, _ := dialSeatStream(t)
	require.NoError(t, server.Close())

	err := writeUpdate(server, ws.SeatUpdate{Event: ws.EventSeats, SectionID: 1})
	assert.Error(t, err)
}

func TestBuildUpgraderOriginChecks(t *testing.T) {
	open := buildUpgrader(nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	assert.True(t, open.CheckOrigin(req))

	restricted := buildUpgrader([]string{"https://portal.example.edu"})
	assert.False(t, restricted.CheckOrigin(req))

	req.Header.Set("Origin", "https://portal.example.edu")
	assert.True(t, restricted.CheckOrigin(req))
}
