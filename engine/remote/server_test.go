package remote

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/engine/hud"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_HTTP(t *testing.T) {
	t.Run("Health", func(t *testing.T) {
		s := NewServer(hud.NewHub())
		rec := do(t, s, http.MethodGet, "/healthz")
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("Commands Are Queued", func(t *testing.T) {
		s := NewServer(hud.NewHub())
		require.Equal(t, http.StatusAccepted, do(t, s, http.MethodPost, "/api/tour/start").Code)
		require.Equal(t, http.StatusAccepted, do(t, s, http.MethodPost, "/api/tour/location/library").Code)
		require.Equal(t, http.StatusAccepted, do(t, s, http.MethodPost, "/api/tour/end").Code)

		target := &recordingTarget{}
		require.Equal(t, 3, s.Commands().ApplyTo(target))
		require.Equal(t, []string{"start", "location:library", "end"}, target.calls)
	})

	t.Run("Full Queue Rejects", func(t *testing.T) {
		s := NewServer(hud.NewHub(), WithQueueLimit(1))
		require.Equal(t, http.StatusAccepted, do(t, s, http.MethodPost, "/api/tour/start").Code)
		rec := do(t, s, http.MethodPost, "/api/tour/end")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Contains(t, rec.Body.String(), "queue full")
	})

	t.Run("Wrong Method", func(t *testing.T) {
		s := NewServer(hud.NewHub())
		require.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/tour/start").Code)
	})

	t.Run("Status Includes Tour And HUD", func(t *testing.T) {
		h := hud.NewHub()
		h.SetVisible(true)
		h.SetLocationText("Perpustakaan", "buku")
		s := NewServer(h)
		s.Publish(Status{
			Active:    true,
			Location:  "library",
			Locations: []LocationInfo{{ID: "library", Name: "Perpustakaan"}},
		})

		rec := do(t, s, http.MethodGet, "/api/tour")
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Tour Status    `json:"tour"`
			HUD  hud.State `json:"hud"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.True(t, body.Tour.Active)
		require.Equal(t, "library", body.Tour.Location)
		require.Len(t, body.Tour.Locations, 1)
		require.True(t, body.HUD.Visible)
		require.Equal(t, "Perpustakaan", body.HUD.LocationName)
	})

	t.Run("Published Status Is Copied", func(t *testing.T) {
		s := NewServer(hud.NewHub())
		locs := []LocationInfo{{ID: "hall"}}
		s.Publish(Status{Locations: locs})
		locs[0].ID = "changed"
		require.Equal(t, "hall", s.Status().Locations[0].ID)
	})
}

func TestServer_WebSocket(t *testing.T) {
	h := hud.NewHub()
	h.SetLocationText("Gedung Utama", "")
	s := NewServer(h)
	srv := httptest.NewServer(s)
	defer srv.Close()
	defer h.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg hud.Message
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "Gedung Utama", msg.State.LocationName)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"warp"}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"set_location","location":"hall"}`)))
	require.Eventually(t, func() bool { return s.Commands().Len() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, []Command{{Type: CommandSetLocation, Location: "hall"}}, s.Commands().Drain())
}

func TestServer_Serve(t *testing.T) {
	s := NewServer(hud.NewHub(), WithShutdownTimeout(time.Second))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServer_ServeBadAddress(t *testing.T) {
	s := NewServer(hud.NewHub())
	err := s.Serve(context.Background(), "256.0.0.1:bad")
	require.ErrorContains(t, err, "remote: listen")
}
