package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/gestureslides/internal/gesture"
)

func dialStream(t *testing.T, sc *ServerContext) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(NewRouter(sc, RouterOptions{}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/gesture/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func roundTrip[T any](t *testing.T, conn *websocket.Conn, msg string) T {
	t.Helper()
	require.NoError(t, conn.SetWriteDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var v T
	require.NoError(t, conn.ReadJSON(&v))
	return v
}

func TestGestureStream(t *testing.T) {
	sc := newTestContext(t, newFakeProvider())
	_, err := sc.LoadPresentation(context.Background(), "deck-1")
	require.NoError(t, err)
	conn := dialStream(t, sc)

	resp := roundTrip[GestureResponse](t, conn, `{"type":"next","confidence":0.92,"timestamp":1}`)
	assert.True(t, resp.Success)
	assert.Equal(t, gesture.ResultMoved, resp.Result)
	assert.Equal(t, 2, resp.CurrentSlide)

	resp = roundTrip[GestureResponse](t, conn, `{"type":"next","confidence":0.4,"timestamp":2}`)
	assert.Equal(t, gesture.ResultConfidenceTooLow, resp.Result)
	assert.Equal(t, 2, resp.CurrentSlide)

	resp = roundTrip[GestureResponse](t, conn, `{"type":"jump","confidence":0.9,"targetSlide":5}`)
	assert.Equal(t, "Jumped to slide: Quarterly Review 4", resp.Message)

	resp = roundTrip[GestureResponse](t, conn, `{"type":"point","confidence":0.9}`)
	assert.Equal(t, gesture.ResultPointed, resp.Result)
	require.NotNil(t, resp.SlideData)
	assert.Equal(t, "Quarterly Review 4", resp.SlideData.Title)

	assert.Equal(t, 4, sc.Cursor().State().CurrentIndex)
}

func TestGestureStream_InvalidMessages(t *testing.T) {
	sc := newTestContext(t, newFakeProvider())
	conn := dialStream(t, sc)

	errResp := roundTrip[errorResponse](t, conn, `not json`)
	assert.Equal(t, "invalid gesture command", errResp.Error)

	errResp = roundTrip[errorResponse](t, conn, `{"type":"","confidence":0.9}`)
	assert.Equal(t, "gesture type cannot be empty", errResp.Error)

	// The stream stays open after a bad message
	resp := roundTrip[GestureResponse](t, conn, `{"type":"next","confidence":0.9}`)
	assert.Equal(t, gesture.ResultNoPresentation, resp.Result)
	assert.Equal(t, "No presentation loaded", resp.Error)
}

func TestGestureStream_SharesSessionWithHTTP(t *testing.T) {
	sc := newTestContext(t, newFakeProvider())
	_, err := sc.LoadPresentation(context.Background(), "deck-1")
	require.NoError(t, err)
	conn := dialStream(t, sc)

	roundTrip[GestureResponse](t, conn, `{"type":"next","confidence":1}`)

	h := NewRouter(sc, RouterOptions{})
	resp := decodeBody[GestureResponse](t, do(t, h, "POST", "/gesture/next", ""))
	assert.Equal(t, 3, resp.CurrentSlide)
}
