package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teemow/gestureslides/internal/gesture"
	"github.com/teemow/gestureslides/internal/instrumentation"
	"github.com/teemow/gestureslides/internal/logging"
)

const (
	streamWriteWait      = 10 * time.Second
	streamPongWait       = 60 * time.Second
	streamPingEvery      = (streamPongWait * 9) / 10
	streamMaxMessageSize = 4 << 10
)

var streamUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// handleGestureStream accepts a websocket on which a gesture classifier sends
// one Command per message. Each command is answered with exactly one
// GestureResponse, or an error object when the message cannot be decoded.
// Nothing is sent that was not asked for, apart from pings.
func (sc *ServerContext) handleGestureStream(w http.ResponseWriter, r *http.Request) {
	conn, err := streamUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	logger := sc.logger.With(logging.RequestID(RequestIDFromContext(ctx)))
	logger.Info("gesture stream opened", slog.String("remote", r.RemoteAddr))
	sc.metrics.IncrementGestureStreams(ctx)
	defer func() {
		sc.metrics.DecrementGestureStreams(context.WithoutCancel(ctx))
		logger.Info("gesture stream closed")
	}()

	conn.SetReadLimit(streamMaxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(streamPongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	writeCh := make(chan any, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel()
		ticker := time.NewTicker(streamPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("gesture stream read failed", logging.Err(err))
			}
			cancel()
			<-writerDone
			return
		}

		// Any message proves the peer is alive
		_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))

		var cmd gesture.Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			pushStream(ctx, writeCh, errorResponse{Error: "invalid gesture command"})
			continue
		}
		if err := cmd.Validate(); err != nil {
			pushStream(ctx, writeCh, errorResponse{Error: err.Error()})
			continue
		}

		outcome, state := sc.Dispatch(ctx, instrumentation.SourceStream, cmd)
		pushStream(ctx, writeCh, NewGestureResponse(outcome, state))
	}
}

// pushStream queues a message for the writer; it blocks rather than drop a
// response, since every command expects exactly one
func pushStream(ctx context.Context, ch chan<- any, msg any) {
	select {
	case ch <- msg:
	case <-ctx.Done():
	}
}
