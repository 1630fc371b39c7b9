package service

import (
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"market_movers/internal/models"
)

// wsMessage is the frame shape the dashboard client consumes.
type wsMessage struct {
	Type      string         `json:"type"`
	Data      []models.Quote `json:"data,omitempty"`
	Timestamp int64          `json:"timestamp,omitempty"`
}

// handleWS upgrades the connection and streams the full quote snapshot
// on every feed tick until the client goes away.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	var (
		writeMu sync.Mutex
		closed  bool
	)
	send := func(msg wsMessage) error {
		b, err := sonic.Marshal(msg)
		if err != nil {
			return err
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		if closed {
			return websocket.ErrCloseSent
		}
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		return conn.WriteMessage(websocket.TextMessage, b)
	}

	if err := send(wsMessage{Type: "connected", Timestamp: time.Now().UnixMilli()}); err != nil {
		_ = conn.Close()
		return
	}

	var unsubscribe func()
	unsubscribe = s.feed.Subscribe(func(quotes []models.Quote) {
		if err := send(wsMessage{
			Type:      "stock_updates",
			Data:      quotes,
			Timestamp: time.Now().UnixMilli(),
		}); err != nil {
			writeMu.Lock()
			closed = true
			writeMu.Unlock()
		}
	})

	// reader only detects client close; this surface has no inbound
	// commands, subscriptions cover the whole universe
	go func() {
		defer func() {
			unsubscribe()
			writeMu.Lock()
			closed = true
			writeMu.Unlock()
			_ = conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
