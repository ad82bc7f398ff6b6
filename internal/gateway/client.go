// internal/gateway/client.go
//
// One connected websocket client: read pump decoding inbound events into
// handler calls, write pump draining the buffered send channel, and a rate
// limiter that drops flooding connections.

package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/wordbot/internal/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 32

	// Inbound events per client: sustained 2/s, bursts of 8.
	eventRate  = 2
	eventBurst = 8
)

// inboundEvent is what clients send: a chat message or a reaction to a
// previously delivered frame.
type inboundEvent struct {
	Type    string `json:"type"` // "message" | "reaction"
	Content string `json:"content,omitempty"`
	Ref     string `json:"ref,omitempty"`
	Emoji   string `json:"emoji,omitempty"`
}

type client struct {
	gw      *Gateway
	conn    *websocket.Conn
	player  session.PlayerID
	channel session.ChannelID
	send    chan []byte
	limiter *rate.Limiter
}

func newClient(gw *Gateway, conn *websocket.Conn, player session.PlayerID, channel session.ChannelID) *client {
	return &client{
		gw:      gw,
		conn:    conn,
		player:  player,
		channel: channel,
		send:    make(chan []byte, sendBuffer),
		limiter: rate.NewLimiter(eventRate, eventBurst),
	}
}

func (c *client) readPump() {
	defer func() {
		c.gw.unregister(c)
		close(c.send)
		_ = c.conn.Close()
		log.Info().Str("player", string(c.player)).Str("channel", string(c.channel)).Msg("client disconnected")
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if !c.limiter.Allow() {
			log.Warn().Str("player", string(c.player)).Msg("client flooding, dropping connection")
			return
		}
		var ev inboundEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Warn().Err(err).Str("player", string(c.player)).Msg("bad inbound event")
			continue
		}
		switch ev.Type {
		case "message":
			c.gw.handler.HandleMessage(context.Background(), c.channel, c.player, ev.Content)
		case "reaction":
			c.gw.handler.HandleReaction(context.Background(), c.player, ev.Ref, ev.Emoji)
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
