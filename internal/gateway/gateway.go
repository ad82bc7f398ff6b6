// internal/gateway/gateway.go
//
// The chat gateway: the external I/O layer between remote clients and the
// dispatcher. Clients connect over websocket, subscribe to one channel, and
// exchange JSON events. The gateway fans replies out to everyone on a
// channel and stamps each outbound message with a ref the dispatcher can
// correlate later reactions against.

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordbot/internal/dispatch"
	"github.com/robalobadob/wordbot/internal/session"
)

// Handler consumes inbound chat events. Satisfied by *dispatch.Dispatcher.
type Handler interface {
	HandleMessage(ctx context.Context, ch session.ChannelID, player session.PlayerID, content string)
	HandleReaction(ctx context.Context, player session.PlayerID, ref, emoji string)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Gateway tracks connected clients per channel.
type Gateway struct {
	mu       sync.RWMutex
	channels map[session.ChannelID]map[*client]struct{}
	handler  Handler
}

// New constructs an empty Gateway. SetHandler must be called before the
// first upgrade.
func New() *Gateway {
	return &Gateway{channels: make(map[session.ChannelID]map[*client]struct{})}
}

// SetHandler wires the dispatcher in. Separate from New because the
// dispatcher needs the gateway as its notifier.
func (g *Gateway) SetHandler(h Handler) { g.handler = h }

// HandleUpgrade upgrades an authenticated request to a websocket and starts
// the client's pumps. The channel comes from the "channel" query parameter.
func (g *Gateway) HandleUpgrade(w http.ResponseWriter, r *http.Request, player string) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		http.Error(w, `{"error":"channel required"}`, http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	c := newClient(g, conn, session.PlayerID(player), session.ChannelID(channel))
	g.register(c)
	log.Info().Str("player", player).Str("channel", channel).Msg("client connected")

	go c.writePump()
	go c.readPump()
}

func (g *Gateway) register(c *client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	set, ok := g.channels[c.channel]
	if !ok {
		set = make(map[*client]struct{})
		g.channels[c.channel] = set
	}
	set[c] = struct{}{}
}

func (g *Gateway) unregister(c *client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if set, ok := g.channels[c.channel]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(g.channels, c.channel)
		}
	}
}

// outboundFrame is one delivered message: the reply plus the ref that
// identifies this broadcast.
type outboundFrame struct {
	Ref     string            `json:"ref"`
	Channel session.ChannelID `json:"channel"`
	Reply   dispatch.Reply    `json:"reply"`
}

// Send implements dispatch.Notifier: it delivers a reply to every client on
// the channel and returns the ref stamped on the broadcast. Slow clients
// have the frame dropped rather than blocking the sender.
func (g *Gateway) Send(_ context.Context, ch session.ChannelID, reply dispatch.Reply) (string, error) {
	ref := uuid.NewString()
	data, err := json.Marshal(outboundFrame{Ref: ref, Channel: ch, Reply: reply})
	if err != nil {
		return "", err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	clients := g.channels[ch]
	if len(clients) == 0 {
		return "", fmt.Errorf("no clients on channel %s", ch)
	}
	for c := range clients {
		select {
		case c.send <- data:
		default:
			log.Warn().Str("player", string(c.player)).Msg("dropping frame for slow client")
		}
	}
	return ref, nil
}
