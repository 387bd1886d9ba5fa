package ws_flow

import (
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/humanbelnik/popchoice/internal/metrics"
	"github.com/humanbelnik/popchoice/internal/service/wizard"
	"github.com/rs/zerolog"
)

const (
	EventFlowSnapshot = "FLOW_SNAPSHOT"
	EventFlowUpdate   = "FLOW_UPDATE"
)

const (
	sendBuffer = 32
	writeWait  = 10 * time.Second
)

type Event struct {
	Type    string      `json:"type"`
	Payload wizard.View `json:"payload"`
}

type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	flowID string
}

// Hub fans flow updates out to every socket watching that flow. A flow may
// be watched from several screens at once.
type Hub struct {
	mu     sync.RWMutex
	flows  map[string]map[*Client]bool
	logger zerolog.Logger
}

type HubOption func(*Hub)

func WithHubLogger(logger zerolog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		flows:  make(map[string]map[*Client]bool),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.flows[client.flowID]; !ok {
		h.flows[client.flowID] = make(map[*Client]bool)
	}
	h.flows[client.flowID][client] = true
	metrics.WebsocketClients.Inc()

	h.logger.Debug().Str("flow_id", client.flowID).Msg("client registered")
}

func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(client)
}

// remove must be called with mu held. The send channel is closed exactly
// once, by whoever takes the client out of the map.
func (h *Hub) remove(client *Client) {
	clients, ok := h.flows[client.flowID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.flows, client.flowID)
	}
	close(client.send)
	metrics.WebsocketClients.Dec()

	h.logger.Debug().Str("flow_id", client.flowID).Msg("client unregistered")
}

func (h *Hub) Clients(flowID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.flows[flowID])
}

// FlowUpdated pushes the new snapshot to the flow's watchers. Slow clients
// that cannot keep up are dropped.
func (h *Hub) FlowUpdated(v wizard.View) {
	msg, err := json.Marshal(Event{Type: EventFlowUpdate, Payload: v})
	if err != nil {
		h.logger.Error().Err(err).Str("flow_id", v.ID).Msg("failed to encode flow update")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.flows[v.ID] {
		select {
		case client.send <- msg:
		default:
			h.logger.Warn().Str("flow_id", v.ID).Msg("dropping slow client")
			h.remove(client)
		}
	}
}

// deliver queues msg for one client that is still registered.
func (h *Hub) deliver(client *Client, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.flows[client.flowID][client] {
		return
	}
	select {
	case client.send <- msg:
	default:
		h.logger.Warn().Str("flow_id", client.flowID).Msg("dropping slow client")
		h.remove(client)
	}
}

func (h *Hub) readLoop(client *Client) {
	defer func() {
		h.Remove(client)
		client.conn.Close()
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(client *Client) {
	defer client.conn.Close()

	for msg := range client.send {
		client.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	client.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
