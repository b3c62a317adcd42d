package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
)

// Event is the frame pushed to connected clients
type Event struct {
	// Type of event: "message"
	Type string `json:"type"`

	Message *models.Message `json:"message,omitempty"`

	SentAt time.Time `json:"sentAt"`
}

type delivery struct {
	recipient string
	payload   []byte
}

// Hub tracks connected clients by identity and delivers events to them
type Hub struct {
	// Registered clients organized by identity
	clients map[string]map[*Client]bool

	deliver    chan delivery
	register   chan *Client
	unregister chan *Client

	// closed when Run returns
	done chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		deliver:    make(chan delivery, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles registrations and deliveries until ctx is done. It must be
// called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case d := <-h.deliver:
			h.deliverTo(d)
		}
	}
}

// join hands client to the running hub. It reports false once the hub has
// stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// leave asks the hub to drop client. It returns at once if the hub has
// stopped, since closeAll already dropped every client.
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.identity]; !ok {
		h.clients[client.identity] = make(map[*Client]bool)
	}
	h.clients[client.identity][client] = true

	h.logger.Info().
		Str("identity", client.identity).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked drops a client. Caller holds mu.
func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.identity]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.identity)
	}
	h.logger.Info().
		Str("identity", client.identity).
		Msg("Client unregistered")
}

func (h *Hub) deliverTo(d delivery) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[d.recipient]
	if !ok {
		h.logger.Debug().Str("recipient", d.recipient).Msg("Recipient not connected")
		return
	}
	for client := range clients {
		select {
		case client.send <- d.payload:
		default:
			// slow client, drop it
			h.removeLocked(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// NotifyMessage queues a new message for the recipient's open connections.
// It never blocks; when the queue is full the push is dropped since the
// message is already stored.
func (h *Hub) NotifyMessage(recipient string, message *models.Message) {
	data, err := json.Marshal(Event{Type: "message", Message: message, SentAt: time.Now().UTC()})
	if err != nil {
		h.logger.Error().Err(err).Str("messageId", message.ID).Msg("Failed to marshal message event")
		return
	}
	select {
	case h.deliver <- delivery{recipient: recipient, payload: data}:
	default:
		h.logger.Warn().Str("messageId", message.ID).Msg("Delivery queue full, dropped live push")
	}
}

// ClientCount returns the number of open connections for an identity
func (h *Hub) ClientCount(identity string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[identity])
}
