package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	appcanvas "flowcanvas-backend/application/canvas"
	"flowcanvas-backend/domain/core/valueobjects"
	"flowcanvas-backend/domain/events"
	"flowcanvas-backend/infrastructure/config"
	"flowcanvas-backend/pkg/observability"
)

var validate = validator.New()

type inboundMessage struct {
	client  *Client
	payload []byte
}

// Hub owns all websocket sessions for the shared canvas. Every inbound input
// message is handled on the single Run goroutine, which is what serializes
// access to the canvas across sessions alongside the service lock.
type Hub struct {
	service *appcanvas.Service

	clients    map[*Client]bool
	sessions   atomic.Int64
	register   chan *Client
	unregister chan *Client
	inbound    chan inboundMessage
	broadcast  chan []byte

	upgrader websocket.Upgrader
	cfg      config.WebSocketConfig
	metrics  *observability.Metrics

	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
}

// NewHub creates a hub bound to the shared canvas service
func NewHub(service *appcanvas.Service, cfg config.WebSocketConfig, metrics *observability.Metrics, logger *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		service:    service,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		inbound:    make(chan inboundMessage, cfg.MessageQueueSize),
		broadcast:  make(chan []byte, cfg.MessageQueueSize),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		cfg:     cfg,
		metrics: metrics,
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger,
	}

	// Domain events raised by any input path, websocket or REST, reach
	// every session. The listener runs under the service lock, so it only
	// enqueues.
	service.Subscribe(func(event events.DomainEvent) {
		h.publish(newServerMessage(MsgEvent, event))
	})

	return h
}

// Run is the hub's main loop. It must be running before sessions connect.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			for client := range h.clients {
				close(client.send)
			}
			h.logger.Info("websocket hub stopped")
			return

		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case msg := <-h.inbound:
			h.handleMessage(msg)

		case payload := <-h.broadcast:
			for client := range h.clients {
				client.queue(payload)
			}
		}
	}
}

// Stop shuts the hub down and closes every session
func (h *Hub) Stop() {
	h.cancel()
}

// ServeHTTP upgrades a request into a canvas session
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.sessions.Load() >= int64(h.cfg.MaxSessions) {
		http.Error(w, "session limit reached", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	NewClient(h, conn, h.cfg.MessageQueueSize, h.logger).Start()
}

func (h *Hub) addClient(client *Client) {
	h.clients[client] = true
	h.sessions.Add(1)
	h.metrics.ActiveSessions.Inc()
	h.logger.Info("session connected", zap.String("session_id", client.id))

	client.queue(mustMarshal(newServerMessage(MsgConnected, map[string]string{"sessionId": client.id})))
}

func (h *Hub) removeClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.sessions.Add(-1)
	h.metrics.ActiveSessions.Dec()
	h.logger.Info("session disconnected", zap.String("session_id", client.id))
}

func (h *Hub) handleMessage(msg inboundMessage) {
	var envelope ClientMessage
	if err := json.Unmarshal(msg.payload, &envelope); err != nil {
		h.sendError(msg.client, "invalid message: "+err.Error())
		return
	}
	h.metrics.MessagesReceived.WithLabelValues(envelope.Type).Inc()

	switch envelope.Type {
	case MsgPointerDown:
		var p PointerPayload
		if !h.decode(msg.client, envelope.Data, &p) {
			return
		}
		h.service.PointerDown(p.Target, p.Event)

	case MsgPointerMove:
		var p PointerMovePayload
		if !h.decode(msg.client, envelope.Data, &p) {
			return
		}
		h.service.PointerMove(p.Event)

	case MsgPointerUp:
		var p PointerPayload
		if !h.decode(msg.client, envelope.Data, &p) {
			return
		}
		h.service.PointerUp(p.Target, p.Event)

	case MsgPointerLeave:
		h.service.PointerLeave()

	case MsgWheel:
		var p WheelPayload
		if !h.decode(msg.client, envelope.Data, &p) {
			return
		}
		h.service.Wheel(p.Event)

	case MsgKey:
		var p KeyPayload
		if !h.decode(msg.client, envelope.Data, &p) {
			return
		}
		h.service.KeyDown(p.Event)

	case MsgMinimap:
		var p MinimapPayload
		if !h.decode(msg.client, envelope.Data, &p) {
			return
		}
		h.service.MinimapPointer(
			valueobjects.NewPosition(p.X, p.Y),
			valueobjects.NewDimensions(p.Width, p.Height),
		)

	case MsgResize:
		var p ResizePayload
		if !h.decode(msg.client, envelope.Data, &p) {
			return
		}
		h.service.Resize(valueobjects.NewDimensions(p.Width, p.Height))

	case MsgSync:
		frame := h.service.Frame(valueobjects.NewDimensions(200, 150))
		msg.client.queue(mustMarshal(newServerMessage(MsgFrame, frame)))

	default:
		h.sendError(msg.client, "unknown message type: "+envelope.Type)
	}
}

func (h *Hub) decode(client *Client, data json.RawMessage, payload any) bool {
	if err := json.Unmarshal(data, payload); err != nil {
		h.sendError(client, "invalid payload: "+err.Error())
		return false
	}
	if err := validate.Struct(payload); err != nil {
		h.sendError(client, "invalid payload: "+err.Error())
		return false
	}
	return true
}

func (h *Hub) sendError(client *Client, message string) {
	client.queue(mustMarshal(newServerMessage(MsgError, map[string]string{"message": message})))
}

// publish enqueues a message for broadcast without blocking the caller
func (h *Hub) publish(message ServerMessage) {
	select {
	case h.broadcast <- mustMarshal(message):
	default:
		h.logger.Warn("broadcast queue full, dropping event", zap.String("type", message.Type))
	}
}

func mustMarshal(message ServerMessage) []byte {
	payload, err := json.Marshal(message)
	if err != nil {
		return []byte(`{"type":"error","data":{"message":"marshal failure"}}`)
	}
	return payload
}
