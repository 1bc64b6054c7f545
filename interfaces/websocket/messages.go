// Package websocket streams canvas input from sessions to the shared canvas
// service and fans domain events back out to every session.
package websocket

import (
	"encoding/json"
	"time"

	appcanvas "flowcanvas-backend/application/canvas"
)

// Client message types
const (
	MsgPointerDown  = "pointer_down"
	MsgPointerMove  = "pointer_move"
	MsgPointerUp    = "pointer_up"
	MsgPointerLeave = "pointer_leave"
	MsgWheel        = "wheel"
	MsgKey          = "key"
	MsgMinimap      = "minimap"
	MsgResize       = "resize"
	MsgSync         = "sync"
)

// Server message types
const (
	MsgConnected = "connected"
	MsgEvent     = "event"
	MsgFrame     = "frame"
	MsgError     = "error"
)

// ClientMessage is the envelope for everything a session sends
type ClientMessage struct {
	Type string          `json:"type" validate:"required"`
	Data json.RawMessage `json:"data,omitempty"`
}

// PointerPayload carries pointer_down and pointer_up messages
type PointerPayload struct {
	Target appcanvas.HitTarget    `json:"target"`
	Event  appcanvas.PointerEvent `json:"event"`
}

// PointerMovePayload carries pointer_move messages
type PointerMovePayload struct {
	Event appcanvas.PointerEvent `json:"event"`
}

// WheelPayload carries wheel messages
type WheelPayload struct {
	Event appcanvas.WheelEvent `json:"event"`
}

// KeyPayload carries key messages
type KeyPayload struct {
	Event appcanvas.KeyEvent `json:"event"`
}

// MinimapPayload carries minimap pointer messages
type MinimapPayload struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

// ResizePayload carries canvas resize messages
type ResizePayload struct {
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

// ServerMessage is the envelope for everything the hub sends
type ServerMessage struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func newServerMessage(msgType string, data any) ServerMessage {
	return ServerMessage{Type: msgType, Data: data, Timestamp: time.Now().Unix()}
}
