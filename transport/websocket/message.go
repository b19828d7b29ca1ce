package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/presenter"
)

const (
	actionState = "game:state"
	actionPlay  = "game:play"
	actionJump  = "game:jump"
	actionReset = "game:reset"
	actionError = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload carries the argument of a play or jump.
type RequestPayload struct {
	Cell *int `json:"cell,omitempty"`
	Move *int `json:"move,omitempty"`
}

// ResponsePayload answers every request with the game as it is after the action.
// Applied is false when the rules ignored the action.
type ResponsePayload struct {
	Session string          `json:"session,omitempty"`
	Game    *presenter.View `json:"game,omitempty"`
	Applied bool            `json:"applied"`
	Error   string          `json:"error,omitempty"`
}

// Response is the server side of a Message with a typed payload.
type Response struct {
	Action  string          `json:"action"`
	Payload ResponsePayload `json:"payload"`
}
