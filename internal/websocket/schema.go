package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError Event = "error"
	EventPong  Event = "pong"
	// EventTick carries the remaining seconds once per elapsed second
	// while an exam is running.
	EventTick Event = "tick"
	// EventLowTime fires exactly once per attempt when the clock crosses
	// the low-time threshold.
	EventLowTime Event = "low_time"
	// EventAutoSubmitted announces a forced submit after the clock hit
	// zero, with the final score attached.
	EventAutoSubmitted Event = "auto_submitted"
)

// TickMessage is the per-second clock broadcast.
type TickMessage struct {
	Event    Event `json:"event"`
	TimeLeft int   `json:"time_left"`
}

// LowTimeMessage is the one-shot low-time alert. The browser plays its
// warning sound off this event.
type LowTimeMessage struct {
	Event    Event `json:"event"`
	TimeLeft int   `json:"time_left"`
}

// AutoSubmittedMessage announces a timer-forced submit.
type AutoSubmittedMessage struct {
	Event Event `json:"event"`
	Score int   `json:"score"`
	Total int   `json:"total"`
}

type ErrorMessage struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongMessage struct {
	Event Event `json:"event"`
}
