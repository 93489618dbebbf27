package websocket

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError Event = "error"
	EventScore Event = "score"
)

// ScoreEvent carries one group score change to scoreboard subscribers.
type ScoreEvent struct {
	Event     Event  `json:"event"`
	GroupName string `json:"group_name"`
	Stars     int64  `json:"stars"`
	Score     int64  `json:"score"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}
