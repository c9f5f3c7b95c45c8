package realtime

// Event is the wire envelope pushed to viewer sessions. Name mirrors the
// socket-style event names the display page listens for ("bible-results",
// "sermon-meta-updated", ...), Data is the event-specific payload.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}
