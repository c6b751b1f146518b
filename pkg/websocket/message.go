package websocket

import "time"

const (
	TypeQueryInvalidated = "query.invalidated"
	TypeNotification     = "notification"
	TypeRoomActivity     = "room.activity"
)

// Envelope is the frame sent to clients; Type tells the client how to read Payload.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type QueryInvalidatedPayload struct {
	Query string `json:"query"`
	Param string `json:"param"`
}
