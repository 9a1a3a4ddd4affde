package queue

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EventSessionRecorded is emitted after a session is persisted to a profile.
const EventSessionRecorded = "session.recorded"

// Message is the payload sent to downstream queue consumers.
type Message struct {
	Event         string  `json:"event"`
	UserEmail     string  `json:"userEmail"`
	TotalSessions int     `json:"totalSessions"`
	AvgScore      float64 `json:"avgScore"`
	RequestID     string  `json:"requestId,omitempty"`
	EnqueuedAt    string  `json:"enqueuedAt"`
	Version       int     `json:"version"`
}

// RoutingKey returns the AMQP routing key for the message.
func (m Message) RoutingKey() string {
	event := strings.TrimSpace(m.Event)
	if event == "" {
		event = EventSessionRecorded
	}
	if m.UserEmail == "" {
		return event
	}
	return fmt.Sprintf("%s.%s", event, m.UserEmail)
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
