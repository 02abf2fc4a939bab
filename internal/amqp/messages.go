package amqp

import (
	"encoding/json"
	"time"
)

// ChangeMessage announces that a budget entity changed. It carries only the
// entity name, the operation and the record id; consumers recompute from the
// store rather than trusting a payload snapshot.
type ChangeMessage struct {
	Entity    string    `json:"entity"`
	Op        string    `json:"op"`
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(entity, op, id string) *ChangeMessage {
	return &ChangeMessage{
		Entity:    entity,
		Op:        op,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
