package amqp

import (
	"encoding/json"
	"time"
)

// ImportCompletedMessage announces that the product table was seeded.
type ImportCompletedMessage struct {
	Source    string    `json:"source"`
	Fetched   int       `json:"fetched"`
	Inserted  int       `json:"inserted"`
	Timestamp time.Time `json:"timestamp"`
}

// NewImportCompletedMessage stamps the message with the current time.
func NewImportCompletedMessage(source string, fetched, inserted int) *ImportCompletedMessage {
	return &ImportCompletedMessage{
		Source:    source,
		Fetched:   fetched,
		Inserted:  inserted,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ImportCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
