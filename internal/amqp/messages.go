package amqp

import (
	"encoding/json"
	"time"
)

// SyncCompletedMessage announces a committed offline sync batch. Consumers
// interested in the data re-read it from the store; the message carries
// only the outcome counters.
type SyncCompletedMessage struct {
	UserID            string    `json:"user_id"`
	RecordsSynced     int       `json:"records_synced"`
	ConflictsResolved int       `json:"conflicts_resolved"`
	Timestamp         time.Time `json:"timestamp"`
}

func NewSyncCompletedMessage(userID string, synced, conflicts int) *SyncCompletedMessage {
	return &SyncCompletedMessage{
		UserID:            userID,
		RecordsSynced:     synced,
		ConflictsResolved: conflicts,
		Timestamp:         time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SyncCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SyncCompletedMessageFromJSON creates a message from JSON bytes
func SyncCompletedMessageFromJSON(data []byte) (*SyncCompletedMessage, error) {
	var msg SyncCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
