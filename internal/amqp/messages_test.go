package amqp

import (
	"testing"
)

func TestSyncCompletedMessageRoundTrip(t *testing.T) {
	msg := NewSyncCompletedMessage("user-1", 7, 2)

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	decoded, err := SyncCompletedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if decoded.UserID != "user-1" {
		t.Errorf("user_id = %q, want user-1", decoded.UserID)
	}
	if decoded.RecordsSynced != 7 || decoded.ConflictsResolved != 2 {
		t.Errorf("counters = %d/%d, want 7/2", decoded.RecordsSynced, decoded.ConflictsResolved)
	}
	if decoded.Timestamp.IsZero() {
		t.Error("timestamp should survive the round trip")
	}
}

func TestSyncCompletedMessageFromInvalidJSON(t *testing.T) {
	if _, err := SyncCompletedMessageFromJSON([]byte("{not json")); err == nil {
		t.Error("malformed payload should fail to decode")
	}
}
