package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Aggregate and event type names used in the outbox.
const (
	AggregatePlayer = "player"

	EventLocationPinged = "location.pinged"
)

// OutboxDraft is an event pending publication to the broker.
type OutboxDraft struct {
	SeqID         int64
	EventID       uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	OccurredAt    time.Time
}

// NewLocationPingedEvent builds the outbox draft for a recorded GPS ping.
func NewLocationPingedEvent(loc PlayerLocation) (OutboxDraft, error) {
	payload, err := json.Marshal(loc)
	if err != nil {
		return OutboxDraft{}, fmt.Errorf("marshal location payload: %w", err)
	}
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregatePlayer,
		AggregateID:   loc.PlayerID.String(),
		EventType:     EventLocationPinged,
		Payload:       payload,
		OccurredAt:    loc.RecordedAt,
	}, nil
}
