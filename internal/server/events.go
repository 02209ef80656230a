package server

import (
	"context"
	"encoding/json"
	"time"

	"inkwell/internal/cache"
)

// mutationEvent is the payload published to Redis whenever an entity changes.
// Downstream consumers (feed rebuilders, search indexers) subscribe to the
// events channel rather than polling the database.
type mutationEvent struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        uint      `json:"id"`
	ActorID   uint      `json:"actor_id"`
	Timestamp time.Time `json:"timestamp"`
}

// publishEvent emits a mutation event. Failures are logged and swallowed;
// event delivery never affects the API response.
func (s *Server) publishEvent(ctx context.Context, entity, action string, id, actorID uint) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(mutationEvent{
		Entity:    entity,
		Action:    action,
		ID:        id,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return
	}

	cache.Publish(ctx, payload)
}
