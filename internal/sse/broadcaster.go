package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/draftnight/auction-go/internal/model"
)

// Broadcaster fans room events out to the room's SSE clients. It satisfies
// the room package's event sink: Publish marshals the payload and hands it
// to the hub's buffered broadcast channel, so it never blocks the room
// worker.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish broadcasts a room event to all clients subscribed to that room.
// Rooms with no hub yet (nobody streaming) are silently skipped.
func (b *Broadcaster) Publish(ev model.Event) {
	hub := b.hubManager.GetHub(ev.RoomCode)
	if hub == nil {
		return
	}

	data, err := json.Marshal(ev.Payload)
	if err != nil {
		b.logger.Error("sse failed to marshal event payload",
			slog.String("room", string(ev.RoomCode)),
			slog.String("event", string(ev.Type)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(ev.Type), string(data))

	if ev.Type == model.EventRoomClosed {
		b.hubManager.RemoveHub(ev.RoomCode)
	}
}
