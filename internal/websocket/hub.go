package websocket

import (
	"sync"

	"github.com/rs/zerolog"
)

// SeatUpdate is broadcast to every subscriber of a section whenever an
// admission or withdrawal changes its seat counts.
type SeatUpdate struct {
	Event     string `json:"event"`
	SectionID int64  `json:"section_id"`
	Capacity  int    `json:"capacity"`
	Enrolled  int    `json:"enrolled"`
	Remaining int    `json:"remaining"`
}

// EventSeats is the event name carried by every SeatUpdate.
const EventSeats = "seats"

// SeatHub fans seat-count updates out to per-section subscribers.
// It implements service.SeatFeed.
type SeatHub struct {
	mu          sync.RWMutex
	subscribers map[int64]map[chan SeatUpdate]struct{}
	log         zerolog.Logger
}

// NewSeatHub creates an empty SeatHub.
func NewSeatHub(log zerolog.Logger) *SeatHub {
	return &SeatHub{
		subscribers: make(map[int64]map[chan SeatUpdate]struct{}),
		log:         log.With().Str("component", "seat_hub").Logger(),
	}
}

// Subscribe registers a listener for one section's seat updates. The
// returned channel is buffered; call the returned cancel func to leave.
func (h *SeatHub) Subscribe(sectionID int64) (<-chan SeatUpdate, func()) {
	ch := make(chan SeatUpdate, 8)

	h.mu.Lock()
	subs, ok := h.subscribers[sectionID]
	if !ok {
		subs = make(map[chan SeatUpdate]struct{})
		h.subscribers[sectionID] = subs
	}
	subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if subs, ok := h.subscribers[sectionID]; ok {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(h.subscribers, sectionID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish broadcasts the section's current seat counts to its
// subscribers. Slow subscribers are skipped, never blocked on.
func (h *SeatHub) Publish(sectionID int64, capacity, enrolled int) {
	update := SeatUpdate{
		Event:     EventSeats,
		SectionID: sectionID,
		Capacity:  capacity,
		Enrolled:  enrolled,
		Remaining: capacity - enrolled,
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers[sectionID] {
		select {
		case ch <- update:
		default:
			h.log.Warn().Int64("section_id", sectionID).Msg("dropping seat update for slow subscriber")
		}
	}
}
