package control

import (
	"sort"
	"time"

	"github.com/san-kum/forcebox/internal/dynamo"
)

const DefaultHoldWindow = 150 * time.Millisecond

// HoldTracker turns key-press events into a held signal for hosts that
// only report presses, such as terminals. A button counts as held until
// window has passed since its last press; key auto-repeat keeps it alive.
type HoldTracker struct {
	window time.Duration
	now    func() time.Time
	last   map[dynamo.Button]time.Time
}

// NewHoldTracker creates a tracker. A nil now selects time.Now.
func NewHoldTracker(window time.Duration, now func() time.Time) *HoldTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	if now == nil {
		now = time.Now
	}
	return &HoldTracker{
		window: window,
		now:    now,
		last:   make(map[dynamo.Button]time.Time),
	}
}

// Press records a press of b.
func (h *HoldTracker) Press(b dynamo.Button) {
	h.last[b] = h.now()
}

// Release forgets b immediately.
func (h *HoldTracker) Release(b dynamo.Button) {
	delete(h.last, b)
}

func (h *HoldTracker) Held(b dynamo.Button) bool {
	t, ok := h.last[b]
	if !ok {
		return false
	}
	if h.now().Sub(t) >= h.window {
		delete(h.last, b)
		return false
	}
	return true
}

// HeldButtons lists the buttons currently held.
func (h *HoldTracker) HeldButtons() []dynamo.Button {
	var out []dynamo.Button
	for b := range h.last {
		if h.Held(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (h *HoldTracker) Func() dynamo.HeldFunc { return h.Held }
