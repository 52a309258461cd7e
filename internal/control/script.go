package control

import (
	"sort"

	"github.com/san-kum/forcebox/internal/dynamo"
)

// Hold keeps Button held over the simulated interval [From, To) in seconds.
type Hold struct {
	Button dynamo.Button
	From   float64
	To     float64
}

// Script replays timed holds for headless runs.
type Script struct {
	holds []Hold
}

func NewScript(holds ...Hold) *Script {
	s := &Script{holds: append([]Hold(nil), holds...)}
	sort.SliceStable(s.holds, func(i, j int) bool { return s.holds[i].From < s.holds[j].From })
	return s
}

func (s *Script) Holds() []Hold { return append([]Hold(nil), s.holds...) }

// HeldAt returns the held predicate at simulated time t.
func (s *Script) HeldAt(t float64) dynamo.HeldFunc {
	return func(b dynamo.Button) bool {
		for _, h := range s.holds {
			if h.From > t {
				break
			}
			if h.Button == b && t < h.To {
				return true
			}
		}
		return false
	}
}

// End returns the time the last hold is released.
func (s *Script) End() float64 {
	end := 0.0
	for _, h := range s.holds {
		if h.To > end {
			end = h.To
		}
	}
	return end
}
