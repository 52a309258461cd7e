package metrics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/forcebox/internal/dynamo"
)

// Rest is the fraction of frames in which every body is stationary.
type Rest struct {
	name    string
	resting int
	samples int
}

func NewRest() *Rest {
	return &Rest{name: "rest_fraction"}
}

func (r *Rest) Name() string {
	return r.name
}

func (r *Rest) Observe(f dynamo.Frame) {
	r.samples++
	for i := 0; i < f.Len(); i++ {
		if velocity(f, i).Len() != 0 {
			return
		}
	}
	r.resting++
}

func (r *Rest) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.resting) / float64(r.samples)
}

func (r *Rest) Reset() {
	r.resting = 0
	r.samples = 0
}

// PathLength sums the distance travelled by one body between frames.
type PathLength struct {
	name  string
	slot  int
	total float64
	prev  mgl64.Vec2
	seen  bool
}

func NewPathLength(slot int) *PathLength {
	return &PathLength{name: "path_length", slot: slot}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(f dynamo.Frame) {
	if p.slot >= f.Len() {
		return
	}
	cur := position(f, p.slot)
	if p.seen {
		p.total += cur.Sub(p.prev).Len()
	}
	p.prev = cur
	p.seen = true
}

func (p *PathLength) Value() float64 { return p.total }

func (p *PathLength) Reset() {
	p.total = 0
	p.seen = false
}
