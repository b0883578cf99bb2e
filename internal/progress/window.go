package progress

import (
	"math"
	"sort"
)

// window keeps the last size rate samples in a ring.
type window struct {
	buf  []float64
	next int
	full bool
}

func newWindow(size int) *window {
	if size <= 0 {
		size = 1
	}
	return &window{buf: make([]float64, size)}
}

func (w *window) Add(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	w.buf[w.next] = v
	w.next++
	if w.next == len(w.buf) {
		w.next = 0
		w.full = true
	}
}

func (w *window) Len() int {
	if w.full {
		return len(w.buf)
	}
	return w.next
}

// Quantile interpolates linearly between the two nearest ranks.
func (w *window) Quantile(q float64) float64 {
	n := w.Len()
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, w.buf[:n])
	sort.Float64s(sorted)
	switch {
	case q <= 0:
		return sorted[0]
	case q >= 1:
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
