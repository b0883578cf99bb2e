package progress

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

type Observer interface {
	Publish(Snapshot)
	Done(Snapshot)
}

type NoopObserver struct{}

func (NoopObserver) Publish(Snapshot) {}
func (NoopObserver) Done(Snapshot)    {}

type ObserverFunc func(Snapshot)

func (f ObserverFunc) Publish(s Snapshot) { f(s) }
func (ObserverFunc) Done(Snapshot)        {}

// ShouldShowProgress decides whether to draw progress: --no-progress wins,
// then --progress, then both stdout and stderr must be terminals.
func ShouldShowProgress(force, no bool) bool {
	if no {
		return false
	}
	if force {
		return true
	}
	return isTTY(os.Stdout) && isTTY(os.Stderr)
}

// NewAutoObserver redraws one line on a terminal and prints key=value lines
// otherwise.
func NewAutoObserver(w io.Writer) Observer {
	if w == nil {
		w = os.Stderr
	}
	if f, ok := w.(*os.File); ok && isTTY(f) {
		return &writerObserver{w: w, tty: true}
	}
	return &writerObserver{w: w}
}

type writerObserver struct {
	mu  sync.Mutex
	w   io.Writer
	tty bool
}

func (o *writerObserver) Publish(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.tty {
		_, _ = fmt.Fprintf(o.w, "\r\033[K%s", renderTTY(s))
		return
	}
	_, _ = fmt.Fprintln(o.w, renderLine(s))
}

func (o *writerObserver) Done(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.tty {
		_, _ = fmt.Fprint(o.w, "\r\033[K")
		return
	}
	_, _ = fmt.Fprintln(o.w, renderLine(s))
}

func renderTTY(s Snapshot) string {
	rate, eta := "--/s", "--:--:--"
	if !s.Warmup {
		if s.RateEMA > 0 {
			rate = fmt.Sprintf("%.1f/s", s.RateEMA)
		}
		if s.ETAP50 > 0 {
			eta = formatETA(s.ETAP50)
		}
	}
	line := fmt.Sprintf("[%s] %3d%% %d/%d files, %d comments, %s ETA %s",
		s.Stage, percent(s.Done, s.Total), s.Done, s.Total, s.Found, rate, eta)
	if !s.Warmup && s.ETAP90 > 0 {
		line += fmt.Sprintf(" (P90 %s)", formatETA(s.ETAP90))
	}
	return line
}

func renderLine(s Snapshot) string {
	return fmt.Sprintf("progress stage=%s total=%d done=%d found=%d rate=%.3f eta_p50=%g eta_p90=%g warmup=%t updated_at=%s",
		s.Stage, s.Total, s.Done, s.Found, s.RateEMA, secondsOrNegOne(s.ETAP50), secondsOrNegOne(s.ETAP90), s.Warmup,
		s.UpdatedAt.Format(time.RFC3339Nano))
}

func formatETA(d time.Duration) string {
	total := int(math.Round(d.Seconds()))
	if total < 0 {
		total = 0
	}
	h, m, sec := total/3600, total%3600/60, total%60
	if h > 99 {
		h = 99
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

func secondsOrNegOne(d time.Duration) float64 {
	if d <= 0 {
		return -1
	}
	return d.Seconds()
}

func percent(a, b int) int {
	if b <= 0 {
		if a <= 0 {
			return 0
		}
		return 100
	}
	p := a * 100 / b
	return min(max(p, 0), 100)
}

func isTTY(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
