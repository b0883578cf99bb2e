package progress

import (
	"math"
	"sync"
	"time"
)

type Stage string

const (
	StageList Stage = "list"
	StageScan Stage = "scan"
)

type Snapshot struct {
	Stage     Stage         `json:"stage"`
	Total     int           `json:"total"`
	Done      int           `json:"done"`
	Remaining int           `json:"remaining"`
	Found     int           `json:"found"`
	RateEMA   float64       `json:"rate_per_sec"`
	RateP50   float64       `json:"rate_p50"`
	RateP10   float64       `json:"rate_p10"`
	ETAP50    time.Duration `json:"eta_p50"`
	ETAP90    time.Duration `json:"eta_p90"`
	Warmup    bool          `json:"warmup"`
	StartedAt time.Time     `json:"started_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Elapsed   time.Duration `json:"elapsed"`
}

type Config struct {
	Alpha          float64
	WindowSize     int
	WarmupSamples  int
	WarmupDuration time.Duration
	NotifyInterval time.Duration
	SlowFallback   float64
}

func DefaultConfig() Config {
	return Config{
		Alpha:          0.2,
		WindowSize:     60,
		WarmupSamples:  20,
		WarmupDuration: time.Second,
		NotifyInterval: 250 * time.Millisecond,
		SlowFallback:   0.6,
	}
}

// withDefaults fills every zero field of c from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Alpha <= 0 || c.Alpha > 1 {
		c.Alpha = d.Alpha
	}
	if c.WindowSize <= 0 {
		c.WindowSize = d.WindowSize
	}
	if c.WarmupSamples <= 0 {
		c.WarmupSamples = d.WarmupSamples
	}
	if c.WarmupDuration <= 0 {
		c.WarmupDuration = d.WarmupDuration
	}
	if c.NotifyInterval <= 0 {
		c.NotifyInterval = d.NotifyInterval
	}
	if c.SlowFallback <= 0 {
		c.SlowFallback = d.SlowFallback
	}
	return c
}

// Estimator tracks files scanned per second and derives ETAs from the
// median and 10th percentile of recent rates. It is safe for concurrent use.
type Estimator struct {
	mu         sync.Mutex
	cfg        Config
	start      time.Time
	lastUpdate time.Time
	lastNotify time.Time
	stage      Stage
	total      int
	done       int
	found      int
	ema        float64
	rates      *window
}

func NewEstimator(total int, cfg Config) *Estimator {
	cfg = cfg.withDefaults()
	now := time.Now()
	return &Estimator{
		cfg:        cfg,
		start:      now,
		lastUpdate: now,
		stage:      StageList,
		total:      total,
		rates:      newWindow(cfg.WindowSize),
	}
}

// Begin switches to stage with a new total; rates restart.
func (e *Estimator) Begin(stage Stage, total int) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := time.Now()
	e.stage = stage
	e.total = total
	e.done = 0
	e.ema = 0
	e.rates = newWindow(e.cfg.WindowSize)
	e.lastUpdate = now
	e.lastNotify = now
	return e.snapshotLocked(now)
}

// Advance records delta finished files that yielded found comments. The
// boolean says whether observers should be told.
func (e *Estimator) Advance(delta, found int) (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := time.Now()
	e.found += found
	if delta <= 0 {
		return e.snapshotLocked(now), false
	}
	if now.Before(e.lastUpdate) {
		now = e.lastUpdate
	}
	dt := now.Sub(e.lastUpdate).Seconds()
	if dt <= 0 {
		dt = 1e-6
	}
	e.done += delta
	rate := float64(delta) / dt
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		rate = 0
	}
	if e.ema == 0 {
		e.ema = rate
	} else {
		e.ema = e.cfg.Alpha*rate + (1-e.cfg.Alpha)*e.ema
	}
	e.rates.Add(rate)
	e.lastUpdate = now
	snap := e.snapshotLocked(now)
	notify := now.Sub(e.lastNotify) >= e.cfg.NotifyInterval || snap.Remaining == 0
	if notify {
		e.lastNotify = now
	}
	return snap, notify
}

func (e *Estimator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked(time.Now())
}

// Complete marks the current stage finished.
func (e *Estimator) Complete() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.total >= 0 && e.done < e.total {
		e.done = e.total
	}
	now := time.Now()
	e.lastNotify = now
	return e.snapshotLocked(now)
}

func (e *Estimator) snapshotLocked(now time.Time) Snapshot {
	remain := -1
	if e.total >= 0 {
		remain = max(e.total-e.done, 0)
	}
	elapsed := now.Sub(e.start)
	warm := e.done >= e.cfg.WarmupSamples && elapsed >= e.cfg.WarmupDuration
	p50 := e.rates.Quantile(0.50)
	if p50 <= 0 {
		p50 = e.ema
	}
	p10 := e.rates.Quantile(0.10)
	if p10 <= 0 {
		p10 = p50 * e.cfg.SlowFallback
	}
	snap := Snapshot{
		Stage:     e.stage,
		Total:     e.total,
		Done:      e.done,
		Remaining: remain,
		Found:     e.found,
		RateEMA:   e.ema,
		RateP50:   p50,
		RateP10:   p10,
		Warmup:    !warm,
		StartedAt: e.start,
		UpdatedAt: now,
		Elapsed:   elapsed,
	}
	if warm && remain > 0 {
		snap.ETAP50 = durationFrom(float64(remain), p50)
		snap.ETAP90 = durationFrom(float64(remain), p10)
	}
	return snap
}

func durationFrom(count, rate float64) time.Duration {
	if rate <= 0 {
		return 0
	}
	seconds := count / rate
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0
	}
	if seconds > float64(math.MaxInt64/int64(time.Second)) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds * float64(time.Second))
}
