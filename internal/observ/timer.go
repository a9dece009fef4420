package observ

import "time"

// Timer records how long each pass of one module took. A nil *Timer is
// valid and records nothing.
type Timer struct {
	phases []phase
}

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
}

func NewTimer() *Timer { return &Timer{phases: make([]phase, 0, 6)} }

// Track starts a phase; calling the returned func stops it with a note.
func (t *Timer) Track(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	t.phases = append(t.phases, phase{name: name, start: time.Now()})
	idx := len(t.phases) - 1
	return func(note string) {
		p := &t.phases[idx]
		p.dur = time.Since(p.start)
		p.note = note
	}
}

func (t *Timer) Len() int {
	if t == nil {
		return 0
	}
	return len(t.phases)
}

// PhaseReport — одна фаза в миллисекундах.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report — все фазы и их сумма.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	if t.Len() == 0 {
		return r
	}
	var total time.Duration
	r.Phases = make([]PhaseReport, 0, len(t.phases))
	for _, p := range t.phases {
		total += p.dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: millis(p.dur), Note: p.note})
	}
	r.TotalMS = millis(total)
	return r
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
