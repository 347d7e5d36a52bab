package typing

import (
	"sort"
	"time"

	"github.com/verte-zerg/typist/internal/model"
)

// Tracker records keystrokes against a fixed target. Its history is
// append-only: backspace shortens the typed buffer but never removes events
// or wrong positions.
type Tracker struct {
	target []rune
	typed  []rune
	events []model.Keystroke
	wrong  map[int]struct{}

	start time.Time
	end   time.Time
	last  time.Time
}

// NewTracker returns a tracker for target. The first keystroke's delay is
// measured from created.
func NewTracker(target []rune, created time.Time) *Tracker {
	return &Tracker{
		target: append([]rune(nil), target...),
		wrong:  map[int]struct{}{},
		last:   created,
	}
}

// Apply records r at the current position and reports whether the target is
// now fully typed. The first keystroke starts the clock. Input after
// completion is ignored.
func (t *Tracker) Apply(r rune, now time.Time) bool {
	if t.Done() || len(t.typed) >= len(t.target) {
		return t.Done()
	}
	if t.start.IsZero() {
		t.start = now
	}
	pos := len(t.typed)
	expected := t.target[pos]
	ev := model.Keystroke{
		Index:    pos,
		Typed:    r,
		Expected: expected,
		At:       now,
		Delay:    now.Sub(t.last),
		Correct:  r == expected,
	}
	if !ev.Correct {
		t.wrong[pos] = struct{}{}
	}
	t.events = append(t.events, ev)
	t.typed = append(t.typed, r)
	t.last = now
	if len(t.typed) == len(t.target) {
		t.end = now
		return true
	}
	return false
}

// Backspace drops the last typed rune. It reports false when nothing was
// removed.
func (t *Tracker) Backspace() bool {
	if t.Done() || len(t.typed) == 0 {
		return false
	}
	t.typed = t.typed[:len(t.typed)-1]
	return true
}

// Finish freezes the attempt at the given time.
func (t *Tracker) Finish(at time.Time) {
	if t.Done() {
		return
	}
	if t.start.IsZero() {
		t.start = at
	}
	t.end = at
}

// Done reports whether the attempt has ended.
func (t *Tracker) Done() bool {
	return !t.end.IsZero()
}

// Started reports whether a keystroke has been accepted.
func (t *Tracker) Started() bool {
	return !t.start.IsZero()
}

func (t *Tracker) Target() []rune {
	return append([]rune(nil), t.target...)
}

func (t *Tracker) Typed() []rune {
	return append([]rune(nil), t.typed...)
}

func (t *Tracker) TypedLen() int {
	return len(t.typed)
}

func (t *Tracker) Events() []model.Keystroke {
	return append([]model.Keystroke(nil), t.events...)
}

// WrongPositions returns every position ever mistyped, ascending.
func (t *Tracker) WrongPositions() []int {
	out := make([]int, 0, len(t.wrong))
	for pos := range t.wrong {
		out = append(out, pos)
	}
	sort.Ints(out)
	return out
}

// Correctness reports how position i is currently typed.
func (t *Tracker) Correctness(i int) Correctness {
	if i < 0 || i >= len(t.typed) {
		return Pending
	}
	if t.typed[i] == t.target[i] {
		return Correct
	}
	return Incorrect
}

func (t *Tracker) Start() time.Time {
	return t.start
}

func (t *Tracker) End() time.Time {
	return t.end
}

// Correctness classifies one target position.
type Correctness int

const (
	Pending Correctness = iota
	Correct
	Incorrect
)
