// Package typing runs typing attempts: it generates target text, applies
// keystrokes and exposes live and final statistics.
package typing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/typist/internal/corpus"
	"github.com/verte-zerg/typist/internal/generator"
	"github.com/verte-zerg/typist/internal/model"
	"github.com/verte-zerg/typist/internal/stats"
)

// ErrNoWordsForLanguage is returned when word sampling yields nothing.
var ErrNoWordsForLanguage = errors.New("no words for language")

const (
	minTimeWords       = 50
	maxTimeWords       = model.MaxSeconds * timeWordsPerSecond
	timeWordsPerSecond = 3
)

// State is the lifecycle stage of the current attempt.
type State int

const (
	// Idle means no attempt has been generated yet.
	Idle State = iota
	// Ready means target text exists and nothing has been typed.
	Ready
	// InProgress means at least one keystroke was recorded.
	InProgress
	// Completed means the attempt ended; input is ignored until NewTest.
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Ready:
		return "ready"
	case InProgress:
		return "in progress"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CorpusLoader provides corpora by language.
type CorpusLoader interface {
	Load(lang corpus.Language) (corpus.WordCorpus, *corpus.QuoteCorpus, error)
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session owns exactly one attempt at a time. Language, mode and decoration
// settings are staged and only take effect at the next NewTest.
type Session struct {
	loader CorpusLoader
	gen    *generator.Generator
	now    func() time.Time
	logger *zap.Logger

	lang       corpus.Language
	mode       model.Mode
	punctPct   float64
	numbersPct float64

	loaded    corpus.Language
	hasCorpus bool
	words     corpus.WordCorpus
	quotes    *corpus.QuoteCorpus

	attempt *attempt
}

type attempt struct {
	id      uuid.UUID
	lang    corpus.Language
	mode    model.Mode
	source  string
	tracker *Tracker
}

// NewSession returns an Idle session using the default language and mode.
func NewSession(loader CorpusLoader, gen *generator.Generator, opts ...Option) *Session {
	s := &Session{
		loader: loader,
		gen:    gen,
		now:    time.Now,
		logger: zap.NewNop(),
		lang:   corpus.DefaultLanguage,
		mode:   model.DefaultMode(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetLanguage stages the language for the next attempt.
func (s *Session) SetLanguage(lang corpus.Language) {
	s.lang = lang
}

// SetMode stages the mode for the next attempt. A nil mode selects the default.
func (s *Session) SetMode(mode model.Mode) {
	if mode == nil {
		mode = model.DefaultMode()
	}
	s.mode = mode
}

// SetDecoration stages the punctuation percentage (0-100) and number
// probability (0-1) used by words mode.
func (s *Session) SetDecoration(punctPct, numbersPct float64) {
	s.punctPct = punctPct
	s.numbersPct = numbersPct
}

// NewTest discards the current attempt and generates a new one from the
// staged settings. On error the session is left exactly as it was.
func (s *Session) NewTest() error {
	lang, mode := s.lang, s.mode
	words, quotes := s.words, s.quotes
	if !s.hasCorpus || lang != s.loaded {
		w, q, err := s.loader.Load(lang)
		if err != nil {
			s.logger.Warn("failed to load corpus", zap.String("lang", lang.String()), zap.Error(err))
			return fmt.Errorf("failed to load corpus: %w", err)
		}
		words, quotes = w, q
	}

	text, source, err := s.generate(lang, mode, words, quotes)
	if err != nil {
		s.logger.Warn("failed to generate text",
			zap.String("lang", lang.String()),
			zap.Stringer("mode", mode),
			zap.Error(err),
		)
		return err
	}

	next := &attempt{
		id:      uuid.New(),
		lang:    lang,
		mode:    mode,
		source:  source,
		tracker: NewTracker([]rune(text), s.now()),
	}
	s.loaded, s.hasCorpus, s.words, s.quotes, s.attempt = lang, true, words, quotes, next
	s.logger.Debug("attempt ready",
		zap.Stringer("attempt_id", next.id),
		zap.String("lang", lang.String()),
		zap.Stringer("mode", mode),
		zap.Int("length", len(next.tracker.target)),
	)
	return nil
}

func (s *Session) generate(lang corpus.Language, mode model.Mode, words corpus.WordCorpus, quotes *corpus.QuoteCorpus) (string, string, error) {
	switch m := mode.(type) {
	case model.TimeMode:
		count := maxTimeWords
		if m.Seconds < model.MaxSeconds {
			count = max(minTimeWords, m.Seconds*timeWordsPerSecond)
		}
		sample, ok := s.gen.RandomWords(words, count, generator.Options{})
		if !ok {
			return "", "", fmt.Errorf("%w: %s", ErrNoWordsForLanguage, lang)
		}
		return strings.Join(sample, " "), "", nil
	case model.WordsMode:
		sample, ok := s.gen.RandomWords(words, m.Count, generator.Options{
			Punctuation: m.Punctuation,
			Numbers:     m.Numbers,
			PunctPct:    s.punctPct,
			NumbersPct:  s.numbersPct,
		})
		if !ok {
			return "", "", fmt.Errorf("%w: %s", ErrNoWordsForLanguage, lang)
		}
		return strings.Join(sample, " "), "", nil
	case model.QuoteMode:
		quote, err := s.gen.RandomQuote(quotes, lang, m.Lengths)
		if err != nil {
			return "", "", err
		}
		return quote.Text, quote.Source, nil
	default:
		return "", "", fmt.Errorf("unsupported mode %T", mode)
	}
}

// ApplyKeystroke types r at the current position. It reports whether the
// keystroke was recorded. In time mode a keystroke arriving after the
// deadline ends the attempt at the deadline and is discarded.
func (s *Session) ApplyKeystroke(r rune) bool {
	a := s.attempt
	if a == nil || a.tracker.Done() {
		return false
	}
	now := s.now()
	if s.expireAt(now) {
		return false
	}
	if a.tracker.Apply(r, now) {
		s.logCompleted()
	}
	return true
}

// ApplyBackspace removes the last typed rune. History and wrong positions
// are kept.
func (s *Session) ApplyBackspace() bool {
	if s.attempt == nil {
		return false
	}
	return s.attempt.tracker.Backspace()
}

// Expire ends a time-mode attempt whose deadline has passed, stamping the
// deadline as its end. It reports whether the attempt was ended.
func (s *Session) Expire() bool {
	if s.attempt == nil || s.attempt.tracker.Done() {
		return false
	}
	return s.expireAt(s.now())
}

func (s *Session) expireAt(now time.Time) bool {
	deadline, ok := s.deadline()
	if !ok || now.Before(deadline) {
		return false
	}
	s.attempt.tracker.Finish(deadline)
	s.logCompleted()
	return true
}

func (s *Session) deadline() (time.Time, bool) {
	a := s.attempt
	m, ok := a.mode.(model.TimeMode)
	if !ok || !a.tracker.Started() {
		return time.Time{}, false
	}
	return a.tracker.start.Add(time.Duration(m.Seconds) * time.Second), true
}

// Remaining returns the time left in a time-mode attempt. The second value is
// false for other modes.
func (s *Session) Remaining() (time.Duration, bool) {
	if s.attempt == nil {
		return 0, false
	}
	m, ok := s.attempt.mode.(model.TimeMode)
	if !ok {
		return 0, false
	}
	t := s.attempt.tracker
	switch {
	case t.Done():
		return 0, true
	case !t.Started():
		return time.Duration(m.Seconds) * time.Second, true
	}
	deadline, _ := s.deadline()
	left := deadline.Sub(s.now())
	if left < 0 {
		left = 0
	}
	return left, true
}

// State is Ready until the first keystroke is recorded. Backspacing back to
// an empty input keeps the attempt InProgress since its clock has started.
func (s *Session) State() State {
	switch {
	case s.attempt == nil:
		return Idle
	case s.attempt.tracker.Done():
		return Completed
	case len(s.attempt.tracker.events) == 0:
		return Ready
	default:
		return InProgress
	}
}

func (s *Session) Target() []rune {
	if s.attempt == nil {
		return nil
	}
	return s.attempt.tracker.Target()
}

func (s *Session) Typed() []rune {
	if s.attempt == nil {
		return nil
	}
	return s.attempt.tracker.Typed()
}

func (s *Session) TypedLen() int {
	if s.attempt == nil {
		return 0
	}
	return s.attempt.tracker.TypedLen()
}

func (s *Session) Correctness(i int) Correctness {
	if s.attempt == nil {
		return Pending
	}
	return s.attempt.tracker.Correctness(i)
}

func (s *Session) WrongPositions() []int {
	if s.attempt == nil {
		return nil
	}
	return s.attempt.tracker.WrongPositions()
}

func (s *Session) Events() []model.Keystroke {
	if s.attempt == nil {
		return nil
	}
	return s.attempt.tracker.Events()
}

// CPM is measured up to the end of the attempt, or up to now while running.
func (s *Session) CPM() int {
	if s.attempt == nil {
		return 0
	}
	t := s.attempt.tracker
	return stats.CPM(t.events, t.start, s.endOrNow())
}

func (s *Session) WPM() int {
	return stats.WPM(s.CPM())
}

func (s *Session) Accuracy() float64 {
	if s.attempt == nil {
		return 0
	}
	return stats.Accuracy(s.attempt.tracker.events)
}

// Mode returns the mode of the current attempt, or the staged mode when idle.
func (s *Session) Mode() model.Mode {
	if s.attempt == nil {
		return s.mode
	}
	return s.attempt.mode
}

// Language returns the language of the current attempt, or the staged
// language when idle.
func (s *Session) Language() corpus.Language {
	if s.attempt == nil {
		return s.lang
	}
	return s.attempt.lang
}

// Source names the quote being typed; it is empty outside quote mode.
func (s *Session) Source() string {
	if s.attempt == nil {
		return ""
	}
	return s.attempt.source
}

func (s *Session) AttemptID() uuid.UUID {
	if s.attempt == nil {
		return uuid.Nil
	}
	return s.attempt.id
}

// Summary describes the finished attempt. It reports false until the
// attempt is Completed.
func (s *Session) Summary() (model.Summary, bool) {
	if s.State() != Completed {
		return model.Summary{}, false
	}
	a := s.attempt
	t := a.tracker
	series := stats.PerWordWPM(t.target, t.events)
	cpm := stats.CPM(t.events, t.start, t.end)
	correct, incorrect := stats.Counts(t.events)
	return model.Summary{
		AttemptID:      a.id,
		Lang:           a.lang,
		Mode:           a.mode,
		StartedAt:      t.start,
		EndedAt:        t.end,
		WPM:            stats.WPM(cpm),
		CPM:            cpm,
		Accuracy:       stats.Accuracy(t.events),
		Correct:        correct,
		Incorrect:      incorrect,
		WordWPM:        series.WPM,
		ErrorPositions: series.ErrorPositions,
		ErrorWords:     series.ErrorWords,
		FirstDelay:     series.FirstDelay,
		Source:         a.source,
	}, true
}

func (s *Session) endOrNow() time.Time {
	if end := s.attempt.tracker.end; !end.IsZero() {
		return end
	}
	return s.now()
}

func (s *Session) logCompleted() {
	sum, ok := s.Summary()
	if !ok {
		return
	}
	s.logger.Info("attempt completed",
		zap.Stringer("attempt_id", sum.AttemptID),
		zap.String("lang", sum.Lang.String()),
		zap.Stringer("mode", sum.Mode),
		zap.Int("wpm", sum.WPM),
		zap.Int("cpm", sum.CPM),
		zap.Float64("accuracy", sum.Accuracy),
		zap.Duration("duration", sum.Duration()),
	)
}
