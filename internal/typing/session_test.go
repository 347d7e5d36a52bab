package typing

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/verte-zerg/typist/internal/corpus"
	"github.com/verte-zerg/typist/internal/generator"
	"github.com/verte-zerg/typist/internal/model"
)

type fakeCorpus struct {
	words  []string
	quotes []string
}

type fakeLoader struct {
	corpora map[corpus.Language]fakeCorpus
	loads   int
}

func (f *fakeLoader) Load(lang corpus.Language) (corpus.WordCorpus, *corpus.QuoteCorpus, error) {
	f.loads++
	c, ok := f.corpora[lang]
	if !ok {
		return corpus.WordCorpus{}, nil, fmt.Errorf("%w: %q", corpus.ErrCorpusNotFound, lang)
	}
	words := corpus.WordCorpus{Language: lang, Words: c.words}
	if c.quotes == nil {
		return words, nil, nil
	}
	quotes := &corpus.QuoteCorpus{Language: lang}
	for _, text := range c.quotes {
		quotes.Quotes = append(quotes.Quotes, corpus.NewQuote(text, 0))
	}
	return words, quotes, nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestSession(t *testing.T, loader *fakeLoader) (*Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewSession(loader, generator.NewWithSource(rand.NewSource(7)),
		WithClock(clock.Now),
		WithLogger(zap.NewNop()),
	)
	return s, clock
}

func englishLoader() *fakeLoader {
	return &fakeLoader{corpora: map[corpus.Language]fakeCorpus{
		"english": {words: []string{"red", "green", "blue"}, quotes: []string{"ab"}},
		"german":  {words: []string{"rot", "grün"}},
		"empty":   {},
	}}
}

func quoteSession(t *testing.T, text string) (*Session, *fakeClock) {
	t.Helper()
	loader := &fakeLoader{corpora: map[corpus.Language]fakeCorpus{
		"english": {words: []string{"w"}, quotes: []string{text}},
	}}
	s, clock := newTestSession(t, loader)
	s.SetMode(model.QuoteMode{})
	require.NoError(t, s.NewTest())
	require.Equal(t, text, string(s.Target()))
	return s, clock
}

func typeString(s *Session, clock *fakeClock, text string, step time.Duration) {
	for _, r := range text {
		s.ApplyKeystroke(r)
		clock.Advance(step)
	}
}

func TestSessionStartsIdle(t *testing.T) {
	s, _ := newTestSession(t, englishLoader())

	assert.Equal(t, Idle, s.State())
	assert.False(t, s.ApplyKeystroke('a'))
	assert.False(t, s.ApplyBackspace())
	assert.False(t, s.Expire())
	assert.Equal(t, corpus.DefaultLanguage, s.Language())
	assert.Equal(t, model.DefaultMode(), s.Mode())
	assert.Zero(t, s.Accuracy())
	assert.Zero(t, s.CPM())
}

func TestNewTestTwiceClearsHistory(t *testing.T) {
	s, clock := newTestSession(t, englishLoader())
	s.SetMode(model.WordsMode{Count: 6})

	for i := 0; i < 2; i++ {
		require.NoError(t, s.NewTest())
		assert.Equal(t, Ready, s.State())
		assert.Empty(t, s.Events())
		assert.Empty(t, s.WrongPositions())
		assert.Zero(t, s.TypedLen())

		words := strings.Split(string(s.Target()), " ")
		require.Len(t, words, 6)
		for _, w := range words {
			assert.Contains(t, []string{"red", "green", "blue"}, w)
		}
		assert.Equal(t, model.WordsMode{Count: 6}, s.Mode())

		typeString(s, clock, "zz", time.Second)
		assert.Equal(t, InProgress, s.State())
		assert.NotEmpty(t, s.WrongPositions())
	}
}

func TestNewTestAssignsFreshAttemptID(t *testing.T) {
	s, _ := newTestSession(t, englishLoader())
	require.NoError(t, s.NewTest())
	first := s.AttemptID()
	require.NoError(t, s.NewTest())
	assert.NotEqual(t, first, s.AttemptID())
}

func TestTypingTargetCorrectly(t *testing.T) {
	s, clock := quoteSession(t, "ab")

	typeString(s, clock, "ab", 100*time.Millisecond)

	assert.Equal(t, Completed, s.State())
	assert.Equal(t, 100.0, s.Accuracy())
	assert.Empty(t, s.WrongPositions())
	assert.Equal(t, Correct, s.Correctness(0))
	assert.Equal(t, Correct, s.Correctness(1))
}

func TestBackspaceKeepsWrongPositions(t *testing.T) {
	s, clock := quoteSession(t, "ab")

	require.True(t, s.ApplyKeystroke('x'))
	assert.Equal(t, []int{0}, s.WrongPositions())
	assert.Equal(t, Incorrect, s.Correctness(0))

	require.True(t, s.ApplyBackspace())
	assert.Zero(t, s.TypedLen())
	assert.Equal(t, InProgress, s.State())
	assert.False(t, s.ApplyBackspace())

	clock.Advance(time.Second)
	require.True(t, s.ApplyKeystroke('a'))
	assert.Equal(t, []int{0}, s.WrongPositions())
	assert.Equal(t, Correct, s.Correctness(0))
	assert.Equal(t, Pending, s.Correctness(1))

	events := s.Events()
	require.Len(t, events, 2)
	assert.False(t, events[0].Correct)
	assert.True(t, events[1].Correct)
	assert.Equal(t, 0, events[1].Index)
	assert.Equal(t, time.Second, events[1].Delay)
}

func TestBackspaceToEmptyStaysInProgress(t *testing.T) {
	s, clock := quoteSession(t, "ab")

	s.ApplyKeystroke('x')
	clock.Advance(time.Second)
	require.True(t, s.ApplyBackspace())

	assert.Equal(t, 0, s.TypedLen())
	assert.Equal(t, InProgress, s.State())
	assert.Len(t, s.Events(), 1)
	assert.Equal(t, []int{0}, s.WrongPositions())
}

func TestCPMAndWPMOverFiveSeconds(t *testing.T) {
	s, clock := quoteSession(t, "abcdefghij")

	typeString(s, clock, "abcdefghi", 500*time.Millisecond)
	clock.Advance(500 * time.Millisecond)
	require.True(t, s.ApplyKeystroke('j'))

	require.Equal(t, Completed, s.State())
	assert.Equal(t, 120, s.CPM())
	assert.Equal(t, 24, s.WPM())
}

func TestAccuracyCountsEveryKeystroke(t *testing.T) {
	s, clock := quoteSession(t, "abcdefghij")

	for _, r := range "abcde" {
		s.ApplyKeystroke('x')
		s.ApplyBackspace()
		s.ApplyKeystroke(r)
		clock.Advance(100 * time.Millisecond)
	}
	typeString(s, clock, "fghij", 100*time.Millisecond)

	require.Equal(t, Completed, s.State())
	assert.Len(t, s.Events(), 15)
	assert.Equal(t, "66.67", fmt.Sprintf("%.2f", s.Accuracy()))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, s.WrongPositions())
}

func TestCompletedFreezesAttempt(t *testing.T) {
	s, clock := quoteSession(t, "ab")
	typeString(s, clock, "ab", time.Second)
	require.Equal(t, Completed, s.State())

	cpm := s.CPM()
	events := s.Events()
	clock.Advance(time.Minute)

	assert.False(t, s.ApplyKeystroke('c'))
	assert.False(t, s.ApplyBackspace())
	assert.Equal(t, events, s.Events())
	assert.Equal(t, cpm, s.CPM())
	assert.Equal(t, 2, s.TypedLen())

	require.NoError(t, s.NewTest())
	assert.Equal(t, Ready, s.State())
}

func TestLiveStatsUseNow(t *testing.T) {
	s, clock := quoteSession(t, "abcdef")

	s.ApplyKeystroke('a')
	clock.Advance(30 * time.Second)
	s.ApplyKeystroke('b')
	assert.Equal(t, 4, s.CPM())

	clock.Advance(30 * time.Second)
	assert.Equal(t, 2, s.CPM())
}

func TestSummaryOnlyWhenCompleted(t *testing.T) {
	s, clock := quoteSession(t, "ab cd")

	_, ok := s.Summary()
	assert.False(t, ok)

	clock.Advance(2 * time.Second)
	s.ApplyKeystroke('a')
	clock.Advance(200 * time.Millisecond)
	s.ApplyKeystroke('b')
	clock.Advance(200 * time.Millisecond)
	s.ApplyKeystroke(' ')
	clock.Advance(100 * time.Millisecond)
	s.ApplyKeystroke('x')
	clock.Advance(100 * time.Millisecond)
	s.ApplyKeystroke('d')

	sum, ok := s.Summary()
	require.True(t, ok)
	assert.Equal(t, s.AttemptID(), sum.AttemptID)
	assert.Equal(t, corpus.Language("english"), sum.Lang)
	assert.Equal(t, 600*time.Millisecond, sum.Duration())
	assert.Equal(t, []float64{60, 120}, sum.WordWPM)
	assert.Equal(t, []int{3}, sum.ErrorPositions)
	assert.Equal(t, []int{1}, sum.ErrorWords)
	assert.Equal(t, 2*time.Second, sum.FirstDelay)
	assert.Equal(t, 4, sum.Correct)
	assert.Equal(t, 1, sum.Incorrect)
	assert.Equal(t, 80.0, sum.Accuracy)
	assert.Equal(t, 400, sum.CPM)
	assert.Equal(t, 80, sum.WPM)
}

func TestFailedNewTestLeavesStateUntouched(t *testing.T) {
	loader := englishLoader()
	s, clock := newTestSession(t, loader)
	s.SetMode(model.WordsMode{Count: 3})
	require.NoError(t, s.NewTest())
	clock.Advance(time.Second)
	s.ApplyKeystroke('q')

	target := s.Target()
	events := s.Events()
	id := s.AttemptID()

	assertUnchanged := func() {
		t.Helper()
		assert.Equal(t, target, s.Target())
		assert.Equal(t, events, s.Events())
		assert.Equal(t, id, s.AttemptID())
		assert.Equal(t, []int{0}, s.WrongPositions())
		assert.Equal(t, InProgress, s.State())
		assert.Equal(t, corpus.Language("english"), s.Language())
	}

	s.SetLanguage("klingon")
	err := s.NewTest()
	require.ErrorIs(t, err, corpus.ErrCorpusNotFound)
	assertUnchanged()

	s.SetLanguage("empty")
	err = s.NewTest()
	require.ErrorIs(t, err, ErrNoWordsForLanguage)
	assert.Contains(t, err.Error(), "empty")
	assertUnchanged()

	s.SetLanguage("german")
	s.SetMode(model.QuoteMode{})
	err = s.NewTest()
	require.ErrorIs(t, err, generator.ErrNoQuotesForLanguage)
	assertUnchanged()

	s.SetLanguage("english")
	s.SetMode(model.QuoteMode{Lengths: []corpus.QuoteLength{corpus.Long}})
	err = s.NewTest()
	require.ErrorIs(t, err, generator.ErrNoQuoteWithLengths)
	var lengthsErr *generator.NoQuoteWithLengthsError
	require.ErrorAs(t, err, &lengthsErr)
	assert.Equal(t, []corpus.QuoteLength{corpus.Long}, lengthsErr.Lengths)
	assertUnchanged()
}

func TestCorpusReloadedOnlyOnLanguageChange(t *testing.T) {
	loader := englishLoader()
	s, _ := newTestSession(t, loader)
	s.SetMode(model.WordsMode{Count: 2})

	require.NoError(t, s.NewTest())
	require.NoError(t, s.NewTest())
	assert.Equal(t, 1, loader.loads)

	s.SetLanguage("german")
	assert.Equal(t, corpus.Language("english"), s.Language())
	require.NoError(t, s.NewTest())
	assert.Equal(t, 2, loader.loads)
	assert.Equal(t, corpus.Language("german"), s.Language())
	for _, w := range strings.Split(string(s.Target()), " ") {
		assert.Contains(t, []string{"rot", "grün"}, w)
	}
}

func TestWordsModeDecoration(t *testing.T) {
	s, _ := newTestSession(t, englishLoader())
	s.SetMode(model.WordsMode{Count: 20, Punctuation: true, Numbers: true})
	s.SetDecoration(100, 0)
	require.NoError(t, s.NewTest())

	words := strings.Split(string(s.Target()), " ")
	assert.GreaterOrEqual(t, len(words), 20)
	assert.NotEqual(t, strings.ToLower(string(s.Target())), string(s.Target()))
}

func TestTimeModeTargetLength(t *testing.T) {
	cases := []struct {
		seconds int
		want    int
	}{
		{seconds: 10, want: 50},
		{seconds: 60, want: 180},
		{seconds: 1 << 40, want: maxTimeWords},
	}
	for _, tc := range cases {
		s, _ := newTestSession(t, englishLoader())
		s.SetMode(model.TimeMode{Seconds: tc.seconds})
		require.NoError(t, s.NewTest())
		assert.Len(t, strings.Split(string(s.Target()), " "), tc.want)
	}
}

func TestTimeModeKeystrokeAfterDeadline(t *testing.T) {
	s, clock := newTestSession(t, englishLoader())
	s.SetMode(model.TimeMode{Seconds: 10})
	require.NoError(t, s.NewTest())

	left, ok := s.Remaining()
	require.True(t, ok)
	assert.Equal(t, 10*time.Second, left)

	start := clock.Now()
	target := s.Target()
	require.True(t, s.ApplyKeystroke(target[0]))
	clock.Advance(3 * time.Second)
	left, _ = s.Remaining()
	assert.Equal(t, 7*time.Second, left)

	clock.Advance(8 * time.Second)
	assert.False(t, s.ApplyKeystroke(target[1]))
	assert.Equal(t, Completed, s.State())
	assert.Len(t, s.Events(), 1)

	sum, ok := s.Summary()
	require.True(t, ok)
	assert.Equal(t, start.Add(10*time.Second), sum.EndedAt)
	left, _ = s.Remaining()
	assert.Zero(t, left)
}

func TestTimeModeExpire(t *testing.T) {
	s, clock := newTestSession(t, englishLoader())
	s.SetMode(model.TimeMode{Seconds: 15})
	require.NoError(t, s.NewTest())

	clock.Advance(time.Minute)
	assert.False(t, s.Expire(), "clock starts at the first keystroke")

	s.ApplyKeystroke(s.Target()[0])
	clock.Advance(14 * time.Second)
	assert.False(t, s.Expire())
	assert.Equal(t, InProgress, s.State())

	clock.Advance(time.Second)
	assert.True(t, s.Expire())
	assert.Equal(t, Completed, s.State())
	assert.False(t, s.Expire())
}

func TestRemainingOutsideTimeMode(t *testing.T) {
	s, _ := quoteSession(t, "ab")
	_, ok := s.Remaining()
	assert.False(t, ok)
	assert.False(t, s.Expire())
}

func TestSessionWithCorpusStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "languages"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "languages", "english.json"),
		[]byte(`{"name":"english","words":["alpha","beta"]}`),
		0o644,
	))

	s := NewSession(corpus.NewStore(dir, nil), generator.NewWithSource(rand.NewSource(1)))
	s.SetMode(model.WordsMode{Count: 4})
	require.NoError(t, s.NewTest())
	assert.Len(t, strings.Split(string(s.Target()), " "), 4)

	s.SetMode(model.QuoteMode{})
	require.ErrorIs(t, s.NewTest(), generator.ErrNoQuotesForLanguage)
}
