package model

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/typist/internal/corpus"
)

// Upper bounds accepted by ParseMode.
const (
	MaxSeconds = 3600
	MaxWords   = 10000
)

// Preset values listed in the CLI help. Custom values are accepted too.
var (
	TimePresets  = []int{15, 30, 60, 120}
	WordsPresets = []int{10, 25, 50, 100}
)

// Mode selects how target text is generated. The set of modes is closed:
// TimeMode, WordsMode and QuoteMode.
type Mode interface {
	fmt.Stringer
	isMode()
}

// TimeMode runs an attempt for a fixed number of seconds.
type TimeMode struct {
	Seconds int
}

// WordsMode runs an attempt over a fixed number of words.
type WordsMode struct {
	Count       int
	Punctuation bool
	Numbers     bool
}

// QuoteMode types a quote from one of the allowed length buckets. An empty
// set allows every bucket.
type QuoteMode struct {
	Lengths []corpus.QuoteLength
}

func (TimeMode) isMode()  {}
func (WordsMode) isMode() {}
func (QuoteMode) isMode() {}

func (m TimeMode) String() string {
	return fmt.Sprintf("time %ds", m.Seconds)
}

func (m WordsMode) String() string {
	parts := []string{fmt.Sprintf("words %d", m.Count)}
	if m.Punctuation {
		parts = append(parts, "punctuation")
	}
	if m.Numbers {
		parts = append(parts, "numbers")
	}
	return strings.Join(parts, " · ")
}

func (m QuoteMode) String() string {
	if len(m.Lengths) == 0 || len(m.Lengths) == len(corpus.AllQuoteLengths) {
		return "quote all"
	}
	names := make([]string, len(m.Lengths))
	for i, l := range m.Lengths {
		names[i] = l.String()
	}
	return "quote " + strings.Join(names, ",")
}

// DefaultMode is used when no mode is configured.
func DefaultMode() Mode {
	return TimeMode{Seconds: 60}
}

// ParseMode builds a Mode from its CLI name and parameters.
func ParseMode(name string, seconds, words int, punct, numbers bool, lengths []corpus.QuoteLength) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "time":
		if seconds <= 0 {
			return nil, fmt.Errorf("--time must be > 0")
		}
		if seconds > MaxSeconds {
			return nil, fmt.Errorf("--time must be <= %d", MaxSeconds)
		}
		return TimeMode{Seconds: seconds}, nil
	case "words":
		if words <= 0 {
			return nil, fmt.Errorf("--words must be > 0")
		}
		if words > MaxWords {
			return nil, fmt.Errorf("--words must be <= %d", MaxWords)
		}
		return WordsMode{Count: words, Punctuation: punct, Numbers: numbers}, nil
	case "quote":
		return QuoteMode{Lengths: append([]corpus.QuoteLength(nil), lengths...)}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q (expected time, words or quote)", name)
	}
}

// NextMode cycles time -> words -> quote -> time. words and lengths seed the
// mode being switched to.
func NextMode(m Mode, words int, lengths []corpus.QuoteLength) Mode {
	switch m.(type) {
	case TimeMode:
		return WordsMode{Count: words}
	case WordsMode:
		return QuoteMode{Lengths: append([]corpus.QuoteLength(nil), lengths...)}
	default:
		return DefaultMode()
	}
}
