// Package generator builds typing text sequences.
package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/typist/internal/corpus"
	"github.com/verte-zerg/typist/internal/punctuation"
)

var (
	// ErrNoQuotesForLanguage is returned when a language has no quote corpus.
	ErrNoQuotesForLanguage = errors.New("no quotes for language")
	// ErrNoQuoteWithLengths is matched by NoQuoteWithLengthsError.
	ErrNoQuoteWithLengths = errors.New("no quote with lengths")
)

// NoQuoteWithLengthsError reports that no quote falls into the requested buckets.
type NoQuoteWithLengthsError struct {
	Lengths []corpus.QuoteLength
}

func (e *NoQuoteWithLengthsError) Error() string {
	names := make([]string, len(e.Lengths))
	for i, l := range e.Lengths {
		names[i] = l.String()
	}
	return fmt.Sprintf("no quote with lengths [%s]", strings.Join(names, ", "))
}

// Is reports whether target is ErrNoQuoteWithLengths.
func (e *NoQuoteWithLengthsError) Is(target error) bool {
	return target == ErrNoQuoteWithLengths
}

// Options controls word augmentation.
type Options struct {
	Punctuation bool
	Numbers     bool
	// PunctPct is the percentage (0-100) of words decorated when Punctuation is set.
	PunctPct float64
	// NumbersPct is the probability (0-1) that a word is replaced by a number.
	NumbersPct float64
}

// Generator produces randomized typing text.
type Generator struct {
	rnd   *rand.Rand
	punct *punctuation.Engine
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src rand.Source) *Generator {
	rnd := rand.New(src)
	return &Generator{rnd: rnd, punct: punctuation.NewEngine(rnd)}
}

// RandomWords draws count words uniformly with replacement, then applies
// number and punctuation augmentation. It reports false when the corpus is
// empty or count is not positive.
func (g *Generator) RandomWords(words corpus.WordCorpus, count int, opts Options) ([]string, bool) {
	if len(words.Words) == 0 || count <= 0 {
		return nil, false
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		word := words.Words[g.rnd.Intn(len(words.Words))]
		if opts.Numbers {
			word = g.applyNumber(word, opts.NumbersPct)
		}
		result = append(result, word)
	}
	if opts.Punctuation {
		script := punctuation.ScriptFor(words.Language)
		result = g.punct.Apply(result, script, punctuation.AllKinds, opts.PunctPct)
	}
	return result, true
}

// RandomQuote picks a quote uniformly among those in the allowed buckets. An
// empty lengths set allows every bucket.
func (g *Generator) RandomQuote(quotes *corpus.QuoteCorpus, lang corpus.Language, lengths []corpus.QuoteLength) (corpus.Quote, error) {
	if quotes == nil {
		return corpus.Quote{}, fmt.Errorf("%w: %s", ErrNoQuotesForLanguage, lang)
	}
	allowed := make(map[corpus.QuoteLength]struct{}, len(lengths))
	for _, l := range lengths {
		allowed[l] = struct{}{}
	}
	var candidates []int
	for i, q := range quotes.Quotes {
		if _, ok := allowed[q.Bucket]; ok || len(allowed) == 0 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return corpus.Quote{}, &NoQuoteWithLengthsError{Lengths: append([]corpus.QuoteLength(nil), lengths...)}
	}
	return quotes.Quotes[candidates[g.rnd.Intn(len(candidates))]], nil
}

func (g *Generator) applyNumber(word string, numbersPct float64) string {
	if numbersPct <= 0 || math.IsNaN(numbersPct) {
		return word
	}
	if g.rnd.Float64() > numbersPct {
		return word
	}
	digits := 1 + g.rnd.Intn(4)
	if digits == 1 {
		return strconv.Itoa(g.rnd.Intn(10))
	}
	lo := 1
	for i := 1; i < digits; i++ {
		lo *= 10
	}
	return strconv.Itoa(lo + g.rnd.Intn(9*lo))
}
