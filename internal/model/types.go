// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/typist/internal/corpus"
)

// Config defines practice settings.
type Config struct {
	Lang         corpus.Language
	Mode         Mode
	Words        int
	PunctPct     float64
	NumbersPct   float64
	DataDir      string
	QuoteLengths []corpus.QuoteLength
}

// Keystroke records one accepted character input.
type Keystroke struct {
	Index    int
	Typed    rune
	Expected rune
	At       time.Time
	// Delay is measured from the previous keystroke, or from the attempt
	// start for the first one.
	Delay   time.Duration
	Correct bool
}

// Summary describes a completed attempt.
type Summary struct {
	AttemptID      uuid.UUID
	Lang           corpus.Language
	Mode           Mode
	StartedAt      time.Time
	EndedAt        time.Time
	WPM            int
	CPM            int
	Accuracy       float64
	Correct        int
	Incorrect      int
	WordWPM        []float64
	ErrorPositions []int
	ErrorWords     []int
	FirstDelay     time.Duration
	Source         string
}

// Duration returns the elapsed attempt time.
func (s Summary) Duration() time.Duration {
	if s.StartedAt.IsZero() || s.EndedAt.Before(s.StartedAt) {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// CharAggregate tallies keystrokes for one expected character.
type CharAggregate struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}
