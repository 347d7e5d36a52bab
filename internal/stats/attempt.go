package stats

import (
	"math"
	"sort"
	"time"

	"github.com/verte-zerg/typist/internal/model"
)

// CharsPerWord is the fixed word length used to convert CPM to WPM.
const CharsPerWord = 5

// CPM counts positions typed correctly at least once, divided by the elapsed
// minutes between start and end, rounded. It is 0 before the attempt started
// or when no time has elapsed.
func CPM(events []model.Keystroke, start, end time.Time) int {
	if start.IsZero() {
		return 0
	}
	minutes := end.Sub(start).Minutes()
	if minutes <= 0 {
		return 0
	}
	correct := make(map[int]struct{}, len(events))
	for _, ev := range events {
		if ev.Correct {
			correct[ev.Index] = struct{}{}
		}
	}
	return int(math.Round(float64(len(correct)) / minutes))
}

// WPM converts characters per minute to words per minute (integer division).
func WPM(cpm int) int {
	return cpm / CharsPerWord
}

// Accuracy is the percentage of correct keystrokes over all keystrokes,
// repeats at the same position included. It is 0 when nothing was typed.
func Accuracy(events []model.Keystroke) float64 {
	correct, incorrect := Counts(events)
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// Counts returns the number of correct and incorrect keystrokes.
func Counts(events []model.Keystroke) (correct, incorrect int) {
	for _, ev := range events {
		if ev.Correct {
			correct++
		} else {
			incorrect++
		}
	}
	return correct, incorrect
}

// WordSeries is the per-word speed breakdown of an attempt.
type WordSeries struct {
	// WPM holds one average per word of the target text, in order.
	WPM []float64
	// ErrorPositions lists, ascending, every position with an incorrect keystroke.
	ErrorPositions []int
	// ErrorWords lists, ascending, the words containing an error position.
	ErrorWords []int
	// FirstDelay is the delay of the first keystroke, which is measured from
	// the attempt start and therefore kept out of WPM.
	FirstDelay time.Duration
}

// PerWordWPM splits events into words at the spaces of target. Each keystroke
// after the first contributes round(60000 / delay_ms / CharsPerWord) to the
// word containing its position; keystrokes on spaces belong to no word. Delays
// under one millisecond count as one millisecond. Words without keystrokes
// average to 0.
func PerWordWPM(target []rune, events []model.Keystroke) WordSeries {
	wordOf := make([]int, len(target))
	words := 0
	inWord := false
	for i, r := range target {
		if r == ' ' {
			wordOf[i] = -1
			inWord = false
			continue
		}
		if !inWord {
			words++
			inWord = true
		}
		wordOf[i] = words - 1
	}

	series := WordSeries{WPM: make([]float64, words)}
	sums := make([]float64, words)
	counts := make([]int, words)
	wrong := map[int]struct{}{}
	for i, ev := range events {
		if !ev.Correct {
			wrong[ev.Index] = struct{}{}
		}
		if i == 0 {
			series.FirstDelay = ev.Delay
			continue
		}
		if ev.Index < 0 || ev.Index >= len(target) || wordOf[ev.Index] < 0 {
			continue
		}
		ms := ev.Delay.Milliseconds()
		if ms < 1 {
			ms = 1
		}
		w := wordOf[ev.Index]
		sums[w] += math.Round(60000 / float64(ms) / CharsPerWord)
		counts[w]++
	}
	for w := range series.WPM {
		if counts[w] > 0 {
			series.WPM[w] = sums[w] / float64(counts[w])
		}
	}
	series.ErrorPositions = make([]int, 0, len(wrong))
	for pos := range wrong {
		series.ErrorPositions = append(series.ErrorPositions, pos)
	}
	sort.Ints(series.ErrorPositions)
	series.ErrorWords = []int{}
	for _, pos := range series.ErrorPositions {
		if pos < 0 || pos >= len(target) || wordOf[pos] < 0 {
			continue
		}
		w := wordOf[pos]
		if n := len(series.ErrorWords); n > 0 && series.ErrorWords[n-1] == w {
			continue
		}
		series.ErrorWords = append(series.ErrorWords, w)
	}
	return series
}
