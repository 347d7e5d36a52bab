package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/typist/internal/model"
)

// CharAggregates groups keystrokes by expected character. Spaces are skipped.
// The first keystroke has no latency since its delay is measured from the
// attempt start.
func CharAggregates(events []model.Keystroke) []model.CharAggregate {
	byChar := map[rune]*model.CharAggregate{}
	for i, ev := range events {
		if ev.Expected == ' ' {
			continue
		}
		agg, ok := byChar[ev.Expected]
		if !ok {
			agg = &model.CharAggregate{Char: string(ev.Expected)}
			byChar[ev.Expected] = agg
		}
		if !ev.Correct {
			agg.Incorrect++
			continue
		}
		agg.Correct++
		if i > 0 {
			agg.LatencySumMs += ev.Delay.Milliseconds()
			agg.LatencyCount++
		}
	}
	out := make([]model.CharAggregate, 0, len(byChar))
	for _, agg := range byChar {
		out = append(out, *agg)
	}
	return out
}

// MissedChars returns up to n characters with at least one miss, most missed
// first.
func MissedChars(aggs []model.CharAggregate, n int) []model.CharAggregate {
	if n <= 0 {
		return nil
	}
	missed := make([]model.CharAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Incorrect > 0 {
			missed = append(missed, agg)
		}
	}
	sort.Slice(missed, func(i, j int) bool {
		if missed[i].Incorrect == missed[j].Incorrect {
			return missed[i].Char < missed[j].Char
		}
		return missed[i].Incorrect > missed[j].Incorrect
	})
	if n < len(missed) {
		missed = missed[:n]
	}
	return missed
}

// RenderMissedChars prints a table of the most missed characters.
func RenderMissedChars(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No missed characters.")
		return err
	}
	headers := []string{"Char", "Missed", "Accuracy", "Avg Latency (ms)"}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		total := agg.Correct + agg.Incorrect
		acc := 0.0
		if total > 0 {
			acc = float64(agg.Correct) / float64(total)
		}
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		rows = append(rows, []string{
			agg.Char,
			fmt.Sprintf("%d", agg.Incorrect),
			fmt.Sprintf("%.2f%%", acc*100),
			fmt.Sprintf("%.1f", lat),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
