// Package stats derives typing metrics from keystrokes and renders reports.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/typist/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the headline numbers of a completed attempt.
func RenderSummary(w io.Writer, s model.Summary) error {
	rows := [][]string{
		{"WPM", fmt.Sprintf("%d", s.WPM)},
		{"CPM", fmt.Sprintf("%d", s.CPM)},
		{"Accuracy", fmt.Sprintf("%.2f%%", s.Accuracy)},
		{"Keystrokes", fmt.Sprintf("%d correct / %d incorrect", s.Correct, s.Incorrect)},
		{"Errors", fmt.Sprintf("%d positions", len(s.ErrorPositions))},
		{"Time", formatDuration(s.Duration())},
		{"Mode", modeLabel(s)},
	}
	for _, line := range formatTable(nil, rows, map[int]bool{}) {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func modeLabel(s model.Summary) string {
	if s.Mode == nil {
		return string(s.Lang)
	}
	return fmt.Sprintf("%s (%s)", s.Mode, s.Lang)
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func minMax(values []float64) (float64, float64) {
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}
