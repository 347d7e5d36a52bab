package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultChartHeight  = 8
	minChartWidth       = 10
	axisSeparator       = " │ "
	errorMarker         = 'x'
	colorBars           = "\x1b[36m"
	colorErrors         = "\x1b[31m"
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var barLevels = []rune("▁▂▃▄▅▆▇█")

// RenderWordCurve draws the per-word WPM of an attempt as a column chart with
// one column per word. When there are more words than columns, neighbouring
// words are averaged. A marker row flags columns that contain an error.
// A width or height of zero picks a default.
func RenderWordCurve(w io.Writer, series WordSeries, width, height int, forceColor bool) error {
	if len(series.WPM) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultChartHeight
	}
	maxVal := 0.0
	for _, v := range series.WPM {
		if v > maxVal {
			maxVal = v
		}
	}
	topLabel := fmt.Sprintf("%.0f", maxVal)
	labelWidth := runewidth.StringWidth(topLabel)
	if width <= 0 {
		width = ChartWidthFor(terminalWidth(), labelWidth)
	}

	values := downsample(series.WPM, width)
	errCols := make(map[int]bool, len(series.ErrorWords))
	for _, word := range series.ErrorWords {
		if word < 0 || word >= len(series.WPM) {
			continue
		}
		errCols[word*len(values)/len(series.WPM)] = true
	}

	useColor := shouldUseColor(w, forceColor)
	levels := make([]int, len(values))
	if maxVal > 0 {
		for i, v := range values {
			levels[i] = int(math.Round(v / maxVal * float64(height*len(barLevels))))
		}
	}

	if _, err := fmt.Fprintln(w, "WPM per word"); err != nil {
		return err
	}
	for row := height - 1; row >= 0; row-- {
		label := ""
		switch row {
		case height - 1:
			label = topLabel
		case 0:
			label = "0"
		}
		var b strings.Builder
		for _, level := range levels {
			b.WriteRune(barCell(level - row*len(barLevels)))
		}
		bars := strings.TrimRight(b.String(), " ")
		if useColor && bars != "" {
			bars = colorBars + bars + colorReset
		}
		line := padCell(label, labelWidth, true) + axisSeparator + bars
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}

	if len(errCols) == 0 {
		return nil
	}
	markers := make([]rune, len(values))
	for i := range markers {
		markers[i] = ' '
		if errCols[i] {
			markers[i] = errorMarker
		}
	}
	marks := strings.TrimRight(string(markers), " ")
	if useColor {
		marks = colorErrors + marks + colorReset
	}
	indent := strings.Repeat(" ", labelWidth+runewidth.StringWidth(axisSeparator))
	_, err := fmt.Fprintln(w, indent+marks)
	return err
}

// ChartWidthFor computes how many columns fit next to an axis label of the
// given width within the total available width.
func ChartWidthFor(totalWidth, labelWidth int) int {
	if totalWidth <= 0 {
		return minChartWidth
	}
	width := totalWidth - labelWidth - runewidth.StringWidth(axisSeparator)
	if width < minChartWidth {
		width = minChartWidth
	}
	return width
}

func barCell(fill int) rune {
	if fill <= 0 {
		return ' '
	}
	if fill >= len(barLevels) {
		return barLevels[len(barLevels)-1]
	}
	return barLevels[fill-1]
}

func downsample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
