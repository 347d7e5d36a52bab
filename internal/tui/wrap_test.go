package tui

import (
	"strings"
	"testing"
)

func TestBuildStyledRunesCursor(t *testing.T) {
	target := []rune("ab")
	input := []rune("a")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, nil, cursorIndex)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != cursorStyle.Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	target := []rune("ab")
	input := []rune("ax")
	cursorIndex := -1

	runes := buildStyledRunes(target, input, map[int]struct{}{1: {}}, cursorIndex)
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style for second rune")
	}
}

func TestBuildStyledRunesCorrectedPosition(t *testing.T) {
	target := []rune("ab")
	input := []rune("ab")

	runes := buildStyledRunes(target, input, map[int]struct{}{0: {}}, -1)
	if runes[0].s != correctedStyle.Render("a") {
		t.Fatalf("expected corrected style for previously mistyped rune")
	}
	if runes[1].s != correctStyle.Render("b") {
		t.Fatalf("expected correct style for clean rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	target := []rune("one two")
	input := []rune("o")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, nil, cursorIndex)
	if runes[1].s != currentWordStyle.Copy().Underline(true).Render("n") {
		t.Fatalf("expected underlined current word style at cursor")
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	target := []rune("a b")
	input := []rune("ax")

	runes := buildStyledRunes(target, input, map[int]struct{}{1: {}}, len(input))
	if runes[1].s != incorrectStyle.Render(string(wrongSpaceRune)) {
		t.Fatalf("expected red dot for wrong space")
	}
	if !runes[1].isSpace || runes[1].index != 1 {
		t.Fatalf("expected space marker to keep its position")
	}
}

func plainRunes(text string) []styledRune {
	out := make([]styledRune, 0, len(text))
	for i, r := range []rune(text) {
		out = append(out, styledRune{s: string(r), width: 1, isSpace: r == ' ', index: i})
	}
	return out
}

func TestWrapLinesBreaksAtSpaces(t *testing.T) {
	lines := wrapLines(plainRunes("aa bb cc dd"), 5)
	got := make([]string, len(lines))
	for i, line := range lines {
		got[i] = renderStyledRunes(line)
	}
	if strings.Join(got, "|") != "aa bb|cc dd" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapLinesSplitsLongWords(t *testing.T) {
	lines := wrapLines(plainRunes("abcdefg"), 3)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if renderStyledRunes(lines[2]) != "g" {
		t.Fatalf("unexpected last line: %q", renderStyledRunes(lines[2]))
	}
}

func TestRenderWindowFollowsCursor(t *testing.T) {
	lines := wrapLines(plainRunes("aa bb cc dd ee"), 2)
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}

	if got := renderWindow(lines, 0, 3); got != "aa\nbb\ncc" {
		t.Fatalf("unexpected window at start: %q", got)
	}
	if got := renderWindow(lines, 9, 3); got != "cc\ndd\nee" {
		t.Fatalf("unexpected window on fourth line: %q", got)
	}
	if got := renderWindow(lines, 6, 3); got != "bb\ncc\ndd" {
		t.Fatalf("unexpected window on third line: %q", got)
	}
	if got := renderWindow(lines, -1, 0); strings.Count(got, "\n") != 4 {
		t.Fatalf("expected all lines without a limit: %q", got)
	}
}
