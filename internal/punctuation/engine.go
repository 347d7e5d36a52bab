package punctuation

import (
	"math"
	"math/rand"
	"slices"
	"unicode"
	"unicode/utf8"
)

// Engine decorates word sequences.
type Engine struct {
	rnd *rand.Rand
}

// NewEngine returns an Engine drawing from rnd.
func NewEngine(rnd *rand.Rand) *Engine {
	return &Engine{rnd: rnd}
}

// TargetCount returns how many of n words are decorated at percentage.
func TargetCount(n int, percentage float64) int {
	if math.IsNaN(percentage) {
		return 0
	}
	pct := math.Round(percentage)
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return int(math.Round(float64(n) * pct / 100))
}

// Apply decorates TargetCount(len(words), percentage) words using kinds in
// priority order. Each pass over the kinds splits the remaining target evenly
// between them; kinds that cannot decorate anything leave their share to the
// following kinds and passes. A word is decorated at most once. The result has
// the same length and order as words.
func (e *Engine) Apply(words []string, script Script, kinds []Kind, percentage float64) []string {
	out := slices.Clone(words)
	remaining := TargetCount(len(words), percentage)
	kinds = normalizeKinds(kinds)
	if remaining == 0 || len(kinds) == 0 {
		return out
	}

	decorated := make([]bool, len(words))
	for remaining > 0 {
		progress := false
		for i, kind := range kinds {
			if remaining == 0 {
				break
			}
			quota := (remaining + len(kinds) - i - 1) / (len(kinds) - i)
			candidates := e.eligible(kind, script, words, decorated)
			e.rnd.Shuffle(len(candidates), func(a, b int) {
				candidates[a], candidates[b] = candidates[b], candidates[a]
			})
			if len(candidates) > quota {
				candidates = candidates[:quota]
			}
			for _, idx := range candidates {
				out[idx] = e.decorate(kind, script, words, idx)
				decorated[idx] = true
				remaining--
				progress = true
			}
		}
		if !progress {
			break
		}
	}
	return out
}

func normalizeKinds(kinds []Kind) []Kind {
	out := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		if k < AfterNumber || k > OtherKinds || slices.Contains(out, k) {
			continue
		}
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func (e *Engine) eligible(kind Kind, script Script, words []string, decorated []bool) []int {
	if kind == Upcase && !casedScript(script) {
		return nil
	}
	if kind != Upcase && len(Marks(kind, script)) == 0 {
		return nil
	}
	var out []int
	for i, word := range words {
		if decorated[i] || word == "" {
			continue
		}
		ok := true
		switch kind {
		case AfterNumber:
			ok = isNumber(word)
		case BetweenWordsWithSpace:
			ok = i < len(words)-1
		case BetweenWordsWithoutSpace:
			ok = len(words) > 1
		case Upcase:
			r, _ := utf8.DecodeRuneInString(word)
			ok = unicode.ToUpper(r) != r
		}
		if ok {
			out = append(out, i)
		}
	}
	return out
}

func (e *Engine) decorate(kind Kind, script Script, words []string, idx int) string {
	word := words[idx]
	if kind == Upcase {
		r, size := utf8.DecodeRuneInString(word)
		return string(unicode.ToUpper(r)) + word[size:]
	}
	marks := Marks(kind, script)
	mark := marks[e.rnd.Intn(len(marks))]
	switch kind {
	case BetweenWordsWithSpace:
		return word + " " + mark
	case AroundWord:
		open, closing := splitPair(mark)
		return open + word + closing
	case BetweenWordsWithoutSpace:
		partner := e.rnd.Intn(len(words) - 1)
		if partner >= idx {
			partner++
		}
		return word + mark + words[partner]
	case OtherKinds:
		return mark + word
	default:
		return word + mark
	}
}

func splitPair(mark string) (string, string) {
	r, size := utf8.DecodeRuneInString(mark)
	if size == len(mark) {
		return mark, mark
	}
	return string(r), mark[size:]
}

// casedScript reports whether script has upper and lower case letters.
func casedScript(script Script) bool {
	switch script {
	case Latin, Greek, Armenian:
		return true
	default:
		return false
	}
}

func isNumber(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
