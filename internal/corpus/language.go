// Package corpus loads and caches word and quote corpora per language.
package corpus

import (
	"regexp"
	"strings"
)

// Language identifies a corpus, e.g. "english" or "english_1k".
type Language string

// DefaultLanguage is used when no language is configured.
const DefaultLanguage Language = "english"

var sizeVariant = regexp.MustCompile(`_\d+k$`)

// Base strips a trailing size variant ("english_10k" -> "english").
func (l Language) Base() Language {
	return Language(sizeVariant.ReplaceAllString(string(l), ""))
}

// Candidates returns lookup keys from most to least specific: the tag itself,
// the tag without its size variant, then the tag with trailing "_segment"s
// removed one at a time.
func (l Language) Candidates() []Language {
	name := strings.ToLower(strings.TrimSpace(string(l)))
	if name == "" {
		return nil
	}
	out := []Language{Language(name)}
	seen := map[Language]struct{}{Language(name): {}}
	add := func(c Language) {
		if c == "" {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	base := Language(name).Base()
	add(base)
	rest := string(base)
	for {
		idx := strings.LastIndex(rest, "_")
		if idx <= 0 {
			break
		}
		rest = rest[:idx]
		add(Language(rest))
	}
	return out
}

func (l Language) String() string {
	return string(l)
}
