package corpus

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	wordsDir  = "languages"
	quotesDir = "quotes"
)

// Store owns loaded corpora and caches them per language for the lifetime of
// the process. Returned corpora are copies; callers may not share mutable state
// through them.
type Store struct {
	dir    string
	logger *zap.Logger
	cache  map[Language]cached
}

type cached struct {
	words  WordCorpus
	quotes *QuoteCorpus
}

// NewStore returns a Store reading from dir.
func NewStore(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		dir:    dir,
		logger: logger,
		cache:  map[Language]cached{},
	}
}

// Dir returns the data directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// Load returns the word corpus and, if one exists, the quote corpus for lang.
// A missing word list yields ErrCorpusNotFound; a missing quote file yields a
// nil QuoteCorpus and no error.
func (s *Store) Load(lang Language) (WordCorpus, *QuoteCorpus, error) {
	candidates := lang.Candidates()
	if len(candidates) == 0 || !validName(candidates[0]) {
		return WordCorpus{}, nil, fmt.Errorf("%w: %q", ErrCorpusNotFound, lang)
	}
	key := candidates[0]
	if entry, ok := s.cache[key]; ok {
		return entry.words.clone(), entry.quotes.clone(), nil
	}

	words, err := s.loadWords(key)
	if err != nil {
		return WordCorpus{}, nil, err
	}
	quotes, err := s.loadQuotes(key, candidates)
	if err != nil {
		return WordCorpus{}, nil, err
	}
	s.cache[key] = cached{words: words, quotes: quotes}

	fields := []zap.Field{
		zap.String("language", string(key)),
		zap.Int("words", len(words.Words)),
	}
	if quotes != nil {
		fields = append(fields, zap.Int("quotes", len(quotes.Quotes)))
	}
	s.logger.Debug("corpus loaded", fields...)
	return words.clone(), quotes.clone(), nil
}

// Languages lists the languages that have a word list in the data directory.
func (s *Store) Languages() ([]Language, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, wordsDir))
	if err != nil {
		return nil, err
	}
	seen := map[Language]struct{}{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".json" && ext != ".txt" {
			continue
		}
		seen[Language(strings.TrimSuffix(name, ext))] = struct{}{}
	}
	langs := make([]Language, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs, nil
}

func (s *Store) loadWords(lang Language) (WordCorpus, error) {
	jsonPath := filepath.Join(s.dir, wordsDir, string(lang)+".json")
	textPath := filepath.Join(s.dir, wordsDir, string(lang)+".txt")

	var words []string
	decodeJSON := func(r io.Reader) error {
		var err error
		words, err = DecodeWordsJSON(r)
		return err
	}
	err := decodeFile(jsonPath, decodeJSON)
	if errors.Is(err, fs.ErrNotExist) {
		decodeText := func(r io.Reader) error {
			var err error
			words, err = DecodeWordsText(r)
			return err
		}
		err = decodeFile(textPath, decodeText)
		if errors.Is(err, fs.ErrNotExist) {
			return WordCorpus{}, fmt.Errorf("%w: %q (expected %s)", ErrCorpusNotFound, lang, jsonPath)
		}
		if err != nil {
			return WordCorpus{}, &LoadError{Resource: "words", Path: textPath, Err: err}
		}
		return WordCorpus{Language: lang, Words: words}, nil
	}
	if err != nil {
		return WordCorpus{}, &LoadError{Resource: "words", Path: jsonPath, Err: err}
	}
	return WordCorpus{Language: lang, Words: words}, nil
}

func (s *Store) loadQuotes(lang Language, candidates []Language) (*QuoteCorpus, error) {
	for _, candidate := range candidates {
		path := filepath.Join(s.dir, quotesDir, string(candidate)+".json")
		var quotes []Quote
		err := decodeFile(path, func(r io.Reader) error {
			var err error
			quotes, err = DecodeQuotesJSON(r)
			return err
		})
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, &LoadError{Resource: "quotes", Path: path, Err: err}
		}
		return &QuoteCorpus{Language: lang, Quotes: quotes}, nil
	}
	return nil, nil
}

func validName(lang Language) bool {
	name := string(lang)
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

func (w WordCorpus) clone() WordCorpus {
	return WordCorpus{Language: w.Language, Words: slices.Clone(w.Words)}
}

func (q *QuoteCorpus) clone() *QuoteCorpus {
	if q == nil {
		return nil
	}
	return &QuoteCorpus{Language: q.Language, Quotes: slices.Clone(q.Quotes)}
}
