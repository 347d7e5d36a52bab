package corpus

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrCorpusNotFound is returned when no word data exists for a language.
var ErrCorpusNotFound = errors.New("corpus not found")

// LoadError reports an I/O or decode failure for one corpus resource.
type LoadError struct {
	Resource string
	Path     string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s from %s: %v", e.Resource, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// WordCorpus holds the distinct words available for a language.
type WordCorpus struct {
	Language Language
	Words    []string
}

type wordsFile struct {
	Name  string   `json:"name"`
	Words []string `json:"words"`
}

type quotesFile struct {
	Language string `json:"language"`
	Quotes   []struct {
		Text   string `json:"text"`
		Source string `json:"source"`
		Length int    `json:"length"`
		ID     int    `json:"id"`
	} `json:"quotes"`
}

// DecodeWordsJSON reads a {"name": ..., "words": [...]} document.
func DecodeWordsJSON(r io.Reader) ([]string, error) {
	var payload wordsFile
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode words: %w", err)
	}
	return distinctWords(payload.Words), nil
}

// DecodeWordsText reads one word per line.
func DecodeWordsText(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return distinctWords(words), nil
}

// DecodeQuotesJSON reads a {"language": ..., "quotes": [...]} document and
// assigns each quote its length bucket.
func DecodeQuotesJSON(r io.Reader) ([]Quote, error) {
	var payload quotesFile
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode quotes: %w", err)
	}
	quotes := make([]Quote, 0, len(payload.Quotes))
	for _, q := range payload.Quotes {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		quote := NewQuote(q.Text, q.Length)
		quote.Source = q.Source
		quote.ID = q.ID
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

// distinctWords trims entries and drops blanks and repeats, keeping the
// order of first occurrence.
func distinctWords(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}

func decodeFile(path string, decode func(io.Reader) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only corpus file.
			_ = cerr
		}
	}()
	return decode(file)
}
