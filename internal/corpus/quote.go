package corpus

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// QuoteLength is a quote-length bucket. Each value is the inclusive upper
// bound of the bucket, except Thicc which holds everything above Long.
type QuoteLength int

const (
	Short  QuoteLength = 100
	Medium QuoteLength = 300
	Long   QuoteLength = 600
	Thicc  QuoteLength = 9999
)

// AllQuoteLengths lists the buckets in ascending order.
var AllQuoteLengths = []QuoteLength{Short, Medium, Long, Thicc}

// BucketFor assigns a length to its bucket.
func BucketFor(length int) QuoteLength {
	switch {
	case length <= int(Short):
		return Short
	case length <= int(Medium):
		return Medium
	case length <= int(Long):
		return Long
	default:
		return Thicc
	}
}

func (q QuoteLength) String() string {
	switch q {
	case Short:
		return "short"
	case Medium:
		return "medium"
	case Long:
		return "long"
	case Thicc:
		return "thicc"
	default:
		return fmt.Sprintf("QuoteLength(%d)", int(q))
	}
}

// ParseQuoteLengths parses a comma separated list such as "short,long".
// "all" (or an empty string) selects every bucket.
func ParseQuoteLengths(value string) ([]QuoteLength, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" || value == "all" {
		return append([]QuoteLength(nil), AllQuoteLengths...), nil
	}
	var out []QuoteLength
	seen := map[QuoteLength]struct{}{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var q QuoteLength
		switch part {
		case "short":
			q = Short
		case "medium":
			q = Medium
		case "long":
			q = Long
		case "thicc":
			q = Thicc
		case "all":
			return append([]QuoteLength(nil), AllQuoteLengths...), nil
		default:
			return nil, fmt.Errorf("unknown quote length %q (expected short, medium, long, thicc or all)", part)
		}
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("quote lengths must not be empty")
	}
	return out, nil
}

// Quote is a single quote entry.
type Quote struct {
	Text   string
	Source string
	ID     int
	Length int
	Bucket QuoteLength
}

// NewQuote builds a quote and assigns its bucket. A non-positive length is
// replaced with the rune count of the text.
func NewQuote(text string, length int) Quote {
	if length <= 0 {
		length = utf8.RuneCountInString(text)
	}
	return Quote{Text: text, Length: length, Bucket: BucketFor(length)}
}

// QuoteCorpus holds the quotes available for a language.
type QuoteCorpus struct {
	Language Language
	Quotes   []Quote
}
