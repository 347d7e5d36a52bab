package punctuation

// Kind is a decoration kind. The declaration order is the priority order in
// which kinds are applied.
type Kind int

const (
	AfterNumber Kind = iota
	BetweenWordsWithSpace
	EndOfWord
	Upcase
	AroundWord
	BetweenWordsWithoutSpace
	OtherKinds
)

// AllKinds lists every kind in priority order.
var AllKinds = []Kind{
	AfterNumber,
	BetweenWordsWithSpace,
	EndOfWord,
	Upcase,
	AroundWord,
	BetweenWordsWithoutSpace,
	OtherKinds,
}

func (k Kind) String() string {
	switch k {
	case AfterNumber:
		return "after-number"
	case BetweenWordsWithSpace:
		return "between-words-with-space"
	case EndOfWord:
		return "end-of-word"
	case Upcase:
		return "upcase"
	case AroundWord:
		return "around-word"
	case BetweenWordsWithoutSpace:
		return "between-words-without-space"
	case OtherKinds:
		return "other"
	default:
		return "unknown"
	}
}

// AroundWord marks hold an opening and a closing rune; single-rune marks wrap
// the word on both sides.
var scriptMarks = map[Script]map[Kind][]string{
	Latin: {
		EndOfWord:                {".", ",", ";", ":", "?", "!", "-"},
		AroundWord:               {"''", `""`, "()", "[]", "{}", "<>"},
		AfterNumber:              {"%"},
		BetweenWordsWithSpace:    {"–", "&"},
		BetweenWordsWithoutSpace: {"-", "/"},
		OtherKinds:               {"@", "#", "*", "^", "_"},
	},
	Chinese: {
		EndOfWord:  {"。", "、"},
		AroundWord: {"「」", "『』", "《》"},
		OtherKinds: {"〜"},
	},
	Japanese: {
		EndOfWord:  {"。", "、"},
		AroundWord: {"「」", "『』", "《》"},
		OtherKinds: {"〜"},
	},
	Korean: {
		EndOfWord:             {".", ",", "?", "!"},
		BetweenWordsWithSpace: {"·"},
		OtherKinds:            {"〜"},
	},
	ArabicPersian: {
		EndOfWord:   {"،", "؛", "؟"},
		AroundWord:  {"«»"},
		AfterNumber: {"٪"},
	},
	Hebrew: {
		EndOfWord:  {"׃"},
		AroundWord: {"«»", "„”"},
	},
	Devanagari: {
		EndOfWord:  {"।", "॥"},
		AroundWord: {"()"},
	},
	Thai: {
		EndOfWord:                {"ฯ"},
		AroundWord:               {"()"},
		BetweenWordsWithoutSpace: {"ๆ"},
	},
	Burmese: {
		EndOfWord:  {"၊", "။"},
		AroundWord: {"()"},
	},
	Khmer: {
		EndOfWord:                {"។", "៖"},
		AroundWord:               {"()"},
		BetweenWordsWithoutSpace: {"々"},
	},
	Ethiopic: {
		EndOfWord:  {"።", "፣"},
		AroundWord: {"፨"},
		OtherKinds: {"፨"},
	},
	Armenian: {
		EndOfWord:  {"։", "՝", "՞"},
		AroundWord: {"«»"},
		OtherKinds: {"՛"},
	},
	Greek: {
		EndOfWord:  {".", ",", ";", "·"},
		AroundWord: {"«»", "“”"},
		OtherKinds: {"·"},
	},
	Mongolian: {
		EndOfWord:  {"᠂", "᠃"},
		AroundWord: {"᠁"},
	},
}

// Marks returns the candidate marks for kind in script. Scripts without an
// entry for a kind return nil.
func Marks(kind Kind, script Script) []string {
	return scriptMarks[script][kind]
}
