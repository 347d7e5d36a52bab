// Package punctuation decorates generated words following the punctuation
// conventions of the script a language is written in.
package punctuation

import "github.com/verte-zerg/typist/internal/corpus"

// Script is a punctuation convention family.
type Script int

const (
	None Script = iota
	Latin
	Chinese
	Japanese
	Korean
	ArabicPersian
	Hebrew
	Devanagari
	Thai
	Burmese
	Khmer
	Ethiopic
	Armenian
	Greek
	Mongolian
)

var scriptNames = map[Script]string{
	None:          "none",
	Latin:         "latin",
	Chinese:       "chinese",
	Japanese:      "japanese",
	Korean:        "korean",
	ArabicPersian: "arabic-persian",
	Hebrew:        "hebrew",
	Devanagari:    "devanagari",
	Thai:          "thai",
	Burmese:       "burmese",
	Khmer:         "khmer",
	Ethiopic:      "ethiopic",
	Armenian:      "armenian",
	Greek:         "greek",
	Mongolian:     "mongolian",
}

func (s Script) String() string {
	if name, ok := scriptNames[s]; ok {
		return name
	}
	return "unknown"
}

// languageScripts maps language tags (without size variant) to scripts.
// Lookups fall back to shorter prefixes, so "english_contractions" resolves
// through "english". Romanized variants are listed explicitly.
var languageScripts = map[corpus.Language]Script{
	"afrikaans":         Latin,
	"albanian":          Latin,
	"amharic":           Ethiopic,
	"arabic":            ArabicPersian,
	"armenian":          Armenian,
	"azerbaijani":       Latin,
	"bangla":            Devanagari,
	"belarusian":        Latin,
	"bosnian":           Latin,
	"bulgarian":         Latin,
	"catalan":           Latin,
	"chinese":           Chinese,
	"croatian":          Latin,
	"czech":             Latin,
	"danish":            Latin,
	"dutch":             Latin,
	"english":           Latin,
	"esperanto":         Latin,
	"estonian":          Latin,
	"euskera":           Latin,
	"filipino":          Latin,
	"finnish":           Latin,
	"french":            Latin,
	"frisian":           Latin,
	"galician":          Latin,
	"georgian":          Latin,
	"german":            Latin,
	"greek":             Greek,
	"gujarati":          Devanagari,
	"hausa":             Latin,
	"hawaiian":          Latin,
	"hebrew":            Hebrew,
	"hindi":             Devanagari,
	"hungarian":         Latin,
	"icelandic":         Latin,
	"indonesian":        Latin,
	"irish":             Latin,
	"italian":           Latin,
	"japanese":          Japanese,
	"japanese_romaji":   Latin,
	"kazakh":            Latin,
	"khmer":             Khmer,
	"korean":            Korean,
	"kurdish":           Latin,
	"kyrgyz":            Latin,
	"latin":             Latin,
	"latvian":           Latin,
	"lithuanian":        Latin,
	"macedonian":        Latin,
	"malay":             Latin,
	"maltese":           Latin,
	"maori":             Latin,
	"marathi":           Devanagari,
	"mongolian":         Mongolian,
	"myanmar":           Burmese,
	"nepali":            Devanagari,
	"nepali_romanized":  Latin,
	"norwegian":         Latin,
	"occitan":           Latin,
	"pashto":            ArabicPersian,
	"persian":           ArabicPersian,
	"persian_romanized": Latin,
	"polish":            Latin,
	"portuguese":        Latin,
	"romanian":          Latin,
	"russian":           Latin,
	"sanskrit":          Devanagari,
	"sanskrit_roman":    Latin,
	"serbian":           Latin,
	"slovak":            Latin,
	"slovenian":         Latin,
	"spanish":           Latin,
	"swahili":           Latin,
	"swedish":           Latin,
	"swiss":             Latin,
	"tamil":             Devanagari,
	"tanglish":          Latin,
	"tatar":             Latin,
	"telugu":            Devanagari,
	"thai":              Thai,
	"tibetan":           Devanagari,
	"turkish":           Latin,
	"udmurt":            Latin,
	"ukrainian":         Latin,
	"urdish":            ArabicPersian,
	"urdu":              ArabicPersian,
	"uzbek":             Latin,
	"vietnamese":        Latin,
	"welsh":             Latin,
	"xhosa":             Latin,
	"yiddish":           Hebrew,
	"yoruba":            Latin,
	"zulu":              Latin,
}

// ScriptFor returns the script family of lang, or None when unmapped.
func ScriptFor(lang corpus.Language) Script {
	for _, candidate := range lang.Candidates() {
		if script, ok := languageScripts[candidate]; ok {
			return script
		}
	}
	return None
}
