// Package langid identifies the language of page text with a cheap
// stop-word heuristic. It is deliberately not a general-purpose
// detector: it scores only the fixed supported-language set and its
// tie-break and confidence rules are part of the pipeline contract.
package langid

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Detection is the outcome of one identification pass.
type Detection struct {
	Language   string
	Confidence float64
}

// sampleLimit bounds how much of the text the heuristic reads.
const sampleLimit = 1000

// stopWords maps each supported language to a fixed list of
// high-frequency function words. Latin-script entries are matched as
// whole tokens; CJK entries as substrings.
var stopWords = map[string][]string{
	"en": {"the", "and", "of", "to", "in", "is", "that", "it", "was", "for", "on", "are", "with", "as", "his", "they", "this", "have", "from", "not"},
	"es": {"el", "la", "de", "que", "y", "en", "un", "los", "se", "del", "las", "una", "por", "con", "para", "es", "su", "al", "como", "más"},
	"fr": {"le", "la", "de", "et", "les", "des", "un", "une", "du", "en", "est", "que", "dans", "qui", "pour", "pas", "sur", "au", "avec", "ce"},
	"de": {"der", "die", "und", "das", "von", "den", "im", "ein", "eine", "mit", "für", "ist", "auf", "des", "sich", "nicht", "auch", "dem", "werden", "aus"},
	"it": {"il", "di", "che", "la", "per", "un", "del", "una", "con", "non", "sono", "della", "da", "come", "anche", "più", "nel", "gli", "alla", "ha"},
	"pt": {"o", "de", "que", "e", "do", "da", "em", "um", "para", "com", "não", "uma", "os", "no", "se", "na", "por", "mais", "dos", "como"},
	"nl": {"de", "het", "van", "een", "en", "in", "is", "dat", "op", "te", "zijn", "voor", "met", "die", "niet", "aan", "er", "om", "ook", "als"},
	"pl": {"w", "i", "na", "z", "do", "się", "nie", "że", "jest", "to", "jak", "po", "od", "przez", "ale", "za", "był", "jego", "tym", "oraz"},
	"ru": {"и", "в", "не", "на", "что", "он", "как", "это", "по", "но", "его", "из", "за", "от", "то", "же", "для", "так", "было", "она"},
	"ja": {"の", "に", "は", "を", "た", "が", "で", "て", "と", "です", "ます", "から", "この", "して", "いる", "こと", "する", "ない"},
	"ko": {"이", "가", "은", "는", "을", "를", "에", "의", "와", "과", "합니다", "있는", "있다", "하는", "에서", "으로", "하고", "입니다"},
	"zh": {"的", "是", "了", "在", "和", "有", "我", "不", "这", "他", "也", "就", "人", "都", "一个", "我们", "可以", "没有"},
}

// latinScript reports whether the language's stop words are token-based.
func latinScript(lang string) bool {
	switch lang {
	case "ja", "ko", "zh", "ru":
		return false
	}
	return true
}

// Detect identifies the dominant language of text among the supported
// set. declaredLang is the page's declared language attribute ("" when
// absent): when the heuristic is unsure (raw confidence below 0.5) and
// the declaration names a supported language, the declaration wins at
// confidence 0.8. A +0.2 boost (capped at 1.0) is applied only when raw
// confidence already exceeds 0.4, so noise never gains high confidence.
func Detect(text, declaredLang string, supported []string) Detection {
	sample := strings.ToLower(truncate(text, sampleLimit))
	tokens := tokenSet(sample)

	best := Detection{Language: "", Confidence: 0}
	for _, lang := range supported {
		words, ok := stopWords[lang]
		if !ok {
			continue
		}
		matched := 0
		for _, w := range words {
			if latinScript(lang) {
				if _, ok := tokens[w]; ok {
					matched++
				}
			} else if strings.Contains(sample, w) {
				matched++
			}
		}
		score := float64(matched) / float64(len(words))
		// Strict > keeps the earlier declaration on ties.
		if score > best.Confidence {
			best = Detection{Language: lang, Confidence: score}
		}
	}

	declared := normalizeTag(declaredLang)
	if declared != "" && isSupported(declared, supported) && best.Confidence < 0.5 {
		return Detection{Language: declared, Confidence: 0.8}
	}

	if best.Confidence > 0.4 {
		best.Confidence += 0.2
		if best.Confidence > 1.0 {
			best.Confidence = 1.0
		}
	}
	return best
}

// IsSupported reports whether lang (normalized) is in the supported set.
func IsSupported(lang string, supported []string) bool {
	return isSupported(normalizeTag(lang), supported)
}

func isSupported(lang string, supported []string) bool {
	for _, s := range supported {
		if s == lang {
			return true
		}
	}
	return false
}

// normalizeTag reduces a BCP-47 tag like "en-US" to its primary
// subtag, lowercased.
func normalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	return tag
}

// truncate cuts s at limit without splitting a UTF-8 rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for i := limit; i > 0; i-- {
		if utf8.RuneStart(s[i]) {
			return s[:i]
		}
	}
	return ""
}

// tokenSet splits the sample into lowercase word tokens.
func tokenSet(sample string) map[string]struct{} {
	tokens := make(map[string]struct{})
	fields := strings.FieldsFunc(sample, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	for _, f := range fields {
		tokens[f] = struct{}{}
	}
	return tokens
}
