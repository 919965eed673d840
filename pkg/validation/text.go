package validation

import (
	"regexp"
	"strings"
)

// textStats are the raw counts shared by the metric groups. Computed
// once per Validate call.
type textStats struct {
	WordCount           int
	SentenceCount       int
	ParagraphCount      int
	AvgWordsPerSentence float64
}

var sentenceEnd = regexp.MustCompile(`[.!?。！？]+(\s|$)`)

func analyzeText(text string) textStats {
	stats := textStats{
		WordCount: len(strings.Fields(text)),
	}

	paragraphs := 0
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	stats.ParagraphCount = paragraphs

	stats.SentenceCount = len(sentenceEnd.FindAllString(text, -1))
	if stats.SentenceCount == 0 && stats.WordCount > 0 {
		stats.SentenceCount = 1
	}
	if stats.SentenceCount > 0 {
		stats.AvgWordsPerSentence = float64(stats.WordCount) / float64(stats.SentenceCount)
	}
	return stats
}

// readability maps average sentence length to a 0-1 score. The ideal
// band is 15-20 words per sentence; the penalty grows quadratically
// above 25 and more steeply below 10.
func readability(stats textStats) float64 {
	avg := stats.AvgWordsPerSentence
	switch {
	case avg >= 15 && avg <= 20:
		return 1.0
	case avg > 20 && avg <= 25:
		return 1.0 - (avg-20)*0.04 // gentle slope to 0.8 at 25
	case avg > 25:
		over := avg - 25
		score := 0.8 - (over*over)*0.01
		if score < 0 {
			return 0
		}
		return score
	case avg >= 10:
		return 1.0 - (15-avg)*0.04 // gentle slope to 0.8 at 10
	default:
		under := 10 - avg
		score := 0.8 - (under*under)*0.03
		if score < 0 {
			return 0
		}
		return score
	}
}

var adPhrases = []string{
	"buy now", "limited time offer", "click here", "subscribe now",
	"free trial", "best price", "discount code", "sponsored",
	"advertisement", "promo code", "order today", "shop now",
}

// advertisingTextRatio estimates how promotional the text reads:
// sentences containing ad phrases over all sentences.
func advertisingTextRatio(text string) float64 {
	lower := strings.ToLower(text)
	sentences := sentenceEnd.Split(lower, -1)
	if len(sentences) == 0 {
		return 0
	}
	hits := 0
	total := 0
	for _, s := range sentences {
		if strings.TrimSpace(s) == "" {
			continue
		}
		total++
		for _, p := range adPhrases {
			if strings.Contains(s, p) {
				hits++
				break
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

var educationalPhrases = []string{
	"for example", "in other words", "this means", "research", "study",
	"history", "learn", "explain", "because", "according to",
	"known as", "defined", "in contrast", "however", "therefore",
}

// educationalValue scores the density of explanatory language, 0-1.
func educationalValue(text string) float64 {
	lower := strings.ToLower(text)
	hits := 0
	for _, p := range educationalPhrases {
		if strings.Contains(lower, p) {
			hits++
		}
	}
	score := float64(hits) / 5
	if score > 1 {
		return 1
	}
	return score
}

var (
	mentionPattern = regexp.MustCompile(`(^|\s)@[A-Za-z0-9_]{2,}`)
	hashtagPattern = regexp.MustCompile(`(^|\s)#[A-Za-z0-9_]{2,}`)
)

var socialVerbs = []string{
	"like and subscribe", "follow me", "follow us", "retweet",
	"share this post", "dm me", "link in bio", "smash that",
}

// socialSignalCount counts independent social-media indicators:
// mentions, hashtags, and social-action phrases each count once per
// occurrence class.
func socialSignalCount(text string) int {
	lower := strings.ToLower(text)
	count := 0
	count += len(mentionPattern.FindAllString(text, -1))
	count += len(hashtagPattern.FindAllString(text, -1))
	for _, v := range socialVerbs {
		if strings.Contains(lower, v) {
			count++
		}
	}
	return count
}

var navigationKeywords = []string{
	"home", "about", "about us", "contact", "contact us", "menu",
	"login", "log in", "sign up", "sign in", "register", "search",
	"privacy policy", "terms of service", "terms", "faq", "sitemap",
	"next", "previous", "back to top", "skip to content",
}

// navigationLineRatio returns the fraction of non-empty lines that are
// bare navigation labels. Above 0.5 the content is navigation-only.
func navigationLineRatio(text string) float64 {
	lines := strings.Split(text, "\n")
	total, nav := 0, 0
	for _, line := range lines {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		total++
		for _, k := range navigationKeywords {
			if line == k {
				nav++
				break
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(nav) / float64(total)
}
