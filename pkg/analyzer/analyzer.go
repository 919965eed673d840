// Package analyzer scores a live page for topical suitability before an
// extraction affordance is offered. Suitability is a hard AND-gate over
// independent checks; the weighted quality score feeds one of them.
package analyzer

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/lessonkit/lessonkit/models"
	"github.com/lessonkit/lessonkit/pkg/langid"
	"github.com/lessonkit/lessonkit/pkg/page"
)

// Engine analyzes page snapshots. Results are cached per
// (URL, structural fingerprint) with a TTL; see cache.go.
type Engine struct {
	opts  models.Options
	cache *resultCache
}

// New returns an Engine using the real clock.
func New(opts models.Options) *Engine {
	return NewWithClock(opts, realClock{})
}

// NewWithClock injects the clock used for cache TTL decisions.
func NewWithClock(opts models.Options, clock Clock) *Engine {
	return &Engine{
		opts:  opts,
		cache: newResultCache(opts.CacheTTL, clock),
	}
}

// Analyze scores one snapshot. Scoring is pure; the only side effect is
// the cache write. A cached result is returned while both the TTL
// window and the structural fingerprint still match.
func (e *Engine) Analyze(snap *page.Snapshot) models.AnalysisResult {
	fp := snap.Fingerprint()
	if cached, ok := e.cache.get(snap.URL, fp); ok {
		return cached
	}

	text := snap.Text()
	wordCount := len(strings.Fields(text))
	det := langid.Detect(text, snap.DeclaredLang, e.opts.SupportedLanguages)
	contentType := classifyContentType(snap)
	adRatio := advertisingRatio(snap.Doc)
	hasMain, structureScore := structureSignals(snap)

	educational := contentType.IsEducational() || educationalKeywordHits(text) >= 2

	contentTypeScore := 0.3
	if contentType.IsEducational() {
		contentTypeScore = 0.9
	}

	lengthScore := float64(wordCount) / 500
	if lengthScore > 1 {
		lengthScore = 1
	}
	adPenalty := 1 - min1(adRatio*2)

	quality := models.ClampUnit(0.3*lengthScore + 0.3*structureScore + 0.3*contentTypeScore + 0.1*adPenalty)

	result := models.AnalysisResult{
		URL:                snap.URL,
		WordCount:          wordCount,
		ContentType:        contentType,
		Language:           det.Language,
		LanguageConfidence: det.Confidence,
		QualityScore:       quality,
		HasMainContent:     hasMain,
		IsEducational:      educational,
		AdvertisingRatio:   models.ClampUnit(adRatio),
		HasSocialFeeds:     hasSocialFeeds(snap.Doc),
		HasCommentSections: hasCommentSections(snap.Doc),
	}

	e.cache.put(snap.URL, fp, result)
	return result
}

// IsSuitable applies the hard AND-gate. All checks are independent; the
// returned reason is the first failing check in the fixed priority
// order (word count, language, educational, excluded type,
// social/comments, advertising, quality) so UI messaging stays
// deterministic.
func (e *Engine) IsSuitable(r models.AnalysisResult) (bool, models.UnsuitableReason) {
	if r.WordCount < e.opts.MinWordCount {
		return false, models.ReasonTooShort
	}
	if !langid.IsSupported(r.Language, e.opts.SupportedLanguages) || r.LanguageConfidence < e.opts.MinLanguageConfidence {
		return false, models.ReasonLanguage
	}
	if !r.IsEducational {
		return false, models.ReasonNotEducational
	}
	if r.ContentType.IsExcluded() {
		return false, models.ReasonExcludedType
	}
	if r.HasSocialFeeds || r.HasCommentSections {
		return false, models.ReasonSocialContent
	}
	if r.AdvertisingRatio > models.AnalyzerAdRatioLimit {
		return false, models.ReasonAdvertising
	}
	if r.QualityScore < 0.6 {
		return false, models.ReasonLowQuality
	}
	return true, models.ReasonNone
}

func min1(f float64) float64 {
	if f > 1 {
		return 1
	}
	return f
}

// structureSignals probes for a main-content container and rates the
// structure 0.8 when it holds at least 2 headings and 3 paragraphs,
// else 0.3. Readability extraction is used to confirm the container
// actually carries article text.
func structureSignals(snap *page.Snapshot) (hasMain bool, score float64) {
	main := snap.Doc.Find("main, article, #content, .main-content, [role=main]").First()
	if main.Length() == 0 {
		return false, 0.3
	}

	hasMain = true
	if parsedURL, err := url.Parse(snap.URL); err == nil {
		if html, err := snap.Doc.Html(); err == nil {
			parser := readability.NewParser()
			article, err := parser.Parse(strings.NewReader(html), parsedURL)
			if err != nil || len(strings.TrimSpace(article.TextContent)) == 0 {
				hasMain = false
			}
		}
	}

	headings := main.Find("h1, h2, h3, h4, h5, h6").Length()
	paragraphs := main.Find("p").Length()
	if hasMain && headings >= 2 && paragraphs >= 3 {
		return hasMain, 0.8
	}
	return hasMain, 0.3
}

// advertisingRatio estimates how much of the page is advertising: ad
// containers over ad containers plus content blocks.
func advertisingRatio(doc *goquery.Document) float64 {
	ads := doc.Find(
		"[class*='advert'], [id*='advert'], [class*='ad-'], [id*='ad-'], " +
			".adsbygoogle, ins.adsbygoogle, [class*='sponsor'], iframe[src*='ads']",
	).Length()
	content := doc.Find("p, h1, h2, h3, h4, li, blockquote").Length()
	total := ads + content
	if total == 0 {
		return 0
	}
	return float64(ads) / float64(total)
}

func hasSocialFeeds(doc *goquery.Document) bool {
	return doc.Find(
		".twitter-timeline, .instagram-media, .fb-post, .fb-page, "+
			"[class*='social-feed'], [class*='social-embed'], [data-tweet-id]",
	).Length() > 0
}

func hasCommentSections(doc *goquery.Document) bool {
	return doc.Find(
		"#comments, .comments, #disqus_thread, [class*='comment-section'], [id*='comment-list']",
	).Length() > 0
}

// educationalKeywordHits counts distinct educational signal words in
// the first part of the text.
func educationalKeywordHits(text string) int {
	sample := strings.ToLower(text)
	if len(sample) > 2000 {
		sample = sample[:2000]
	}
	keywords := []string{
		"learn", "tutorial", "guide", "explain", "history", "science",
		"research", "study", "education", "introduction", "how to",
	}
	hits := 0
	for _, k := range keywords {
		if strings.Contains(sample, k) {
			hits++
		}
	}
	return hits
}
