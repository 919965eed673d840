package analyzer

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lessonkit/lessonkit/models"
	"github.com/lessonkit/lessonkit/pkg/page"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

const filler = "the quick students learn about the history of science and they study it " +
	"with care because this is what was written for them on the page and not all of it "

func articleHTML(repeats int) string {
	body := strings.Repeat("<p>"+filler+"</p>", repeats)
	return fmt.Sprintf(`<html lang="en"><head><title>Learning Guide</title></head>
<body><main><h1>A History of Science</h1><h2>Introduction</h2>%s</body></html>`, body)
}

func mustSnapshot(t *testing.T, url, html string) *page.Snapshot {
	t.Helper()
	snap, err := page.NewSnapshot(url, html)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	return snap
}

func TestAnalyze_SuitableArticle(t *testing.T) {
	engine := New(models.DefaultOptions())
	snap := mustSnapshot(t, "https://example.com/guide/science-history", articleHTML(10))

	result := engine.Analyze(snap)

	if result.WordCount < 200 {
		t.Errorf("WordCount = %d, want >= 200", result.WordCount)
	}
	if result.Language != "en" {
		t.Errorf("Language = %q, want %q", result.Language, "en")
	}
	if result.ContentType != models.ContentTutorial {
		t.Errorf("ContentType = %q, want %q", result.ContentType, models.ContentTutorial)
	}
	if !result.IsEducational {
		t.Error("IsEducational = false, want true")
	}
	if result.QualityScore < 0.6 {
		t.Errorf("QualityScore = %v, want >= 0.6", result.QualityScore)
	}

	suitable, reason := engine.IsSuitable(result)
	if !suitable {
		t.Errorf("IsSuitable() = false (%s), want true", reason)
	}
	if reason != models.ReasonNone {
		t.Errorf("IsSuitable() reason = %q, want none", reason)
	}
}

func TestIsSuitable_ReasonPriority(t *testing.T) {
	engine := New(models.DefaultOptions())

	// Base passes every check; each case breaks one or more and expects
	// the highest-priority failing reason.
	base := models.AnalysisResult{
		WordCount:          500,
		ContentType:        models.ContentArticle,
		Language:           "en",
		LanguageConfidence: 0.9,
		QualityScore:       0.8,
		IsEducational:      true,
	}

	tests := []struct {
		name   string
		mutate func(r *models.AnalysisResult)
		want   models.UnsuitableReason
	}{
		{
			"word count outranks language",
			func(r *models.AnalysisResult) {
				r.WordCount = 50
				r.Language = "xx"
			},
			models.ReasonTooShort,
		},
		{
			"unsupported language",
			func(r *models.AnalysisResult) { r.Language = "xx" },
			models.ReasonLanguage,
		},
		{
			"low language confidence",
			func(r *models.AnalysisResult) { r.LanguageConfidence = 0.5 },
			models.ReasonLanguage,
		},
		{
			"not educational outranks excluded type",
			func(r *models.AnalysisResult) {
				r.IsEducational = false
				r.ContentType = models.ContentProduct
			},
			models.ReasonNotEducational,
		},
		{
			"excluded content type",
			func(r *models.AnalysisResult) { r.ContentType = models.ContentProduct },
			models.ReasonExcludedType,
		},
		{
			"social feeds",
			func(r *models.AnalysisResult) { r.HasSocialFeeds = true },
			models.ReasonSocialContent,
		},
		{
			"comment sections",
			func(r *models.AnalysisResult) { r.HasCommentSections = true },
			models.ReasonSocialContent,
		},
		{
			"advertising",
			func(r *models.AnalysisResult) { r.AdvertisingRatio = 0.5 },
			models.ReasonAdvertising,
		},
		{
			"low quality",
			func(r *models.AnalysisResult) { r.QualityScore = 0.4 },
			models.ReasonLowQuality,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mutate(&r)
			suitable, reason := engine.IsSuitable(r)
			if suitable {
				t.Fatal("IsSuitable() = true, want false")
			}
			if reason != tt.want {
				t.Errorf("IsSuitable() reason = %q, want %q", reason, tt.want)
			}
		})
	}
}

func TestAnalyze_CacheByFingerprintAndTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	engine := NewWithClock(models.DefaultOptions(), clock)

	const url = "https://example.com/article"
	long := mustSnapshot(t, url, "<html><body><p>"+strings.Repeat(filler, 10)+"</p></body></html>")
	short := mustSnapshot(t, url, "<html><body><p>"+filler+"</p></body></html>")

	first := engine.Analyze(long)
	if first.WordCount != 310 {
		t.Fatalf("WordCount = %d, want 310", first.WordCount)
	}

	// Same URL, same tag structure: the cached result is returned even
	// though the text changed.
	cached := engine.Analyze(short)
	if cached.WordCount != 310 {
		t.Errorf("cached WordCount = %d, want 310", cached.WordCount)
	}

	// After the TTL window the entry is stale and content is re-scored.
	clock.advance(6 * time.Minute)
	fresh := engine.Analyze(short)
	if fresh.WordCount != 31 {
		t.Errorf("fresh WordCount = %d, want 31", fresh.WordCount)
	}
}

func TestAnalyze_CacheMissOnStructureChange(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	engine := NewWithClock(models.DefaultOptions(), clock)

	const url = "https://example.com/article"
	one := mustSnapshot(t, url, "<html><body><p>"+filler+"</p></body></html>")
	two := mustSnapshot(t, url, "<html><body><p>"+filler+"</p><p>"+filler+"</p></body></html>")

	if got := engine.Analyze(one).WordCount; got != 31 {
		t.Fatalf("WordCount = %d, want 31", got)
	}
	// Different tag structure invalidates the entry immediately.
	if got := engine.Analyze(two).WordCount; got != 62 {
		t.Errorf("WordCount = %d, want 62", got)
	}
}

func TestClassifyContentType(t *testing.T) {
	tests := []struct {
		name string
		url  string
		html string
		want models.ContentType
	}{
		{
			"wikipedia",
			"https://en.wikipedia.org/wiki/Go_(programming_language)",
			"<html><body><p>text</p></body></html>",
			models.ContentEncyclopedia,
		},
		{
			"social host",
			"https://twitter.com/someone/status/1",
			"<html><body><p>text</p></body></html>",
			models.ContentSocial,
		},
		{
			"og type article",
			"https://example.com/post",
			`<html><head><meta property="og:type" content="article"></head><body></body></html>`,
			models.ContentArticle,
		},
		{
			"og type video",
			"https://example.com/watch",
			`<html><head><meta property="og:type" content="video.movie"></head><body></body></html>`,
			models.ContentMultimedia,
		},
		{
			"commerce path",
			"https://shop.example.com/products/widget",
			"<html><body><p>buy</p></body></html>",
			models.ContentEcommerce,
		},
		{
			"news path",
			"https://example.com/news/2026/election",
			"<html><body><p>report</p></body></html>",
			models.ContentNews,
		},
		{
			"navigation",
			"https://example.com/",
			"<html><body>" + strings.Repeat(`<a href="/x">link</a>`, 25) + "</body></html>",
			models.ContentNavigation,
		},
		{
			"prose fallback",
			"https://example.com/page",
			"<html><body>" + strings.Repeat("<p>some text here</p>", 6) + "</body></html>",
			models.ContentArticle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := mustSnapshot(t, tt.url, tt.html)
			if got := classifyContentType(snap); got != tt.want {
				t.Errorf("classifyContentType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAdvertisingRatio(t *testing.T) {
	snap := mustSnapshot(t, "https://example.com",
		`<html><body><div class="advert-top"></div><div class="ad-banner"></div><p>a</p><p>b</p></body></html>`)
	got := advertisingRatio(snap.Doc)
	if got != 0.5 {
		t.Errorf("advertisingRatio() = %v, want 0.5", got)
	}
}

func TestScheduler_Throttle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	opts := models.DefaultOptions()
	s := NewScheduler(opts, clock)

	// No previous run: fires immediately.
	d := s.OnMutation(page.MutationEvent{})
	if !d.Run || !d.At.Equal(clock.now) {
		t.Fatalf("OnMutation() = %+v, want immediate run", d)
	}
	s.MarkRan(clock.now)
	if s.Pending() {
		t.Error("Pending() = true after MarkRan")
	}

	// Within the throttle window: deferred to lastRun + throttle.
	clock.advance(200 * time.Millisecond)
	d = s.OnMutation(page.MutationEvent{})
	wantAt := clock.now.Add(800 * time.Millisecond)
	if !d.At.Equal(wantAt) {
		t.Errorf("OnMutation() At = %v, want %v", d.At, wantAt)
	}
	if !s.Pending() {
		t.Error("Pending() = false, want true")
	}

	// Outside the window: immediate again.
	clock.advance(2 * time.Second)
	d = s.OnMutation(page.MutationEvent{})
	if !d.At.Equal(clock.now) {
		t.Errorf("OnMutation() At = %v, want %v", d.At, clock.now)
	}
}

func TestScheduler_SignificantThresholdBypassesThrottle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	opts := models.DefaultOptions()
	opts.DOMChangeThreshold = 3
	s := NewScheduler(opts, clock)

	s.MarkRan(clock.now)
	clock.advance(100 * time.Millisecond)

	for i := 0; i < 2; i++ {
		d := s.OnMutation(page.MutationEvent{Significant: true})
		if d.At.Equal(clock.now) {
			t.Fatalf("mutation %d scheduled immediately, want throttled", i+1)
		}
	}

	// Third significant change reaches the threshold.
	d := s.OnMutation(page.MutationEvent{Significant: true})
	if !d.At.Equal(clock.now) {
		t.Errorf("OnMutation() At = %v, want immediate %v", d.At, clock.now)
	}

	// MarkRan resets the counter.
	s.MarkRan(clock.now)
	d = s.OnMutation(page.MutationEvent{Significant: true})
	if d.At.Equal(clock.now) {
		t.Error("counter not reset: mutation after MarkRan ran immediately")
	}
}
