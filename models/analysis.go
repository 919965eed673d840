package models

// ContentType classifies what kind of page the analyzer is looking at.
type ContentType string

const (
	ContentArticle      ContentType = "article"
	ContentBlog         ContentType = "blog"
	ContentNews         ContentType = "news"
	ContentTutorial     ContentType = "tutorial"
	ContentEncyclopedia ContentType = "encyclopedia"
	ContentProduct      ContentType = "product"
	ContentSocial       ContentType = "social"
	ContentNavigation   ContentType = "navigation"
	ContentEcommerce    ContentType = "ecommerce"
	ContentMultimedia   ContentType = "multimedia"
	ContentOther        ContentType = "other"
)

// IsEducational reports whether the content type is one the lesson
// pipeline considers teachable source material.
func (c ContentType) IsEducational() bool {
	switch c {
	case ContentArticle, ContentBlog, ContentNews, ContentTutorial, ContentEncyclopedia:
		return true
	}
	return false
}

// IsExcluded reports whether the content type alone disqualifies a page
// from extraction.
func (c ContentType) IsExcluded() bool {
	switch c {
	case ContentProduct, ContentSocial, ContentNavigation, ContentEcommerce, ContentMultimedia:
		return true
	}
	return false
}

// AnalysisResult is the page-level verdict produced per page view. It is
// ephemeral: cached only per (URL, structural fingerprint) with a TTL,
// never persisted.
type AnalysisResult struct {
	URL                string      `json:"url"`
	WordCount          int         `json:"word_count"`
	ContentType        ContentType `json:"content_type"`
	Language           string      `json:"language"`
	LanguageConfidence float64     `json:"language_confidence"`
	QualityScore       float64     `json:"quality_score"` // 0-1
	HasMainContent     bool        `json:"has_main_content"`
	IsEducational      bool        `json:"is_educational"`
	AdvertisingRatio   float64     `json:"advertising_ratio"` // 0-1
	HasSocialFeeds     bool        `json:"has_social_feeds"`
	HasCommentSections bool        `json:"has_comment_sections"`
}

// UnsuitableReason identifies the first failing suitability check, in
// the fixed reporting priority order. The gate itself is a plain AND of
// all checks; the reason only drives deterministic UI messaging.
type UnsuitableReason string

const (
	ReasonNone          UnsuitableReason = ""
	ReasonTooShort      UnsuitableReason = "too_short"
	ReasonLanguage      UnsuitableReason = "unsupported_language"
	ReasonNotEducational UnsuitableReason = "not_educational"
	ReasonExcludedType  UnsuitableReason = "excluded_content_type"
	ReasonSocialContent UnsuitableReason = "social_or_comments"
	ReasonAdvertising   UnsuitableReason = "too_much_advertising"
	ReasonLowQuality    UnsuitableReason = "low_quality"
)
