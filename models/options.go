// Package models defines the shared value types, closed enums, and
// configuration surface of the lesson pipeline.
package models

import "time"

// Options holds every tunable threshold the pipeline recognizes. It is
// constructed explicitly and passed to each component; there is no
// process-wide configuration singleton so tests can run with isolated
// configurations in parallel.
type Options struct {
	MinWordCount          int           `yaml:"min_word_count"`
	MinQualityScore       float64       `yaml:"min_quality_score"`
	MaxAdvertisingRatio   float64       `yaml:"max_advertising_ratio"`
	MinLanguageConfidence float64       `yaml:"min_language_confidence"`
	SupportedLanguages    []string      `yaml:"supported_languages"`
	MaxRetryAttempts      int           `yaml:"max_retry_attempts"`
	RetryBaseDelay        time.Duration `yaml:"retry_base_delay"`
	RetryMaxDelay         time.Duration `yaml:"retry_max_delay"`
	SessionRetention      time.Duration `yaml:"session_retention"`
	AnalysisThrottle      time.Duration `yaml:"analysis_throttle"`
	DOMChangeThreshold    int           `yaml:"dom_change_threshold"`
	CacheTTL              time.Duration `yaml:"cache_ttl"`
	MaxSessionEvents      int           `yaml:"max_session_events"`
}

// DefaultSupportedLanguages is the fixed language set, in declaration
// order. Order matters: language detection breaks score ties in favor of
// the earlier entry.
var DefaultSupportedLanguages = []string{
	"en", "es", "fr", "de", "it", "pt", "nl", "pl", "ru", "ja", "ko", "zh",
}

// DefaultOptions returns the documented defaults. The advertising ratio
// here is the validation-engine default (0.3); the page analyzer gate
// uses its own, looser bound (0.4) via AnalyzerAdRatioLimit.
func DefaultOptions() Options {
	return Options{
		MinWordCount:          200,
		MinQualityScore:       60,
		MaxAdvertisingRatio:   0.3,
		MinLanguageConfidence: 0.7,
		SupportedLanguages:    DefaultSupportedLanguages,
		MaxRetryAttempts:      3,
		RetryBaseDelay:        1000 * time.Millisecond,
		RetryMaxDelay:         30 * time.Second,
		SessionRetention:      24 * time.Hour,
		AnalysisThrottle:      1 * time.Second,
		DOMChangeThreshold:    10,
		CacheTTL:              5 * time.Minute,
		MaxSessionEvents:      1000,
	}
}

// AnalyzerAdRatioLimit is the advertising-ratio bound used by the page
// suitability gate, intentionally looser than the validation default.
const AnalyzerAdRatioLimit = 0.4
