// Package common holds flag plumbing shared by the CLI commands.
package common

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/lessonkit/lessonkit/models"
)

// OptionFlags returns the threshold flags accepted by every command
// that runs analysis or validation.
func OptionFlags() []cli.Flag {
	defaults := models.DefaultOptions()
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "YAML config file with threshold overrides"},
		&cli.IntFlag{Name: "min-words", Value: defaults.MinWordCount, Usage: "Minimum word count for usable content"},
		&cli.Float64Flag{Name: "min-quality", Value: defaults.MinQualityScore, Usage: "Minimum quality score (0-100)"},
		&cli.Float64Flag{Name: "max-ad-ratio", Value: defaults.MaxAdvertisingRatio, Usage: "Maximum advertising ratio (0-1)"},
		&cli.Float64Flag{Name: "min-lang-confidence", Value: defaults.MinLanguageConfidence, Usage: "Minimum language detection confidence (0-1)"},
		&cli.StringFlag{Name: "languages", Usage: "Comma-separated supported language codes (default: built-in set)"},
		&cli.IntFlag{Name: "max-retries", Value: defaults.MaxRetryAttempts, Usage: "Maximum retry attempts"},
	}
}

// OptionsFromFlags builds pipeline options from --config (if given)
// overlaid with any explicitly set flags.
func OptionsFromFlags(c *cli.Context) models.Options {
	opts := models.DefaultOptions()
	if path := c.String("config"); path != "" {
		if loaded, err := models.LoadOptions(path); err == nil {
			opts = loaded
		}
	}

	if c.IsSet("min-words") {
		opts.MinWordCount = c.Int("min-words")
	}
	if c.IsSet("min-quality") {
		opts.MinQualityScore = c.Float64("min-quality")
	}
	if c.IsSet("max-ad-ratio") {
		opts.MaxAdvertisingRatio = c.Float64("max-ad-ratio")
	}
	if c.IsSet("min-lang-confidence") {
		opts.MinLanguageConfidence = c.Float64("min-lang-confidence")
	}
	if c.IsSet("max-retries") {
		opts.MaxRetryAttempts = c.Int("max-retries")
	}
	if langs := c.String("languages"); langs != "" {
		var supported []string
		for _, lang := range strings.Split(langs, ",") {
			lang = strings.TrimSpace(lang)
			if lang != "" {
				supported = append(supported, lang)
			}
		}
		if len(supported) > 0 {
			opts.SupportedLanguages = supported
		}
	}
	return opts
}
