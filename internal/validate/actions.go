package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/lessonkit/lessonkit/internal/common"
	"github.com/lessonkit/lessonkit/models"
	"github.com/lessonkit/lessonkit/pkg/extraction"
	"github.com/lessonkit/lessonkit/pkg/page"
	"github.com/lessonkit/lessonkit/pkg/validation"
)

// ValidateAction runs extracted-text validation on a text file or a
// fetched page and reports issues, score, and recovery guidance.
func ValidateAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	opts := common.OptionsFromFlags(c)
	engine := validation.New(opts)

	text, metadata, err := loadContent(c)
	if err != nil {
		return err
	}

	logger.Info("Validating content", "words", len(strings.Fields(text)), "language", metadata.Language)
	result := engine.Validate(text, metadata)

	if c.Bool("json") {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal validation result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	printResult(result)

	if !result.IsValid {
		handling := extraction.HandleValidationError(result)
		fmt.Println("Recovery options:")
		for _, opt := range handling.RecoveryOptions {
			marker := " "
			if opt.Primary {
				marker = "*"
			}
			fmt.Printf("  %s %-20s %s\n", marker, opt.Action, opt.Label)
		}
	}
	return nil
}

func loadContent(c *cli.Context) (string, *models.ContentMetadata, error) {
	if file := c.String("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read text file: %w", err)
		}
		metadata := &models.ContentMetadata{Language: c.String("language")}
		return string(data), metadata, nil
	}

	if rawURL := c.String("url"); rawURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), c.Duration("timeout"))
		defer cancel()
		snap, err := page.NewFetcher().Fetch(ctx, rawURL)
		if err != nil {
			return "", nil, fmt.Errorf("failed to fetch page: %w", err)
		}
		metadata := &models.ContentMetadata{
			SourceURL: snap.URL,
			Title:     snap.Title,
			Language:  snap.DeclaredLang,
		}
		if lang := c.String("language"); lang != "" {
			metadata.Language = lang
		}
		return snap.Text(), metadata, nil
	}

	return "", nil, fmt.Errorf("no content provided: use --file or --url")
}

func printResult(result models.ValidationResult) {
	fmt.Printf("Valid:   %v\n", result.IsValid)
	fmt.Printf("Quality: %v\n", result.MeetsMinimumQuality)
	fmt.Printf("Score:   %.0f/100\n\n", result.Score)

	if len(result.Issues) > 0 {
		fmt.Printf("Issues (%d):\n", len(result.Issues))
		for _, iss := range result.Issues {
			fmt.Printf("  [%s] %s: %s\n", iss.Severity, iss.Type, iss.Message)
		}
		fmt.Println()
	}
	if len(result.Recommendations) > 0 {
		fmt.Println("Recommendations:")
		for _, rec := range result.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
		fmt.Println()
	}
}

func Flags() []cli.Flag {
	return append(common.OptionFlags(),
		&cli.StringFlag{Name: "file", Usage: "Text file to validate"},
		&cli.StringFlag{Name: "url", Usage: "URL to fetch, extract, and validate"},
		&cli.StringFlag{Name: "language", Usage: "Declared content language (overrides page metadata)"},
		&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "Fetch timeout"},
		&cli.BoolFlag{Name: "json", Usage: "Emit results as JSON"},
		&cli.BoolFlag{Name: "quiet", Usage: "Only log errors"},
	)
}
