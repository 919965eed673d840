package analyze

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
	"github.com/lessonkit/lessonkit/pkg/analyzer"
	"github.com/lessonkit/lessonkit/pkg/page"
)

// AnalyzeAction checks one or more pages for extraction suitability.
func AnalyzeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	opts := common.OptionsFromFlags(c)
	engine := analyzer.New(opts)

	snapshots, err := loadSnapshots(c, logger)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("no pages provided: use --urls or --file")
	}

	type report struct {
		Analysis models.AnalysisResult   `json:"analysis"`
		Suitable bool                    `json:"suitable"`
		Reason   models.UnsuitableReason `json:"reason,omitempty"`
	}

	reports := make([]report, 0, len(snapshots))
	for _, snap := range snapshots {
		logger.Info("Analyzing page", "url", snap.URL)
		result := engine.Analyze(snap)
		suitable, reason := engine.IsSuitable(result)
		reports = append(reports, report{Analysis: result, Suitable: suitable, Reason: reason})
	}

	if c.Bool("json") {
		out, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal analysis results: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	for _, r := range reports {
		verdict := "SUITABLE"
		if !r.Suitable {
			verdict = fmt.Sprintf("UNSUITABLE (%s)", r.Reason)
		}
		fmt.Printf("%s\n", r.Analysis.URL)
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("Verdict:       %s\n", verdict)
		fmt.Printf("Content Type:  %s\n", r.Analysis.ContentType)
		fmt.Printf("Words:         %d\n", r.Analysis.WordCount)
		fmt.Printf("Language:      %s (confidence %.2f)\n", r.Analysis.Language, r.Analysis.LanguageConfidence)
		fmt.Printf("Quality:       %.2f\n", r.Analysis.QualityScore)
		fmt.Printf("Ad Ratio:      %.2f\n", r.Analysis.AdvertisingRatio)
		fmt.Printf("Main Content:  %v | Educational: %v | Social: %v | Comments: %v\n\n",
			r.Analysis.HasMainContent, r.Analysis.IsEducational,
			r.Analysis.HasSocialFeeds, r.Analysis.HasCommentSections)
	}
	return nil
}

// loadSnapshots builds page snapshots from --urls (fetched) or --file
// (local HTML, URL taken from --page-url if given).
func loadSnapshots(c *cli.Context, logger *slog.Logger) ([]*page.Snapshot, error) {
	var snapshots []*page.Snapshot

	if file := c.String("file"); file != "" {
		html, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read HTML file: %w", err)
		}
		pageURL := c.String("page-url")
		if pageURL == "" {
			pageURL = "file://" + file
		}
		snap, err := page.NewSnapshot(pageURL, string(html))
		if err != nil {
			return nil, fmt.Errorf("failed to parse HTML file: %w", err)
		}
		snapshots = append(snapshots, snap)
	}

	if urlsStr := c.String("urls"); urlsStr != "" {
		fetcher := page.NewFetcher()
		timeout := c.Duration("timeout")
		for _, rawURL := range strings.Split(urlsStr, ",") {
			rawURL = strings.TrimSpace(rawURL)
			if rawURL == "" {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			snap, err := fetcher.Fetch(ctx, rawURL)
			cancel()
			if err != nil {
				logger.Error("Failed to fetch page", "url", rawURL, "error", err)
				continue
			}
			snapshots = append(snapshots, snap)
		}
	}

	return snapshots, nil
}

// Flags returns the analyze command's flag set.
func Flags() []cli.Flag {
	return append(common.OptionFlags(),
		&cli.StringFlag{Name: "urls", Usage: "Comma-separated URLs to fetch and analyze"},
		&cli.StringFlag{Name: "file", Usage: "Local HTML file to analyze"},
		&cli.StringFlag{Name: "page-url", Usage: "URL to attribute to --file content"},
		&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "Fetch timeout per URL"},
		&cli.BoolFlag{Name: "json", Usage: "Emit results as JSON"},
		&cli.BoolFlag{Name: "quiet", Usage: "Only log errors"},
	)
}
