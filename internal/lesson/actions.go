package lesson

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/lessonkit/lessonkit/internal/common"
	"github.com/lessonkit/lessonkit/models"
	"github.com/lessonkit/lessonkit/pkg/export"
	"github.com/lessonkit/lessonkit/pkg/generator"
	"github.com/lessonkit/lessonkit/pkg/metrics"
	"github.com/lessonkit/lessonkit/pkg/sections"
	"github.com/lessonkit/lessonkit/pkg/store"
)

// GenerateAction generates a full lesson section by section, validating
// each one and regenerating rejected sections.
func GenerateAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	topic := c.String("topic")
	if topic == "" {
		return fmt.Errorf("no topic provided via --topic flag")
	}
	level := models.CEFRLevel(strings.ToUpper(c.String("level")))
	switch level {
	case models.LevelA1, models.LevelA2, models.LevelB1, models.LevelB2, models.LevelC1:
	default:
		return fmt.Errorf("invalid level %q: must be A1, A2, B1, B2, or C1", c.String("level"))
	}
	language := c.String("lesson-language")

	opts := common.OptionsFromFlags(c)
	client := generator.NewHTTPClient(c.String("endpoint"), c.String("model"))
	tracker := metrics.NewTracker()
	loop := generator.NewLoop(client, opts, tracker)

	genOpts := generator.GenOptions{
		Temperature: c.Float64("temperature"),
		MaxTokens:   c.Int("max-tokens"),
	}

	lsn := models.Lesson{
		Title:    fmt.Sprintf("%s (%s)", topic, level),
		Topic:    topic,
		Level:    level,
		Language: language,
	}
	sctx := &sections.Context{Topic: topic}

	ctx := context.Background()
	rejected := 0
	for _, section := range generationOrder {
		logger.Info("Generating section", "section", section, "level", level)
		prompt := buildPrompt(section, topic, level, language)
		outcome := loop.Run(ctx, section, prompt, genOpts, validateFor(section, level, sctx))

		if outcome.UserMsg != nil {
			printUserMessage(*outcome.UserMsg)
			return fmt.Errorf("generation failed for %s section", section)
		}

		if !outcome.Accepted() {
			rejected++
			logger.Warn("Section below quality threshold after retries",
				"section", section,
				"score", outcome.Validation.Score,
				"attempts", outcome.Attempts)
			if !c.Bool("allow-partial") {
				continue
			}
		}
		if outcome.Validation.IsValid || c.Bool("allow-partial") {
			if err := install(&lsn, sctx, section, outcome.Text); err != nil {
				logger.Warn("Failed to decode accepted section", "section", section, "error", err)
			}
		}
	}

	report := tracker.Report()
	printMetrics(report)

	if rejected > 0 && !c.Bool("allow-partial") {
		return fmt.Errorf("%d section(s) failed validation after %d attempts each", rejected, opts.MaxRetryAttempts)
	}

	if c.Bool("save") {
		db, err := store.Open()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		lessonID, err := db.SaveLesson(lsn, report.OverallScore)
		if err != nil {
			return fmt.Errorf("failed to save lesson: %w", err)
		}
		logger.Info("Lesson saved", "lesson_id", lessonID, "db", db.Path())
	}

	if outDir := c.String("output-dir"); outDir != "" {
		exporter, err := export.NewExporter(outDir)
		if err != nil {
			return err
		}
		files, err := exporter.Export(lsn)
		if err != nil {
			return fmt.Errorf("failed to export lesson: %w", err)
		}
		for _, f := range files {
			fmt.Printf("Wrote %s\n", f)
		}
	}
	return nil
}

// CheckAction validates a lesson YAML file section by section.
func CheckAction(c *cli.Context) error {
	file := c.String("file")
	if file == "" {
		return fmt.Errorf("no lesson file provided via --file flag")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read lesson file: %w", err)
	}
	var lsn models.Lesson
	if err := yaml.Unmarshal(data, &lsn); err != nil {
		return fmt.Errorf("failed to parse lesson file: %w", err)
	}

	sctx := &sections.Context{Topic: lsn.Topic}
	if lsn.Vocabulary != nil {
		for _, item := range lsn.Vocabulary.Items {
			sctx.VocabularyWords = append(sctx.VocabularyWords, item.Term)
		}
	}

	type check struct {
		section models.SectionType
		result  models.ValidationResult
	}
	var checks []check
	if lsn.WarmUp != nil {
		checks = append(checks, check{models.SectionWarmUp, sections.ValidateWarmUp(*lsn.WarmUp, lsn.Level, sctx)})
	}
	if lsn.Vocabulary != nil {
		checks = append(checks, check{models.SectionVocabulary, sections.ValidateVocabulary(*lsn.Vocabulary, lsn.Level, sctx)})
	}
	if lsn.Dialogue != nil {
		checks = append(checks, check{models.SectionDialogue, sections.ValidateDialogue(*lsn.Dialogue, lsn.Level, sctx)})
	}
	if lsn.Discussion != nil {
		checks = append(checks, check{models.SectionDiscussion, sections.ValidateDiscussion(*lsn.Discussion, lsn.Level, sctx)})
	}
	if lsn.Grammar != nil {
		checks = append(checks, check{models.SectionGrammar, sections.ValidateGrammar(*lsn.Grammar, lsn.Level, sctx)})
	}
	if lsn.Pronunciation != nil {
		checks = append(checks, check{models.SectionPronunciation, sections.ValidatePronunciation(*lsn.Pronunciation, lsn.Level, sctx)})
	}

	if len(checks) == 0 {
		return fmt.Errorf("lesson file has no sections to validate")
	}

	fmt.Printf("%-15s %-7s %-7s %s\n", "Section", "Valid", "Score", "Issues")
	fmt.Println(strings.Repeat("-", 60))
	failed := 0
	for _, ch := range checks {
		fmt.Printf("%-15s %-7v %-7.0f %d\n", ch.section, ch.result.IsValid, ch.result.Score, len(ch.result.Issues))
		for _, iss := range ch.result.Issues {
			fmt.Printf("    [%s] %s: %s\n", iss.Severity, iss.Type, iss.Message)
		}
		if !ch.result.IsValid {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d section(s) failed validation", failed)
	}
	fmt.Println("\nAll sections valid")
	return nil
}

// ExportAction writes a lesson YAML file out as export artifacts.
func ExportAction(c *cli.Context) error {
	file := c.String("file")
	if file == "" {
		return fmt.Errorf("no lesson file provided via --file flag")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read lesson file: %w", err)
	}
	var lsn models.Lesson
	if err := yaml.Unmarshal(data, &lsn); err != nil {
		return fmt.Errorf("failed to parse lesson file: %w", err)
	}

	exporter, err := export.NewExporter(c.String("output-dir"))
	if err != nil {
		return err
	}
	files, err := exporter.Export(lsn)
	if err != nil {
		return fmt.Errorf("failed to export lesson: %w", err)
	}
	for _, f := range files {
		fmt.Printf("Wrote %s\n", f)
	}
	return nil
}

func printUserMessage(msg models.UserErrorMessage) {
	fmt.Printf("\n%s\n", msg.Title)
	fmt.Println(strings.Repeat("=", len(msg.Title)))
	fmt.Println(msg.Message)
	if len(msg.Steps) > 0 {
		fmt.Println("\nWhat you can do:")
		for i, step := range msg.Steps {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
	}
	fmt.Printf("\nError ID: %s\n", msg.ErrorID)
}

func printMetrics(report models.LessonQualityMetrics) {
	fmt.Printf("\n%-15s %-7s %-9s %-9s %s\n", "Section", "Score", "Attempts", "Time(ms)", "Regenerated")
	fmt.Println(strings.Repeat("-", 60))
	for _, m := range report.Sections {
		fmt.Printf("%-15s %-7.0f %-9d %-9d %v\n", m.Section, m.Score, m.AttemptCount, m.GenerationTimeMs, m.Regenerated)
	}
	fmt.Printf("\nOverall: %.1f | Regenerations: %d | Total: %dms\n",
		report.OverallScore, report.TotalRegenerations, report.TotalTimeMs)
}

// GenerateFlags returns the generate command's flag set.
func GenerateFlags() []cli.Flag {
	return append(common.OptionFlags(),
		&cli.StringFlag{Name: "topic", Usage: "Lesson topic (required)"},
		&cli.StringFlag{Name: "level", Value: "B1", Usage: "CEFR level: A1, A2, B1, B2, or C1"},
		&cli.StringFlag{Name: "lesson-language", Value: "en", Usage: "Lesson language code"},
		&cli.StringFlag{Name: "endpoint", Value: "http://localhost:11434/api/generate", Usage: "Generation API endpoint"},
		&cli.StringFlag{Name: "model", Value: "llama3.1", Usage: "Generation model name"},
		&cli.Float64Flag{Name: "temperature", Value: 0.7, Usage: "Sampling temperature"},
		&cli.IntFlag{Name: "max-tokens", Value: 2048, Usage: "Maximum tokens per section"},
		&cli.BoolFlag{Name: "allow-partial", Usage: "Keep below-threshold sections instead of failing"},
		&cli.BoolFlag{Name: "save", Usage: "Persist the lesson to the database"},
		&cli.StringFlag{Name: "output-dir", Usage: "Export directory for YAML/Markdown artifacts"},
		&cli.BoolFlag{Name: "quiet", Usage: "Only log errors"},
	)
}

// CheckFlags returns the check command's flag set.
func CheckFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "file", Usage: "Lesson YAML file to validate (required)"},
	}
}

// ExportFlags returns the export command's flag set.
func ExportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "file", Usage: "Lesson YAML file to export (required)"},
		&cli.StringFlag{Name: "output-dir", Value: "lessons", Usage: "Export directory"},
	}
}
