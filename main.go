package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lessonkit/lessonkit/internal/analyze"
	"github.com/lessonkit/lessonkit/internal/lesson"
	"github.com/lessonkit/lessonkit/internal/sessions"
	"github.com/lessonkit/lessonkit/internal/validate"
)

func main() {
	app := &cli.App{
		Name:  "lessonkit",
		Usage: "Analyze web content, validate extracted text, and generate validated language lessons",
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "Check pages for lesson-extraction suitability",
				Flags:  analyze.Flags(),
				Action: analyze.AnalyzeAction,
			},
			{
				Name:   "validate",
				Usage:  "Validate extracted text against content quality rules",
				Flags:  validate.Flags(),
				Action: validate.ValidateAction,
			},
			{
				Name:  "lesson",
				Usage: "Generate, check, and export lessons",
				Subcommands: []*cli.Command{
					{
						Name:   "generate",
						Usage:  "Generate a lesson section by section with validation",
						Flags:  lesson.GenerateFlags(),
						Action: lesson.GenerateAction,
					},
					{
						Name:   "check",
						Usage:  "Validate a lesson YAML file",
						Flags:  lesson.CheckFlags(),
						Action: lesson.CheckAction,
					},
					{
						Name:   "export",
						Usage:  "Write a lesson as YAML and Markdown artifacts",
						Flags:  lesson.ExportFlags(),
						Action: lesson.ExportAction,
					},
				},
			},
			{
				Name:  "sessions",
				Usage: "Inspect and clean up extraction sessions",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List persisted sessions",
						Flags:  sessions.ListFlags(),
						Action: sessions.ListAction,
					},
					{
						Name:   "show",
						Usage:  "Show one session and its event log",
						Flags:  sessions.ShowFlags(),
						Action: sessions.ShowAction,
					},
					{
						Name:   "sweep",
						Usage:  "Delete expired terminal sessions",
						Flags:  sessions.SweepFlags(),
						Action: sessions.SweepAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
