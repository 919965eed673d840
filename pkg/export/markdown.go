package export

import (
	"fmt"
	"strings"

	"github.com/lessonkit/lessonkit/models"
)

// renderMarkdown produces a printable study sheet for the lesson.
func renderMarkdown(lesson models.Lesson) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", lesson.Title)
	fmt.Fprintf(&b, "**Level:** %s  \n", lesson.Level)
	fmt.Fprintf(&b, "**Language:** %s  \n", lesson.Language)
	if lesson.Topic != "" {
		fmt.Fprintf(&b, "**Topic:** %s  \n", lesson.Topic)
	}
	if lesson.SourceURL != "" {
		fmt.Fprintf(&b, "**Source:** %s  \n", lesson.SourceURL)
	}
	b.WriteString("\n")

	if lesson.WarmUp != nil && len(lesson.WarmUp.Questions) > 0 {
		b.WriteString("## Warm-Up\n\n")
		for i, q := range lesson.WarmUp.Questions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
		b.WriteString("\n")
	}

	if lesson.Vocabulary != nil && len(lesson.Vocabulary.Items) > 0 {
		b.WriteString("## Vocabulary\n\n")
		b.WriteString("| Term | Definition | Example |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, item := range lesson.Vocabulary.Items {
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				escapeCell(item.Term), escapeCell(item.Definition), escapeCell(item.Example))
		}
		b.WriteString("\n")
	}

	if lesson.Dialogue != nil && len(lesson.Dialogue.Lines) > 0 {
		b.WriteString("## Dialogue\n\n")
		for _, line := range lesson.Dialogue.Lines {
			fmt.Fprintf(&b, "**%s:** %s\n\n", line.Speaker, line.Text)
		}
	}

	if lesson.Discussion != nil && len(lesson.Discussion.Questions) > 0 {
		b.WriteString("## Discussion\n\n")
		for i, q := range lesson.Discussion.Questions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
		b.WriteString("\n")
	}

	if lesson.Grammar != nil {
		g := lesson.Grammar
		b.WriteString("## Grammar\n\n")
		if g.Rule != "" {
			fmt.Fprintf(&b, "**Rule:** %s\n\n", g.Rule)
		}
		if g.Form != "" {
			fmt.Fprintf(&b, "**Form:** %s\n\n", g.Form)
		}
		if g.Usage != "" {
			fmt.Fprintf(&b, "**Usage:** %s\n\n", g.Usage)
		}
		if len(g.Examples) > 0 {
			b.WriteString("### Examples\n\n")
			for _, ex := range g.Examples {
				fmt.Fprintf(&b, "- %s\n", ex)
			}
			b.WriteString("\n")
		}
		if len(g.Exercises) > 0 {
			b.WriteString("### Exercises\n\n")
			for i, ex := range g.Exercises {
				fmt.Fprintf(&b, "%d. %s\n", i+1, ex.Prompt)
			}
			b.WriteString("\n### Answer Key\n\n")
			for i, ex := range g.Exercises {
				fmt.Fprintf(&b, "%d. %s\n", i+1, ex.Answer)
			}
			b.WriteString("\n")
		}
	}

	if lesson.Pronunciation != nil {
		p := lesson.Pronunciation
		b.WriteString("## Pronunciation\n\n")
		if len(p.Words) > 0 {
			b.WriteString("| Word | IPA | Tips |\n")
			b.WriteString("| --- | --- | --- |\n")
			for _, w := range p.Words {
				fmt.Fprintf(&b, "| %s | %s | %s |\n",
					escapeCell(w.Word), escapeCell(w.IPA), escapeCell(w.Tips))
			}
			b.WriteString("\n")
			for _, w := range p.Words {
				if w.PracticeSentence != "" {
					fmt.Fprintf(&b, "- *%s*\n", w.PracticeSentence)
				}
			}
			b.WriteString("\n")
		}
		if len(p.TongueTwisters) > 0 {
			b.WriteString("### Tongue Twisters\n\n")
			for _, t := range p.TongueTwisters {
				fmt.Fprintf(&b, "- %s", t.Text)
				if len(t.TargetSounds) > 0 {
					fmt.Fprintf(&b, " (%s)", strings.Join(t.TargetSounds, ", "))
				}
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
