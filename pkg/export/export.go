// Package export writes finished lessons as YAML and Markdown
// artifacts under an output directory, maintaining an index of exports.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lessonkit/lessonkit/models"
)

// ExportInfo is one index entry describing an exported lesson.
type ExportInfo struct {
	Slug       string    `yaml:"slug"`
	Title      string    `yaml:"title"`
	Level      string    `yaml:"level"`
	Language   string    `yaml:"language"`
	ExportedAt time.Time `yaml:"exported_at"`
	Files      []string  `yaml:"files"`
}

// ExportIndex is the index.yaml at the output root, newest first.
type ExportIndex struct {
	Exports []ExportInfo `yaml:"exports"`
}

// Exporter writes lesson artifacts under baseDir.
type Exporter struct {
	baseDir string
}

func NewExporter(baseDir string) (*Exporter, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &Exporter{baseDir: baseDir}, nil
}

// Export writes the lesson as <slug>.yaml and <slug>.md and updates the
// index. Returns the written file paths.
func (e *Exporter) Export(lesson models.Lesson) ([]string, error) {
	slug := slugify(lesson.Title)
	if slug == "" {
		slug = "lesson"
	}
	slug = fmt.Sprintf("%s-%s", slug, time.Now().Format("2006-01-02"))

	yamlPath := filepath.Join(e.baseDir, slug+".yaml")
	data, err := yaml.Marshal(&lesson)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lesson: %w", err)
	}
	if err := os.WriteFile(yamlPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write lesson yaml: %w", err)
	}

	mdPath := filepath.Join(e.baseDir, slug+".md")
	if err := os.WriteFile(mdPath, []byte(renderMarkdown(lesson)), 0644); err != nil {
		return nil, fmt.Errorf("failed to write lesson markdown: %w", err)
	}

	files := []string{yamlPath, mdPath}
	if err := e.updateIndex(ExportInfo{
		Slug:       slug,
		Title:      lesson.Title,
		Level:      string(lesson.Level),
		Language:   lesson.Language,
		ExportedAt: time.Now(),
		Files:      []string{slug + ".yaml", slug + ".md"},
	}); err != nil {
		return files, err
	}
	return files, nil
}

// updateIndex adds or replaces the slug's entry in index.yaml.
func (e *Exporter) updateIndex(info ExportInfo) error {
	indexPath := filepath.Join(e.baseDir, "index.yaml")

	var index ExportIndex
	data, err := os.ReadFile(indexPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read export index: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &index); err != nil {
			return fmt.Errorf("failed to parse export index: %w", err)
		}
	}

	found := false
	for i, entry := range index.Exports {
		if entry.Slug == info.Slug {
			index.Exports[i] = info
			found = true
			break
		}
	}
	if !found {
		index.Exports = append(index.Exports, info)
	}

	sort.Slice(index.Exports, func(i, j int) bool {
		return index.Exports[i].ExportedAt.After(index.Exports[j].ExportedAt)
	})

	out, err := yaml.Marshal(&index)
	if err != nil {
		return fmt.Errorf("failed to marshal export index: %w", err)
	}
	if err := os.WriteFile(indexPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write export index: %w", err)
	}
	return nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
