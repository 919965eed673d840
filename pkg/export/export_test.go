package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/lessonkit/lessonkit/models"
)

func testLesson() models.Lesson {
	return models.Lesson{
		Title:    "At the Farmers Market!",
		Topic:    "shopping for produce",
		Level:    models.LevelB1,
		Language: "en",
		WarmUp: &models.WarmUpSection{
			Questions: []string{"What do you usually buy at a market?"},
		},
		Vocabulary: &models.VocabularySection{
			Items: []models.VocabularyItem{
				{Term: "harvest", Definition: "the gathering of ripe crops", Example: "The harvest starts in autumn."},
			},
		},
		Dialogue: &models.DialogueSection{
			Lines: []models.DialogueLine{
				{Speaker: "Anna", Text: "How much are the apples?"},
				{Speaker: "Ben", Text: "Two euros a kilo."},
			},
		},
	}
}

func TestExport_WritesArtifactsAndIndex(t *testing.T) {
	dir := t.TempDir()
	exporter, err := NewExporter(dir)
	if err != nil {
		t.Fatalf("NewExporter() error = %v", err)
	}

	files, err := exporter.Export(testLesson())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Export() returned %d files, want 2", len(files))
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("exported file %s missing: %v", f, err)
		}
		base := filepath.Base(f)
		if !strings.HasPrefix(base, "at-the-farmers-market-") {
			t.Errorf("file name = %q, want slug prefix at-the-farmers-market-", base)
		}
	}

	var yamlPath, mdPath string
	for _, f := range files {
		switch filepath.Ext(f) {
		case ".yaml":
			yamlPath = f
		case ".md":
			mdPath = f
		}
	}
	if yamlPath == "" || mdPath == "" {
		t.Fatalf("Export() files = %v, want one .yaml and one .md", files)
	}

	data, err := os.ReadFile(yamlPath)
	if err != nil {
		t.Fatalf("read yaml: %v", err)
	}
	var roundTrip models.Lesson
	if err := yaml.Unmarshal(data, &roundTrip); err != nil {
		t.Fatalf("unmarshal exported yaml: %v", err)
	}
	if roundTrip.Title != "At the Farmers Market!" || roundTrip.Level != models.LevelB1 {
		t.Errorf("round-tripped lesson = %+v", roundTrip)
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("read markdown: %v", err)
	}
	for _, want := range []string{"# At the Farmers Market!", "**Anna:**", "harvest"} {
		if !strings.Contains(string(md), want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	index := readIndex(t, dir)
	if len(index.Exports) != 1 {
		t.Fatalf("index has %d entries, want 1", len(index.Exports))
	}
	entry := index.Exports[0]
	if entry.Title != "At the Farmers Market!" || entry.Level != "B1" || entry.Language != "en" {
		t.Errorf("index entry = %+v", entry)
	}
	if len(entry.Files) != 2 {
		t.Errorf("index entry files = %v, want 2", entry.Files)
	}
}

func TestExport_ReexportReplacesIndexEntry(t *testing.T) {
	dir := t.TempDir()
	exporter, err := NewExporter(dir)
	if err != nil {
		t.Fatalf("NewExporter() error = %v", err)
	}

	lesson := testLesson()
	if _, err := exporter.Export(lesson); err != nil {
		t.Fatalf("first Export() error = %v", err)
	}

	lesson.Topic = "revised topic"
	if _, err := exporter.Export(lesson); err != nil {
		t.Fatalf("second Export() error = %v", err)
	}

	index := readIndex(t, dir)
	if len(index.Exports) != 1 {
		t.Errorf("index has %d entries after re-export, want 1", len(index.Exports))
	}
}

func TestExport_DistinctLessonsOrderedNewestFirst(t *testing.T) {
	dir := t.TempDir()
	exporter, err := NewExporter(dir)
	if err != nil {
		t.Fatalf("NewExporter() error = %v", err)
	}

	first := testLesson()
	if _, err := exporter.Export(first); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	second := testLesson()
	second.Title = "Ordering at a Cafe"
	if _, err := exporter.Export(second); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	index := readIndex(t, dir)
	if len(index.Exports) != 2 {
		t.Fatalf("index has %d entries, want 2", len(index.Exports))
	}
	if index.Exports[0].Title != "Ordering at a Cafe" {
		t.Errorf("index[0].Title = %q, want newest export first", index.Exports[0].Title)
	}
}

func TestExport_EmptyTitleFallsBackToDefaultSlug(t *testing.T) {
	dir := t.TempDir()
	exporter, err := NewExporter(dir)
	if err != nil {
		t.Fatalf("NewExporter() error = %v", err)
	}

	lesson := testLesson()
	lesson.Title = "???"
	files, err := exporter.Export(lesson)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.HasPrefix(filepath.Base(files[0]), "lesson-") {
		t.Errorf("file name = %q, want fallback slug lesson-", filepath.Base(files[0]))
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"At the Farmers Market!", "at-the-farmers-market"},
		{"  Café & Croissants  ", "caf-croissants"},
		{"ALL CAPS", "all-caps"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := slugify(tt.title); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func readIndex(t *testing.T, dir string) ExportIndex {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "index.yaml"))
	if err != nil {
		t.Fatalf("read index.yaml: %v", err)
	}
	var index ExportIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		t.Fatalf("parse index.yaml: %v", err)
	}
	return index
}
