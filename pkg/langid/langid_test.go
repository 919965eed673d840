package langid

import (
	"math"
	"testing"

	"github.com/lessonkit/lessonkit/models"
)

const englishSample = "the cat and the dog of the town went to sit in the sun because it is " +
	"clear that it was warm for them on the grass and they are happy with him as his " +
	"friends say this could have come from nothing not once"

func TestDetect_English(t *testing.T) {
	d := Detect(englishSample, "", models.DefaultSupportedLanguages)
	if d.Language != "en" {
		t.Errorf("Detect() language = %q, want %q", d.Language, "en")
	}
	if d.Confidence < 0.9 {
		t.Errorf("Detect() confidence = %v, want >= 0.9", d.Confidence)
	}
}

func TestDetect_Spanish(t *testing.T) {
	text := "el perro y la casa de que en un los se del las una por con para es su al como más"
	d := Detect(text, "", models.DefaultSupportedLanguages)
	if d.Language != "es" {
		t.Errorf("Detect() language = %q, want %q", d.Language, "es")
	}
}

func TestDetect_DeclaredFallback(t *testing.T) {
	// Gibberish scores below 0.5, so the declared language wins at 0.8.
	d := Detect("xyzzy plugh qwerty asdf zxcv", "pt-BR", models.DefaultSupportedLanguages)
	if d.Language != "pt" {
		t.Errorf("Detect() language = %q, want %q", d.Language, "pt")
	}
	if math.Abs(d.Confidence-0.8) > 1e-9 {
		t.Errorf("Detect() confidence = %v, want 0.8", d.Confidence)
	}
}

func TestDetect_DeclaredUnsupported(t *testing.T) {
	d := Detect("xyzzy plugh qwerty asdf zxcv", "xx", models.DefaultSupportedLanguages)
	if d.Language != "" {
		t.Errorf("Detect() language = %q, want empty", d.Language)
	}
	if d.Confidence != 0 {
		t.Errorf("Detect() confidence = %v, want 0", d.Confidence)
	}
}

func TestDetect_NoBoostBelowThreshold(t *testing.T) {
	// Two stop words out of twenty: raw 0.1, no boost applied.
	d := Detect("the house is big", "", models.DefaultSupportedLanguages)
	if d.Language != "en" {
		t.Errorf("Detect() language = %q, want %q", d.Language, "en")
	}
	if math.Abs(d.Confidence-0.1) > 1e-9 {
		t.Errorf("Detect() confidence = %v, want 0.1", d.Confidence)
	}
}

func TestDetect_BoostAboveThreshold(t *testing.T) {
	// Ten stop words out of twenty: raw 0.5, boosted to 0.7.
	text := "the and of to in is that it was for"
	d := Detect(text, "", models.DefaultSupportedLanguages)
	if d.Language != "en" {
		t.Errorf("Detect() language = %q, want %q", d.Language, "en")
	}
	if math.Abs(d.Confidence-0.7) > 1e-9 {
		t.Errorf("Detect() confidence = %v, want 0.7", d.Confidence)
	}
}

func TestDetect_TieBreakFollowsSupportedOrder(t *testing.T) {
	// "in is" matches two stop words in both English and Dutch; the
	// earlier supported entry wins the tie.
	tests := []struct {
		name      string
		supported []string
		want      string
	}{
		{"english first", []string{"en", "nl"}, "en"},
		{"dutch first", []string{"nl", "en"}, "nl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Detect("in is", "", tt.supported)
			if d.Language != tt.want {
				t.Errorf("Detect() language = %q, want %q", d.Language, tt.want)
			}
		})
	}
}

func TestDetect_CJKSubstrings(t *testing.T) {
	d := Detect("これは日本語のテキストです。この文章はテストのために書かれています。", "", models.DefaultSupportedLanguages)
	if d.Language != "ja" {
		t.Errorf("Detect() language = %q, want %q", d.Language, "ja")
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		lang string
		want bool
	}{
		{"en", true},
		{"en-US", true},
		{"pt_BR", true},
		{"EN", true},
		{"xx", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSupported(tt.lang, models.DefaultSupportedLanguages); got != tt.want {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.lang, got, tt.want)
		}
	}
}

func TestTruncate_RuneBoundary(t *testing.T) {
	s := "日本語テキスト"
	got := truncate(s, 4)
	if got != "日" {
		t.Errorf("truncate() = %q, want %q", got, "日")
	}
	if got := truncate("short", 100); got != "short" {
		t.Errorf("truncate() = %q, want %q", got, "short")
	}
}
