package page

import (
	"testing"
)

func TestNewSnapshot(t *testing.T) {
	snap, err := NewSnapshot("https://example.com/a",
		`<html lang="en-US"><head><title> My Page </title></head><body><p>hello world</p></body></html>`)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	if snap.Title != "My Page" {
		t.Errorf("Title = %q, want %q", snap.Title, "My Page")
	}
	if snap.DeclaredLang != "en-US" {
		t.Errorf("DeclaredLang = %q, want %q", snap.DeclaredLang, "en-US")
	}
	if got := snap.Text(); got != "hello world" {
		t.Errorf("Text() = %q, want %q", got, "hello world")
	}
}

func TestText_CollapsesWhitespace(t *testing.T) {
	snap, err := NewSnapshot("https://example.com",
		"<html><body><p>one\n\n  two</p>\t<p>three</p></body></html>")
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	if got := snap.Text(); got != "one two three" {
		t.Errorf("Text() = %q, want %q", got, "one two three")
	}
}

func TestFingerprint(t *testing.T) {
	a1, _ := NewSnapshot("https://example.com", "<html><body><p>first text</p></body></html>")
	a2, _ := NewSnapshot("https://example.com", "<html><body><p>completely different</p></body></html>")
	b, _ := NewSnapshot("https://example.com", "<html><body><div><p>first text</p></div></body></html>")

	// Text changes do not affect the structural fingerprint.
	if a1.Fingerprint() != a2.Fingerprint() {
		t.Error("fingerprints differ for identical structure")
	}
	// Structure changes do.
	if a1.Fingerprint() == b.Fingerprint() {
		t.Error("fingerprints equal for different structure")
	}
}

func TestEvents_SubscribeAndUnsubscribe(t *testing.T) {
	events := NewEvents()

	var got []bool
	unsubscribe := events.Subscribe(func(ev MutationEvent) {
		got = append(got, ev.Significant)
	})

	events.Publish(MutationEvent{Significant: true})
	events.Publish(MutationEvent{Significant: false})
	unsubscribe()
	events.Publish(MutationEvent{Significant: true})

	if len(got) != 2 {
		t.Fatalf("received %d events, want 2", len(got))
	}
	if !got[0] || got[1] {
		t.Errorf("events = %v, want [true false]", got)
	}
}
