package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/svalluru/MeetingsAPI/internal/apperr"
)

func TestParseTranscript_Structured(t *testing.T) {
	text := "[00:01:02] Alice: Project kickoff today.\n" +
		"[00:01:30] Bob Smith: Sounds good.\n" +
		"\n" +
		"[00:02:00] Alice: Next steps below."

	segments, participants, err := ParseTranscript(text)
	if err != nil {
		t.Fatalf("ParseTranscript failed: %v", err)
	}

	if len(segments) != 3 {
		t.Fatalf("Expected 3 segments, got %d", len(segments))
	}
	if segments[0].Timestamp != "00:01:02" || segments[0].Speaker != "Alice" {
		t.Errorf("First segment parsed wrong: %+v", segments[0])
	}
	if segments[1].Speaker != "Bob Smith" || segments[1].Text != "Sounds good." {
		t.Errorf("Multi-word speaker parsed wrong: %+v", segments[1])
	}
	if len(participants) != 2 || participants[0] != "Alice" || participants[1] != "Bob Smith" {
		t.Errorf("Participants got %v", participants)
	}
}

func TestParseTranscript_MissingTimestampDefaults(t *testing.T) {
	segments, _, err := ParseTranscript("Alice: no timestamp here")
	if err != nil {
		t.Fatalf("ParseTranscript failed: %v", err)
	}
	if len(segments) != 1 || segments[0].Timestamp != "00:00:00" {
		t.Errorf("Expected default timestamp, got %+v", segments)
	}
}

func TestParseTranscript_DashSeparator(t *testing.T) {
	segments, _, err := ParseTranscript("[00:05:00] Carol - reviewing the budget")
	if err != nil {
		t.Fatalf("ParseTranscript failed: %v", err)
	}
	if segments[0].Speaker != "Carol" || segments[0].Text != "reviewing the budget" {
		t.Errorf("Dash separator parsed wrong: %+v", segments[0])
	}
}

func TestParseTranscript_UnstructuredFallback(t *testing.T) {
	segments, participants, err := ParseTranscript("just a wall of meeting notes with no format at all")
	if err != nil {
		t.Fatalf("ParseTranscript failed: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("Expected single fallback segment, got %d", len(segments))
	}
	if segments[0].Speaker != "Unknown" || segments[0].Timestamp != "00:00:00" {
		t.Errorf("Fallback segment wrong: %+v", segments[0])
	}
	if len(participants) != 1 || participants[0] != "Unknown" {
		t.Errorf("Participants got %v", participants)
	}
}

func TestParseTranscript_Empty(t *testing.T) {
	_, _, err := ParseTranscript("   \n  ")
	if err == nil {
		t.Fatal("Expected error for empty transcript")
	}
	if !errors.Is(err, apperr.ErrParse) {
		t.Errorf("Expected parse error class, got %v", err)
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"Q3_Planning_Review.txt", "q3 planning review"},
		{"standup.pdf", "standup"},
		{"no_extension", "no extension"},
	}

	for _, tt := range tests {
		if got := NormalizeTitle(tt.filename); got != tt.expected {
			t.Errorf("NormalizeTitle(%s) = %q; want %q", tt.filename, got, tt.expected)
		}
	}
}

func TestGetDocType(t *testing.T) {
	tests := []struct {
		path     string
		expected docType
	}{
		{"meeting.pdf", docPDF},
		{"MEETING.DOCX", docText},
		{"notes.txt", docText},
		{"image.png", docErr},
	}

	for _, tt := range tests {
		if got := getDocType(tt.path); got != tt.expected {
			t.Errorf("getDocType(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}

func TestExtractText_Txt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt")
	content := "[00:00:01] Alice: hello"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	got, err := ExtractText(path)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if got != content {
		t.Errorf("ExtractText got %q, want %q", got, content)
	}
}

func TestExtractText_Unsupported(t *testing.T) {
	if _, err := ExtractText("meeting.png"); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}
