package chunker

import (
	"strings"
	"testing"

	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
)

func seg(ts, speaker, text string) meetingModel.TranscriptSegment {
	return meetingModel.TranscriptSegment{Timestamp: ts, Speaker: speaker, Text: text}
}

func TestChunkSegments_Empty(t *testing.T) {
	if got := ChunkSegments(nil, Options{MaxTokens: 10, Overlap: 1}); got != nil {
		t.Errorf("Expected nil for empty input, got %d chunks", len(got))
	}
}

func TestChunkSegments_SingleWindow(t *testing.T) {
	segments := []meetingModel.TranscriptSegment{
		seg("00:00:01", "Alice", "hello everyone"),
		seg("00:00:05", "Bob", "hi there"),
	}

	chunks := ChunkSegments(segments, Options{MaxTokens: 100, Overlap: 1})

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	c := chunks[0]
	want := "[00:00:01] Alice: hello everyone\n[00:00:05] Bob: hi there"
	if c.Text != want {
		t.Errorf("Text got %q, want %q", c.Text, want)
	}
	if c.TimestampStart != "00:00:01" || c.TimestampEnd != "00:00:05" {
		t.Errorf("Time range got [%s, %s]", c.TimestampStart, c.TimestampEnd)
	}
	if len(c.Speakers) != 2 || c.Speakers[0] != "Alice" || c.Speakers[1] != "Bob" {
		t.Errorf("Speakers got %v", c.Speakers)
	}
	if c.Speaker != "Alice, Bob" {
		t.Errorf("Speaker got %q", c.Speaker)
	}
	if c.ChunkID == "" {
		t.Error("ChunkID not assigned")
	}
}

func TestChunkSegments_OverlapSharesTrailingSegment(t *testing.T) {
	// Each segment is 3 tokens so two fit in a 6-token window.
	segments := []meetingModel.TranscriptSegment{
		seg("00:00:01", "A", "one two three"),
		seg("00:00:02", "B", "four five six"),
		seg("00:00:03", "C", "seven eight nine"),
	}

	chunks := ChunkSegments(segments, Options{MaxTokens: 6, Overlap: 1})

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}
	if !strings.Contains(chunks[0].Text, "four five six") {
		t.Errorf("First chunk missing second segment: %q", chunks[0].Text)
	}
	// Overlap of 1 means the second window starts at the second segment.
	if !strings.Contains(chunks[1].Text, "four five six") {
		t.Errorf("Second chunk should re-include the overlapped segment: %q", chunks[1].Text)
	}
	if !strings.Contains(chunks[1].Text, "seven eight nine") {
		t.Errorf("Second chunk missing last segment: %q", chunks[1].Text)
	}
}

func TestChunkSegments_OversizedSegmentStillIncluded(t *testing.T) {
	big := strings.Repeat("word ", 50)
	segments := []meetingModel.TranscriptSegment{
		seg("00:00:01", "A", strings.TrimSpace(big)),
		seg("00:00:02", "B", "short one"),
	}

	chunks := ChunkSegments(segments, Options{MaxTokens: 10, Overlap: 0})

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}
	if !strings.Contains(chunks[0].Text, "word") {
		t.Errorf("Oversized segment was dropped: %q", chunks[0].Text)
	}
	if !strings.Contains(chunks[1].Text, "short one") {
		t.Errorf("Second chunk wrong: %q", chunks[1].Text)
	}
}

func TestChunkSegments_AlwaysAdvances(t *testing.T) {
	// Overlap equal to the batch size must not cause an infinite loop.
	segments := []meetingModel.TranscriptSegment{
		seg("00:00:01", "A", "one two"),
		seg("00:00:02", "B", "three four"),
		seg("00:00:03", "C", "five six"),
	}

	chunks := ChunkSegments(segments, Options{MaxTokens: 2, Overlap: 5})

	if len(chunks) != 3 {
		t.Fatalf("Expected 3 single-segment chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.TimestampStart != segments[i].Timestamp {
			t.Errorf("Chunk %d starts at %s, want %s", i, c.TimestampStart, segments[i].Timestamp)
		}
	}
}

func TestChunkSegments_SingleSpeakerLabel(t *testing.T) {
	segments := []meetingModel.TranscriptSegment{
		seg("00:00:01", "Alice", "first point"),
		seg("00:00:02", "Alice", "second point"),
	}

	chunks := ChunkSegments(segments, Options{MaxTokens: 100, Overlap: 1})

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Speaker != "Alice" {
		t.Errorf("Speaker got %q, want Alice", chunks[0].Speaker)
	}
}
