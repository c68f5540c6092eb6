package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/svalluru/MeetingsAPI/internal/apperr"
	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
)

// Matches "[HH:MM:SS] Speaker: content" with an optional timestamp and
// flexible ":" / "-" separators between speaker and content.
var segmentPattern = regexp.MustCompile(
	`^(?:\[(\d{1,2}:?\d{1,2}:?\d{2})\]\s+)?([^:\-\s]+(?:\s+[^:\-\s]+)*?)\s*[:\-]\s*(?::{2})?\s*(.*)$`,
)

// ParseTranscript turns raw transcript text into normalized segments.
// Lines that do not match the structured format are not dropped: when no
// line matches at all, the whole text becomes one "Unknown" segment.
func ParseTranscript(text string) ([]meetingModel.TranscriptSegment, []string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, goerr.Wrap(apperr.ErrParse, "transcript text cannot be empty")
	}

	var segments []meetingModel.TranscriptSegment
	participantSet := make(map[string]struct{})

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := segmentPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		timestamp, speaker, content := m[1], strings.TrimSpace(m[2]), strings.TrimSpace(m[3])
		if timestamp == "" {
			timestamp = "00:00:00"
		}

		segments = append(segments, meetingModel.TranscriptSegment{
			Timestamp: timestamp,
			Speaker:   speaker,
			Text:      content,
		})
		participantSet[speaker] = struct{}{}
	}

	// Unstructured transcripts still get ingested as a single segment.
	if len(segments) == 0 {
		segments = append(segments, meetingModel.TranscriptSegment{
			Timestamp: "00:00:00",
			Speaker:   "Unknown",
			Text:      strings.TrimSpace(text),
		})
		participantSet["Unknown"] = struct{}{}
	}

	participants := make([]string, 0, len(participantSet))
	for p := range participantSet {
		participants = append(participants, p)
	}
	sort.Strings(participants)

	return segments, participants, nil
}

// NormalizeTitle derives the stored title from an upload filename:
// extension stripped, lowercased, underscores become spaces.
func NormalizeTitle(filename string) string {
	name := filename
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return strings.ReplaceAll(strings.ToLower(name), "_", " ")
}
