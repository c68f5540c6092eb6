package chunker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
)

// Options controls the sliding window. MaxTokens caps the word-count of a
// chunk, Overlap is how many trailing segments the next window re-includes.
type Options struct {
	MaxTokens int
	Overlap   int
}

// ChunkSegments slides a token window over normalized segments. A single
// segment larger than MaxTokens still becomes its own chunk, and the
// window always advances by at least one segment so it terminates.
func ChunkSegments(segments []meetingModel.TranscriptSegment, opts Options) []meetingModel.Chunk {
	if len(segments) == 0 {
		return nil
	}

	var chunks []meetingModel.Chunk
	i := 0

	for i < len(segments) {
		tokenCount := 0
		var batch []meetingModel.TranscriptSegment

		j := i
		for j < len(segments) {
			segTokens := len(strings.Fields(segments[j].Text))
			if tokenCount+segTokens > opts.MaxTokens && len(batch) > 0 {
				break
			}
			batch = append(batch, segments[j])
			tokenCount += segTokens
			j++
		}

		if len(batch) == 0 {
			break
		}

		chunks = append(chunks, buildChunk(batch))

		advance := len(batch) - opts.Overlap
		if advance < 1 {
			advance = 1
		}
		i += advance
	}

	return chunks
}

func buildChunk(batch []meetingModel.TranscriptSegment) meetingModel.Chunk {
	lines := make([]string, 0, len(batch))
	speakerSet := make(map[string]struct{})
	for _, s := range batch {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", s.Timestamp, s.Speaker, s.Text))
		speakerSet[s.Speaker] = struct{}{}
	}

	speakers := make([]string, 0, len(speakerSet))
	for s := range speakerSet {
		speakers = append(speakers, s)
	}
	sort.Strings(speakers)

	speaker := speakers[0]
	if len(speakers) > 1 {
		speaker = strings.Join(speakers, ", ")
	}

	return meetingModel.Chunk{
		ChunkID:        uuid.New().String(),
		Text:           strings.Join(lines, "\n"),
		TimestampStart: batch[0].Timestamp,
		TimestampEnd:   batch[len(batch)-1].Timestamp,
		Speaker:        speaker,
		Speakers:       speakers,
	}
}
