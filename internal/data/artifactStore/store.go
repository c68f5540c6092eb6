package artifactStore

import "context"

// Store is the artifact port. Raw holds uploaded transcripts, derived
// holds pipeline outputs such as chunk_map.json. Upload methods return
// the canonical URI of the stored object.
type Store interface {
	UploadRaw(ctx context.Context, meetingID string, filename string, content []byte) (string, error)
	DownloadRaw(ctx context.Context, meetingID string, filename string) ([]byte, error)
	UploadDerived(ctx context.Context, meetingID string, name string, content []byte) (string, error)
	DownloadDerived(ctx context.Context, meetingID string, name string) ([]byte, error)
	// DerivedPrefix returns the URI prefix (with trailing slash) under
	// which all derived artifacts for a meeting live.
	DerivedPrefix(meetingID string) string
}

// ChunkMapArtifact is the fixed name of the citation lookup artifact.
const ChunkMapArtifact = "chunk_map.json"
