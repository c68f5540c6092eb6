package artifactStore

import (
	"context"
	"strings"
	"testing"
)

func TestLocalStore_RawRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	uri, err := store.UploadRaw(ctx, "meeting-1", "standup.txt", []byte("hello"))
	if err != nil {
		t.Fatalf("UploadRaw failed: %v", err)
	}
	if !strings.HasPrefix(uri, "file://") {
		t.Errorf("Unexpected URI scheme: %s", uri)
	}
	if !strings.Contains(uri, "raw/meeting-1/standup.txt") {
		t.Errorf("URI missing key path: %s", uri)
	}

	data, err := store.DownloadRaw(ctx, "meeting-1", "standup.txt")
	if err != nil {
		t.Fatalf("DownloadRaw failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Round trip mismatch: %q", data)
	}
}

func TestLocalStore_DerivedRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	if _, err := store.UploadDerived(ctx, "meeting-1", ChunkMapArtifact, []byte(`{"chunks":[]}`)); err != nil {
		t.Fatalf("UploadDerived failed: %v", err)
	}

	data, err := store.DownloadDerived(ctx, "meeting-1", ChunkMapArtifact)
	if err != nil {
		t.Fatalf("DownloadDerived failed: %v", err)
	}
	if string(data) != `{"chunks":[]}` {
		t.Errorf("Round trip mismatch: %q", data)
	}
}

func TestLocalStore_DerivedPrefixHasTrailingSlash(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	prefix := store.DerivedPrefix("meeting-1")
	if !strings.HasSuffix(prefix, "meeting-1/") {
		t.Errorf("Prefix missing trailing slash: %s", prefix)
	}
}

func TestLocalStore_MissingArtifact(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	if _, err := store.DownloadDerived(context.Background(), "nope", ChunkMapArtifact); err == nil {
		t.Error("Expected error for missing artifact")
	}
}
