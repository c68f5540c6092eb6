package artifactStore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

type localStore struct {
	root string
}

// NewLocalStore keeps artifacts on the local filesystem under root,
// mirroring the raw/ and derived/ layout of the bucket store.
func NewLocalStore(root string) (Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create artifact root", goerr.V("root", root))
	}
	return &localStore{root: root}, nil
}

func (s *localStore) UploadRaw(ctx context.Context, meetingID string, filename string, content []byte) (string, error) {
	return s.put(filepath.Join(s.root, "raw", meetingID, filename), content)
}

func (s *localStore) DownloadRaw(ctx context.Context, meetingID string, filename string) ([]byte, error) {
	return s.get(filepath.Join(s.root, "raw", meetingID, filename))
}

func (s *localStore) UploadDerived(ctx context.Context, meetingID string, name string, content []byte) (string, error) {
	return s.put(filepath.Join(s.root, "derived", meetingID, name), content)
}

func (s *localStore) DownloadDerived(ctx context.Context, meetingID string, name string) ([]byte, error) {
	return s.get(filepath.Join(s.root, "derived", meetingID, name))
}

func (s *localStore) DerivedPrefix(meetingID string) string {
	return fmt.Sprintf("file://%s/", filepath.Join(s.root, "derived", meetingID))
}

func (s *localStore) put(path string, content []byte) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", goerr.Wrap(err, "failed to create artifact directory", goerr.V("path", path))
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", goerr.Wrap(err, "failed to write artifact", goerr.V("path", path))
	}
	return "file://" + path, nil
}

func (s *localStore) get(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read artifact", goerr.V("path", path))
	}
	return data, nil
}
