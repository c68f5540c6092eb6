package artifactStore

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"

	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
)

type gcsStore struct {
	client        *storage.Client
	bucket        string
	rawPrefix     string
	derivedPrefix string
	logger        *logger_i.Logger
}

// NewGCSStore connects to Cloud Storage using ambient credentials.
func NewGCSStore(ctx context.Context, bucket, rawPrefix, derivedPrefix string) (Store, error) {
	logger := logger_i.NewLogger("GCSStore")

	client, err := storage.NewClient(ctx)
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &gcsStore{
		client:        client,
		bucket:        bucket,
		rawPrefix:     rawPrefix,
		derivedPrefix: derivedPrefix,
		logger:        logger,
	}, nil
}

func (s *gcsStore) UploadRaw(ctx context.Context, meetingID string, filename string, content []byte) (string, error) {
	key := fmt.Sprintf("%s/%s/%s", s.rawPrefix, meetingID, filename)
	return s.put(ctx, key, content)
}

func (s *gcsStore) DownloadRaw(ctx context.Context, meetingID string, filename string) ([]byte, error) {
	key := fmt.Sprintf("%s/%s/%s", s.rawPrefix, meetingID, filename)
	return s.get(ctx, key)
}

func (s *gcsStore) UploadDerived(ctx context.Context, meetingID string, name string, content []byte) (string, error) {
	key := fmt.Sprintf("%s/%s/%s", s.derivedPrefix, meetingID, name)
	return s.put(ctx, key, content)
}

func (s *gcsStore) DownloadDerived(ctx context.Context, meetingID string, name string) ([]byte, error) {
	key := fmt.Sprintf("%s/%s/%s", s.derivedPrefix, meetingID, name)
	return s.get(ctx, key)
}

func (s *gcsStore) DerivedPrefix(meetingID string) string {
	return fmt.Sprintf("gs://%s/%s/%s/", s.bucket, s.derivedPrefix, meetingID)
}

func (s *gcsStore) put(ctx context.Context, key string, content []byte) (string, error) {
	writer := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if _, err := writer.Write(content); err != nil {
		writer.Close()
		return "", goerr.Wrap(err, "failed to write to storage", goerr.V("key", key))
	}
	if err := writer.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize storage write", goerr.V("key", key))
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, key), nil
}

func (s *gcsStore) get(ctx context.Context, key string) ([]byte, error) {
	reader, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read from storage", goerr.V("key", key))
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to drain storage object", goerr.V("key", key))
	}
	return data, nil
}

func (s *gcsStore) Close() error {
	s.logger.Info("Shutting down storage client")
	return s.client.Close()
}
