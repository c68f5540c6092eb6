package metadataStore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
)

type firestoreStore struct {
	client     *firestore.Client
	collection string
	logger     *logger_i.Logger
}

// NewFirestoreStore connects to Firestore using ambient credentials.
func NewFirestoreStore(ctx context.Context, projectID, collection string) (Store, error) {
	logger := logger_i.NewLogger("FirestoreStore")

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("project", projectID))
	}

	return &firestoreStore{
		client:     client,
		collection: collection,
		logger:     logger,
	}, nil
}

func (s *firestoreStore) PutMeeting(ctx context.Context, record meetingModel.MeetingRecord) error {
	_, err := s.client.Collection(s.collection).Doc(record.MeetingID).Set(ctx, record)
	if err != nil {
		return goerr.Wrap(err, "failed to save meeting record", goerr.V("meetingID", record.MeetingID))
	}
	return nil
}

func (s *firestoreStore) GetMeeting(ctx context.Context, meetingID string) (meetingModel.MeetingRecord, bool, error) {
	snap, err := s.client.Collection(s.collection).Doc(meetingID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return meetingModel.MeetingRecord{}, false, nil
		}
		return meetingModel.MeetingRecord{}, false, goerr.Wrap(err, "failed to fetch meeting record", goerr.V("meetingID", meetingID))
	}

	var record meetingModel.MeetingRecord
	if err := snap.DataTo(&record); err != nil {
		return meetingModel.MeetingRecord{}, false, goerr.Wrap(err, "failed to decode meeting record", goerr.V("meetingID", meetingID))
	}
	return record, true, nil
}

func (s *firestoreStore) ListMeetings(ctx context.Context, filter ListFilter) ([]meetingModel.MeetingRecord, error) {
	query := s.client.Collection(s.collection).Query
	if filter.Status != "" {
		query = query.Where("Status", "==", string(filter.Status))
	}
	if filter.Date != "" {
		query = query.Where("MeetingDate", "==", filter.Date)
	}
	if filter.Participant != "" {
		query = query.Where("Participants", "array-contains", filter.Participant)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var records []meetingModel.MeetingRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list meeting records")
		}

		var record meetingModel.MeetingRecord
		if err := snap.DataTo(&record); err != nil {
			s.logger.Warn("Skipping undecodable meeting record", "doc", snap.Ref.ID, "error:", err)
			continue
		}
		// Firestore has no substring operator, so the title match runs
		// client side after the indexed filters.
		if filter.Title != "" && !strings.Contains(strings.ToLower(record.TitleNormalized), strings.ToLower(filter.Title)) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *firestoreStore) UpdateStatus(ctx context.Context, meetingID string, ingestionStatus meetingModel.IngestionStatus, errorMessage string) error {
	updates := []firestore.Update{
		{Path: "Status", Value: string(ingestionStatus)},
	}
	switch ingestionStatus {
	case meetingModel.StatusReady:
		updates = append(updates,
			firestore.Update{Path: "IngestedAt", Value: time.Now().UTC()},
			firestore.Update{Path: "ErrorMessage", Value: ""},
		)
	case meetingModel.StatusFailed:
		updates = append(updates, firestore.Update{Path: "ErrorMessage", Value: errorMessage})
	}

	_, err := s.client.Collection(s.collection).Doc(meetingID).Update(ctx, updates)
	if err != nil {
		return goerr.Wrap(err, "failed to update meeting status", goerr.V("meetingID", meetingID), goerr.V("status", string(ingestionStatus)))
	}
	return nil
}

func (s *firestoreStore) Close() error {
	s.logger.Info("Shutting down Firestore")
	return s.client.Close()
}
