package metadataStore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/svalluru/MeetingsAPI/internal/apperr"
	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
)

type memoryStore struct {
	mu      sync.RWMutex
	records map[string]meetingModel.MeetingRecord
}

// NewMemoryStore keeps the meeting catalog in process memory.
func NewMemoryStore() Store {
	return &memoryStore{records: make(map[string]meetingModel.MeetingRecord)}
}

func (s *memoryStore) PutMeeting(ctx context.Context, record meetingModel.MeetingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.MeetingID] = record
	return nil
}

func (s *memoryStore) GetMeeting(ctx context.Context, meetingID string) (meetingModel.MeetingRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[meetingID]
	return record, ok, nil
}

func (s *memoryStore) ListMeetings(ctx context.Context, filter ListFilter) ([]meetingModel.MeetingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []meetingModel.MeetingRecord
	for _, record := range s.records {
		if filter.Status != "" && record.Status != filter.Status {
			continue
		}
		if filter.Title != "" && !strings.Contains(strings.ToLower(record.TitleNormalized), strings.ToLower(filter.Title)) {
			continue
		}
		if filter.Date != "" && record.MeetingDate != filter.Date {
			continue
		}
		if filter.Participant != "" && !hasParticipant(record.Participants, filter.Participant) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *memoryStore) UpdateStatus(ctx context.Context, meetingID string, ingestionStatus meetingModel.IngestionStatus, errorMessage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[meetingID]
	if !ok {
		return goerr.Wrap(apperr.ErrNotFound, "meeting not found", goerr.V("meetingID", meetingID))
	}

	record.Status = ingestionStatus
	switch ingestionStatus {
	case meetingModel.StatusReady:
		record.IngestedAt = time.Now().UTC()
		record.ErrorMessage = ""
	case meetingModel.StatusFailed:
		record.ErrorMessage = errorMessage
	}
	s.records[meetingID] = record
	return nil
}

func hasParticipant(participants []string, name string) bool {
	for _, p := range participants {
		if p == name {
			return true
		}
	}
	return false
}
