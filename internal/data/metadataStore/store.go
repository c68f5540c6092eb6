package metadataStore

import (
	"context"

	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
)

// ListFilter narrows ListMeetings results. Zero values match everything.
// Title is a case-insensitive substring match, Date an exact ISO date,
// Participant an exact member match.
type ListFilter struct {
	Status      meetingModel.IngestionStatus
	Title       string
	Date        string
	Participant string
}

// Store is the meeting catalog port.
type Store interface {
	PutMeeting(ctx context.Context, record meetingModel.MeetingRecord) error
	GetMeeting(ctx context.Context, meetingID string) (meetingModel.MeetingRecord, bool, error)
	ListMeetings(ctx context.Context, filter ListFilter) ([]meetingModel.MeetingRecord, error)
	// UpdateStatus transitions a meeting record. Moving to READY stamps
	// IngestedAt and clears any prior error message, moving to FAILED
	// records the message.
	UpdateStatus(ctx context.Context, meetingID string, status meetingModel.IngestionStatus, errorMessage string) error
}
