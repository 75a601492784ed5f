package model

import (
	"time"

	"github.com/flatbank/flatbank/internal/domain/entity"
)

// Field widths of the feedback record.
const (
	MessageLen = 512
	ActionLen  = 256
)

// FeedbackRecord is the on-disk shape of a feedback entry.
type FeedbackRecord struct {
	ID          uint64
	UserID      uint32
	Message     [MessageLen]byte
	Reviewed    uint8
	ActionTaken [ActionLen]byte
	SubmittedAt int64 // unix seconds
}

// FromFeedback fills the record from a domain feedback entry.
func FromFeedback(f *entity.Feedback) *FeedbackRecord {
	var r FeedbackRecord
	r.ID = f.ID
	r.UserID = f.UserID
	putString(r.Message[:], f.Message)
	r.Reviewed = boolToByte(f.Reviewed)
	putString(r.ActionTaken[:], f.ActionTaken)
	r.SubmittedAt = f.SubmittedAt.Unix()
	return &r
}

// ToFeedback converts the record back to a domain feedback entry.
func (r *FeedbackRecord) ToFeedback() *entity.Feedback {
	return &entity.Feedback{
		ID:          r.ID,
		UserID:      r.UserID,
		Message:     getString(r.Message[:]),
		Reviewed:    r.Reviewed == 1,
		ActionTaken: getString(r.ActionTaken[:]),
		SubmittedAt: time.Unix(r.SubmittedAt, 0),
	}
}
