package entity

import "time"

// Feedback is a customer message reviewed in place by a manager.
type Feedback struct {
	ID          uint64
	UserID      uint32
	Message     string
	Reviewed    bool
	ActionTaken string
	SubmittedAt time.Time
}

// StatusString renders the reviewed flag for listings.
func (f *Feedback) StatusString() string {
	if f.Reviewed {
		return "REVIEWED"
	}
	return "PENDING"
}
