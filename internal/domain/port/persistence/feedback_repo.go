package persistence

import (
	"context"

	"github.com/flatbank/flatbank/internal/domain/entity"
)

// FeedbackRepository persists customer feedback.
type FeedbackRepository interface {
	// Append writes a new feedback entry and returns its assigned id
	Append(ctx context.Context, f *entity.Feedback) (uint64, error)
	// ListByUser returns the user's feedback in record order
	ListByUser(ctx context.Context, userID uint32) ([]entity.Feedback, error)
	// ReviewPending marks every unreviewed entry as reviewed in one pass
	// under a single file lock and returns the entries it flipped
	ReviewPending(ctx context.Context, action string) ([]entity.Feedback, error)
}
