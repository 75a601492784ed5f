package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/flatbank/flatbank/internal/domain/entity"
)

// AddFeedback stores a feedback message for later manager review.
func (s *Service) AddFeedback(ctx context.Context, userID uint32, message string) (string, error) {
	fb := &entity.Feedback{
		UserID:      userID,
		Message:     message,
		SubmittedAt: s.timeProvider.Now(),
	}
	id, err := s.feedback.Append(ctx, fb)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Feedback Submitted (ID: %d). Thank you!", id), nil
}

// ViewFeedback lists the user's feedback entries and their review status.
func (s *Service) ViewFeedback(ctx context.Context, userID uint32) (string, error) {
	items, err := s.feedback.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "No feedback submitted by your ID.", nil
	}

	var b strings.Builder
	for _, fb := range items {
		msg := fb.Message
		if len(msg) > 30 {
			msg = msg[:30] + "..."
		}
		fmt.Fprintf(&b, "ID: %d, Status: %s, Msg: %q\n", fb.ID, fb.StatusString(), msg)
	}
	return b.String(), nil
}
