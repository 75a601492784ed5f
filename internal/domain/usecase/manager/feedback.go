package manager

import (
	"context"
	"fmt"
	"strings"
)

// ReviewFeedback marks every unreviewed feedback entry as reviewed in a
// single pass and returns what was reviewed. The whole file stays locked
// for the pass, so entries submitted concurrently either miss the batch
// entirely or are included, never half-flipped.
func (s *Service) ReviewFeedback(ctx context.Context, action string) (string, error) {
	reviewed, err := s.feedback.ReviewPending(ctx, action)
	if err != nil {
		return "", err
	}
	if len(reviewed) == 0 {
		return "No feedback awaiting review.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Reviewed %d feedback entries:\n", len(reviewed))
	for _, f := range reviewed {
		msg := f.Message
		if len(msg) > 60 {
			msg = msg[:60] + "..."
		}
		fmt.Fprintf(&b, "ID: %d, From: %d, Message: %s\n", f.ID, f.UserID, msg)
	}

	s.logger.Info("feedback batch reviewed", map[string]any{
		"count":  len(reviewed),
		"action": action,
	})
	return b.String(), nil
}
