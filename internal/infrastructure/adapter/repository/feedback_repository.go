package repository

import (
	"context"

	"github.com/flatbank/flatbank/internal/domain/entity"
	"github.com/flatbank/flatbank/internal/domain/port/core"
	"github.com/flatbank/flatbank/internal/infrastructure/adapter/model"
	"github.com/flatbank/flatbank/internal/infrastructure/filestore"
)

// FeedbackFile is the entity file name for feedback.
const FeedbackFile = "feedback.db"

// FeedbackRepository implements persistence.FeedbackRepository over
// feedback.db.
type FeedbackRepository struct {
	store  *filestore.Store[model.FeedbackRecord]
	logger core.Logger
}

// NewFeedbackRepository opens (or prepares) feedback.db inside dir.
func NewFeedbackRepository(dir string, logger core.Logger) (*FeedbackRepository, error) {
	store, err := filestore.Open[model.FeedbackRecord](dir, FeedbackFile)
	if err != nil {
		return nil, err
	}
	return &FeedbackRepository{store: store, logger: logger}, nil
}

// Append writes a new feedback entry; the position becomes its id.
func (r *FeedbackRepository) Append(_ context.Context, f *entity.Feedback) (uint64, error) {
	rec := model.FromFeedback(f)
	id, err := r.store.Append(rec, func(rec *model.FeedbackRecord, seq uint64) {
		rec.ID = seq
	})
	if err != nil {
		return 0, err
	}
	f.ID = id
	return id, nil
}

// ListByUser returns the user's feedback in record order.
func (r *FeedbackRepository) ListByUser(_ context.Context, userID uint32) ([]entity.Feedback, error) {
	var items []entity.Feedback
	err := r.store.Scan(func(rec *model.FeedbackRecord) bool {
		if rec.UserID == userID {
			items = append(items, *rec.ToFeedback())
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ReviewPending marks every unreviewed entry as reviewed in one pass under a
// single exclusive file lock and returns the entries it flipped.
func (r *FeedbackRepository) ReviewPending(_ context.Context, action string) ([]entity.Feedback, error) {
	var flipped []entity.Feedback
	_, err := r.store.UpdateEach(func(rec *model.FeedbackRecord) bool {
		if rec.Reviewed != 0 {
			return false
		}
		fb := rec.ToFeedback()
		fb.Reviewed = true
		fb.ActionTaken = action
		*rec = *model.FromFeedback(fb)
		flipped = append(flipped, *fb)
		return true
	})
	if err != nil {
		return nil, err
	}
	return flipped, nil
}
