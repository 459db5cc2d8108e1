package service

import (
	"context"
	"fmt"

	"github.com/glowhaven/glowbot/internal/domain"
	"github.com/glowhaven/glowbot/internal/repository"
)

type FeedbackService struct {
	store *repository.Store
}

func NewFeedbackService(store *repository.Store) *FeedbackService {
	return &FeedbackService{store: store}
}

// Save appends one feedback row. Repeated reviews of the same booking are
// tolerated; no uniqueness is enforced.
func (s *FeedbackService) Save(ctx context.Context, fb *domain.Feedback) error {
	if fb.Rating < 1 || fb.Rating > 5 {
		return domain.ErrInvalidRating
	}
	if err := s.store.InsertFeedback(ctx, fb); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}
