package repository

import (
	"context"

	"github.com/glowhaven/glowbot/internal/domain"
)

func (s *Store) InsertFeedback(ctx context.Context, fb *domain.Feedback) error {
	var comments *string
	if fb.Comments != "" {
		comments = &fb.Comments
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO feedback (booking_id, rating, comments)
		VALUES ($1, $2, $3)
	`, fb.BookingID, fb.Rating, comments)
	return err
}
