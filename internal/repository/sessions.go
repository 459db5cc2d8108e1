package repository

import (
	"context"
)

// GetSession returns the stored dialogue state and raw temp data for one
// identity. pgx.ErrNoRows passes through when no session exists yet.
func (s *Store) GetSession(ctx context.Context, phoneNumber string) (state string, tempData []byte, err error) {
	err = s.pool.QueryRow(ctx, `
		SELECT current_state, temp_data
		FROM sessions
		WHERE phone_number = $1
	`, phoneNumber).Scan(&state, &tempData)
	return state, tempData, err
}

// UpsertSession overwrites the session row for one identity, creating it
// on first contact. Last write wins; concurrent messages from the same
// identity are resolved by this atomic upsert, not by locking.
func (s *Store) UpsertSession(ctx context.Context, phoneNumber, state string, tempData []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (phone_number, current_state, temp_data, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (phone_number) DO UPDATE
		SET current_state = EXCLUDED.current_state,
			temp_data = EXCLUDED.temp_data,
			updated_at = now()
	`, phoneNumber, state, tempData)
	return err
}
