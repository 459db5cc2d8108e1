package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/glowhaven/glowbot/internal/domain"
	"github.com/glowhaven/glowbot/internal/repository"
)

// SessionService is the per-identity dialogue state repository. The
// session row is the single source of truth for where a user is; it is
// overwritten whole on every transition.
type SessionService struct {
	store *repository.Store
}

func NewSessionService(store *repository.Store) *SessionService {
	return &SessionService{store: store}
}

// Load fetches the session for one identity. found=false means no
// session exists yet and the caller should treat the user as fresh.
// Unparseable temp data returns ErrSessionCorrupt together with a safe
// menu state so the caller can reset and tell the user.
func (s *SessionService) Load(ctx context.Context, identity string) (domain.State, domain.TempData, bool, error) {
	state, raw, err := s.store.GetSession(ctx, identity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.StateMenu, domain.TempData{}, false, nil
		}
		return domain.StateMenu, domain.TempData{}, false, fmt.Errorf("get session: %w", err)
	}

	var temp domain.TempData
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &temp); err != nil {
			return domain.StateMenu, domain.TempData{}, true, domain.ErrSessionCorrupt
		}
	}
	return domain.State(state), temp, true, nil
}

// Save upserts the session row atomically (last write wins).
func (s *SessionService) Save(ctx context.Context, identity string, state domain.State, temp domain.TempData) error {
	raw, err := json.Marshal(temp)
	if err != nil {
		return fmt.Errorf("marshal temp data: %w", err)
	}
	if err := s.store.UpsertSession(ctx, identity, string(state), raw); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
