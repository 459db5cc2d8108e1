package repository

import (
	"context"

	"github.com/glowhaven/glowbot/internal/domain"
)

func (s *Store) ListServices(ctx context.Context) ([]domain.Service, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, price, duration
		FROM services
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Price, &svc.Duration); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

func (s *Store) GetService(ctx context.Context, id int64) (domain.Service, error) {
	var svc domain.Service
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, price, duration
		FROM services
		WHERE id = $1
	`, id).Scan(&svc.ID, &svc.Name, &svc.Price, &svc.Duration)
	return svc, err
}
