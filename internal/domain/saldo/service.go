package saldo

import (
	"context"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record stores a new balance snapshot. Snapshots are append-only so the
// history of imports stays available.
func (s *Service) Record(ctx context.Context, amount float64) (*Balance, error) {
	balance := &Balance{
		Amount:     amount,
		RecordedAt: s.now(),
	}
	if err := s.repo.CreateBalance(ctx, balance); err != nil {
		return nil, err
	}
	return balance, nil
}

// Current returns the most recently recorded balance, or ErrNoBalance when
// no statement import has detected one yet.
func (s *Service) Current(ctx context.Context) (*Balance, error) {
	return s.repo.LatestBalance(ctx)
}
