package saldo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	saldodomain "gastos-bcn-go/internal/domain/saldo"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateBalance(ctx context.Context, balance *saldodomain.Balance) error {
	return r.db.WithContext(ctx).Create(balance).Error
}

func (r *PostgresRepository) LatestBalance(ctx context.Context) (*saldodomain.Balance, error) {
	var balance saldodomain.Balance
	if err := r.db.WithContext(ctx).
		Order("recorded_at desc, id desc").
		First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, saldodomain.ErrNoBalance
		}
		return nil, err
	}
	return &balance, nil
}
