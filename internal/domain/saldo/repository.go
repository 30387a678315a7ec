package saldo

import "context"

type Repository interface {
	CreateBalance(ctx context.Context, balance *Balance) error
	LatestBalance(ctx context.Context) (*Balance, error)
}
