package handler

import (
	expensesdomain "gastos-bcn-go/internal/domain/expenses"
	saldodomain "gastos-bcn-go/internal/domain/saldo"
	statisticsdomain "gastos-bcn-go/internal/domain/statistics"
	"gastos-bcn-go/pkg/logger"
)

type Handlers struct {
	Expenses   *expensesdomain.Service
	Statistics *statisticsdomain.Service
	Saldo      *saldodomain.Service

	log            logger.Logger
	maxUploadBytes int64
}

func New(expenses *expensesdomain.Service, statistics *statisticsdomain.Service, saldo *saldodomain.Service, log logger.Logger, maxUploadBytes int64) *Handlers {
	return &Handlers{
		Expenses:       expenses,
		Statistics:     statistics,
		Saldo:          saldo,
		log:            log,
		maxUploadBytes: maxUploadBytes,
	}
}
