package app

import (
	"net/http"

	"gorm.io/gorm"

	"gastos-bcn-go/internal/config"
	"gastos-bcn-go/internal/db"
	expensesdomain "gastos-bcn-go/internal/domain/expenses"
	saldodomain "gastos-bcn-go/internal/domain/saldo"
	statisticsdomain "gastos-bcn-go/internal/domain/statistics"
	expensesrepo "gastos-bcn-go/internal/repository/postgres/expenses"
	saldorepo "gastos-bcn-go/internal/repository/postgres/saldo"
	statisticsrepo "gastos-bcn-go/internal/repository/postgres/statistics"
	"gastos-bcn-go/internal/transport/httpserver"
	"gastos-bcn-go/internal/transport/httpserver/handler"
	"gastos-bcn-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	expensesService := expensesdomain.NewService(expensesrepo.NewPostgres(dbConn))
	statisticsService := statisticsdomain.NewService(statisticsrepo.NewPostgres(dbConn))
	saldoService := saldodomain.NewService(saldorepo.NewPostgres(dbConn))

	handlers := handler.New(expensesService, statisticsService, saldoService, log, cfg.MaxUploadBytes)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
