package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"gastos-bcn-go/internal/config"
	"gastos-bcn-go/internal/transport/httpserver/handler"
	"gastos-bcn-go/internal/transport/httpserver/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.NewCORS(cfg.CORSAllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Get("/saldo", handlers.GetSaldo)

		r.Get("/categories", handlers.ListCategories)
		r.Post("/categories", handlers.CreateCategory)
		r.Get("/categories/most-used", handlers.MostUsedCategories)
		r.Get("/categories/{id}", handlers.GetCategory)
		r.Put("/categories/{id}", handlers.UpdateCategory)
		r.Delete("/categories/{id}", handlers.DeleteCategory)
		r.Get("/categories/{id}/statistics", handlers.CategoryStatistics)

		r.Get("/expenses", handlers.ListExpenses)
		r.Post("/expenses", handlers.CreateExpense)
		r.Post("/expenses/bulk", handlers.BulkCreateExpenses)
		r.Get("/expenses/statistics", handlers.ExpensesStatistics)
		r.Get("/expenses/{id}", handlers.GetExpense)
		r.Put("/expenses/{id}", handlers.UpdateExpense)
		r.Delete("/expenses/{id}", handlers.DeleteExpense)

		r.Post("/imports/statement", handlers.ImportStatement)
		r.Post("/imports/statement/file", handlers.ImportStatementFile)
		r.Post("/imports/receipt", handlers.ImportReceipt)
	})

	return r
}
