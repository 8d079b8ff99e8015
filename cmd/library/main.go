package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"

	cataloghandler "libris/internal/catalog/handler"
	catalogrepository "libris/internal/catalog/repository"
	catalogservice "libris/internal/catalog/service"
	catalogvalidator "libris/internal/catalog/validator"
	"libris/internal/health"
	loanshandler "libris/internal/loans/handler"
	loansrepository "libris/internal/loans/repository"
	loansservice "libris/internal/loans/service"
	loansvalidator "libris/internal/loans/validator"
	"libris/internal/session"
	"libris/pkg/config"
	"libris/pkg/middleware"
)

func main() {
	cfg := config.Load("library")
	log := cfg.Log

	log.Info("Starting library service")

	store := session.NewStore(nil)
	if cfg.SeedDemoData {
		if err := session.SeedDemoData(store, time.Now(), cfg.LoanPeriod()); err != nil {
			log.Fatal("Failed to seed demo data", "error", err)
		}
		log.Info("Demo data seeded")
	}

	server := setupHTTPServer(cfg, store)

	run(cfg, server)
}

func setupHTTPServer(cfg *config.Config, store *session.Store) *http.Server {
	log := cfg.Log

	healthRouter := httprouter.New()
	health.NewHandler(store, log).RegisterRoutes(healthRouter)

	var healthHTTPHandler http.Handler = healthRouter
	healthHTTPHandler = middleware.RequestLogging(log)(healthHTTPHandler)
	healthHTTPHandler = middleware.Recovery(log)(healthHTTPHandler)

	bookRepo := catalogrepository.NewMemoryBookRepository(store)
	bookService := catalogservice.NewBookService(bookRepo, catalogvalidator.NewBookValidator(), cfg)
	bookHandler := cataloghandler.NewBookHandler(bookService, log)

	recordRepo := loansrepository.NewMemoryRecordRepository(store)
	loanService := loansservice.NewLoanService(recordRepo, loansvalidator.NewLoanValidator(), cfg)
	loanHandler := loanshandler.NewLoanHandler(loanService, log)

	apiRouter := httprouter.New()
	bookHandler.RegisterRoutes(apiRouter)
	loanHandler.RegisterRoutes(apiRouter)

	// Middleware order: Recovery → Logging → MaxSize → ContentType → Timeout → Router
	var apiHTTPHandler http.Handler = apiRouter
	apiHTTPHandler = middleware.RequestTimeout(cfg.RequestTimeout)(apiHTTPHandler)
	apiHTTPHandler = middleware.ContentTypeValidation(log)(apiHTTPHandler)
	apiHTTPHandler = middleware.MaxRequestSize(int64(cfg.MaxRequestSize))(apiHTTPHandler)
	apiHTTPHandler = middleware.RequestLogging(log)(apiHTTPHandler)
	apiHTTPHandler = middleware.Recovery(log)(apiHTTPHandler)

	mux := http.NewServeMux()
	mux.Handle("/health", healthHTTPHandler)
	mux.Handle("/ready", healthHTTPHandler)
	mux.Handle("/", apiHTTPHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	log.Info("HTTP server configured", "port", cfg.Port)
	return server
}

func run(cfg *config.Config, server *http.Server) {
	log := cfg.Log

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", "address", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)
		gracefulShutdown(cfg, server)
	}
}

func gracefulShutdown(cfg *config.Config, server *http.Server) {
	log := cfg.Log

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		if err := server.Close(); err != nil {
			log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	log.Info("Server stopped gracefully")
}
