package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"activity-registration-storefront/internal/config"
	"activity-registration-storefront/internal/database"
	"activity-registration-storefront/internal/handlers"
	"activity-registration-storefront/internal/middleware"
	"activity-registration-storefront/internal/repositories"
	"activity-registration-storefront/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := newLogger(cfg.Server.Env)
	defer logger.Sync()

	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("database connection established")

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Session store backing the per-visitor cart
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}

	// Repositories
	activityRepo := repositories.NewActivityRepository(db.DB)
	unitRepo := repositories.NewUnitRepository(db.DB)
	orderRepo := repositories.NewOrderRepository(db.DB)

	// Services
	qrService := services.NewVietQRService(cfg.VietQR)
	emailService := services.NewResendEmailService(services.ResendConfig{
		APIKey:    cfg.Resend.APIKey,
		FromEmail: cfg.Resend.FromEmail,
		FromName:  cfg.Resend.FromName,
	})
	activityService := services.NewActivityService(activityRepo)
	orderService := services.NewOrderService(orderRepo)
	checkoutService := services.NewCheckoutService(orderRepo, unitRepo, qrService, emailService, logger)
	authService := services.NewAdminAuthService(cfg.Admin)

	// Handlers
	publicHandler := handlers.NewPublicHandler(activityService, orderService, unitRepo)
	cartHandler := handlers.NewCartHandler(activityService, sessionStore, logger)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, sessionStore, logger)
	searchHandler := handlers.NewSearchHandler(orderService)
	adminHandler := handlers.NewAdminHandler(authService, orderService, activityService, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))

	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/activities", publicHandler.ListActivities)
		r.Get("/activities/{id}", publicHandler.GetActivity)
		r.Get("/activities/{id}/participants", publicHandler.ListParticipants)
		r.Get("/units", publicHandler.ListUnits)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.ViewCart)
			r.Post("/items", cartHandler.AddToCart)
			r.Put("/items", cartHandler.UpdateItem)
			r.Delete("/items", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.ClearCart)
		})

		r.Post("/checkout", checkoutHandler.Submit)
		r.Get("/orders/search", searchHandler.SearchOrders)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminHandler.Login)
			r.Post("/logout", adminHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(authService))

				r.Get("/dashboard", adminHandler.Dashboard)
				r.Get("/orders", adminHandler.ListOrders)
				r.Put("/orders/{id}/payment", adminHandler.UpdatePaymentStatus)

				r.Get("/activities", adminHandler.ListActivities)
				r.Post("/activities", adminHandler.CreateActivity)
				r.Put("/activities/{id}", adminHandler.UpdateActivity)
				r.Delete("/activities/{id}", adminHandler.DeleteActivity)
				r.Get("/activities/stats", adminHandler.ActivityStats)
			})
		})
	})

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}

func newLogger(env string) *zap.Logger {
	if env == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
