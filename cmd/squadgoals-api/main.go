package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/shafina/squadgoals/internal/config"
	"github.com/shafina/squadgoals/internal/database"
	"github.com/shafina/squadgoals/internal/handlers"
	authmw "github.com/shafina/squadgoals/internal/middleware"
	"github.com/shafina/squadgoals/internal/scheduler"
	"github.com/shafina/squadgoals/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret)
	userService := services.NewUserService(db)
	goalService := services.NewGoalService(db)
	invitationService := services.NewInvitationService(db)
	notificationService := services.NewNotificationService(db)

	userHandler := handlers.NewUserHandler(userService)
	goalHandler := handlers.NewGoalHandler(goalService, userService)
	invitationHandler := handlers.NewInvitationHandler(invitationService, userService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, userService)

	reminder := scheduler.NewReminder(db, cfg.ReminderHour, cfg.ReminderCheckInterval)
	go reminder.Run(ctx)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api")

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/users", userHandler.Create)
	protected.Get("/users/search", userHandler.Search)

	protected.Post("/goals", goalHandler.Create)
	protected.Get("/goals", goalHandler.ListPublic)
	protected.Get("/goals/:goalId", goalHandler.Get)

	protected.Get("/invitations", invitationHandler.List)
	protected.Post("/invitations/:invitationId/accept", invitationHandler.Accept)
	protected.Post("/invitations/:invitationId/decline", invitationHandler.Decline)

	protected.Get("/notifications", notificationHandler.List)
	protected.Patch("/notifications/mark-all-read", notificationHandler.MarkAllRead)
	protected.Patch("/notifications/:id/read", notificationHandler.MarkRead)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
