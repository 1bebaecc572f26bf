package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/config"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/history"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/logger"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/push"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/remindertime"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/routine"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/scheduler"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/storage/firestoredb"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/subscription"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	log := logger.New(logger.FromConfig(cfg.LogLevel, cfg.LogFormat))

	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	fsClient, err := firestoredb.NewClient(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
	if err != nil {
		log.Error("failed to initialize Firestore", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer fsClient.Close()

	// Stores
	defaults := remindertime.Times{
		Morning: remindertime.MustParse(routine.SlotMorning, cfg.Reminders.Morning),
		Evening: remindertime.MustParse(routine.SlotEvening, cfg.Reminders.Evening),
	}
	timeStore := remindertime.NewFirestoreStore(fsClient, defaults)
	subStore := subscription.NewFirestoreStore(fsClient)
	historyStore := history.NewFirestoreStore(fsClient)

	// Delivery and scheduling
	pushClient := push.NewClient(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.VAPIDSubscriber, cfg.PushTTLSeconds, log)
	sched := scheduler.New(timeStore, subStore, pushClient, cfg.Messages, log)

	// Services and handlers
	timeService := remindertime.NewService(timeStore, sched, log)
	timeHandler := remindertime.NewHandler(timeService, log)
	subHandler := subscription.NewHandler(subStore, log)
	historyHandler := history.NewHandler(historyStore, log)

	// Install the daily timers before serving traffic. A failed read is
	// fail-soft: the process still comes up and the next successful
	// configuration update installs the timers.
	if err := sched.ScheduleAll(ctx); err != nil {
		log.Error("initial schedule failed, continuing without timers", slog.String("error", err.Error()))
	}
	sched.Start()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLoggingMiddleware(log))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	timeHandler.RegisterRoutes(api)
	subHandler.RegisterRoutes(api)
	historyHandler.RegisterRoutes(api)

	// Manual fan-out trigger for delivery testing.
	api.GET("/test-push", func(c *gin.Context) {
		msg := cfg.Messages.Test
		sent, failed, err := sched.Broadcast(c.Request.Context(), push.Payload{
			Title: msg.Title,
			Body:  msg.Body,
			Tag:   msg.Tag,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load subscriptions"})
			return
		}
		log.Info("test push finished", slog.Int("sent", sent), slog.Int("failed", failed))
		c.String(http.StatusOK, "Push sent")
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("routine reminder server started", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", slog.String("error", err.Error()))
	}

	// Let an in-progress fire finish; only future timers are cancelled.
	select {
	case <-sched.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("timed out waiting for in-flight deliveries")
	}

	log.Info("server stopped")
}
