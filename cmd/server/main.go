package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/config"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/handlers"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/logging"
	mwauth "github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/middleware/auth"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/mykafka"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/ratelimit"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/service"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/store"
	httpserver "github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg.MustValidate()

	logger := logging.New(cfg.LogLevel)

	db, err := config.InitDB(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
	}

	credStore := store.NewGormStore(db)
	authSvc := &service.AuthService{
		Store:         credStore,
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(logging.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler: &handlers.AuthHandler{
			Svc:          authSvc,
			Producer:     kafkaOrNil(producer),
			LoginLimiter: ratelimit.New(rate.Every(3*time.Second), 5),
			Secure:       cfg.Production(),
		},
		UserHandler: &handlers.UserHandler{Store: credStore},
		Gate:        &mwauth.Gate{JWTSecret: cfg.JWTSecret},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}

// kafkaOrNil keeps the handler's interface field nil when kafka is not
// configured; a typed nil *Producer would dodge the handler's nil check.
func kafkaOrNil(p *mykafka.Producer) handlers.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}
