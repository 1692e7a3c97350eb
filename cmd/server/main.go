package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/eventos/internal/adapters/handler/http"
	"github.com/vncsmyrnk/eventos/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/eventos/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	eventRepo := postgres.NewEventRepository(db)
	responseRepo := postgres.NewResponseRepository(db)
	userRepo := postgres.NewUserRepository(db)
	authRepo := postgres.NewAuthRepository(db)

	eventSvc := services.NewEventService(eventRepo, responseRepo)
	responseSvc := services.NewResponseService(eventRepo, responseRepo)
	reportSvc := services.NewReportService()
	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userRepo, authRepo)

	cookieDomain := os.Getenv("COOKIE_DOMAIN")
	allowedOrigins := strings.Split(envOr("ALLOWED_ORIGINS", "*"), ",")

	handler := http.NewHandler(http.Handlers{
		Auth:     http.NewAuthHandler(authSvc, cookieDomain, stdhttp.SameSiteLaxMode),
		Event:    http.NewEventHandler(eventSvc),
		Response: http.NewResponseHandler(responseSvc),
		Report:   http.NewReportHandler(eventSvc, responseSvc, reportSvc),
		User:     http.NewUserHandler(userSvc),
	}, []byte(os.Getenv("JWT_SECRET")), allowedOrigins)

	addr := "0.0.0.0:" + envOr("PORT", "8080")
	server := &stdhttp.Server{Addr: addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func dbConnString() string {
	dbName := os.Getenv("POSTGRES_DB")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}
