package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/eventos/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
	"github.com/vncsmyrnk/eventos/internal/core/ports"
	"github.com/vncsmyrnk/eventos/internal/core/services"
)

// Creates an administrator account. Meant to be run once against a fresh
// database so the first organizer can log in and manage everything else
// through the API.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var login, name, password string

	flag.StringVar(&login, "login", "", "Login for the new admin")
	flag.StringVar(&name, "name", "Administrator", "Display name")
	flag.StringVar(&password, "password", "", "Initial password, change required on first login")
	flag.Parse()

	if login == "" || password == "" {
		flag.Usage()
		os.Exit(1)
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	userSvc := services.NewUserService(postgres.NewUserRepository(db))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := userSvc.Create(ctx, ports.CreateUserInput{
		Login:    login,
		Name:     name,
		Role:     domain.RoleAdmin,
		Status:   domain.UserActive,
		Password: password,
	})
	if err != nil {
		log.Fatalf("Error creating admin: %v", err)
	}

	fmt.Printf("Admin %s created with id %s\n", user.Login, user.ID)
}

func dbConnString() string {
	dbName := os.Getenv("POSTGRES_DB")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}
