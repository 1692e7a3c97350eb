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
	"github.com/vncsmyrnk/eventos/internal/core/services"
)

// Prints the aggregated report of a single event to stdout. Useful for
// checking a report without going through the HTTP API.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dbHost, dbPort, dbUser, dbPass, dbName, eventID string

	flag.StringVar(&dbHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&dbPort, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&dbUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&dbPass, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&dbName, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.StringVar(&eventID, "event", "", "Event id to report on")
	flag.Parse()

	if eventID == "" {
		log.Fatal("an event id is required, pass it with -event")
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	eventRepo := postgres.NewEventRepository(db)
	responseRepo := postgres.NewResponseRepository(db)

	eventSvc := services.NewEventService(eventRepo, responseRepo)
	responseSvc := services.NewResponseService(eventRepo, responseRepo)
	reportSvc := services.NewReportService()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	event, err := eventSvc.Get(ctx, eventID)
	if err != nil {
		log.Fatalf("Error loading event: %v", err)
	}

	responses, err := responseSvc.ListByEvent(ctx, event.ID)
	if err != nil {
		log.Fatalf("Error loading responses: %v", err)
	}

	metrics := reportSvc.Metrics(responses)
	fmt.Printf("%s\n", event.Title)
	fmt.Printf("Responses: %d\n", metrics.Total)
	if metrics.FirstSubmittedAt != nil {
		fmt.Printf("First: %s\n", metrics.FirstSubmittedAt.Format(time.RFC3339))
	}
	if metrics.LastSubmittedAt != nil {
		fmt.Printf("Last:  %s\n", metrics.LastSubmittedAt.Format(time.RFC3339))
	}

	for _, question := range event.Questions {
		fmt.Printf("\n%s\n", question.Text)

		switch {
		case domain.IsChoiceType(question.Type) || question.Type == domain.QuestionTime:
			for _, tally := range reportSvc.TallyChoices(question, responses, nil) {
				fmt.Printf("  %-30s %4d (%.1f%%)\n", tally.Label, tally.Count, tally.Percentage)
			}
		case question.Type == domain.QuestionTextList:
			summary := reportSvc.TallyTags(question, responses, nil)
			for _, tag := range summary.TopTags {
				fmt.Printf("  %-30s %4d\n", tag.Name, tag.Count)
			}
		default:
			for _, answer := range reportSvc.CollectFreeText(question, responses, nil) {
				fmt.Printf("  - %s\n", answer.Value)
			}
		}
	}
}
