package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/vncsmyrnk/quickpoll/internal/adapters/repository/sqlstore"
	"github.com/vncsmyrnk/quickpoll/internal/config"
	"github.com/vncsmyrnk/quickpoll/internal/core/services"
)

// tallysummarizer refreshes poll_results, the per-option counts used to rank
// the poll list. Live tallies never read it.
func main() {
	cfg, err := config.Load("tallysummarizer", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	dialect, err := sqlstore.ParseDialect(cfg.DatabaseDriver)
	if err != nil {
		log.Fatal(err)
	}

	// Use a timeout for the job so it cannot hang indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sqlstore.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	pollRepo := sqlstore.NewPollRepository(db)
	resultRepo := sqlstore.NewPollResultRepository(db)
	summaryService := services.NewSummaryService(pollRepo, resultRepo)

	log.Println("Starting vote summarization job...")

	if err := summaryService.SummarizeAllVotes(ctx); err != nil {
		log.Fatalf("Error summarizing votes: %v", err)
	}

	log.Println("Vote summarization completed successfully.")
}
