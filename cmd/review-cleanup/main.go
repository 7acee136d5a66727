package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"bizdir/database"
	"bizdir/internal/api/repository"
	"bizdir/internal/config"
)

// review-cleanup removes reviews written by business owners on their own
// listings and recomputes the affected rating aggregates. Without -apply it
// only reports what would be removed.
func main() {
	apply := flag.Bool("apply", false, "delete the offending reviews instead of only reporting them")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	reviewRepo := repository.NewReviewRepository(db)

	count, err := reviewRepo.CountOwnerReviews(ctx)
	if err != nil {
		logger.Error("could not count owner reviews", "error", err)
		os.Exit(1)
	}

	if !*apply {
		logger.Info("dry run, pass -apply to delete", "owner_reviews", count)
		return
	}

	deleted, err := reviewRepo.DeleteOwnerReviews(ctx)
	if err != nil {
		logger.Error("cleanup failed", "error", err)
		os.Exit(1)
	}
	logger.Info("cleanup complete", "deleted", deleted)
}
