package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"HiddenLight/internal/app"
	"HiddenLight/internal/config"
	"HiddenLight/internal/logging"
)

func main() {
	query := flag.String("query", "", "search the indexed corpus and print the results")
	ask := flag.String("ask", "", "ask the assistant a question and print its answer")
	limit := flag.Int("limit", 0, "maximum number of search results")
	flag.Parse()

	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close(ctx)

	if err := application.Run(ctx); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}

	if *query != "" {
		response := application.Search(*query, *limit)
		fmt.Printf("%d results for %q\n", response.Total, response.Query)
		for i, result := range response.Results {
			fmt.Printf("%2d. [%.2f] %s (%s)\n", i+1, result.Score, result.Title, result.Type)
			if result.Excerpt != "" {
				fmt.Printf("    %s\n", result.Excerpt)
			}
		}
	}

	if *ask != "" {
		fmt.Println(application.Ask(ctx, *ask))
	}
}
