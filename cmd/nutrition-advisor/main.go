// cmd/nutrition-advisor/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"nutrition-advisor/internal/engine"
	"nutrition-advisor/internal/server"
)

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	// Load .env before flag defaults are computed from the environment.
	godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8012), "Port for HTTP transport")
	host := flag.String("host", envStr("HOST", "0.0.0.0"), "Host address")
	dbPath := flag.String("db-path", envStr("DB_PATH", "/data/nutrition-advisor.db"), "Database path")
	foodAPIURL := flag.String("food-api-url", envStr("FOOD_API_URL", "https://api.studio93.io/food/search"), "Ingredient matching service URL")
	version := flag.Bool("version", false, "Show version")

	flag.Parse()

	if *version {
		fmt.Println("nutrition-advisor version 1.0.0")
		os.Exit(0)
	}

	activityFactor := engine.DefaultActivityFactor
	if v := os.Getenv("ACTIVITY_FACTOR"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			activityFactor = f
		}
	}

	config := &server.Config{
		Host:           *host,
		Port:           *port,
		DBPath:         *dbPath,
		FoodAPIURL:     *foodAPIURL,
		FoodAPIKey:     os.Getenv("FOOD_API_KEY"),
		ActivityFactor: activityFactor,
	}

	srv, err := server.NewAdvisorServer(config)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting nutrition advisor on %s:%d", *host, *port)
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-sigCh:
		log.Println("Received shutdown signal")
	case err := <-errCh:
		log.Printf("Server error: %v", err)
	}

	log.Println("Shutting down...")
	cancel()
	if err := srv.Stop(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
