package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/themobileprof/listpilot/internal/assistant"
	"github.com/themobileprof/listpilot/internal/catalog"
	"github.com/themobileprof/listpilot/internal/config"
	"github.com/themobileprof/listpilot/internal/db"
	"github.com/themobileprof/listpilot/internal/journey"
	"github.com/themobileprof/listpilot/internal/list"
	"github.com/themobileprof/listpilot/internal/nlp"
	"github.com/themobileprof/listpilot/internal/suggest"
	"github.com/themobileprof/listpilot/server/handlers"
	"github.com/themobileprof/listpilot/server/middleware"
)

var (
	version = "1.0.0"
)

func main() {
	// Load .env file if it exists
	loadEnvFile(".env")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	configPath := getEnv("LISTPILOT_CONFIG", filepath.Join(homeDir, ".listpilot", "config.yaml"))
	addr := getEnv("LISTPILOT_ADDR", "")

	// Allow command-line flags to override environment variables
	flag.StringVar(&configPath, "config", configPath, "Path to configuration file")
	flag.StringVar(&addr, "addr", addr, "Listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if addr == "" {
		addr = cfg.Server.ListenAddr
	}

	database, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	// The list is session data when configured so; history survives.
	if cfg.ClearListOnStart {
		if err := database.ClearItems(); err != nil {
			log.Fatalf("Failed to clear shopping list: %v", err)
		}
		log.Println("Shopping list cleared on startup")
	}

	products, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	parser := nlp.NewParser()
	if cfg.Remote.Enabled {
		parser.SetRemote(nlp.NewRemoteParser(cfg.Remote.Endpoint, cfg.Remote.APIKey, cfg.Remote.Model))
	}

	mutator := list.NewMutator(database, products)
	mutator.SetMaxQuantity(cfg.MaxQuantity)

	engine := suggest.NewEngine(cfg.HistoryLimit, cfg.MinInteractions, cfg.SuggestionCap)
	journal := journey.New(cfg.JourneyLogPath)

	a := assistant.New(parser, database, products, mutator, engine, journal)

	fmt.Printf("ListPilot API v%s\n", version)
	fmt.Printf("Database: %s\n", cfg.DBPath)
	fmt.Println()

	// Setup routes
	mux := http.NewServeMux()
	h := handlers.New(a, database)
	h.Register(mux)

	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimit, time.Duration(cfg.Server.RateIntervalSecs)*time.Second)

	fmt.Printf("Server ready at http://localhost%s\n", addr)
	fmt.Println("  - Process voice: POST /process-voice")
	fmt.Println("  - Search: POST /search")
	fmt.Println("  - Items: GET /items")
	fmt.Println("  - Recommendations: GET /recommendations")
	fmt.Println("  - Health: GET /health")
	fmt.Println()

	handler := rateLimiter.Limit(middleware.RequestLog(mux))
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// loadEnvFile loads environment variables from a .env file
func loadEnvFile(filename string) {
	file, err := os.Open(filename)
	if err != nil {
		// .env file is optional, silently continue if not found
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE format
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, "\"'")

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
