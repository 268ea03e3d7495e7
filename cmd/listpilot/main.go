package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/themobileprof/listpilot/internal/assistant"
	"github.com/themobileprof/listpilot/internal/catalog"
	"github.com/themobileprof/listpilot/internal/config"
	"github.com/themobileprof/listpilot/internal/db"
	"github.com/themobileprof/listpilot/internal/journey"
	"github.com/themobileprof/listpilot/internal/list"
	"github.com/themobileprof/listpilot/internal/nlp"
	"github.com/themobileprof/listpilot/internal/suggest"
	"github.com/themobileprof/listpilot/internal/ui"
)

var (
	version     = "1.0.0"
	configPath  string
	dbPath      string
	language    string
	resetDB     bool
	showVersion bool
)

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	defaultConfigPath := filepath.Join(homeDir, ".listpilot", "config.yaml")

	flag.StringVar(&configPath, "config", defaultConfigPath, "Path to configuration file")
	flag.StringVar(&dbPath, "db", "", "Path to SQLite database (overrides config)")
	flag.StringVar(&language, "lang", "", "Language hint for all commands (en or es)")
	flag.BoolVar(&resetDB, "reset", false, "Reset database (delete and reinitialize)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("ListPilot v%s\n", version)
		fmt.Println("Voice-driven shopping list assistant")
		return
	}

	// Load configuration (creates with defaults if doesn't exist)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if dbPath == "" {
		dbPath = cfg.DBPath
	}

	// Reset if requested
	if resetDB {
		if err := resetDatabase(dbPath); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
		return
	}

	// Open database
	database, err := db.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	a, err := buildAssistant(cfg, database)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	repl := ui.NewREPL(a)
	if language != "" {
		repl.SetLanguage(language)
	}

	// Check for non-interactive command
	args := flag.Args()
	if len(args) > 0 {
		// Non-interactive mode - join all args as a single command
		command := strings.Join(args, " ")
		if err := repl.ExecuteNonInteractive(command); err != nil {
			log.Fatalf("Command failed: %v", err)
		}
		return
	}

	// Start interactive REPL
	if err := repl.Start(); err != nil {
		log.Fatalf("REPL error: %v", err)
	}
}

// buildAssistant wires the interpretation pipeline from configuration
func buildAssistant(cfg *config.Config, database *db.DB) (*assistant.Assistant, error) {
	products, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	parser := nlp.NewParser()
	if cfg.Remote.Enabled {
		parser.SetRemote(nlp.NewRemoteParser(cfg.Remote.Endpoint, cfg.Remote.APIKey, cfg.Remote.Model))
	}

	mutator := list.NewMutator(database, products)
	mutator.SetMaxQuantity(cfg.MaxQuantity)

	engine := suggest.NewEngine(cfg.HistoryLimit, cfg.MinInteractions, cfg.SuggestionCap)
	journal := journey.New(cfg.JourneyLogPath)

	return assistant.New(parser, database, products, mutator, engine, journal), nil
}

// resetDatabase deletes and reinitializes the database
func resetDatabase(dbPath string) error {
	fmt.Println("Resetting ListPilot database...")
	fmt.Printf("Database: %s\n", dbPath)

	if _, err := os.Stat(dbPath); err == nil {
		// Prompt for confirmation
		fmt.Print("\nThis will delete your shopping list and history. Continue? [y/N]: ")
		var response string
		_, _ = fmt.Scanln(&response)
		response = strings.ToLower(response)
		if response != "y" && response != "yes" {
			fmt.Println("Reset cancelled.")
			return nil
		}

		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete database: %w", err)
		}
		fmt.Println("Database deleted")
	} else {
		fmt.Println("Database doesn't exist, creating new one...")
	}

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer database.Close()

	fmt.Println("Database reset successfully!")
	return nil
}
