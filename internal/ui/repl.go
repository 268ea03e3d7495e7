package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/themobileprof/listpilot/internal/assistant"
	"github.com/themobileprof/listpilot/pkg/models"
)

// REPL represents the interactive command-line interface
type REPL struct {
	assistant *assistant.Assistant
	language  string
	history   []string
}

// NewREPL creates a new REPL interface
func NewREPL(a *assistant.Assistant) *REPL {
	return &REPL{
		assistant: a,
		history:   []string{},
	}
}

// SetLanguage pins the language hint for every utterance in the session.
func (repl *REPL) SetLanguage(language string) {
	repl.language = language
}

// Start begins the interactive REPL loop
func (repl *REPL) Start() error {
	fmt.Println("ListPilot v1.0.0 - Voice Shopping List Assistant")
	fmt.Println("Type 'help' for available commands, 'exit' to quit")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		repl.history = append(repl.history, input)

		if err := repl.handleCommand(input); err != nil {
			if err.Error() == "exit" {
				fmt.Println("Goodbye!")
				return nil
			}
			fmt.Printf("Error: %v\n\n", err)
		}
	}
}

// handleCommand processes a single command
func (repl *REPL) handleCommand(input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	command := parts[0]
	args := parts[1:]

	switch command {
	case "help":
		return repl.showHelp()
	case "exit", "quit":
		return fmt.Errorf("exit")
	case "list":
		return repl.showList()
	case "suggest":
		return repl.showSuggestions()
	case "search":
		return repl.searchCatalog(strings.Join(args, " "))
	default:
		// Treat as a natural language utterance
		return repl.handleUtterance(input)
	}
}

// showHelp displays help information
func (repl *REPL) showHelp() error {
	fmt.Println(`
Available Commands:
  help                    - Show this help message
  list                    - Show the current shopping list
  suggest                 - Show recommendations for your list
  search <query>          - Search the product catalog
  exit, quit              - Exit ListPilot

Natural Language:
  Anything else is treated as a spoken shopping command,
  in English or Spanish.

Examples:
  > add 2 bottles of water
  > quita la leche
  > change milk to 3
  > find cheese under 5 dollars`)
	return nil
}

// showList prints the current shopping list
func (repl *REPL) showList() error {
	items, err := repl.assistant.Items()
	if err != nil {
		return fmt.Errorf("failed to load list: %w", err)
	}
	printItems(items)
	return nil
}

// showSuggestions prints the current recommendation group
func (repl *REPL) showSuggestions() error {
	group, err := repl.assistant.Recommendations()
	if err != nil {
		return fmt.Errorf("failed to build suggestions: %w", err)
	}
	printSuggestions(group)
	return nil
}

// searchCatalog runs an explicit catalog query
func (repl *REPL) searchCatalog(query string) error {
	if query == "" {
		return fmt.Errorf("please provide a search query")
	}

	resp, err := repl.assistant.Search(query, "", models.Filters{})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(resp.Results) == 0 {
		fmt.Println("No products found matching your query.")
		if len(resp.Substitutes) > 0 {
			fmt.Printf("You could try: %s\n", strings.Join(resp.Substitutes, ", "))
		}
		fmt.Println()
		return nil
	}

	fmt.Printf("\nFound %d product(s):\n\n", len(resp.Results))
	for i, entry := range resp.Results {
		fmt.Printf("%d. %s", i+1, entry.Name)
		if entry.Brand != "" {
			fmt.Printf(" (%s)", entry.Brand)
		}
		fmt.Println()
		fmt.Printf("   Category: %s", entry.Category)
		if entry.Price > 0 {
			fmt.Printf(" | Price: %.2f", entry.Price)
		}
		if entry.Size != "" {
			fmt.Printf(" | Size: %s", entry.Size)
		}
		fmt.Println()
	}
	fmt.Println()

	return nil
}

// handleUtterance processes a natural language shopping command
func (repl *REPL) handleUtterance(input string) error {
	resp, err := repl.assistant.Process(input, repl.language)
	if err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	if !resp.Success {
		if resp.Error != nil {
			fmt.Printf("Sorry: %s\n", resp.Error.Message)
		}
		fmt.Println("Try rephrasing, e.g. 'add 2 apples' or 'remove milk'.")
		fmt.Println()
		return nil
	}

	cmd := resp.Parsed
	switch cmd.Action {
	case models.ActionSearch:
		if len(resp.SearchResults) == 0 {
			fmt.Println("No products found matching your query.")
		} else {
			fmt.Printf("\nFound %d product(s):\n", len(resp.SearchResults))
			for _, entry := range resp.SearchResults {
				fmt.Printf("  - %s", entry.Name)
				if entry.Price > 0 {
					fmt.Printf(" (%.2f)", entry.Price)
				}
				fmt.Println()
			}
		}
	case models.ActionRemove:
		fmt.Printf("Removed %s.\n", cmd.Item)
	case models.ActionModify:
		fmt.Printf("Set %s to %d.\n", cmd.Item, cmd.Quantity)
	default:
		fmt.Printf("Added %d x %s.\n", cmd.Quantity, cmd.Item)
	}

	printItems(resp.Items)
	printSuggestions(resp.Suggestions)
	return nil
}

func printItems(items []models.ShoppingItem) {
	if len(items) == 0 {
		fmt.Println("\nYour shopping list is empty.")
		fmt.Println()
		return
	}

	fmt.Printf("\nShopping List (%d):\n", len(items))
	for _, item := range items {
		fmt.Printf("  %d x %s", item.Quantity, item.Name)
		if item.Category != "" && item.Category != "other" {
			fmt.Printf(" [%s]", item.Category)
		}
		fmt.Println()
	}
	fmt.Println()
}

func printSuggestions(group models.SuggestionGroup) {
	if len(group.All) == 0 {
		return
	}
	fmt.Printf("Suggestions: %s\n\n", strings.Join(group.All, ", "))
}

// ExecuteNonInteractive runs a command non-interactively
func (repl *REPL) ExecuteNonInteractive(input string) error {
	return repl.handleCommand(input)
}
