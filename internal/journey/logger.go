package journey

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/themobileprof/listpilot/pkg/models"
)

// Journey is the audit record for one processed utterance.
type Journey struct {
	ID           string                `json:"id"`
	Timestamp    time.Time             `json:"timestamp"`
	Text         string                `json:"text"`
	LanguageHint string                `json:"language_hint,omitempty"`
	Steps        []Step                `json:"steps"`
	Command      *models.ParsedCommand `json:"command,omitempty"`
	Outcome      string                `json:"outcome,omitempty"`
}

// Step records one pipeline phase (parse, mutate, search, suggest).
type Step struct {
	Source     string `json:"source"`
	DurationMs int64  `json:"duration_ms"`
	Details    string `json:"details,omitempty"`
}

// NewJourney starts an audit record for one utterance.
func NewJourney(text, languageHint string) *Journey {
	return &Journey{
		ID:           uuid.NewString(),
		Timestamp:    time.Now(),
		Text:         text,
		LanguageHint: languageHint,
		Steps:        make([]Step, 0, 4),
	}
}

// AddStep records one pipeline phase.
func (j *Journey) AddStep(source string, duration time.Duration, details string) {
	j.Steps = append(j.Steps, Step{
		Source:     source,
		DurationMs: duration.Milliseconds(),
		Details:    details,
	})
}

// Logger appends journeys to a JSONL file, one object per line. Safe for
// concurrent use. A nil *Logger is a valid no-op logger.
type Logger struct {
	mu          sync.Mutex
	logFilePath string
}

// New creates a logger writing to the given path. An empty path disables
// logging.
func New(path string) *Logger {
	if path == "" {
		return nil
	}
	return &Logger{logFilePath: path}
}

// DefaultPath returns the journey log location under the user's home dir.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".listpilot", "journey.jsonl")
}

// Append finalizes the journey and writes it to the log file.
func (l *Logger) Append(j *Journey, command *models.ParsedCommand, outcome string) {
	if l == nil || j == nil {
		return
	}
	j.Command = command
	j.Outcome = outcome

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.logFilePath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create journey log dir: %v\n", err)
		return
	}
	f, err := os.OpenFile(l.logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to write journey log: %v\n", err)
		return
	}
	defer f.Close()

	data, _ := json.Marshal(j)
	f.Write(data)
	f.WriteString("\n")
}
