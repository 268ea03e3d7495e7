package journey

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/themobileprof/listpilot/pkg/models"
)

func TestAppend(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "listpilot-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "journey.jsonl")
	logger := New(path)

	j := NewJourney("add milk", "en")
	j.AddStep("parse", 3*time.Millisecond, "add")
	cmd := &models.ParsedCommand{Action: models.ActionAdd, Item: "milk", Quantity: 1}
	logger.Append(j, cmd, "ok")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}

	var record Journey
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("Log line is not valid JSON: %v", err)
	}
	if record.ID == "" {
		t.Error("Expected journey ID")
	}
	if record.Text != "add milk" {
		t.Errorf("Expected text preserved, got %q", record.Text)
	}
	if len(record.Steps) != 1 || record.Steps[0].Source != "parse" {
		t.Errorf("Unexpected steps: %+v", record.Steps)
	}
	if record.Command == nil || record.Command.Item != "milk" {
		t.Errorf("Unexpected command: %+v", record.Command)
	}
	if record.Outcome != "ok" {
		t.Errorf("Expected outcome ok, got %q", record.Outcome)
	}
}

func TestAppendOneLinePerJourney(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "listpilot-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "journey.jsonl")
	logger := New(path)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Append(NewJourney("add milk", ""), nil, "ok")
		}()
	}
	wg.Wait()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open log: %v", err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var record Journey
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Errorf("Line %d is not valid JSON: %v", lines+1, err)
		}
		lines++
	}
	if lines != 20 {
		t.Errorf("Expected 20 log lines, got %d", lines)
	}
}

func TestNilLoggerIsNoOp(t *testing.T) {
	logger := New("")
	if logger != nil {
		t.Fatal("Expected nil logger for empty path")
	}

	// Must not panic.
	logger.Append(NewJourney("add milk", ""), nil, "ok")
}
