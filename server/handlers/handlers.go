package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/themobileprof/listpilot/internal/assistant"
	"github.com/themobileprof/listpilot/internal/db"
	"github.com/themobileprof/listpilot/pkg/models"
)

// Handlers exposes the assistant pipeline over HTTP. All endpoints speak
// JSON; template rendering is intentionally absent.
type Handlers struct {
	assistant *assistant.Assistant
	db        *db.DB
}

// New creates the handler set.
func New(a *assistant.Assistant, database *db.DB) *Handlers {
	return &Handlers{
		assistant: a,
		db:        database,
	}
}

// Register attaches all routes to the mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/process-voice", h.ProcessVoice)
	mux.HandleFunc("/search", h.Search)
	mux.HandleFunc("/items", h.Items)
	mux.HandleFunc("/items/", h.DeleteItem)
	mux.HandleFunc("/modify-item", h.ModifyItem)
	mux.HandleFunc("/recommendations", h.Recommendations)
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/ready", h.Ready)
}

// ProcessVoice handles POST /process-voice
func (h *Handlers) ProcessVoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Text     string `json:"text"`
		Language string `json:"language,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "Text is required", http.StatusBadRequest)
		return
	}

	resp, err := h.assistant.Process(req.Text, req.Language)
	if err != nil {
		log.Printf("Failed to process command: %v", err)
		http.Error(w, "Failed to process command", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Search handles POST /search
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Query     string         `json:"query,omitempty"`
		VoiceText string         `json:"voice_text,omitempty"`
		Filters   models.Filters `json:"filters,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Query) == "" && strings.TrimSpace(req.VoiceText) == "" {
		http.Error(w, "Query or voice_text is required", http.StatusBadRequest)
		return
	}

	resp, err := h.assistant.Search(req.Query, req.VoiceText, req.Filters)
	if err != nil {
		log.Printf("Failed to search catalog: %v", err)
		http.Error(w, "Failed to search catalog", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Items handles GET /items
func (h *Handlers) Items(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	items, err := h.assistant.Items()
	if err != nil {
		log.Printf("Failed to load items: %v", err)
		http.Error(w, "Failed to load items", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// DeleteItem handles DELETE /items/{id}
func (h *Handlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/items/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}

	removed, err := h.db.DeleteItemByID(id)
	if err != nil {
		log.Printf("Failed to delete item %d: %v", id, err)
		http.Error(w, "Failed to delete item", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}

	items, err := h.assistant.Items()
	if err != nil {
		log.Printf("Failed to load items: %v", err)
		http.Error(w, "Failed to load items", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"items":   items,
	})
}

// ModifyItem handles POST /modify-item
func (h *Handlers) ModifyItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	found, err := h.assistant.ModifyItem(req.Name, req.Quantity)
	if err != nil {
		log.Printf("Failed to modify item %q: %v", req.Name, err)
		http.Error(w, "Failed to modify item", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}

	items, err := h.assistant.Items()
	if err != nil {
		log.Printf("Failed to load items: %v", err)
		http.Error(w, "Failed to load items", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"items":   items,
	})
}

// Recommendations handles GET /recommendations
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	group, err := h.assistant.Recommendations()
	if err != nil {
		log.Printf("Failed to build recommendations: %v", err)
		http.Error(w, "Failed to build recommendations", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, group)
}

// Health handles GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /ready and verifies the database connection
func (h *Handlers) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		log.Printf("Readiness check failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
