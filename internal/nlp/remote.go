package nlp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/themobileprof/listpilot/pkg/models"
)

// RemoteParser calls an external higher-accuracy parsing service. Any
// transport or schema failure is returned as an error so the caller falls
// back to the rule-based path transparently.
type RemoteParser struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

// Ensure RemoteParser implements the collaborator interface
var _ RemoteCommandParser = (*RemoteParser)(nil)

// NewRemoteParser creates a client for the external parsing service.
func NewRemoteParser(endpoint, apiKey, model string) *RemoteParser {
	return &RemoteParser{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type remoteParseRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Model    string `json:"model,omitempty"`
}

type remoteParseResponse struct {
	Action   string `json:"action"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Category string `json:"category"`
	Filters  struct {
		Brand    string  `json:"brand"`
		PriceMax float64 `json:"price_max"`
		Size     string  `json:"size"`
	} `json:"filters"`
}

// Parse sends the utterance to the remote service and validates that the
// response fits the ParsedCommand shape.
func (c *RemoteParser) Parse(text, language string) (*models.ParsedCommand, error) {
	payload, err := json.Marshal(remoteParseRequest{Text: text, Language: language, Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("failed to encode parse request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build parse request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parse service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("parse service returned status %d", resp.StatusCode)
	}

	var decoded remoteParseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode parse response: %w", err)
	}

	action := models.Action(decoded.Action)
	switch action {
	case models.ActionAdd, models.ActionRemove, models.ActionModify, models.ActionSearch, models.ActionUnknown:
	default:
		return nil, fmt.Errorf("parse service returned unknown action %q", decoded.Action)
	}

	quantity := decoded.Quantity
	if quantity < 0 {
		quantity = 0
	}

	return &models.ParsedCommand{
		Action:   action,
		Item:     CanonicalName(decoded.Item, language),
		Quantity: quantity,
		Category: decoded.Category,
		Filters: models.Filters{
			Brand:    decoded.Filters.Brand,
			PriceMax: decoded.Filters.PriceMax,
			Size:     decoded.Filters.Size,
		},
		Language: language,
	}, nil
}
