package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nicolesuntn-stack/willsun-garment-site/internal/models"
)

// DefaultTranslateEndpoint is the chat-completions URL used when the config
// does not override it (tests point it at a local server).
const DefaultTranslateEndpoint = "https://api.openai.com/v1/chat/completions"

// TranslateConfig holds the optional external translation credentials.
type TranslateConfig struct {
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration
}

// TranslationResult is the outcome of a translation attempt. Exactly one of
// three shapes comes back: a clean translation (Warning and Err empty), a
// deterministic fallback because no credential is configured (Warning set),
// or a fallback after an upstream failure (Err set). EN is always usable.
type TranslationResult struct {
	EN      models.LocalizedFields
	Warning string
	Err     string
}

// Degraded reports whether the result carries the zh echo instead of a
// real translation.
func (r TranslationResult) Degraded() bool {
	return r.Warning != "" || r.Err != ""
}

// TranslateService pre-fills English product fields from Chinese input via
// an external model. The call is advisory only: every failure mode resolves
// to the Chinese text echoed into the English slot, never an error that
// blocks record creation.
type TranslateService struct {
	cfg      TranslateConfig
	client   *http.Client
	validate *validator.Validate
}

// NewTranslateService creates a new TranslateService. An empty APIKey means
// every call returns the deterministic fallback without touching the
// network.
func NewTranslateService(cfg TranslateConfig) *TranslateService {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultTranslateEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &TranslateService{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.Timeout},
		validate: validator.New(),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Translate attempts one external call and falls back to echoing zh on any
// failure. It never returns an error.
func (s *TranslateService) Translate(ctx context.Context, zh models.LocalizedFields) TranslationResult {
	if s.cfg.APIKey == "" {
		return TranslationResult{
			EN:      zh,
			Warning: "Translation API key not configured. Returned Chinese text as editable fallback.",
		}
	}

	inputJSON, err := json.Marshal(zh)
	if err != nil {
		return s.failure(zh, fmt.Sprintf("failed to encode input: %v", err))
	}

	prompt := fmt.Sprintf(
		"Translate the following product fields from Chinese to natural, business English for apparel B2B. Return ONLY JSON with keys: name, summary, overview, fabric, sizes, colors. Input JSON: %s",
		inputJSON,
	)
	payload := chatRequest{
		Model:       s.cfg.Model,
		Temperature: 0.2,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a translation engine. Output valid JSON only, no markdown, no extra text."},
			{Role: "user", Content: prompt},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return s.failure(zh, fmt.Sprintf("failed to encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return s.failure(zh, fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return s.failure(zh, fmt.Sprintf("translation API request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return s.failure(zh, fmt.Sprintf("translation API returned status %d", resp.StatusCode))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return s.failure(zh, fmt.Sprintf("failed to decode translation response: %v", err))
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return s.failure(zh, "translation API returned empty result")
	}

	var translated models.LocalizedFields
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &translated); err != nil {
		return s.failure(zh, "failed to parse translation JSON")
	}
	translated.Trim()
	if err := s.validate.Struct(translated); err != nil {
		return s.failure(zh, "translation JSON missing required fields")
	}

	return TranslationResult{EN: translated}
}

func (s *TranslateService) failure(zh models.LocalizedFields, reason string) TranslationResult {
	log.Printf("Translation degraded, echoing Chinese input: %s", reason)
	return TranslationResult{EN: zh, Err: reason}
}
