// internal/enhance/enhancer.go
// Package enhance turns a short user prompt, optionally grounded in image
// attributes, into an enriched bilingual prompt record via the local
// language model.
package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/nerrospl/promptforge/internal/appconfig"
	"github.com/nerrospl/promptforge/internal/extract"
	"github.com/nerrospl/promptforge/internal/imaging"
	"github.com/nerrospl/promptforge/internal/logging"
)

const (
	minWordCount = 50
	maxWordCount = 500
)

// Request carries one enhancement invocation's inputs.
type Request struct {
	Prompt      string
	Language    string
	Creativity  float64
	WordCount   int
	DetailLevel string
	Style       string
	Image       *imaging.Report
}

// Result is the outcome of a completed enhancement.
type Result struct {
	Record            extract.PromptRecord
	Model             string
	Creativity        float64
	WordCount         int
	DetailLevel       string
	Style             string
	OriginalPrompt    string
	ExpandedPrompt    string
	ValidationWarning string
}

// Enhancer runs the multi-stage enhancement pipeline against the daemon.
type Enhancer struct {
	client         *http.Client
	baseURL        string
	model          string
	enhanceTimeout time.Duration
	expandTimeout  time.Duration
}

// New constructs an Enhancer from the application configuration.
func New(cfg appconfig.Config) *Enhancer {
	return &Enhancer{
		client:         &http.Client{},
		baseURL:        cfg.URL(),
		model:          cfg.Enhancement(),
		enhanceTimeout: cfg.EnhanceTimeout(),
		expandTimeout:  cfg.ExpandTimeout(),
	}
}

// SetModel switches the model used for subsequent enhancements.
func (e *Enhancer) SetModel(model string) {
	e.model = model
}

// Enhance expands the prompt, generates an enriched bilingual record, and
// validates the result. Validation problems are attached as a warning, not
// returned as errors; only transport and daemon faults fail the call.
func (e *Enhancer) Enhance(ctx context.Context, req Request) (Result, error) {
	req.WordCount = clamp(req.WordCount, minWordCount, maxWordCount)
	req.DetailLevel = normalize(req.DetailLevel, "medium")
	req.Style = normalize(req.Style, "cinematic")
	if req.Language == "" {
		req.Language = "pl"
	}

	logging.LogEvent("enhance: start %q (lang=%s words=%d detail=%s style=%s)",
		truncateForLog(req.Prompt), req.Language, req.WordCount, req.DetailLevel, req.Style)

	expanded := e.expand(ctx, req)

	imageContext := ""
	if req.Image != nil {
		imageContext = formatImageContext(*req.Image)
	}

	system := buildSystemPrompt(req, imageContext)
	user := buildUserPrompt(req, expanded)

	raw, err := e.generate(ctx, system+"\n\n"+user, req.Creativity, e.enhanceTimeout)
	if err != nil {
		return Result{}, err
	}

	record := extract.FromResponse(raw)

	result := Result{
		Record:         record,
		Model:          e.model,
		Creativity:     req.Creativity,
		WordCount:      req.WordCount,
		DetailLevel:    req.DetailLevel,
		Style:          req.Style,
		OriginalPrompt: req.Prompt,
		ExpandedPrompt: expanded,
	}

	if warning := validate(record, req.WordCount, req.DetailLevel); warning != "" {
		logging.LogEvent("enhance: validation warning: %s", warning)
		result.ValidationWarning = warning
	}

	return result, nil
}

// generateResponse is the non-streaming body of POST /api/generate.
type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// generate issues a non-streaming generate request and returns the raw text.
func (e *Enhancer) generate(ctx context.Context, prompt string, temperature float64, timeout time.Duration) (string, error) {
	payload := map[string]any{
		"model":       e.model,
		"prompt":      prompt,
		"temperature": temperature,
		"stream":      false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	logging.LogRequest("APP->LLM", e.model, body)

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, e.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	logging.LogRequest("LLM->APP", e.model, respBody)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: /api/generate returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("ollama: could not parse generate response: %w", err)
	}
	return result.Response, nil
}

// elementsPattern captures the outermost brace pair of an expansion reply.
var elementsPattern = regexp.MustCompile(`(?s)\{.*\}`)

// expand asks the model for the key visual elements of the prompt and joins
// them into a short expansion line. Any fault soft-fails to an empty
// expansion; the main stage then instructs the model to cover all aspects.
func (e *Enhancer) expand(ctx context.Context, req Request) string {
	prompt := expansionSystemPrompt(req.Language, req.DetailLevel) + "\n\nPrompt: " + req.Prompt

	raw, err := e.generate(ctx, prompt, 0.5, e.expandTimeout)
	if err != nil {
		logging.LogEvent("enhance: expansion failed: %v", err)
		return ""
	}

	match := elementsPattern.FindString(raw)
	if match == "" {
		return ""
	}

	var parsed struct {
		Elements []string `json:"elements"`
	}
	if err := json.Unmarshal([]byte(match), &parsed); err != nil || len(parsed.Elements) == 0 {
		return ""
	}

	expanded := strings.Join(parsed.Elements, " + ")
	logging.LogEvent("enhance: expanded to: %s", expanded)
	return expanded
}

// formatImageContext renders an image report as a compact context line for
// the system prompt.
func formatImageContext(report imaging.Report) string {
	var parts []string
	if report.Width > 0 && report.Height > 0 {
		parts = append(parts, fmt.Sprintf("Resolution: %dx%d", report.Width, report.Height))
	}
	if len(report.Detected) > 0 {
		parts = append(parts, "Elements: "+strings.Join(report.Detected, ", "))
	}
	if report.ColorTemp != "" {
		parts = append(parts, "Color: "+report.ColorTemp)
	}
	if report.Brightness != "" {
		parts = append(parts, "Brightness: "+report.Brightness)
	}
	return strings.Join(parts, " | ")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func normalize(v, fallback string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return fallback
	}
	return v
}

func truncateForLog(s string) string {
	runes := []rune(s)
	if len(runes) <= 40 {
		return s
	}
	return string(runes[:40]) + "..."
}
