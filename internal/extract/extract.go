// internal/extract/extract.go
// Package extract recovers a bilingual prompt record from free-form model output.
package extract

import (
	"encoding/json"
	"regexp"

	"github.com/nerrospl/promptforge/internal/logging"
)

// StatusFallback marks a record built from raw text after every pattern failed.
const StatusFallback = "fallback_raw_response"

// fallbackLimit is the number of characters of raw text carried into a fallback record.
const fallbackLimit = 500

// PromptRecord is the normalized result of extracting model output.
// Both language fields are always populated; Status is empty for a
// well-formed parse and StatusFallback otherwise.
type PromptRecord struct {
	PromptEN string `json:"prompt_en"`
	PromptPL string `json:"prompt_pl"`
	Status   string `json:"_status,omitempty"`
}

// IsFallback reports whether the record was produced by the fallback path.
func (r PromptRecord) IsFallback() bool {
	return r.Status == StatusFallback
}

// patterns is an ordered cascade from strictest to most permissive.
// Order is significant: the strict single-level patterns have the least
// chance of capturing an unrelated brace pair, so they run first.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`\{[^{}]*"prompt_en"[^{}]*"prompt_pl"[^{}]*\}`),
	regexp.MustCompile(`\{[^{}]*"prompt_pl"[^{}]*"prompt_en"[^{}]*\}`),
	regexp.MustCompile(`(?s)\{.*?"prompt_en".*?"prompt_pl".*?\}`),
	regexp.MustCompile(`(?s)\{.*?"prompt_pl".*?"prompt_en".*?\}`),
	regexp.MustCompile(`(?s)\{.*\}`),
}

// FromResponse extracts a PromptRecord from raw model output. Each pattern
// is tried in order against the entire input; the first match that parses
// as JSON and carries both required keys wins. When the cascade is
// exhausted the raw text is truncated into both fields and tagged as a
// fallback. FromResponse never fails.
func FromResponse(raw string) PromptRecord {
	for _, pattern := range patterns {
		match := pattern.FindString(raw)
		if match == "" {
			continue
		}

		var data map[string]any
		if err := json.Unmarshal([]byte(match), &data); err != nil {
			continue
		}

		en, enOK := data["prompt_en"].(string)
		pl, plOK := data["prompt_pl"].(string)
		if !enOK || !plOK {
			continue
		}

		return PromptRecord{PromptEN: en, PromptPL: pl}
	}

	logging.LogEvent("extract: no parseable prompt object found, using raw fallback")
	truncated := truncateRunes(raw, fallbackLimit)
	return PromptRecord{
		PromptEN: truncated,
		PromptPL: truncated,
		Status:   StatusFallback,
	}
}

// truncateRunes cuts text to at most max runes without splitting characters.
func truncateRunes(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
