// internal/enhance/validate.go
package enhance

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/nerrospl/promptforge/internal/extract"
)

// recordSchema is the structural contract for an enhanced prompt record.
const recordSchema = `{
	"type": "object",
	"required": ["prompt_en", "prompt_pl"],
	"properties": {
		"prompt_en": {"type": "string", "minLength": 20},
		"prompt_pl": {"type": "string", "minLength": 20}
	}
}`

var recordSchemaLoader = gojsonschema.NewStringLoader(recordSchema)

// detailKeywords are terms whose presence indicates the model actually added
// visual detail rather than paraphrasing the input.
var detailKeywords = []string{
	"light", "texture", "color", "shadow", "atmosphere", "detail",
	"golden", "cinematic", "composition", "lighting", "mood",
	"świat", "oświetlenie", "tekstura", "kolor", "atmosfera",
	"szczegół", "nastrój", "złoty", "kinematograficzny",
}

// validate checks an extracted record against the structural schema and the
// quality heuristics. It returns a human-readable warning, or "" when the
// record passes.
func validate(record extract.PromptRecord, targetWords int, detailLevel string) string {
	if warning := validateSchema(record); warning != "" {
		return warning
	}

	enWords := len(strings.Fields(record.PromptEN))
	minWords := targetWords / 2
	if minWords < minWordCount {
		minWords = minWordCount
	}
	if enWords < minWords {
		return fmt.Sprintf("too short: %d words (min: %d)", enWords, minWords)
	}

	if detailLevel == "high" && !hasDetailKeywords(record) {
		return "missing visual details for high detail level"
	}

	lowered := strings.ToLower(record.PromptEN + " " + record.PromptPL)
	if strings.Contains(lowered, "error") {
		return "error text found in response"
	}

	return ""
}

// validateSchema runs the gojsonschema structural check over the record.
func validateSchema(record extract.PromptRecord) string {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Sprintf("could not encode record for validation: %v", err)
	}

	result, err := gojsonschema.Validate(recordSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Sprintf("schema validation error: %v", err)
	}
	if result.Valid() {
		return ""
	}

	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return "record failed validation: " + strings.Join(details, "; ")
}

func hasDetailKeywords(record extract.PromptRecord) bool {
	lowered := strings.ToLower(record.PromptEN + " " + record.PromptPL)
	for _, kw := range detailKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
