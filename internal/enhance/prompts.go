// internal/enhance/prompts.go
package enhance

import "fmt"

// detailInstructions maps a detail level to the system-prompt guidance for it.
var detailInstructions = map[string]string{
	"low":    "Be concise. Describe only the key elements without unnecessary detail. Focus on the main components of the scene.",
	"medium": "Describe the visual elements with specifics. Add information about lighting, colors, and the basic atmosphere.",
	"high": "Add a LOT of detail: textures, colors, lighting, atmosphere, effects, depth of field, color temperature, " +
		"light types, shadows, reflections, contrast, saturation, surface materials, air quality, fog, particles. " +
		"Be very detailed and descriptive.",
}

// styleInstructions maps a description style to the system-prompt guidance for it.
var styleInstructions = map[string]string{
	"cinematic": "Use cinematographic language (cinematography, lighting design, lens choice, composition, " +
		"depth of field, color grading, mise-en-scène, visual storytelling).",
	"artistic": "Focus on artistic aspects (art style, composition, aesthetic, artistic movement, " +
		"color palette, brushwork, visual harmony, artistic techniques).",
	"technical": "Describe technical parameters (resolution, bit depth, frame rate, codec, color space, " +
		"dynamic range, exposure settings, white balance, ISO, aperture equivalents).",
}

// expansionDetail maps a detail level to the element-count instruction used
// by the expansion pre-pass.
var expansionDetail = map[string]string{
	"low":    "Identify the 2-3 main elements.",
	"medium": "Identify 4-5 main visual elements.",
	"high":   "Identify 6-8 visual elements and their relations.",
}

func detailFor(level string) string {
	if text, ok := detailInstructions[level]; ok {
		return text
	}
	return detailInstructions["medium"]
}

func styleFor(style string) string {
	if text, ok := styleInstructions[style]; ok {
		return text
	}
	return styleInstructions["cinematic"]
}

// expansionSystemPrompt builds the instruction for the element-extraction
// pre-pass.
func expansionSystemPrompt(language, detailLevel string) string {
	detail, ok := expansionDetail[detailLevel]
	if !ok {
		detail = expansionDetail["medium"]
	}

	if language == "pl" {
		return fmt.Sprintf(`Jesteś asystentem do rozwijania polskich promptów.
Twoim zadaniem jest przeanalizować polski prompt i zwrócić listę kluczowych
elementów wizualnych, które będą pomocne w wzbogacaniu opisu.

%s

Zwróć JSON z polem "elements" zawierającym listę zidentyfikowanych elementów.`, detail)
	}

	return fmt.Sprintf(`You are an assistant for expanding prompts.
Analyze the prompt and identify key visual elements.

%s

Return JSON with "elements" field containing identified elements.`, detail)
}

// buildSystemPrompt builds the enhancement instruction, including word-count,
// detail, and style guidance plus an optional image context block.
func buildSystemPrompt(req Request, imageContext string) string {
	base := fmt.Sprintf(`You are an expert in creating EXTREMELY DETAILED, COMPREHENSIVE,
and RICH prompts for image and video generation tools.

KEY GUIDELINES:
1. EXPAND and ELABORATE on the input - don't just translate
2. Add CONCRETE details (not generalizations)
3. %s
4. %s
5. Target length: ~%d words (IMPORTANT: count words accurately)
6. Preserve original intent
7. Create natural, detailed descriptions
8. Both EN and PL versions must be COMPREHENSIVE

RESPONSE STRUCTURE (JSON):
{
    "prompt_en": "Extremely detailed English description with rich details...",
    "prompt_pl": "Extremely detailed Polish description with rich details..."
}

CRITICAL: Both prompts must be ELABORATE and DETAILED, not short!`,
		detailFor(req.DetailLevel), styleFor(req.Style), req.WordCount)

	if imageContext != "" {
		base += "\n\nIMAGE CONTEXT TO INCORPORATE:\n" + imageContext
	}
	return base
}

// buildUserPrompt builds the task message, naming the elements identified by
// the expansion pre-pass when one succeeded.
func buildUserPrompt(req Request, expanded string) string {
	if expanded == "" {
		expanded = "all aspects"
	}
	return fmt.Sprintf(`Base prompt: %q

Identified elements to expand: %s

Task: Enrich the above prompt with DETAILS, SPECIFICS and VISUAL DESCRIPTIONS.
Remember:
1. ALWAYS return a COMPREHENSIVE description (%d+ words)
2. CONCRETE details (colors, materials, lighting, textures)
3. JSON format ONLY
4. Both fields (prompt_en and prompt_pl) MUST be detailed`,
		req.Prompt, expanded, req.WordCount)
}
