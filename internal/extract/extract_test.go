// internal/extract/extract_test.go
package extract

import (
	"strings"
	"testing"
)

func TestFromResponseStrictObject(t *testing.T) {
	t.Parallel()

	record := FromResponse(`{"prompt_en":"a cat","prompt_pl":"kot"}`)
	if record.PromptEN != "a cat" || record.PromptPL != "kot" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.IsFallback() {
		t.Fatalf("strict parse should not be a fallback: %+v", record)
	}
}

func TestFromResponseReversedKeysWithProse(t *testing.T) {
	t.Parallel()

	raw := `Sure! Here you go: {"prompt_pl":"kot","prompt_en":"a cat"} Hope that helps.`
	record := FromResponse(raw)
	if record.PromptEN != "a cat" || record.PromptPL != "kot" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.Status != "" {
		t.Fatalf("expected empty status, got %q", record.Status)
	}
}

func TestFromResponseMarkdownFencedObject(t *testing.T) {
	t.Parallel()

	raw := "Here is the result:\n```json\n{\n  \"prompt_en\": \"a dog\",\n  \"prompt_pl\": \"pies\"\n}\n```\n"
	record := FromResponse(raw)
	if record.PromptEN != "a dog" || record.PromptPL != "pies" {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestFromResponseNoObjectFallsBack(t *testing.T) {
	t.Parallel()

	raw := "I cannot help with that."
	record := FromResponse(raw)
	if !record.IsFallback() {
		t.Fatalf("expected fallback record, got %+v", record)
	}
	if record.PromptEN != raw || record.PromptPL != raw {
		t.Fatalf("fallback should carry raw text in both fields: %+v", record)
	}
	if record.Status != StatusFallback {
		t.Fatalf("expected status %q, got %q", StatusFallback, record.Status)
	}
}

func TestFromResponseFallbackTruncatesToFiveHundred(t *testing.T) {
	t.Parallel()

	raw := strings.Repeat("ż", 600)
	record := FromResponse(raw)
	if !record.IsFallback() {
		t.Fatalf("expected fallback record, got status %q", record.Status)
	}
	want := strings.Repeat("ż", 500)
	if record.PromptEN != want {
		t.Fatalf("fallback not truncated to 500 runes: got %d runes", len([]rune(record.PromptEN)))
	}
	if record.PromptPL != record.PromptEN {
		t.Fatalf("both language fields must carry the same fallback text")
	}
}

func TestFromResponseSecondObjectCarriesKeys(t *testing.T) {
	t.Parallel()

	// Only the second brace pair holds both required keys; the loose
	// patterns scan the whole input so the parse must still succeed.
	raw := `{"note":"irrelevant"} and then {"prompt_en":"a bird","prompt_pl":"ptak"}`
	record := FromResponse(raw)
	if record.IsFallback() {
		t.Fatalf("expected a parsed record, got fallback")
	}
	if record.PromptEN != "a bird" || record.PromptPL != "ptak" {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestFromResponseMalformedJSONInsideBracesFallsBack(t *testing.T) {
	t.Parallel()

	raw := `{"prompt_en": broken, "prompt_pl": also broken}`
	record := FromResponse(raw)
	if !record.IsFallback() {
		t.Fatalf("malformed JSON must resolve to the fallback, got %+v", record)
	}
}

func TestFromResponseMissingKeyFallsBack(t *testing.T) {
	t.Parallel()

	raw := `{"prompt_en":"only english"}`
	record := FromResponse(raw)
	if !record.IsFallback() {
		t.Fatalf("record without both keys must fall back, got %+v", record)
	}
}

func TestFromResponseNonStringValuesFallBack(t *testing.T) {
	t.Parallel()

	raw := `{"prompt_en": 12, "prompt_pl": true}`
	record := FromResponse(raw)
	if !record.IsFallback() {
		t.Fatalf("non-string values must fall back, got %+v", record)
	}
}

func TestFromResponseMultilineObject(t *testing.T) {
	t.Parallel()

	raw := "prefix\n{\"prompt_en\": \"a forest\",\n\n\"prompt_pl\": \"las\"}\nsuffix"
	record := FromResponse(raw)
	if record.PromptEN != "a forest" || record.PromptPL != "las" {
		t.Fatalf("unexpected record: %+v", record)
	}
}
