// Package llmjson pulls JSON payloads out of free-form model output, which
// often wraps them in markdown fences or surrounding prose.
package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNoJSON = errors.New("no json payload found")

// Clean strips markdown code fences and surrounding whitespace.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// ExtractObject decodes the first {...} span of text into v.
func ExtractObject(text string, v any) error {
	text = Clean(text)
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	body, ok := enclosed(text, '{', '}')
	if !ok {
		return ErrNoJSON
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("failed to parse json object: %w", err)
	}
	return nil
}

// ExtractArray decodes the first [...] span of text into v. When that span is
// not valid JSON, every flat {...} object in the text is collected instead.
func ExtractArray(text string, v any) error {
	text = Clean(text)
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	if body, ok := enclosed(text, '[', ']'); ok {
		if err := json.Unmarshal([]byte(body), v); err == nil {
			return nil
		}
	}

	objects := flatObjects(text)
	if len(objects) == 0 {
		return ErrNoJSON
	}
	joined := "[" + strings.Join(objects, ",") + "]"
	if err := json.Unmarshal([]byte(joined), v); err != nil {
		return fmt.Errorf("failed to parse json array: %w", err)
	}
	return nil
}

// enclosed returns text between the first open and the last close rune.
func enclosed(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// flatObjects collects {...} runs that do not nest and parse on their own.
func flatObjects(text string) []string {
	var out []string
	for {
		start := strings.IndexByte(text, '{')
		if start < 0 {
			return out
		}
		end := strings.IndexByte(text[start:], '}')
		if end < 0 {
			return out
		}
		candidate := text[start : start+end+1]
		if json.Valid([]byte(candidate)) {
			out = append(out, candidate)
		}
		text = text[start+end+1:]
	}
}
