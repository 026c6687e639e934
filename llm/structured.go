package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// FieldType is the expected JSON type of a schema field.
type FieldType int

const (
	Number FieldType = iota
	Bool
	String
	StringArray
)

// Schema lists the fields a structured reply must carry. Every field is
// required; a missing or mistyped field fails the whole reply.
type Schema map[string]FieldType

// Structured sends a prompt that demands a JSON reply and validates the reply
// against the schema before handing it back. Any shape mismatch is an error,
// never a partially-trusted result.
func (c *Client) Structured(ctx context.Context, system, prompt string, schema Schema) (gjson.Result, error) {
	raw, err := c.Chat(ctx, []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return gjson.Result{}, err
	}

	cleaned := stripFences(raw)
	if !gjson.Valid(cleaned) {
		return gjson.Result{}, fmt.Errorf("response is not valid JSON")
	}

	doc := gjson.Parse(cleaned)
	for name, ft := range schema {
		field := doc.Get(name)
		if !field.Exists() {
			return gjson.Result{}, fmt.Errorf("response missing field %q", name)
		}
		if !typeMatches(field, ft) {
			return gjson.Result{}, fmt.Errorf("response field %q has wrong type", name)
		}
	}
	return doc, nil
}

func typeMatches(v gjson.Result, ft FieldType) bool {
	switch ft {
	case Number:
		return v.Type == gjson.Number
	case Bool:
		return v.Type == gjson.True || v.Type == gjson.False
	case String:
		return v.Type == gjson.String
	case StringArray:
		if !v.IsArray() {
			return false
		}
		for _, el := range v.Array() {
			if el.Type != gjson.String {
				return false
			}
		}
		return true
	}
	return false
}

// stripFences removes markdown code fences models like to wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
