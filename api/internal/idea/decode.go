package idea

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"aideas/api/internal/apperr"
	"aideas/api/internal/types"
)

// Decode parses the model text into an IdeaAnalysis. It fails closed: the
// result is complete or the error is a MalformedResponse naming the field.
func Decode(raw string) (types.IdeaAnalysis, error) {
	if strings.TrimSpace(raw) == "" {
		return types.IdeaAnalysis{}, apperr.Malformed("", "No content received from the model", nil)
	}

	if !json.Valid([]byte(raw)) {
		return types.IdeaAnalysis{}, apperr.Malformed("", "Invalid JSON response from the model", nil)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return types.IdeaAnalysis{}, apperr.Malformed("", "Invalid response structure from the model: expected a JSON object", err)
	}

	var (
		res types.IdeaAnalysis
		err error
	)
	if res.MarketSize, err = requireString(fields, "marketSize"); err != nil {
		return types.IdeaAnalysis{}, err
	}
	if res.BusinessModel, err = requireString(fields, "businessModel"); err != nil {
		return types.IdeaAnalysis{}, err
	}
	if res.MonetizationStrategies, err = requireStrings(fields, "monetizationStrategies"); err != nil {
		return types.IdeaAnalysis{}, err
	}
	if res.Competitors, err = requireStrings(fields, "competitors"); err != nil {
		return types.IdeaAnalysis{}, err
	}
	return res, nil
}

func requireString(fields map[string]json.RawMessage, key string) (string, error) {
	v, err := present(fields, key)
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", invalidField(key, "must be a string", err)
	}
	if s == "" {
		return "", invalidField(key, "is empty", nil)
	}
	return s, nil
}

func requireStrings(fields map[string]json.RawMessage, key string) ([]string, error) {
	v, err := present(fields, key)
	if err != nil {
		return nil, err
	}
	var items []string
	if err := json.Unmarshal(v, &items); err != nil {
		return nil, invalidField(key, "must be an array of strings", err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

func present(fields map[string]json.RawMessage, key string) (json.RawMessage, error) {
	v, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, invalidField(key, "is missing", nil)
	}
	return v, nil
}

func invalidField(key, problem string, err error) error {
	return apperr.Malformed(key, fmt.Sprintf("Invalid response structure from the model: %s %s", key, problem), err)
}
