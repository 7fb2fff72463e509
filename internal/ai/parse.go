package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SBleeyouk/deepfake-daily/internal/correlation"
)

type linkPayload struct {
	SourceID string  `json:"sourceId"`
	TargetID string  `json:"targetId"`
	Label    string  `json:"label"`
	Strength float64 `json:"strength"`
}

// decodeLinks parses the provider's raw text into validated links. The model
// is asked for a bare JSON array, but fenced or prefixed output still shows
// up, so the array is located before decoding. Individual bad entries are
// filtered out rather than rejecting the whole batch; only an undecodable
// payload is an error.
func decodeLinks(raw string) ([]correlation.Link, error) {
	text := stripFences(raw)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end < start {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var payload []linkPayload
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("decode links: %w", err)
	}

	links := make([]correlation.Link, 0, len(payload))
	for _, p := range payload {
		if p.SourceID == "" || p.TargetID == "" || p.SourceID == p.TargetID {
			continue
		}
		if p.Strength < MinLinkStrength || p.Strength > 1.0 {
			continue
		}
		links = append(links, correlation.Link{
			SourceID: p.SourceID,
			TargetID: p.TargetID,
			Label:    p.Label,
			Strength: p.Strength,
			Origin:   correlation.OriginInferred,
		})
	}
	return links, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx != -1 {
		// Drop the language tag line ("json" etc).
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
