// Package correlation derives and caches the thematic graph over the logged
// entries: every entry becomes a node, and edges come from the authors'
// manual cross-references plus AI-inferred thematic connections.
package correlation

import "github.com/SBleeyouk/deepfake-daily/internal/entry"

// Origin tags where a link came from. Manual links outrank inferred ones
// when both describe the same pair.
type Origin string

const (
	OriginManual   Origin = "manual"
	OriginInferred Origin = "inferred"
)

// Link is an edge between two entries. The (SourceID, TargetID) pair is
// semantically unordered.
type Link struct {
	SourceID string  `json:"sourceId"`
	TargetID string  `json:"targetId"`
	Label    string  `json:"label"`
	Strength float64 `json:"strength"`
	Origin   Origin  `json:"origin"`
}

// Node is the renderable projection of an entry.
type Node struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Category entry.Category `json:"category"`
	Tags     []string       `json:"tags"`
}

// Graph is the merged correlation view. Every id referenced by a link is
// guaranteed to appear in Nodes.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}
