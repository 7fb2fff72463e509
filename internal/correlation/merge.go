package correlation

import "github.com/SBleeyouk/deepfake-daily/internal/entry"

// Merge assembles the full graph from both link sources. Every entry in the
// working set becomes a node, connected or not. Links are deduplicated by
// unordered pair with first-occurrence-wins semantics; manual links are
// iterated before inferred ones, so on a shared pair the manual link's label
// and strength survive.
func Merge(manual, inferred []Link, entries []entry.Entry) *Graph {
	nodes := make([]Node, 0, len(entries))
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		nodes = append(nodes, Node{
			ID:       e.ID,
			Title:    e.Title,
			Category: e.Category,
			Tags:     e.Tags,
		})
		present[e.ID] = true
	}

	seen := make(map[string]bool)
	links := make([]Link, 0, len(manual)+len(inferred))
	for _, link := range append(append([]Link{}, manual...), inferred...) {
		// Upstream extractors already exclude self-links and dangling
		// endpoints; re-check here so a broken source cannot violate the
		// graph invariants.
		if link.SourceID == link.TargetID {
			continue
		}
		if !present[link.SourceID] || !present[link.TargetID] {
			continue
		}
		key := CanonicalKey(link.SourceID, link.TargetID)
		if seen[key] {
			continue
		}
		seen[key] = true
		links = append(links, link)
	}

	return &Graph{Nodes: nodes, Links: links}
}
