package correlation

import "github.com/SBleeyouk/deepfake-daily/internal/entry"

const manualLabel = "manually linked"

// ExtractManualLinks turns each entry's declared RelatedIDs into candidate
// links. Self-references and ids missing from the working set are dropped as
// benign input noise. Reciprocal pairs (A->B and B->A) are both emitted;
// collapsing them is Merge's job.
func ExtractManualLinks(entries []entry.Entry) []Link {
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.ID] = true
	}

	var links []Link
	for _, e := range entries {
		for _, relatedID := range e.RelatedIDs {
			if relatedID == e.ID || relatedID == "" {
				continue
			}
			if !present[relatedID] {
				// Dangling reference: the related entry is not part of the
				// working set, so a link would point at a missing node.
				continue
			}
			links = append(links, Link{
				SourceID: e.ID,
				TargetID: relatedID,
				Label:    manualLabel,
				Strength: 1.0,
				Origin:   OriginManual,
			})
		}
	}
	return links
}
