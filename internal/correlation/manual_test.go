package correlation

import (
	"testing"

	"github.com/SBleeyouk/deepfake-daily/internal/entry"
)

func TestExtractManualLinks_Basic(t *testing.T) {
	entries := []entry.Entry{
		{ID: "1", RelatedIDs: []string{"2"}},
		{ID: "2"},
		{ID: "3"},
	}

	links := ExtractManualLinks(entries)
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	l := links[0]
	if l.SourceID != "1" || l.TargetID != "2" {
		t.Errorf("unexpected endpoints: %+v", l)
	}
	if l.Label != "manually linked" || l.Strength != 1.0 || l.Origin != OriginManual {
		t.Errorf("unexpected link metadata: %+v", l)
	}
}

func TestExtractManualLinks_DropsDanglingReference(t *testing.T) {
	entries := []entry.Entry{
		{ID: "1", RelatedIDs: []string{"9"}},
	}

	links := ExtractManualLinks(entries)
	if len(links) != 0 {
		t.Errorf("expected dangling reference to be dropped, got %+v", links)
	}
}

func TestExtractManualLinks_DropsSelfReference(t *testing.T) {
	entries := []entry.Entry{
		{ID: "1", RelatedIDs: []string{"1", "2"}},
		{ID: "2"},
	}

	links := ExtractManualLinks(entries)
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if links[0].TargetID != "2" {
		t.Errorf("self-reference must be skipped, got %+v", links[0])
	}
}

func TestExtractManualLinks_KeepsReciprocalCandidates(t *testing.T) {
	// Both directions survive extraction; Merge collapses them.
	entries := []entry.Entry{
		{ID: "1", RelatedIDs: []string{"2"}},
		{ID: "2", RelatedIDs: []string{"1"}},
	}

	links := ExtractManualLinks(entries)
	if len(links) != 2 {
		t.Errorf("expected both reciprocal candidates, got %d", len(links))
	}
}

func TestExtractManualLinks_NilRelatedIDs(t *testing.T) {
	entries := []entry.Entry{
		{ID: "1", RelatedIDs: nil},
		{ID: "2", RelatedIDs: []string{}},
	}

	if links := ExtractManualLinks(entries); len(links) != 0 {
		t.Errorf("expected no links, got %+v", links)
	}
}
