package correlation

import (
	"reflect"
	"testing"

	"github.com/SBleeyouk/deepfake-daily/internal/entry"
)

func workingSet(ids ...string) []entry.Entry {
	entries := make([]entry.Entry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, entry.Entry{ID: id, Title: "entry " + id, Category: entry.CategoryOther})
	}
	return entries
}

func TestMerge_IsolatedEntriesBecomeNodes(t *testing.T) {
	entries := workingSet("1", "2", "3")
	manual := []Link{{SourceID: "1", TargetID: "2", Label: "manually linked", Strength: 1.0, Origin: OriginManual}}

	g := Merge(manual, nil, entries)
	if len(g.Nodes) != 3 {
		t.Errorf("expected 3 nodes, got %d", len(g.Nodes))
	}
	if len(g.Links) != 1 {
		t.Errorf("expected 1 link, got %d", len(g.Links))
	}
}

func TestMerge_ManualWinsOverInferredPair(t *testing.T) {
	entries := workingSet("1", "2")
	manual := []Link{{SourceID: "1", TargetID: "2", Label: "manually linked", Strength: 1.0, Origin: OriginManual}}
	inferred := []Link{{SourceID: "2", TargetID: "1", Label: "shared actors", Strength: 0.4, Origin: OriginInferred}}

	g := Merge(manual, inferred, entries)
	if len(g.Links) != 1 {
		t.Fatalf("expected exactly one link for the pair, got %d", len(g.Links))
	}
	l := g.Links[0]
	if l.Strength != 1.0 || l.Label != "manually linked" || l.Origin != OriginManual {
		t.Errorf("manual link must win the pair, got %+v", l)
	}
}

func TestMerge_ReciprocalManualCandidatesCollapse(t *testing.T) {
	entries := workingSet("1", "2")
	manual := []Link{
		{SourceID: "1", TargetID: "2", Origin: OriginManual},
		{SourceID: "2", TargetID: "1", Origin: OriginManual},
	}

	g := Merge(manual, nil, entries)
	if len(g.Links) != 1 {
		t.Errorf("expected reciprocal candidates to collapse, got %d links", len(g.Links))
	}
}

func TestMerge_Idempotent(t *testing.T) {
	entries := workingSet("1", "2", "3")
	manual := []Link{{SourceID: "1", TargetID: "2", Strength: 1.0, Origin: OriginManual}}
	inferred := []Link{
		{SourceID: "2", TargetID: "3", Strength: 0.5, Origin: OriginInferred},
		{SourceID: "3", TargetID: "1", Strength: 0.7, Origin: OriginInferred},
	}

	first := Merge(manual, inferred, entries)
	second := Merge(manual, inferred, entries)
	if !reflect.DeepEqual(first, second) {
		t.Error("merge must be deterministic for identical inputs")
	}
}

func TestMerge_DefensiveSelfLinkDrop(t *testing.T) {
	entries := workingSet("1", "2")
	inferred := []Link{
		{SourceID: "1", TargetID: "1", Strength: 0.9, Origin: OriginInferred},
		{SourceID: "1", TargetID: "2", Strength: 0.5, Origin: OriginInferred},
	}

	g := Merge(nil, inferred, entries)
	for _, l := range g.Links {
		if l.SourceID == l.TargetID {
			t.Errorf("self-link survived merge: %+v", l)
		}
	}
	if len(g.Links) != 1 {
		t.Errorf("expected 1 link, got %d", len(g.Links))
	}
}

func TestMerge_NoDanglingEndpoints(t *testing.T) {
	entries := workingSet("1", "2")
	inferred := []Link{
		{SourceID: "1", TargetID: "ghost", Strength: 0.8, Origin: OriginInferred},
		{SourceID: "1", TargetID: "2", Strength: 0.6, Origin: OriginInferred},
	}

	g := Merge(nil, inferred, entries)
	ids := make(map[string]bool)
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}
	for _, l := range g.Links {
		if !ids[l.SourceID] || !ids[l.TargetID] {
			t.Errorf("link endpoints missing from node set: %+v", l)
		}
	}
	if len(g.Links) != 1 {
		t.Errorf("expected link to ghost endpoint to be dropped, got %d links", len(g.Links))
	}
}

func TestMerge_EmptyInputs(t *testing.T) {
	g := Merge(nil, nil, nil)
	if len(g.Nodes) != 0 || len(g.Links) != 0 {
		t.Errorf("expected empty graph, got %+v", g)
	}
}
