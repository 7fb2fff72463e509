package store

import (
	"context"
	"testing"

	"github.com/SBleeyouk/deepfake-daily/internal/entry"
	"github.com/SBleeyouk/deepfake-daily/pkg/errors"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, entry.CreateInput{
		Title:       "Voice cloning scam in Hong Kong",
		Category:    entry.CategoryEvent,
		Tags:        []string{"voice-cloning", "fraud"},
		Comments:    "CFO impersonated on a video call",
		SubmittedBy: "researcher@mit.edu",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned id")
	}
	if created.TimeAdded.IsZero() {
		t.Fatal("expected TimeAdded to be set")
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != created.Title {
		t.Errorf("expected title %q, got %q", created.Title, got.Title)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "voice-cloning" {
		t.Errorf("unexpected tags: %v", got.Tags)
	}
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "no-such-id")
	if err == nil {
		t.Fatal("expected error for missing entry")
	}
	if !errors.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestSQLiteStore_ListFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seed := []entry.CreateInput{
		{Title: "NO FAKES Act", Category: entry.CategoryLawPolicy, Tags: []string{"legislation"}},
		{Title: "Face swap detection", Category: entry.CategoryTechResearch, Tags: []string{"detection"}},
		{Title: "Election robocall", Category: entry.CategoryEvent, Tags: []string{"audio", "detection"}},
	}
	for _, in := range seed {
		if _, err := s.Create(ctx, in); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all, err := s.List(ctx, Filters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}

	byCategory, err := s.List(ctx, Filters{Category: entry.CategoryEvent})
	if err != nil {
		t.Fatalf("List by category failed: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].Title != "Election robocall" {
		t.Errorf("unexpected category filter result: %+v", byCategory)
	}

	byTag, err := s.List(ctx, Filters{Tag: "detection"})
	if err != nil {
		t.Fatalf("List by tag failed: %v", err)
	}
	if len(byTag) != 2 {
		t.Errorf("expected 2 entries tagged detection, got %d", len(byTag))
	}
}

func TestSQLiteStore_UpdatePreservesImmutableFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, entry.CreateInput{
		Title:    "Original title",
		Category: entry.CategoryOther,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newTitle := "Edited title"
	related := []string{"abc-123"}
	updated, err := s.Update(ctx, created.ID, entry.UpdateInput{
		Title:      &newTitle,
		RelatedIDs: &related,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Title != newTitle {
		t.Errorf("expected title %q, got %q", newTitle, updated.Title)
	}
	if updated.ID != created.ID {
		t.Error("id must not change on update")
	}
	if !updated.TimeAdded.Equal(created.TimeAdded) {
		t.Error("TimeAdded must not change on update")
	}
	if updated.Category != entry.CategoryOther {
		t.Error("unset fields must be left untouched")
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.RelatedIDs) != 1 || got.RelatedIDs[0] != "abc-123" {
		t.Errorf("related ids not persisted: %v", got.RelatedIDs)
	}
}

func TestSQLiteStore_AllTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inputs := []entry.CreateInput{
		{Title: "a", Category: entry.CategoryOther, Tags: []string{"audio", "fraud"}},
		{Title: "b", Category: entry.CategoryOther, Tags: []string{"fraud", "politics"}},
	}
	for _, in := range inputs {
		if _, err := s.Create(ctx, in); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	tags, err := s.AllTags(ctx)
	if err != nil {
		t.Fatalf("AllTags failed: %v", err)
	}
	if len(tags) != 3 {
		t.Errorf("expected 3 distinct tags, got %v", tags)
	}
}
