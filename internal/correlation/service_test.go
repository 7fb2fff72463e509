package correlation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SBleeyouk/deepfake-daily/internal/entry"
	"github.com/SBleeyouk/deepfake-daily/internal/store"
)

type fakeSource struct {
	mu      sync.Mutex
	entries []entry.Entry
	err     error
	calls   int
}

func (f *fakeSource) List(ctx context.Context, _ store.Filters) ([]entry.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeInferrer struct {
	links []Link
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (f *fakeInferrer) InferLinks(ctx context.Context, _ []entry.Entry) ([]Link, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.links, nil
}

func TestService_GraphMergesBothSources(t *testing.T) {
	source := &fakeSource{entries: []entry.Entry{
		{ID: "1", RelatedIDs: []string{"2"}},
		{ID: "2"},
		{ID: "3"},
	}}
	inferrer := &fakeInferrer{links: []Link{
		{SourceID: "2", TargetID: "3", Label: "shared themes", Strength: 0.6, Origin: OriginInferred},
	}}
	svc := NewService(source, inferrer, DefaultTTL, time.Second)

	g, err := svc.Graph(context.Background())
	if err != nil {
		t.Fatalf("Graph failed: %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("expected 3 nodes, got %d", len(g.Nodes))
	}
	if len(g.Links) != 2 {
		t.Errorf("expected manual + inferred link, got %d", len(g.Links))
	}
}

func TestService_InferenceFailureDegradesToManualOnly(t *testing.T) {
	source := &fakeSource{entries: []entry.Entry{
		{ID: "1", RelatedIDs: []string{"2"}},
		{ID: "2"},
	}}
	inferrer := &fakeInferrer{err: errors.New("rate limited")}
	svc := NewService(source, inferrer, DefaultTTL, time.Second)

	g, err := svc.Graph(context.Background())
	if err != nil {
		t.Fatalf("inference failure must not surface: %v", err)
	}
	if len(g.Links) != 1 || g.Links[0].Origin != OriginManual {
		t.Errorf("expected manual links only, got %+v", g.Links)
	}
}

func TestService_InferenceTimeoutDegrades(t *testing.T) {
	source := &fakeSource{entries: []entry.Entry{{ID: "1"}, {ID: "2"}}}
	inferrer := &fakeInferrer{delay: time.Second, links: []Link{{SourceID: "1", TargetID: "2"}}}
	svc := NewService(source, inferrer, DefaultTTL, 10*time.Millisecond)

	g, err := svc.Graph(context.Background())
	if err != nil {
		t.Fatalf("timeout must degrade, not fail: %v", err)
	}
	if len(g.Links) != 0 {
		t.Errorf("expected no inferred links after timeout, got %+v", g.Links)
	}
}

func TestService_StoreFailureIsFatal(t *testing.T) {
	source := &fakeSource{err: errors.New("store unreachable")}
	svc := NewService(source, &fakeInferrer{}, DefaultTTL, time.Second)

	if _, err := svc.Graph(context.Background()); err == nil {
		t.Fatal("store failure must propagate to the caller")
	}
}

func TestService_CacheHitSkipsRecompute(t *testing.T) {
	source := &fakeSource{entries: []entry.Entry{{ID: "1"}, {ID: "2"}}}
	inferrer := &fakeInferrer{}
	svc := NewService(source, inferrer, DefaultTTL, time.Second)

	ctx := context.Background()
	first, err := svc.Graph(ctx)
	if err != nil {
		t.Fatalf("Graph failed: %v", err)
	}
	second, err := svc.Graph(ctx)
	if err != nil {
		t.Fatalf("Graph failed: %v", err)
	}

	if first != second {
		t.Error("cache hit must return the stored graph unchanged")
	}
	if source.callCount() != 1 {
		t.Errorf("expected a single store fetch, got %d", source.callCount())
	}
}

func TestService_RefreshIsLazy(t *testing.T) {
	source := &fakeSource{entries: []entry.Entry{{ID: "1"}, {ID: "2"}}}
	svc := NewService(source, &fakeInferrer{}, DefaultTTL, time.Second)

	ctx := context.Background()
	if _, err := svc.Graph(ctx); err != nil {
		t.Fatalf("Graph failed: %v", err)
	}

	svc.Refresh()
	if source.callCount() != 1 {
		t.Error("refresh must not recompute eagerly")
	}

	if _, err := svc.Graph(ctx); err != nil {
		t.Fatalf("Graph failed: %v", err)
	}
	if source.callCount() != 2 {
		t.Errorf("expected recompute after refresh, got %d fetches", source.callCount())
	}
}

func TestService_ConcurrentMissesCollapse(t *testing.T) {
	source := &fakeSource{entries: []entry.Entry{{ID: "1"}, {ID: "2"}}}
	inferrer := &fakeInferrer{delay: 50 * time.Millisecond}
	svc := NewService(source, inferrer, DefaultTTL, time.Second)

	const callers = 8
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Graph(context.Background()); err != nil {
				t.Errorf("Graph failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := inferrer.calls.Load(); got != 1 {
		t.Errorf("expected one provider call across concurrent misses, got %d", got)
	}
}
