package correlation

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/SBleeyouk/deepfake-daily/internal/entry"
	"github.com/SBleeyouk/deepfake-daily/internal/store"
	"github.com/SBleeyouk/deepfake-daily/pkg/logger"
)

// EntrySource supplies the working set for one correlation computation.
type EntrySource interface {
	List(ctx context.Context, f store.Filters) ([]entry.Entry, error)
}

// LinkInferrer produces thematic link candidates for a batch of entries.
// Implementations are expected to be slow (network round trip to an AI
// provider) and unreliable; errors degrade the graph, they never fail it.
type LinkInferrer interface {
	InferLinks(ctx context.Context, entries []entry.Entry) ([]Link, error)
}

// Service is the single entry point for the correlation view: cached graph
// reads and explicit invalidation.
type Service struct {
	source       EntrySource
	inferrer     LinkInferrer
	cache        *Cache
	group        singleflight.Group
	inferTimeout time.Duration
	logger       *zap.Logger
}

// NewService wires the facade. ttl bounds cache freshness and inferTimeout
// bounds the provider call per computation.
func NewService(source EntrySource, inferrer LinkInferrer, ttl, inferTimeout time.Duration) *Service {
	return &Service{
		source:       source,
		inferrer:     inferrer,
		cache:        NewCache(ttl),
		inferTimeout: inferTimeout,
		logger:       logger.Get(),
	}
}

// Graph returns the current correlation graph, recomputing on a cache miss.
// Concurrent misses are collapsed into one in-flight computation that all
// callers share. A record store failure is the only hard error; inference
// failures degrade to a manual-links-only graph.
func (s *Service) Graph(ctx context.Context) (*Graph, error) {
	if g, ok := s.cache.Get(); ok {
		return g, nil
	}

	v, err, shared := s.group.Do("correlation-graph", func() (interface{}, error) {
		return s.compute(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Joined in-flight graph computation")
	}
	return v.(*Graph), nil
}

// Refresh invalidates the cache without recomputing; the next Graph call
// does the work.
func (s *Service) Refresh() {
	s.cache.Invalidate()
	s.logger.Info("Correlation cache invalidated")
}

func (s *Service) compute(ctx context.Context) (*Graph, error) {
	start := time.Now()

	entries, err := s.source.List(ctx, store.Filters{})
	if err != nil {
		// No record data means no graph can be built.
		return nil, err
	}

	var manual, inferred []Link
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		manual = ExtractManualLinks(entries)
		return nil
	})
	g.Go(func() error {
		inferCtx, cancel := context.WithTimeout(gctx, s.inferTimeout)
		defer cancel()

		links, err := s.inferrer.InferLinks(inferCtx, entries)
		if err != nil {
			// Provider timeouts, rate limits and garbage output all reduce
			// the view to manual links only.
			s.logger.Warn("Link inference failed, using manual links only", zap.Error(err))
			return nil
		}
		inferred = links
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	graph := Merge(manual, inferred, entries)
	s.cache.Store(graph)

	s.logger.Info("Correlation graph computed",
		zap.Int("nodes", len(graph.Nodes)),
		zap.Int("manual_links", len(manual)),
		zap.Int("inferred_links", len(inferred)),
		zap.Int("merged_links", len(graph.Links)),
		zap.Duration("took", time.Since(start)),
	)
	return graph, nil
}
