package symmetry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mocassin-sim/mocassin-go/pkg/model"
)

// ErrUnknownGeometry is returned when no point group is known for a geometry.
var ErrUnknownGeometry = errors.New("no point operation group for geometry")

// Service resolves point operation groups.
type Service interface {
	// PointOperationGroup returns the point symmetry of origin together
	// with the projection orders of the given position sequence.
	PointOperationGroup(ctx context.Context, origin model.Vector3, sequence []model.Vector3) (*PointOperationGroup, error)
}

// GeometryKey returns the lookup key of an origin and sequence.
func GeometryKey(origin model.Vector3, sequence []model.Vector3) string {
	var b strings.Builder
	b.WriteString(origin.String())
	for _, v := range sequence {
		b.WriteByte('|')
		b.WriteString(v.String())
	}
	return b.String()
}

// StaticService answers from a fixed table of groups.
type StaticService struct {
	mu     sync.RWMutex
	groups map[string]*PointOperationGroup
}

// NewStaticService creates a service that knows the given groups.
func NewStaticService(groups ...*PointOperationGroup) *StaticService {
	s := &StaticService{groups: make(map[string]*PointOperationGroup, len(groups))}
	for _, g := range groups {
		s.Add(g)
	}
	return s
}

// Add registers g under its own origin and sequence.
func (s *StaticService) Add(g *PointOperationGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[GeometryKey(g.Origin, g.Sequence)] = g
}

// PointOperationGroup implements Service.
func (s *StaticService) PointOperationGroup(_ context.Context, origin model.Vector3, sequence []model.Vector3) (*PointOperationGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[GeometryKey(origin, sequence)]
	if !ok {
		return nil, fmt.Errorf("%w: origin %s with %d positions", ErrUnknownGeometry, origin, len(sequence))
	}
	return g, nil
}

// CachedService caches the groups returned by an upstream service.
type CachedService struct {
	upstream Service
	cache    *lru.Cache[string, *PointOperationGroup]
}

// NewCachedService wraps upstream with an LRU cache holding up to size groups.
func NewCachedService(upstream Service, size int) (*CachedService, error) {
	cache, err := lru.New[string, *PointOperationGroup](size)
	if err != nil {
		return nil, fmt.Errorf("create symmetry cache: %w", err)
	}
	return &CachedService{upstream: upstream, cache: cache}, nil
}

// PointOperationGroup implements Service. Errors are not cached.
func (s *CachedService) PointOperationGroup(ctx context.Context, origin model.Vector3, sequence []model.Vector3) (*PointOperationGroup, error) {
	key := GeometryKey(origin, sequence)
	if g, ok := s.cache.Get(key); ok {
		return g, nil
	}

	g, err := s.upstream.PointOperationGroup(ctx, origin, sequence)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, g)
	return g, nil
}

// Len returns the number of cached groups.
func (s *CachedService) Len() int {
	return s.cache.Len()
}

// Compile-time interface satisfaction checks.
var (
	_ Service = (*StaticService)(nil)
	_ Service = (*CachedService)(nil)
)
