package marshal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mocassin-sim/mocassin-go/pkg/interop"
)

// DefaultPoolSize is the number of blocks per record kind.
const DefaultPoolSize = 4

// Errors returned by the service.
var (
	ErrSizeMismatch = errors.New("buffer does not fit record size")
	ErrClosed       = errors.New("marshal service closed")
	ErrBlocksInUse  = errors.New("marshal blocks still in use")
)

// Config configures a Service.
type Config struct {
	// PoolSize is the number of blocks per record kind. Zero means
	// DefaultPoolSize.
	PoolSize int

	// AcquireTimeout bounds the wait for a block in calls without a
	// context. Zero waits indefinitely.
	AcquireTimeout time.Duration

	// Logger receives debug output. Nil means slog.Default().
	Logger *slog.Logger
}

// Stats is a snapshot of the pool usage.
type Stats struct {
	Pools     int
	Allocated int
	InUse     int
}

type block struct {
	buf     []byte
	holders atomic.Int32
}

type pool struct {
	size      int
	free      chan *block
	allocated int
}

// Service is safe for concurrent use.
type Service struct {
	cfg Config

	mu     sync.Mutex
	pools  map[interop.Kind]*pool
	inUse  int
	closed bool
	done   chan struct{}
}

// NewService creates a service with lazily allocated pools.
func NewService(cfg Config) *Service {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultPoolSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Service{
		cfg:   cfg,
		pools: make(map[interop.Kind]*pool),
		done:  make(chan struct{}),
	}
}

// PoolSize returns the number of blocks per kind.
func (s *Service) PoolSize() int {
	return s.cfg.PoolSize
}

// Stats returns the current pool usage.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Pools: len(s.pools), InUse: s.inUse}
	for _, p := range s.pools {
		st.Allocated += p.allocated
	}
	return st
}

// acquire returns an exclusively owned block for kind. It allocates a new
// block while the pool is below its size and otherwise waits for a release.
func (s *Service) acquire(ctx context.Context, kind interop.Kind, size int) (*block, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	p, ok := s.pools[kind]
	if !ok {
		p = &pool{size: size, free: make(chan *block, s.cfg.PoolSize)}
		s.pools[kind] = p
		s.cfg.Logger.Debug("marshal pool created", "kind", kind, "size", size, "blocks", s.cfg.PoolSize)
	}
	if p.size != size {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s pool holds %d byte blocks, record has %d", ErrSizeMismatch, kind, p.size, size)
	}

	var b *block
	select {
	case b = <-p.free:
	default:
		if p.allocated < s.cfg.PoolSize {
			p.allocated++
			b = &block{buf: make([]byte, size)}
		}
	}
	if b != nil {
		s.inUse++
		s.mu.Unlock()
		return s.own(b), nil
	}
	s.mu.Unlock()

	select {
	case b = <-p.free:
	case <-s.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	s.inUse++
	return s.own(b), nil
}

func (s *Service) own(b *block) *block {
	if n := b.holders.Add(1); n != 1 {
		panic(fmt.Sprintf("marshal: block acquired by %d owners", n))
	}
	return b
}

func (s *Service) release(kind interop.Kind, b *block) {
	b.holders.Add(-1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inUse--
	// The channel can hold every block of the pool, so this never blocks.
	if p, ok := s.pools[kind]; ok {
		p.free <- b
	}
}

// withBlock runs fn with an owned block and releases it afterwards.
func (s *Service) withBlock(ctx context.Context, kind interop.Kind, size int, fn func(buf []byte) error) error {
	b, err := s.acquire(ctx, kind, size)
	if err != nil {
		return err
	}
	defer s.release(kind, b)
	return fn(b.buf)
}

func (s *Service) background() (context.Context, context.CancelFunc) {
	if s.cfg.AcquireTimeout > 0 {
		return context.WithTimeout(context.Background(), s.cfg.AcquireTimeout)
	}
	return context.Background(), func() {}
}

// Close releases all pools. It fails while any block is held.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.inUse > 0 {
		return fmt.Errorf("%w: %d held", ErrBlocksInUse, s.inUse)
	}
	s.closed = true
	close(s.done)

	released := 0
	for kind, p := range s.pools {
		released += p.allocated
		delete(s.pools, kind)
	}
	s.cfg.Logger.Debug("marshal service closed", "blocks", released)
	return nil
}
