package fibonacci

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/fibseq/internal/progress"
)

// ErrUnknownGenerator is returned by a GeneratorFactory for unregistered names.
var ErrUnknownGenerator = errors.New("unknown generator")

// Generator is a named sequence generation strategy.
type Generator interface {
	// Name returns a human-readable description of the strategy.
	Name() string
	// Generate returns the first n terms, honoring ctx and reporting progress to cb.
	Generate(ctx context.Context, n int, cb ProgressCallback) (Sequence, error)
}

// GeneratorFactory looks up generators by key.
type GeneratorFactory interface {
	// List returns the registered keys in sorted order.
	List() []string
	// Get returns the generator registered under key.
	Get(key string) (Generator, error)
}

// BigGenerator generates sequences with math/big additions.
type BigGenerator struct{}

// Name returns the generator description.
func (BigGenerator) Name() string { return "Iterative (math/big)" }

// Generate delegates to GenerateContext. Prefixes that fit in a uint64 take
// the fixed-width path and are widened afterwards.
func (BigGenerator) Generate(ctx context.Context, n int, cb ProgressCallback) (Sequence, error) {
	if n > MaxUint64Terms {
		return GenerateContext(ctx, n, cb)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generation not started: %w", err)
	}
	fixed, err := GenerateUint64(n)
	if err != nil {
		return nil, err
	}
	progress.OrNoop(cb)(1.0)
	return FromUint64s(fixed), nil
}

// builtinGenerators holds the generators registered by NewDefaultFactory.
// Optional backends add themselves from init functions behind build tags.
var builtinGenerators = map[string]func() Generator{
	"big":  func() Generator { return BigGenerator{} },
	"iter": func() Generator { return IterGenerator{} },
}

// DefaultFactory is a thread-safe GeneratorFactory.
type DefaultFactory struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

var _ GeneratorFactory = (*DefaultFactory)(nil)

// NewDefaultFactory returns a factory holding every built-in generator.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{generators: make(map[string]Generator, len(builtinGenerators))}
	for key, build := range builtinGenerators {
		f.generators[key] = build()
	}
	return f
}

// Register adds or replaces the generator stored under key.
func (f *DefaultFactory) Register(key string, g Generator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generators[key] = g
}

// List returns the registered keys in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.generators))
	for k := range f.generators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the generator registered under key.
func (f *DefaultFactory) Get(key string) (Generator, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	g, ok := f.generators[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, key)
	}
	return g, nil
}
