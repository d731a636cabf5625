package fibonacci

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
)

type stubGenerator struct{ name string }

func (s stubGenerator) Name() string { return s.name }

func (s stubGenerator) Generate(ctx context.Context, n int, cb ProgressCallback) (Sequence, error) {
	return Generate(n), nil
}

func TestDefaultFactory_Builtins(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	keys := f.List()
	found := false
	for _, k := range keys {
		if k == "big" {
			found = true
		}
	}
	if !found {
		t.Fatalf("List() = %v, want it to contain %q", keys, "big")
	}

	g, err := f.Get("big")
	if err != nil {
		t.Fatalf("Get(big) error: %v", err)
	}
	seq, err := g.Generate(context.Background(), 10, nil)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got := seq.Last().Int64(); got != 34 {
		t.Errorf("last term = %d, want 34", got)
	}
}

func TestDefaultFactory_Unknown(t *testing.T) {
	t.Parallel()
	_, err := NewDefaultFactory().Get("quantum")
	if !errors.Is(err, ErrUnknownGenerator) {
		t.Errorf("error = %v, want ErrUnknownGenerator", err)
	}
}

func TestDefaultFactory_RegisterAndList(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	f.Register("zeta", stubGenerator{name: "Zeta"})
	f.Register("alpha", stubGenerator{name: "Alpha"})

	keys := f.List()
	if !sort.StringsAreSorted(keys) || keys[0] != "alpha" || keys[len(keys)-1] != "zeta" {
		t.Errorf("List() = %v, want sorted keys from alpha to zeta", keys)
	}

	g, err := f.Get("zeta")
	if err != nil || g.Name() != "Zeta" {
		t.Errorf("Get(zeta) = %v, %v", g, err)
	}
}

func TestDefaultFactory_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			f.Register("stub", stubGenerator{name: "Stub"})
		}()
		go func() {
			defer wg.Done()
			_ = f.List()
			_, _ = f.Get("big")
		}()
	}
	wg.Wait()
}

func TestGenerate_ConcurrentCallers(t *testing.T) {
	t.Parallel()
	want := Generate(300)
	var wg sync.WaitGroup
	results := make([]Sequence, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Generate(300)
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		if !got.Equal(want) {
			t.Errorf("caller %d got a different sequence", i)
		}
	}
}

func TestDefaultFactory_BuiltinsAgree(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	if keys := f.List(); len(keys) < 2 {
		t.Fatalf("List() = %v, want at least two built-in generators", keys)
	}

	for _, key := range []string{"big", "iter"} {
		g, err := f.Get(key)
		if err != nil {
			t.Fatalf("Get(%s): %v", key, err)
		}
		for _, n := range []int{0, 1, 2, 10, MaxUint64Terms, MaxUint64Terms + 1, 500} {
			seq, err := g.Generate(context.Background(), n, nil)
			if err != nil {
				t.Fatalf("%s.Generate(%d): %v", key, n, err)
			}
			if !seq.Equal(Generate(n)) {
				t.Errorf("%s.Generate(%d) differs from Generate", key, n)
			}
			if err := seq.Verify(); err != nil {
				t.Errorf("%s.Generate(%d): %v", key, n, err)
			}
		}
	}
}

func TestBigGenerator_FixedWidthPath(t *testing.T) {
	t.Parallel()
	var last float64
	seq, err := BigGenerator{}.Generate(context.Background(), MaxUint64Terms, func(v float64) { last = v })
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got := seq.Last().String(); got != "12200160415121876738" {
		t.Errorf("last term = %s, want F(93)", got)
	}
	if last != 1.0 {
		t.Errorf("final progress = %v, want 1.0", last)
	}
	if seq[1] == seq[2] {
		t.Error("terms must be distinct values")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (BigGenerator{}).Generate(ctx, 5, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
