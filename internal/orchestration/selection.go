package orchestration

import (
	"fmt"

	"github.com/agbru/fibseq/internal/fibonacci"
)

// AllGenerators is the pseudo-generator name that selects every registered
// generator for a comparison run.
const AllGenerators = "all"

// SelectGenerator returns the generator registered under name.
func SelectGenerator(name string, factory fibonacci.GeneratorFactory) (fibonacci.Generator, error) {
	gen, err := factory.Get(name)
	if err != nil {
		return nil, fmt.Errorf("selecting generator: %w", err)
	}
	return gen, nil
}

// GetGeneratorsToRun resolves name to the generators to execute, in the
// factory's sorted key order for AllGenerators. Unknown names yield nil.
func GetGeneratorsToRun(name string, factory fibonacci.GeneratorFactory) []fibonacci.Generator {
	if name == AllGenerators {
		keys := factory.List()
		gens := make([]fibonacci.Generator, 0, len(keys))
		for _, k := range keys {
			if gen, err := factory.Get(k); err == nil {
				gens = append(gens, gen)
			}
		}
		return gens
	}
	if gen, err := SelectGenerator(name, factory); err == nil {
		return []fibonacci.Generator{gen}
	}
	return nil
}
