package orchestration

import (
	"maps"
	"slices"

	"github.com/agbru/fibdrv/internal/fibonacci"
)

// AlgoAll selects every registered engine.
const AlgoAll = "all"

// GetCalculatorsToRun resolves the -algo value against factory: AlgoAll
// yields every engine ordered by name, an engine name yields that engine,
// anything else yields nil.
func GetCalculatorsToRun(algo string, factory fibonacci.CalculatorFactory) []fibonacci.Calculator {
	if algo != AlgoAll {
		calc, err := factory.Get(algo)
		if err != nil {
			return nil
		}
		return []fibonacci.Calculator{calc}
	}
	all := factory.GetAll()
	calcs := make([]fibonacci.Calculator, 0, len(all))
	for _, name := range slices.Sorted(maps.Keys(all)) {
		calcs = append(calcs, all[name])
	}
	return calcs
}
