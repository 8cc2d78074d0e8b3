package fibonacci

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/agbru/fibdrv/internal/decimal"
)

// Registered engine names.
const (
	AlgoFast   = "fast"
	AlgoLinear = "linear"
)

// ErrUnknownEngine is returned for a name no engine is registered under.
var ErrUnknownEngine = errors.New("unknown calculator")

// CalculatorFactory builds Calculators by engine name. All calculators of a
// factory share one digit capacity.
//
// It is not mockable with mockgen because Register takes the unexported
// coreCalculator type; tests use DefaultFactory instead.
type CalculatorFactory interface {
	// Create builds a fresh Calculator, bypassing the cache.
	Create(name string) (Calculator, error)
	// Get returns the cached Calculator for name, building it on first use.
	Get(name string) (Calculator, error)
	// List returns the registered names in sorted order.
	List() []string
	// Register adds or replaces an engine.
	Register(name string, creator func() coreCalculator) error
	// GetAll returns a Calculator for every registered engine.
	GetAll() map[string]Calculator
}

// DefaultFactory is the registry used by every front end. Calculators are
// built lazily and cached; re-registering a name drops its cached instance.
type DefaultFactory struct {
	mu          sync.RWMutex
	arith       *decimal.Arith
	creators    map[string]func() coreCalculator
	calculators map[string]Calculator
}

// extraEngines holds engines added through RegisterCalculator, including
// those of build-tagged files. Guarded by extraMu.
var (
	extraMu      sync.RWMutex
	extraEngines = map[string]func() coreCalculator{}
)

// NewDefaultFactory returns a factory at decimal.DefaultCapacity.
func NewDefaultFactory() *DefaultFactory {
	return NewFactory(decimal.DefaultCapacity)
}

// NewFactory returns a factory whose calculators are limited to capacity
// digits, with "fast" and "linear" registered along with any build-tagged
// engine.
func NewFactory(capacity int) *DefaultFactory {
	f := &DefaultFactory{
		arith:       decimal.NewArith(capacity),
		creators:    map[string]func() coreCalculator{AlgoFast: newFastDoubling, AlgoLinear: newLinear},
		calculators: make(map[string]Calculator),
	}
	extraMu.RLock()
	maps.Copy(f.creators, extraEngines)
	extraMu.RUnlock()
	return f
}

func newFastDoubling() coreCalculator { return &FastDoubling{} }
func newLinear() coreCalculator       { return &Linear{} }

// Capacity returns the digit capacity shared by the factory's calculators.
func (f *DefaultFactory) Capacity() int {
	return f.arith.Capacity()
}

func (f *DefaultFactory) Register(name string, creator func() coreCalculator) error {
	if creator == nil {
		return fmt.Errorf("nil creator for calculator: %s", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
	delete(f.calculators, name)
	return nil
}

func (f *DefaultFactory) Create(name string) (Calculator, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.build(name)
}

func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	calc, ok := f.calculators[name]
	f.mu.RUnlock()
	if ok {
		return calc, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if calc, ok := f.calculators[name]; ok {
		return calc, nil
	}
	calc, err := f.build(name)
	if err != nil {
		return nil, err
	}
	f.calculators[name] = calc
	return calc, nil
}

// build wraps the named engine in a Calculator. The caller holds f.mu.
func (f *DefaultFactory) build(name string) (Calculator, error) {
	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownEngine, name,
			strings.Join(slices.Sorted(maps.Keys(f.creators)), ", "))
	}
	return NewCalculator(creator(), f.arith), nil
}

func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Sorted(maps.Keys(f.creators))
}

func (f *DefaultFactory) GetAll() map[string]Calculator {
	all := make(map[string]Calculator)
	for _, name := range f.List() {
		if calc, err := f.Get(name); err == nil {
			all[name] = calc
		}
	}
	return all
}

// MustGet is like Get but panics if the calculator is not found.
func (f *DefaultFactory) MustGet(name string) Calculator {
	calc, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("fibonacci: %v", err))
	}
	return calc
}

// Has reports whether an engine is registered under name.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.creators[name]
	return ok
}
