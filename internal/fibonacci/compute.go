package fibonacci

import (
	"context"
	"time"
)

// globalFactory backs the package-level entry points.
var globalFactory = NewDefaultFactory()

// GlobalFactory returns the factory used by Compute and ComputeLinear.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

// Compute returns F(k) as a decimal string together with the time spent in
// the fast-doubling engine, at the default digit capacity.
func Compute(k int64) (string, time.Duration, error) {
	res, err := globalFactory.MustGet(AlgoFast).Calculate(context.Background(), k)
	if err != nil {
		return "", res.Elapsed, err
	}
	return res.Value.String(), res.Elapsed, nil
}

// ComputeLinear returns F(k) from the linear reference engine.
func ComputeLinear(k int64) (string, error) {
	res, err := globalFactory.MustGet(AlgoLinear).Calculate(context.Background(), k)
	if err != nil {
		return "", err
	}
	return res.Value.String(), nil
}

// RegisterCalculator registers an engine in the global factory and in every
// factory created afterwards. It is safe to call concurrently with NewFactory.
func RegisterCalculator(name string, creator func() coreCalculator) error {
	if err := globalFactory.Register(name, creator); err != nil {
		return err
	}
	extraMu.Lock()
	extraEngines[name] = creator
	extraMu.Unlock()
	return nil
}
