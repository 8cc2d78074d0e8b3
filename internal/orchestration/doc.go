// Package orchestration coordinates concurrent execution of Fibonacci
// calculations, compares their results, and cross-checks engines over index
// ranges. It is decoupled from presentation via the ResultPresenter and
// ProgressReporter interfaces.
package orchestration
