// Package device models the Fibonacci character device as a session API.
//
// A Device hands out Sessions. Each session has a seekable position that
// selects the index k; reading a session computes F(k) and copies its decimal
// digits into the caller's buffer. The device is exclusive by default: while
// one session is open, further opens fail with apperrors.ErrBusy instead of
// waiting.
package device

import (
	"sync"

	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/fibonacci"
	"github.com/agbru/fibdrv/internal/logging"
	"github.com/agbru/fibdrv/internal/metrics"
)

// DefaultName is the name the device is registered under.
const DefaultName = "fibonacci"

// Option configures a Device.
type Option func(*Device)

// WithShared disables the single-session gate, so any number of sessions may
// be open at once. Sessions never share state.
func WithShared(shared bool) Option {
	return func(d *Device) {
		d.shared = shared
	}
}

// WithLogger sets the logger used for open/close events. Nil is ignored.
func WithLogger(logger logging.Logger) Option {
	return func(d *Device) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithName overrides DefaultName.
func WithName(name string) Option {
	return func(d *Device) {
		if name != "" {
			d.name = name
		}
	}
}

// Device serves F(k) for k in [0, MaxIndex].
type Device struct {
	name     string
	calc     fibonacci.Calculator
	maxIndex int64
	shared   bool
	logger   logging.Logger

	gate sync.Mutex // held for the lifetime of an exclusive session
}

// New creates a Device backed by calc. Seek positions are clamped to
// [0, maxIndex]; a negative maxIndex selects fibonacci.DefaultMaxIndex.
func New(calc fibonacci.Calculator, maxIndex int64, opts ...Option) *Device {
	if calc == nil {
		panic("device: calculator cannot be nil")
	}
	if maxIndex < 0 {
		maxIndex = fibonacci.DefaultMaxIndex
	}
	d := &Device{
		name:     DefaultName,
		calc:     calc,
		maxIndex: maxIndex,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the device name.
func (d *Device) Name() string { return d.name }

// MaxIndex returns the largest seekable index.
func (d *Device) MaxIndex() int64 { return d.maxIndex }

// Shared reports whether the single-session gate is disabled.
func (d *Device) Shared() bool { return d.shared }

// Calculator returns the engine behind the device.
func (d *Device) Calculator() fibonacci.Calculator { return d.calc }

// Open starts a session positioned at index 0. On an exclusive device a
// second Open fails with apperrors.ErrBusy until the live session is closed.
func (d *Device) Open() (*Session, error) {
	if !d.shared && !d.gate.TryLock() {
		metrics.ObserveDeviceOpen(true)
		d.logger.Warn("device is in use", logging.String("device", d.name))
		return nil, apperrors.ErrBusy
	}
	metrics.ObserveDeviceOpen(false)
	d.logger.Debug("session opened", logging.String("device", d.name))
	return &Session{dev: d}, nil
}

func (d *Device) release() {
	if !d.shared {
		d.gate.Unlock()
	}
	d.logger.Debug("session closed", logging.String("device", d.name))
}
