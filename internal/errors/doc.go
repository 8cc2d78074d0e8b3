// Package apperrors classifies fibdrv failures and maps them to exit codes.
//
// The engines and the device reuse the sentinels declared here
// (ErrInvalidArgument, ErrCapacityOverflow, ErrBusy), so front ends can
// classify a failure with errors.Is without importing the lower layers.
// Typed errors (ConfigError, CalculationError, ValidationError, ServerError)
// carry context and unwrap to their cause.
package apperrors
