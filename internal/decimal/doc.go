// Package decimal implements non-negative arbitrary-precision integers stored
// as decimal digit strings with a bounded digit capacity.
//
// A Number is an immutable value whose digits are kept most significant first.
// Arithmetic is performed through an Arith, which carries the capacity limit:
// every operation works from the least significant digit upward into scratch
// storage, normalises the result once, and refuses to commit anything longer
// than the capacity. Overflows surface as *CapacityError values matching
// ErrCapacityOverflow; misuse such as subtracting a larger number surfaces as
// *ArgumentError values matching ErrInvalidArgument.
package decimal
