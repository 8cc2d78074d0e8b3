package fibonacci

import "math"

const (
	// DefaultMaxIndex is the largest index a device session may seek to. The
	// default digit capacity leaves a wide margin above F(500), which has 105
	// digits.
	DefaultMaxIndex = 500

	// log10Phi and log10Sqrt5 drive the Binet digit estimate:
	// digits(F(n)) = floor(n·log10(φ) − log10(√5)) + 1 for n ≥ 2.
	log10Phi   = 0.20898764024997873
	log10Sqrt5 = 0.34948500216800940
)

// EstimateDigits returns the number of decimal digits of F(k). Negative
// indices yield 0.
func EstimateDigits(k int64) int {
	switch {
	case k < 0:
		return 0
	case k < 2:
		return 1
	}
	return int(math.Floor(float64(k)*log10Phi-log10Sqrt5)) + 1
}

// MaxSafeIndex returns the largest k for which fast doubling never produces an
// intermediate wider than capacity digits. The widest value the engine builds
// while computing F(k) is F(k+1).
func MaxSafeIndex(capacity int) int64 {
	if capacity < 1 {
		return -1
	}
	k := int64(float64(capacity)/log10Phi) - 1
	for k > 0 && EstimateDigits(k+1) > capacity {
		k--
	}
	for EstimateDigits(k+2) <= capacity {
		k++
	}
	return k
}
