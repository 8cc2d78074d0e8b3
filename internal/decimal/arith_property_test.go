package decimal

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// propertyArith is roomy enough that generated operands never overflow.
var propertyArith = NewArith(1024)

// genNumber produces Numbers from a single machine word up to roughly sixty
// digits by concatenating words.
func genNumber() gopter.Gen {
	small := gen.UInt64().Map(func(v uint64) Number {
		return MustParse(strconv.FormatUint(v, 10))
	})
	wide := gen.SliceOfN(3, gen.UInt64()).Map(func(parts []uint64) Number {
		var sb strings.Builder
		for _, p := range parts {
			sb.WriteString(strconv.FormatUint(p, 10))
		}
		s := strings.TrimLeft(sb.String(), "0")
		if s == "" {
			s = "0"
		}
		return MustParse(s)
	})
	return gen.OneGenOf(small, wide, gen.Const(Zero()), gen.Const(One()))
}

func newProperties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

func mustOp(n Number, err error) Number {
	if err != nil {
		panic(err)
	}
	return n
}

// wellFormed checks the numeral invariants every produced Number must hold.
func wellFormed(n Number) bool {
	s := n.String()
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func TestAdd_PropertyBased(t *testing.T) {
	properties := newProperties()

	properties.Property("Add is commutative", prop.ForAll(
		func(a, b Number) bool {
			return mustOp(propertyArith.Add(a, b)).Equal(mustOp(propertyArith.Add(b, a)))
		},
		genNumber(), genNumber(),
	))

	properties.Property("Add is associative", prop.ForAll(
		func(a, b, c Number) bool {
			left := mustOp(propertyArith.Add(mustOp(propertyArith.Add(a, b)), c))
			right := mustOp(propertyArith.Add(a, mustOp(propertyArith.Add(b, c))))
			return left.Equal(right)
		},
		genNumber(), genNumber(), genNumber(),
	))

	properties.Property("zero is the additive identity", prop.ForAll(
		func(a Number) bool {
			return mustOp(propertyArith.Add(a, Zero())).Equal(a)
		},
		genNumber(),
	))

	properties.Property("Sub undoes Add", prop.ForAll(
		func(a, b Number) bool {
			sum := mustOp(propertyArith.Add(a, b))
			return mustOp(propertyArith.Sub(sum, b)).Equal(a)
		},
		genNumber(), genNumber(),
	))

	properties.TestingRun(t)
}

func TestMul_PropertyBased(t *testing.T) {
	properties := newProperties()

	properties.Property("Mul by zero is zero", prop.ForAll(
		func(a Number) bool {
			return mustOp(propertyArith.Mul(a, Zero())).IsZero() &&
				mustOp(propertyArith.Mul(Zero(), a)).IsZero()
		},
		genNumber(),
	))

	properties.Property("Mul by one is identity", prop.ForAll(
		func(a Number) bool {
			return mustOp(propertyArith.Mul(a, One())).Equal(a)
		},
		genNumber(),
	))

	properties.Property("Mul is commutative", prop.ForAll(
		func(a, b Number) bool {
			return mustOp(propertyArith.Mul(a, b)).Equal(mustOp(propertyArith.Mul(b, a)))
		},
		genNumber(), genNumber(),
	))

	properties.Property("Mul distributes over Add", prop.ForAll(
		func(a, b, c Number) bool {
			left := mustOp(propertyArith.Mul(a, mustOp(propertyArith.Add(b, c))))
			right := mustOp(propertyArith.Add(mustOp(propertyArith.Mul(a, b)), mustOp(propertyArith.Mul(a, c))))
			return left.Equal(right)
		},
		genNumber(), genNumber(), genNumber(),
	))

	properties.TestingRun(t)
}

func TestResults_AreWellFormed(t *testing.T) {
	properties := newProperties()

	properties.Property("no result carries a leading zero", prop.ForAll(
		func(a, b Number) bool {
			hi, lo := a, b
			if hi.Cmp(lo) < 0 {
				hi, lo = lo, hi
			}
			return wellFormed(mustOp(propertyArith.Add(a, b))) &&
				wellFormed(mustOp(propertyArith.Sub(hi, lo))) &&
				wellFormed(mustOp(propertyArith.Mul(a, b)))
		},
		genNumber(), genNumber(),
	))

	properties.TestingRun(t)
}
