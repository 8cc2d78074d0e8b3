package decimal

import "strconv"

// DefaultCapacity is the digit capacity used when none is configured.
const DefaultCapacity = 256

// Arith performs bounded decimal arithmetic. It holds no mutable state and is
// safe for concurrent use.
type Arith struct {
	capacity int
}

// NewArith returns an Arith limited to capacity digits. A non-positive
// capacity selects DefaultCapacity.
func NewArith(capacity int) *Arith {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Arith{capacity: capacity}
}

// Capacity returns the maximum number of digits a result may have.
func (a *Arith) Capacity() int { return a.capacity }

// Fits reports whether a number of nDigits digits can be stored.
func (a *Arith) Fits(nDigits int) bool {
	return nDigits >= 1 && nDigits <= a.capacity
}

// FromUint64 converts a machine integer into a Number.
func (a *Arith) FromUint64(v uint64) (Number, error) {
	s := strconv.FormatUint(v, 10)
	if !a.Fits(len(s)) {
		return Number{}, a.overflow("from", len(s))
	}
	return Number{digits: s}, nil
}

// Add returns x + y.
func (a *Arith) Add(x, y Number) (Number, error) {
	xs, ys := x.String(), y.String()
	n := max(len(xs), len(ys))
	if !a.Fits(n) {
		return Number{}, a.overflow("add", n)
	}

	rev := make([]byte, 0, n+1)
	var carry byte
	for i := 0; i < n; i++ {
		sum := digitAt(xs, i) + digitAt(ys, i) + carry
		carry = sum / 10
		rev = append(rev, '0'+sum%10)
	}
	if carry > 0 {
		rev = append(rev, '0'+carry)
	}
	return a.commit("add", rev)
}

// Sub returns x - y. It fails with an *ArgumentError when x < y, since
// Numbers carry no sign.
func (a *Arith) Sub(x, y Number) (Number, error) {
	if x.Cmp(y) < 0 {
		return Number{}, &ArgumentError{Op: "sub", Reason: "minuend is less than subtrahend"}
	}
	xs, ys := x.String(), y.String()

	rev := make([]byte, 0, len(xs))
	var borrow int
	for i := 0; i < len(xs); i++ {
		d := int(digitAt(xs, i)) - int(digitAt(ys, i)) - borrow
		if d < 0 {
			d += 10
			borrow = 1
		} else {
			borrow = 0
		}
		rev = append(rev, '0'+byte(d))
	}
	return a.commit("sub", rev)
}

// Mul returns x * y using schoolbook multiplication. Carries are propagated
// within each row as partial products are accumulated.
func (a *Arith) Mul(x, y Number) (Number, error) {
	if x.IsZero() || y.IsZero() {
		return Zero(), nil
	}
	xs, ys := x.String(), y.String()
	la, lb := len(xs), len(ys)
	if lower := la + lb - 1; !a.Fits(lower) {
		return Number{}, a.overflow("mul", lower)
	}

	// acc holds digit values, least significant first.
	acc := make([]byte, la+lb)
	for ib := 0; ib < lb; ib++ {
		db := digitAt(ys, ib)
		var carry byte
		for ia := 0; ia < la; ia++ {
			t := digitAt(xs, ia)*db + acc[ia+ib] + carry
			acc[ia+ib] = t % 10
			carry = t / 10
		}
		acc[ib+la] = carry
	}
	for i := range acc {
		acc[i] += '0'
	}
	return a.commit("mul", acc)
}

// commit turns a least-significant-first digit buffer into a Number: it drops
// high-order zeros, checks the capacity, and reverses once.
func (a *Arith) commit(op string, rev []byte) (Number, error) {
	n := len(rev)
	for n > 1 && rev[n-1] == '0' {
		n--
	}
	if !a.Fits(n) {
		return Number{}, a.overflow(op, n)
	}
	rev = rev[:n]
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return Number{digits: string(rev)}, nil
}

func (a *Arith) overflow(op string, digits int) error {
	return &CapacityError{Op: op, Digits: digits, Capacity: a.capacity}
}
