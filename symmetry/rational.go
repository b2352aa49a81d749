package symmetry

// phase is a rational number num/den in [0, 1), always reduced.
type phase struct {
	num, den int
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}

	return a
}

// newPhase reduces num/den modulo 1. den must be positive.
func newPhase(num, den int) phase {
	num %= den
	if num < 0 {
		num += den
	}
	if num == 0 {
		return phase{0, 1}
	}
	g := gcd(num, den)

	return phase{num / g, den / g}
}

// add returns a+b mod 1.
func (a phase) add(b phase) phase {
	l := a.den / gcd(a.den, b.den) * b.den

	return newPhase(a.num*(l/a.den)+b.num*(l/b.den), l)
}

func (a phase) float() float64 { return float64(a.num) / float64(a.den) }
