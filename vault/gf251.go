package vault

import "errors"

// Modulus is the prime order of the field the vault polynomial lives
// in. All vault math is explicit modular integer arithmetic; no
// floating point is involved anywhere.
const Modulus = 251

var errNoInverse = errors.New("vault: element has no modular inverse")

func mod(a int) int {
	a %= Modulus
	if a < 0 {
		a += Modulus
	}
	return a
}

func addF(a, b int) int { return mod(a + b) }

func subF(a, b int) int { return mod(a - b) }

func mulF(a, b int) int { return mod(a * b) }

// invF computes the multiplicative inverse via the extended Euclidean
// algorithm. Zero has no inverse.
func invF(a int) (int, error) {
	a = mod(a)
	if a == 0 {
		return 0, errNoInverse
	}
	r0, r1 := Modulus, a
	t0, t1 := 0, 1
	for r1 != 0 {
		q := r0 / r1
		r0, r1 = r1, r0-q*r1
		t0, t1 = t1, t0-q*t1
	}
	return mod(t0), nil
}

// evalPoly evaluates a polynomial with coefficients in ascending degree
// order at x, using Horner's rule.
func evalPoly(coeffs []int, x int) int {
	acc := 0
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = addF(mulF(acc, x), coeffs[i])
	}
	return acc
}

// polyMulLinear multiplies the polynomial p by (x + c), returning a new
// coefficient slice one degree higher.
func polyMulLinear(p []int, c int) []int {
	out := make([]int, len(p)+1)
	for i, coeff := range p {
		out[i] = addF(out[i], mulF(coeff, c))
		out[i+1] = addF(out[i+1], coeff)
	}
	return out
}

// interpolate reconstructs the coefficients of the unique polynomial of
// degree len(points)-1 passing through the given points, via Lagrange
// interpolation. Points must have pairwise distinct x; a duplicate x
// surfaces as a missing inverse.
func interpolate(points []Point) ([]int, error) {
	k := len(points)
	coeffs := make([]int, k)
	for i, pi := range points {
		// Build the basis polynomial prod_{j != i} (x - x_j) and its
		// denominator prod_{j != i} (x_i - x_j).
		basis := []int{1}
		den := 1
		for j, pj := range points {
			if j == i {
				continue
			}
			basis = polyMulLinear(basis, subF(0, pj.X))
			den = mulF(den, subF(pi.X, pj.X))
		}
		invDen, err := invF(den)
		if err != nil {
			return nil, err
		}
		scale := mulF(pi.Y, invDen)
		for d := 0; d < k; d++ {
			coeffs[d] = addF(coeffs[d], mulF(basis[d], scale))
		}
	}
	return coeffs, nil
}
