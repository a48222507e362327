package vault

import "testing"

func TestInverseProperty(t *testing.T) {
	for a := 1; a < Modulus; a++ {
		inv, err := invF(a)
		if err != nil {
			t.Fatalf("invF(%d): %v", a, err)
		}
		if mulF(a, inv) != 1 {
			t.Fatalf("%d * %d != 1 (mod %d)", a, inv, Modulus)
		}
	}
}

func TestInverseOfZeroFails(t *testing.T) {
	if _, err := invF(0); err == nil {
		t.Error("invF(0) should fail")
	}
	if _, err := invF(Modulus); err == nil {
		t.Error("invF(Modulus) should fail, it is congruent to zero")
	}
}

func TestModNormalizesNegatives(t *testing.T) {
	if got := mod(-1); got != Modulus-1 {
		t.Errorf("mod(-1) = %d, want %d", got, Modulus-1)
	}
	if got := subF(3, 10); got != Modulus-7 {
		t.Errorf("subF(3,10) = %d, want %d", got, Modulus-7)
	}
}

func TestEvalPolyHorner(t *testing.T) {
	// 1 + 2x + 3x^2 at x=2 is 17.
	if got := evalPoly([]int{1, 2, 3}, 2); got != 17 {
		t.Errorf("evalPoly = %d, want 17", got)
	}
	// Evaluation wraps into the field.
	if got := evalPoly([]int{250, 250}, 2); got != mod(250+500) {
		t.Errorf("evalPoly = %d, want %d", got, mod(750))
	}
}

func TestInterpolateRecoversCoefficients(t *testing.T) {
	coeffs := []int{5, 7, 11, 13}
	points := make([]Point, len(coeffs))
	for i := range points {
		x := i + 1
		points[i] = Point{X: x, Y: evalPoly(coeffs, x)}
	}

	got, err := interpolate(points)
	if err != nil {
		t.Fatalf("interpolate: %v", err)
	}
	for i, c := range coeffs {
		if got[i] != c {
			t.Fatalf("coefficient %d = %d, want %d", i, got[i], c)
		}
	}
}

func TestInterpolateDuplicateXFails(t *testing.T) {
	points := []Point{{X: 3, Y: 1}, {X: 3, Y: 2}}
	if _, err := interpolate(points); err == nil {
		t.Error("interpolation over duplicate x should fail")
	}
}
