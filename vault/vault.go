// Package vault implements a Fuzzy Vault over GF(251): a short random
// secret is encoded as the coefficients of a polynomial, genuine
// minutia-derived points lie on that polynomial, and random chaff
// points obscure which vault points are genuine. A sufficiently
// overlapping minutiae set recovers the secret by Lagrange
// interpolation; anything less yields nothing.
package vault

import (
	"encoding/hex"
	"fmt"
	"io"
	"math"

	"github.com/vaultmark/vaultmark/fingerprint"
	"github.com/vaultmark/vaultmark/internal/randsrc"
)

const (
	// SecretBytes is the length of the random secret bound to the
	// fingerprint.
	SecretBytes = 4
	// MinPoints is the nominal vault size; chaff is added until the
	// vault holds at least this many points. Minutiae beyond it are
	// all retained as genuine points.
	MinPoints = 5
)

// Point is a vault evaluation point with coordinates in [0, 250].
type Point struct {
	X int
	Y int
}

// Vault is the chaff-obscured encoding of a secret. Points are
// shuffled at generation time, so their order carries no information
// about which are genuine. A Vault is never mutated after Generate.
type Vault struct {
	Points       []Point
	Secret       string // hex encoding of the secret bytes
	Coefficients []int  // polynomial coefficients, ascending degree
}

// encodeX projects a minutia onto a field element. The floor keeps the
// encoding stable for equal minutiae, and zero is bumped to one so the
// x-coordinate never degenerates.
func encodeX(m fingerprint.Minutia) int {
	b := 0
	if m.Type == fingerprint.Bifurcation {
		b = 1
	}
	x := mod(m.X*1000 + m.Y*10 + int(math.Floor(m.Angle)) + b)
	if x == 0 {
		x = 1
	}
	return x
}

// Generate draws a fresh secret from src and locks it under the given
// minutiae set. Each secret byte, already reduced into [0, 250], is a
// polynomial coefficient; each minutia contributes one genuine point on
// the polynomial, and uniform chaff pads the vault to MinPoints.
func Generate(src io.Reader, minutiae []fingerprint.Minutia) (*Vault, error) {
	secret := make([]byte, SecretBytes)
	coeffs := make([]int, SecretBytes)
	for i := range secret {
		// Rejection-sample so every byte is uniform in [0, 250] and the
		// hex secret round-trips exactly through interpolation.
		for {
			var b [1]byte
			if err := randsrc.Bytes(src, b[:]); err != nil {
				return nil, fmt.Errorf("vault: draw secret: %w", err)
			}
			if int(b[0]) < Modulus {
				secret[i] = b[0]
				coeffs[i] = int(b[0])
				break
			}
		}
	}

	points := make([]Point, 0, max(len(minutiae), MinPoints))
	taken := make(map[int]bool)
	for _, m := range minutiae {
		x := encodeX(m)
		points = append(points, Point{X: x, Y: evalPoly(coeffs, x)})
		taken[x] = true
	}

	for len(points) < MinPoints {
		x, err := randsrc.IntN(src, Modulus)
		if err != nil {
			return nil, fmt.Errorf("vault: draw chaff: %w", err)
		}
		y, err := randsrc.IntN(src, Modulus)
		if err != nil {
			return nil, fmt.Errorf("vault: draw chaff: %w", err)
		}
		// A chaff point sharing an x with a genuine point could shadow
		// it during unlock; redraw instead.
		if taken[x] {
			continue
		}
		points = append(points, Point{X: x, Y: y})
		taken[x] = true
	}

	if err := randsrc.Shuffle(src, len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	}); err != nil {
		return nil, fmt.Errorf("vault: shuffle points: %w", err)
	}

	return &Vault{
		Points:       points,
		Secret:       hex.EncodeToString(secret),
		Coefficients: coeffs,
	}, nil
}

// Unlock attempts to recover the secret with a fresh minutiae set. Each
// minutia is re-encoded to its x-coordinate and matched against the
// vault; with at least as many distinct matches as coefficients, the
// polynomial is reconstructed and the secret returned. On insufficient
// or degenerate matches Unlock reports ok=false, never a wrong guess
// by error.
func (v *Vault) Unlock(minutiae []fingerprint.Minutia) (secret string, ok bool) {
	k := len(v.Coefficients)
	if k == 0 {
		return "", false
	}

	seen := make(map[int]bool)
	matched := make([]Point, 0, k)
	for _, m := range minutiae {
		x := encodeX(m)
		if seen[x] {
			continue
		}
		for _, p := range v.Points {
			if p.X == x {
				seen[x] = true
				matched = append(matched, p)
				break
			}
		}
		if len(matched) == k {
			break
		}
	}
	if len(matched) < k {
		return "", false
	}

	coeffs, err := interpolate(matched)
	if err != nil {
		return "", false
	}

	out := make([]byte, len(coeffs))
	for i, c := range coeffs {
		out[i] = byte(c)
	}
	return hex.EncodeToString(out), true
}
