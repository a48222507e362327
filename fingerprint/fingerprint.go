// Package fingerprint turns a raster fingerprint image into a bounded
// set of typed minutia points. The pipeline is a simplified
// ridge-skeleton heuristic (grayscale, contrast stretch, median filter,
// fixed-threshold binarization, iterative thinning, neighbor-count
// classification), not an AFIS-grade matcher.
package fingerprint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vaultmark/vaultmark/internal/hashutil"
)

// MinutiaType distinguishes ridge endings from bifurcations.
type MinutiaType int

const (
	Ending MinutiaType = iota
	Bifurcation
)

func (t MinutiaType) String() string {
	if t == Bifurcation {
		return "bifurcation"
	}
	return "ending"
}

// Code returns the single-letter form used in identity hashing.
func (t MinutiaType) Code() string {
	if t == Bifurcation {
		return "B"
	}
	return "E"
}

// Minutia is a single ridge feature: position in pixels, orientation in
// degrees (-180, 180], and feature type.
type Minutia struct {
	X     int
	Y     int
	Angle float64
	Type  MinutiaType
}

const (
	// MinMinutiae is the minimum accepted feature count; extractions
	// below it are rejected as a quality failure.
	MinMinutiae = 12
	// MaxMinutiae bounds the size of an extraction result.
	MaxMinutiae = 80
	// minSpacing is the minimum pairwise Euclidean distance, in pixels,
	// between kept minutiae.
	minSpacing = 5
)

// Hash returns the rolling identity hash of a minutiae set: the
// pipe-joined x,y,angle,type tuples fed through the 32-bit rolling
// hash. It is a fingerprint-matching proxy, not a biometric template.
func Hash(points []Minutia) string {
	parts := make([]string, len(points))
	for i, m := range points {
		parts[i] = fmt.Sprintf("%d,%d,%s,%s",
			m.X, m.Y, strconv.FormatFloat(m.Angle, 'f', 2, 64), m.Type.Code())
	}
	return hashutil.Rolling(strings.Join(parts, "|"))
}

// ImageLoadError reports an undecodable or corrupt fingerprint image.
type ImageLoadError struct {
	Err error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("fingerprint: cannot decode image: %v", e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// QualityError reports a fingerprint sample rejected before or after
// extraction: either the image failed too many quality metrics or too
// few minutiae survived normalization.
type QualityError struct {
	Detected     int      // minutiae found, -1 when metrics failed pre-extraction
	Required     int      // minimum minutiae required
	FailedChecks []string // names of failed quality metrics, if any
}

func (e *QualityError) Error() string {
	if len(e.FailedChecks) > 0 {
		return fmt.Sprintf("fingerprint: image quality too low, failed checks: %s",
			strings.Join(e.FailedChecks, ", "))
	}
	return fmt.Sprintf("fingerprint: %d minutiae detected, at least %d required",
		e.Detected, e.Required)
}
