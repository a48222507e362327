package fingerprint

import "math"

// Extract runs the full pipeline on an encoded fingerprint image:
// decode, quality gate, preprocessing, thinning, classification and
// normalization. It returns an ImageLoadError for undecodable data and
// a QualityError when the sample fails the gate or yields fewer than
// MinMinutiae features.
func Extract(data []byte) ([]Minutia, error) {
	gray, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return ExtractBuffer(gray)
}

// ExtractBuffer runs the gate and pipeline on an already decoded
// grayscale buffer.
func ExtractBuffer(gray *PixelBuffer) ([]Minutia, error) {
	report := Assess(gray)
	if !report.Pass() {
		return nil, &QualityError{Detected: -1, Required: MinMinutiae, FailedChecks: report.Failed}
	}

	enhanced := EnhanceContrast(gray)
	smoothed := MedianFilter(enhanced)
	binary := Binarize(smoothed)
	skeleton := Thin(binary)

	return acceptMinutiae(classify(skeleton))
}

// classify scans the skeleton (excluding the 1-pixel border) and types
// every surviving foreground pixel by its foreground neighbor count:
// exactly 1 neighbor is a ridge ending, exactly 3 a bifurcation.
func classify(skel *Bitmap) []Minutia {
	var out []Minutia
	for y := 1; y < skel.Height-1; y++ {
		for x := 1; x < skel.Width-1; x++ {
			if skel.At(x, y) != 1 {
				continue
			}
			n, _ := neighborhood(skel, x, y)
			var typ MinutiaType
			switch n {
			case 1:
				typ = Ending
			case 3:
				typ = Bifurcation
			default:
				continue
			}
			out = append(out, Minutia{
				X:     x,
				Y:     y,
				Angle: orientation(skel, x, y),
				Type:  typ,
			})
		}
	}
	return out
}

// orientation is the angle, in degrees, of the summed offset vectors of
// the foreground neighbors.
func orientation(skel *Bitmap, x, y int) float64 {
	var dx, dy float64
	for _, off := range neighborOffsets {
		if skel.At(x+off[0], y+off[1]) == 1 {
			dx += float64(off[0])
			dy += float64(off[1])
		}
	}
	return math.Atan2(dy, dx) * 180 / math.Pi
}

// acceptMinutiae deduplicates candidates in scan order, keeping a point
// only if it is at least minSpacing pixels from every already kept
// point and stopping at MaxMinutiae, then enforces the minimum count.
func acceptMinutiae(cands []Minutia) ([]Minutia, error) {
	kept := make([]Minutia, 0, len(cands))
	for _, c := range cands {
		if len(kept) >= MaxMinutiae {
			break
		}
		ok := true
		for _, k := range kept {
			dx := float64(c.X - k.X)
			dy := float64(c.Y - k.Y)
			if math.Sqrt(dx*dx+dy*dy) < minSpacing {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, c)
		}
	}
	if len(kept) < MinMinutiae {
		return nil, &QualityError{Detected: len(kept), Required: MinMinutiae}
	}
	return kept, nil
}
