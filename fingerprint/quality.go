package fingerprint

import "math"

// Quality thresholds. A sample passes the gate when at most one check
// fails.
const (
	minContrast  = 20.0
	minClarity   = 30.0
	minCoverage  = 0.12
	maxCoverage  = 0.9
	minFrequency = 2.0
	maxFrequency = 60.0
	minSNR       = 0.75
)

// QualityReport holds the per-image statistics the gate is judged on.
type QualityReport struct {
	Contrast       float64 // standard deviation of the grayscale values
	Clarity        float64 // variance of the Laplacian response
	Coverage       float64 // fraction of dark (ink) pixels
	RidgeFrequency float64 // average binary transitions per ink-bearing scanline
	SNR            float64 // mean / stddev of the Sobel gradient magnitude

	Failed []string // names of the checks that failed
}

// Pass reports whether the sample is usable; at most one failing check
// is tolerated.
func (r *QualityReport) Pass() bool {
	return len(r.Failed) <= 1
}

// Assess computes the quality metrics of a grayscale fingerprint sample
// and records which checks failed.
func Assess(g *PixelBuffer) *QualityReport {
	r := &QualityReport{
		Contrast:       contrast(g),
		Clarity:        clarity(g),
		Coverage:       coverage(g),
		RidgeFrequency: ridgeFrequency(g),
		SNR:            signalToNoise(g),
	}

	if r.Contrast < minContrast {
		r.Failed = append(r.Failed, "contrast")
	}
	if r.Clarity < minClarity {
		r.Failed = append(r.Failed, "clarity")
	}
	if r.Coverage < minCoverage || r.Coverage > maxCoverage {
		r.Failed = append(r.Failed, "coverage")
	}
	if r.RidgeFrequency < minFrequency || r.RidgeFrequency > maxFrequency {
		r.Failed = append(r.Failed, "frequency")
	}
	if r.SNR < minSNR {
		r.Failed = append(r.Failed, "snr")
	}
	return r
}

func contrast(g *PixelBuffer) float64 {
	_, std := meanStd(g.Pix)
	return std
}

// clarity is the variance of the 4-neighbor Laplacian over interior
// pixels. Sharp ridge boundaries give a large response.
func clarity(g *PixelBuffer) float64 {
	if g.Width < 3 || g.Height < 3 {
		return 0
	}
	var sum, sumSq float64
	n := 0
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			lap := 4*float64(g.At(x, y)) -
				float64(g.At(x, y-1)) - float64(g.At(x, y+1)) -
				float64(g.At(x-1, y)) - float64(g.At(x+1, y))
			sum += lap
			sumSq += lap * lap
			n++
		}
	}
	mean := sum / float64(n)
	return sumSq/float64(n) - mean*mean
}

func coverage(g *PixelBuffer) float64 {
	dark := 0
	for _, v := range g.Pix {
		if v < binaryThreshold {
			dark++
		}
	}
	return float64(dark) / float64(len(g.Pix))
}

// ridgeFrequency averages the number of dark/light transitions per
// scanline, counting only rows that contain at least one ink pixel.
func ridgeFrequency(g *PixelBuffer) float64 {
	total := 0
	rows := 0
	for y := 0; y < g.Height; y++ {
		transitions := 0
		ink := false
		prev := g.At(0, y) < binaryThreshold
		if prev {
			ink = true
		}
		for x := 1; x < g.Width; x++ {
			cur := g.At(x, y) < binaryThreshold
			if cur {
				ink = true
			}
			if cur != prev {
				transitions++
			}
			prev = cur
		}
		if ink {
			total += transitions
			rows++
		}
	}
	if rows == 0 {
		return 0
	}
	return float64(total) / float64(rows)
}

// signalToNoise is the mean over standard deviation of the Sobel
// gradient magnitude across interior pixels.
func signalToNoise(g *PixelBuffer) float64 {
	if g.Width < 3 || g.Height < 3 {
		return 0
	}
	mags := make([]float64, 0, (g.Width-2)*(g.Height-2))
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			gx := -float64(g.At(x-1, y-1)) + float64(g.At(x+1, y-1)) +
				-2*float64(g.At(x-1, y)) + 2*float64(g.At(x+1, y)) +
				-float64(g.At(x-1, y+1)) + float64(g.At(x+1, y+1))
			gy := -float64(g.At(x-1, y-1)) - 2*float64(g.At(x, y-1)) - float64(g.At(x+1, y-1)) +
				float64(g.At(x-1, y+1)) + 2*float64(g.At(x, y+1)) + float64(g.At(x+1, y+1))
			mags = append(mags, math.Sqrt(gx*gx+gy*gy))
		}
	}
	mean, std := meanStdF(mags)
	if std == 0 {
		return 0
	}
	return mean / std
}

func meanStd(pix []uint8) (mean, std float64) {
	var sum float64
	for _, v := range pix {
		sum += float64(v)
	}
	mean = sum / float64(len(pix))
	var varSum float64
	for _, v := range pix {
		d := float64(v) - mean
		varSum += d * d
	}
	return mean, math.Sqrt(varSum / float64(len(pix)))
}

func meanStdF(vals []float64) (mean, std float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean = sum / float64(len(vals))
	var varSum float64
	for _, v := range vals {
		d := v - mean
		varSum += d * d
	}
	return mean, math.Sqrt(varSum / float64(len(vals)))
}
