package fingerprint

import "testing"

func uniformBuffer(w, h int, v uint8) *PixelBuffer {
	b := NewPixelBuffer(w, h)
	for i := range b.Pix {
		b.Pix[i] = v
	}
	return b
}

func stripedBuffer(w, h, stripe int) *PixelBuffer {
	b := NewPixelBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/stripe)%2 == 0 {
				b.Set(x, y, 0)
			} else {
				b.Set(x, y, 255)
			}
		}
	}
	return b
}

func TestAssessRejectsUniformImage(t *testing.T) {
	r := Assess(uniformBuffer(64, 64, 200))
	if r.Pass() {
		t.Fatalf("uniform image passed the gate, failed checks: %v", r.Failed)
	}
	if r.Contrast != 0 {
		t.Errorf("contrast of uniform image = %v, want 0", r.Contrast)
	}
	if r.Coverage != 0 {
		t.Errorf("coverage of bright uniform image = %v, want 0", r.Coverage)
	}
}

func TestAssessAcceptsRidgePattern(t *testing.T) {
	r := Assess(stripedBuffer(64, 64, 4))
	if !r.Pass() {
		t.Fatalf("striped pattern failed the gate: %v", r.Failed)
	}
	if r.Contrast < 100 {
		t.Errorf("contrast = %v, want > 100 for a half black half white image", r.Contrast)
	}
	if r.Coverage < 0.4 || r.Coverage > 0.6 {
		t.Errorf("coverage = %v, want about 0.5", r.Coverage)
	}
	if r.RidgeFrequency < minFrequency || r.RidgeFrequency > maxFrequency {
		t.Errorf("frequency = %v outside [%v,%v]", r.RidgeFrequency, minFrequency, maxFrequency)
	}
}

func TestAssessToleratesOneFailure(t *testing.T) {
	r := &QualityReport{Failed: []string{"snr"}}
	if !r.Pass() {
		t.Error("one failing check should still pass")
	}
	r.Failed = append(r.Failed, "contrast")
	if r.Pass() {
		t.Error("two failing checks should fail")
	}
}

func TestQualityGateOnSyntheticFingerprint(t *testing.T) {
	r := Assess(Grayscale(barsImage(7, 0)))
	if !r.Pass() {
		t.Fatalf("synthetic fingerprint failed the gate: %v", r.Failed)
	}
}
