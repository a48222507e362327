package fingerprint

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestClassifyLineEndpoints(t *testing.T) {
	b := NewBitmap(16, 11)
	for x := 2; x <= 12; x++ {
		b.Set(x, 5, 1)
	}

	found := classify(b)
	if len(found) != 2 {
		t.Fatalf("got %d minutiae, want 2 endings", len(found))
	}
	for _, m := range found {
		if m.Type != Ending {
			t.Errorf("minutia at (%d,%d) typed %v, want ending", m.X, m.Y, m.Type)
		}
	}
	if d := found[0].Angle; d > 0.001 || d < -0.001 {
		t.Errorf("left endpoint angle = %v, want 0", found[0].Angle)
	}
	if d := found[1].Angle - 180; d > 0.001 || d < -0.001 {
		t.Errorf("right endpoint angle = %v, want 180", found[1].Angle)
	}
}

func TestClassifyBifurcation(t *testing.T) {
	// A Y shape: vertical stem up from the center, two diagonal branches down.
	b := NewBitmap(11, 11)
	for _, p := range [][2]int{{5, 3}, {5, 4}, {5, 5}, {4, 6}, {3, 7}, {6, 6}, {7, 7}} {
		b.Set(p[0], p[1], 1)
	}

	found := classify(b)
	bifurcations := 0
	for _, m := range found {
		if m.Type == Bifurcation {
			bifurcations++
			if m.X != 5 || m.Y != 5 {
				t.Errorf("bifurcation at (%d,%d), want (5,5)", m.X, m.Y)
			}
		}
	}
	if bifurcations != 1 {
		t.Errorf("got %d bifurcations, want 1", bifurcations)
	}
}

func spaced(n int) []Minutia {
	out := make([]Minutia, n)
	for i := range out {
		out[i] = Minutia{X: i * 10, Y: 0, Angle: 0, Type: Ending}
	}
	return out
}

func TestAcceptMinutiaeBoundary(t *testing.T) {
	if _, err := acceptMinutiae(spaced(11)); err == nil {
		t.Error("11 minutiae should be rejected")
	} else {
		var qe *QualityError
		if !errors.As(err, &qe) {
			t.Fatalf("got %T, want *QualityError", err)
		}
		if qe.Detected != 11 || qe.Required != MinMinutiae {
			t.Errorf("error reports %d/%d, want 11/%d", qe.Detected, qe.Required, MinMinutiae)
		}
	}

	kept, err := acceptMinutiae(spaced(12))
	if err != nil {
		t.Fatalf("12 minutiae rejected: %v", err)
	}
	if len(kept) != 12 {
		t.Errorf("kept %d, want 12", len(kept))
	}
}

func TestAcceptMinutiaeDeduplicates(t *testing.T) {
	cands := spaced(12)
	// A candidate 3px from an already kept point must be dropped.
	cands = append(cands, Minutia{X: 3, Y: 0})
	kept, err := acceptMinutiae(cands)
	if err != nil {
		t.Fatalf("acceptMinutiae: %v", err)
	}
	if len(kept) != 12 {
		t.Fatalf("kept %d, want 12 after dedup", len(kept))
	}
}

func TestAcceptMinutiaeCapsAtMax(t *testing.T) {
	kept, err := acceptMinutiae(spaced(120))
	if err != nil {
		t.Fatalf("acceptMinutiae: %v", err)
	}
	if len(kept) != MaxMinutiae {
		t.Errorf("kept %d, want %d", len(kept), MaxMinutiae)
	}
}

// barsImage draws thick horizontal ridge segments on a white ground.
// Each bar survives the median filter, thins to a one-pixel line and
// contributes two ridge endings.
func barsImage(bars int, offset int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	for b := 0; b < bars; b++ {
		top := 4 + b*8
		for y := top; y < top+3; y++ {
			for x := 8 + offset; x < 48+offset; x++ {
				img.SetGray(x, y, color.Gray{})
			}
		}
	}
	return img
}

func TestExtractSyntheticRidges(t *testing.T) {
	minutiae, err := ExtractBuffer(Grayscale(barsImage(7, 0)))
	if err != nil {
		t.Fatalf("ExtractBuffer: %v", err)
	}
	if len(minutiae) < MinMinutiae {
		t.Fatalf("got %d minutiae, want at least %d", len(minutiae), MinMinutiae)
	}
	for _, m := range minutiae {
		if m.Type != Ending {
			t.Errorf("unexpected %v at (%d,%d)", m.Type, m.X, m.Y)
		}
	}

	// The pipeline is deterministic: re-extraction hashes identically.
	again, err := ExtractBuffer(Grayscale(barsImage(7, 0)))
	if err != nil {
		t.Fatalf("second ExtractBuffer: %v", err)
	}
	if Hash(minutiae) != Hash(again) {
		t.Error("identity hash differs across extractions of the same image")
	}

	// A shifted pattern yields a different identity.
	other, err := ExtractBuffer(Grayscale(barsImage(7, 9)))
	if err != nil {
		t.Fatalf("shifted ExtractBuffer: %v", err)
	}
	if Hash(minutiae) == Hash(other) {
		t.Error("different ridge patterns hashed identically")
	}
}

func TestExtractDecodesPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, barsImage(7, 0)); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	minutiae, err := Extract(buf.Bytes())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(minutiae) < MinMinutiae {
		t.Errorf("got %d minutiae, want at least %d", len(minutiae), MinMinutiae)
	}
}

func TestExtractRejectsGarbage(t *testing.T) {
	_, err := Extract([]byte("not an image"))
	var le *ImageLoadError
	if !errors.As(err, &le) {
		t.Fatalf("got %T (%v), want *ImageLoadError", err, err)
	}
}
