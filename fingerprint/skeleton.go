package fingerprint

// neighborOffsets walks the 8-neighborhood clockwise starting from the
// pixel directly above, the order used both for the thinning transition
// count and for minutia classification.
var neighborOffsets = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

const maxThinningPasses = 50

// Thin reduces ridges to one-pixel-wide skeletons by iterative
// Zhang-Suen style erosion: a foreground pixel is removed when it has
// between 2 and 6 foreground neighbors and exactly one 0->1 transition
// around its neighborhood. Removals within a pass are decided against a
// snapshot, so opposite edges of a ridge erode symmetrically. Iterates
// to a fixed point, capped at 50 passes.
func Thin(src *Bitmap) *Bitmap {
	cur := NewBitmap(src.Width, src.Height)
	copy(cur.Bits, src.Bits)

	for pass := 0; pass < maxThinningPasses; pass++ {
		var removals [][2]int
		for y := 1; y < cur.Height-1; y++ {
			for x := 1; x < cur.Width-1; x++ {
				if cur.At(x, y) != 1 {
					continue
				}
				n, trans := neighborhood(cur, x, y)
				if n >= 2 && n <= 6 && trans == 1 {
					removals = append(removals, [2]int{x, y})
				}
			}
		}
		if len(removals) == 0 {
			break
		}
		for _, p := range removals {
			cur.Set(p[0], p[1], 0)
		}
	}
	return cur
}

// neighborhood returns the foreground neighbor count and the number of
// 0->1 transitions walking the 8-neighborhood cyclically.
func neighborhood(b *Bitmap, x, y int) (count, transitions int) {
	var ring [8]uint8
	for i, off := range neighborOffsets {
		ring[i] = b.At(x+off[0], y+off[1])
		if ring[i] == 1 {
			count++
		}
	}
	for i := 0; i < 8; i++ {
		if ring[i] == 0 && ring[(i+1)%8] == 1 {
			transitions++
		}
	}
	return count, transitions
}
