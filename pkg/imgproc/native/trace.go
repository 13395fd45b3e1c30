package native

import (
	"image"

	"github.com/chazu/jigcut/pkg/geom"
	"github.com/chazu/jigcut/pkg/imgproc"
)

// minComponentPixels filters out speckle components before tracing;
// anything smaller cannot be a meaningful contour at photo resolution.
const minComponentPixels = 8

// mooreOffsets enumerates the 8-neighborhood clockwise starting west.
var mooreOffsets = [8][2]int{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// TraceContours labels the white regions of a binary image and traces
// each region's outer boundary with Moore-neighbor tracing (Jacob's
// stopping criterion). Collinear runs are collapsed during tracing, so
// a clean rectangle traces to its 4 corners plus axis-step artifacts,
// not to every boundary pixel. Contours nested inside another contour
// are marked non-top-level; TraceExternal drops them.
func (p *Primitives) TraceContours(bin *image.Gray, mode imgproc.TraceMode) []imgproc.RawContour {
	b := bin.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	fg := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return bin.GrayAt(b.Min.X+x, b.Min.Y+y).Y > 127
	}

	labels := make([]int, w*h)
	next := 0
	var contours []imgproc.RawContour

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !fg(x, y) || labels[y*w+x] != 0 {
				continue
			}
			next++
			size := label(labels, w, h, fg, x, y, next)
			if size < minComponentPixels {
				continue
			}
			pts := traceBoundary(fg, x, y, w, h)
			if len(pts) >= 3 {
				contours = append(contours, imgproc.RawContour{Points: pts})
			}
		}
	}

	markHierarchy(contours)

	if mode == imgproc.TraceExternal {
		top := contours[:0]
		for _, c := range contours {
			if c.TopLevel {
				top = append(top, c)
			}
		}
		contours = top
	}
	return contours
}

// label flood-fills the 8-connected component at (x, y) and returns
// its pixel count.
func label(labels []int, w, h int, fg func(int, int) bool, x, y, id int) int {
	stack := [][2]int{{x, y}}
	labels[y*w+x] = id
	size := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++
		for _, d := range mooreOffsets {
			nx, ny := p[0]+d[0], p[1]+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			if !fg(nx, ny) || labels[ny*w+nx] != 0 {
				continue
			}
			labels[ny*w+nx] = id
			stack = append(stack, [2]int{nx, ny})
		}
	}
	return size
}

// traceBoundary walks the outer boundary of the component whose
// topmost-leftmost pixel is (sx, sy).
func traceBoundary(fg func(int, int) bool, sx, sy, w, h int) []geom.Point {
	cx, cy := sx, sy
	bx, by := sx-1, sy // backtrack west of the start

	var pts []geom.Point
	add := func(x, y int) {
		p := geom.Point{X: float64(x), Y: float64(y)}
		if n := len(pts); n >= 2 {
			a, b := pts[n-2], pts[n-1]
			// Collapse collinear runs.
			if (b.X-a.X)*(p.Y-b.Y)-(b.Y-a.Y)*(p.X-b.X) == 0 {
				pts = pts[:n-1]
			}
		}
		pts = append(pts, p)
	}
	add(cx, cy)

	startCx, startCy := cx, cy
	startBx, startBy := bx, by
	maxSteps := 4*w*h + 8

	for step := 0; step < maxSteps; step++ {
		// Find where the backtrack sits in the clockwise neighborhood
		// of the current pixel, then scan clockwise from there.
		from := 0
		for i, d := range mooreOffsets {
			if cx+d[0] == bx && cy+d[1] == by {
				from = i
				break
			}
		}

		found := false
		prevX, prevY := bx, by
		for i := 1; i <= 8; i++ {
			d := mooreOffsets[(from+i)%8]
			nx, ny := cx+d[0], cy+d[1]
			if fg(nx, ny) {
				bx, by = prevX, prevY
				cx, cy = nx, ny
				found = true
				break
			}
			prevX, prevY = nx, ny
		}
		if !found {
			break // isolated pixel
		}

		if cx == startCx && cy == startCy && bx == startBx && by == startBy {
			break
		}
		if len(pts) == 0 || pts[len(pts)-1].X != float64(cx) || pts[len(pts)-1].Y != float64(cy) {
			add(cx, cy)
		}
	}

	// Drop a duplicated closing point.
	if len(pts) >= 2 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// markHierarchy sets TopLevel on each contour by testing a
// representative vertex against every other contour.
func markHierarchy(contours []imgproc.RawContour) {
	for i := range contours {
		contours[i].TopLevel = true
		for j := range contours {
			if i == j {
				continue
			}
			if geom.Polygon(contours[j].Points).Contains(contours[i].Points[0]) {
				contours[i].TopLevel = false
				break
			}
		}
	}
}
