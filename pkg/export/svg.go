package export

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/chazu/jigcut/pkg/geom"
)

// cutStyle is the stroke used for every cut line. Laser software keys
// on hairline vector strokes; fills would be engraved instead.
const cutStyle = "fill:none;stroke:#000000;stroke-width:0.2"

// EncodeSVG writes the drawing as an SVG document sized in millimeters
// with a 1-unit-per-mm viewBox, so coordinates are physical lengths.
func (fp *FlatPath) EncodeSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	canvas.Startunit(fp.Size, fp.Size, "mm",
		fmt.Sprintf(`viewBox="0 0 %g %g"`, fp.Size, fp.Size))
	canvas.Rect(0, 0, fp.Size, fp.Size, cutStyle)
	for _, s := range fp.Crosshairs {
		canvas.Line(s.A.X, s.A.Y, s.B.X, s.B.Y, cutStyle)
	}
	canvas.Path(pathData(fp.Cutout), cutStyle)
	canvas.Line(fp.ScaleBar.A.X, fp.ScaleBar.A.Y, fp.ScaleBar.B.X, fp.ScaleBar.B.Y, cutStyle)
	canvas.End()

	return ew.err
}

// pathData renders a closed polygon as an SVG path string.
func pathData(p geom.Polygon) string {
	var b strings.Builder
	for i, pt := range p {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s%.3f %.3f ", cmd, pt.X, pt.Y)
	}
	b.WriteString("Z")
	return b.String()
}

// errWriter remembers the first write error so drawing calls that do
// not return one still surface it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
