package export

import (
	"fmt"
	"io"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/chazu/jigcut/pkg/geom"
)

// EncodeDXF writes the drawing as a DXF document with every cut entity
// on a single CUT layer. DXF carries no unit declaration that all
// consumers honor, so coordinates are plain millimeter values, matching
// the SVG output.
func (fp *FlatPath) EncodeDXF(w io.Writer) error {
	d := dxf.NewDrawing()
	if _, err := d.AddLayer("CUT", dxfcolor.Red, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("export: dxf layer: %w", err)
	}

	border := geom.Polygon{
		{X: 0, Y: 0},
		{X: fp.Size, Y: 0},
		{X: fp.Size, Y: fp.Size},
		{X: 0, Y: fp.Size},
	}
	if err := addPolyline(d, border); err != nil {
		return err
	}
	for _, s := range fp.Crosshairs {
		if _, err := d.Line(s.A.X, s.A.Y, 0, s.B.X, s.B.Y, 0); err != nil {
			return fmt.Errorf("export: dxf line: %w", err)
		}
	}
	if err := addPolyline(d, fp.Cutout); err != nil {
		return err
	}
	if _, err := d.Line(fp.ScaleBar.A.X, fp.ScaleBar.A.Y, 0, fp.ScaleBar.B.X, fp.ScaleBar.B.Y, 0); err != nil {
		return fmt.Errorf("export: dxf line: %w", err)
	}

	if _, err := d.WriteTo(w); err != nil {
		return fmt.Errorf("export: dxf write: %w", err)
	}
	return nil
}

func addPolyline(d *drawing.Drawing, p geom.Polygon) error {
	verts := make([][]float64, len(p))
	for i, pt := range p {
		verts[i] = []float64{pt.X, pt.Y}
	}
	if _, err := d.LwPolyline(true, verts...); err != nil {
		return fmt.Errorf("export: dxf polyline: %w", err)
	}
	return nil
}
