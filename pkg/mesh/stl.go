package mesh

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// defaultHeader identifies files written by this package. Binary STL
// readers ignore the header's content, but it must not begin with
// "solid" or some tools mistake the file for ASCII STL.
const defaultHeader = "jigcut binary stl"

// headerSize and recordSize are fixed by the binary STL format: an
// 80-byte header, a little-endian uint32 facet count, then 50 bytes per
// facet (12 floats plus a 16-bit attribute word).
const (
	headerSize = 80
	recordSize = 50
)

// ErrEmptyMesh is returned when asked to serialize a mesh with no
// facets; a zero-triangle STL is technically well-formed but always a
// caller bug here.
var ErrEmptyMesh = errors.New("mesh: refusing to serialize an empty mesh")

var le = binary.LittleEndian

// EncodeSTL serializes the mesh to binary STL. The buffer is exactly
// 84 + 50*TriangleCount() bytes.
func (m *Mesh) EncodeSTL() ([]byte, error) {
	if m.IsEmpty() {
		return nil, ErrEmptyMesh
	}

	buf := make([]byte, headerSize+4+recordSize*len(m.Triangles))
	copy(buf, defaultHeader)
	le.PutUint32(buf[headerSize:], uint32(len(m.Triangles)))

	off := headerSize + 4
	for _, t := range m.Triangles {
		for _, v := range []Vec3{t.Normal, t.V1, t.V2, t.V3} {
			le.PutUint32(buf[off:], math.Float32bits(float32(v.X)))
			le.PutUint32(buf[off+4:], math.Float32bits(float32(v.Y)))
			le.PutUint32(buf[off+8:], math.Float32bits(float32(v.Z)))
			off += 12
		}
		// Attribute byte count, always zero.
		le.PutUint16(buf[off:], 0)
		off += 2
	}
	return buf, nil
}

// WriteSTL writes the binary STL encoding of the mesh to w.
func (m *Mesh) WriteSTL(w io.Writer) error {
	buf, err := m.EncodeSTL()
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}
