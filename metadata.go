package raster

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// metaSuffix is appended to a binary dump's filename for its sidecar.
const metaSuffix = ".json"

// metadata stores what the raw binary dump cannot: the logical bounds and
// extend policy, so ReadBinary can restore them.
type metadata struct {
	Width      int
	Height     int
	BoundsMinX float32
	BoundsMinY float32
	BoundsMaxX float32
	BoundsMaxY float32
	Extend     Extend
}

// encodeJSON returns the JSON data representation of our metadata
func encodeJSON(m *metadata) ([]byte, error) {
	return json.Marshal(m)
}

// decodeJSON turns the JSON data representation into a metadata struct
func decodeJSON(data []byte) (*metadata, error) {
	m := &metadata{}
	return m, json.Unmarshal(data, m)
}

// writeMetadata writes the sidecar for a binary dump of img.
func (img *Image[T]) writeMetadata(filename string) error {
	data, err := encodeJSON(&metadata{
		Width:      img.dim.X,
		Height:     img.dim.Y,
		BoundsMinX: img.bounds.Min.X,
		BoundsMinY: img.bounds.Min.Y,
		BoundsMaxX: img.bounds.Max.X,
		BoundsMaxY: img.bounds.Max.Y,
		Extend:     img.extend,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(filename+metaSuffix, data, 0640)
}

// readMetadata applies a sidecar if there is one that matches img's size.
// A missing sidecar is not an error; an unreadable one is logged and
// ignored since the pixels themselves loaded fine.
func (img *Image[T]) readMetadata(filename string) {
	data, err := os.ReadFile(filename + metaSuffix)
	if errors.Is(err, fs.ErrNotExist) {
		return
	} else if err != nil {
		Logger().Warn("raster: cannot read metadata", "file", filename+metaSuffix, "err", err)
		return
	}
	meta, err := decodeJSON(data)
	if err != nil {
		Logger().Warn("raster: cannot decode metadata", "file", filename+metaSuffix, "err", err)
		return
	}
	if meta.Width != img.dim.X || meta.Height != img.dim.Y {
		Logger().Warn("raster: metadata does not match image", "file", filename+metaSuffix,
			"meta", Vec2i{meta.Width, meta.Height}, "dim", img.dim)
		return
	}
	img.bounds = B(meta.BoundsMinX, meta.BoundsMinY, meta.BoundsMaxX, meta.BoundsMaxY)
	img.extend = meta.Extend
}
