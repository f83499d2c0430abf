package raster

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	// decoders beyond the PNG / JPEG ones gg brings in
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FileType selects the encoding used by WriteFile.
type FileType int

const (
	FileJPG FileType = iota
	FilePNG
	FileBinary
)

// String returns a string representation of the file type.
func (f FileType) String() string {
	switch f {
	case FileJPG:
		return "JPG"
	case FilePNG:
		return "PNG"
	case FileBinary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// FileTypeFromExt picks a FileType from a filename extension.
func FileTypeFromExt(filename string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return FileJPG, nil
	case ".png":
		return FilePNG, nil
	case ".bin", ".raw":
		return FileBinary, nil
	}
	return 0, fmt.Errorf("%w: extension of %s", ErrUnsupportedFormat, filename)
}

// Load replaces the image with the contents of filename. Binary dumps
// (.bin, .raw) go through ReadBinary; anything else is decoded as a
// picture (PNG, JPEG, BMP, TIFF, WebP), which needs T to implement
// ColorCodec. Logical bounds are reset to the default for the new size.
func (img *Image[T]) Load(filename string) error {
	if ft, err := FileTypeFromExt(filename); err == nil && ft == FileBinary {
		return img.ReadBinary(filename)
	}
	codec, err := colorCodec[T]()
	if err != nil {
		return err
	}
	src, err := gg.LoadImage(filename)
	if err != nil {
		return fmt.Errorf("%w: load %s: %w", ErrIO, filename, err)
	}

	b := src.Bounds()
	dst := image.NewNRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(dst, image.Point{}, src, b, xdraw.Src, nil)
	Logger().Debug("raster: loaded", "file", filename, "dim", b.Size())
	return img.fromNRGBA64(dst, codec)
}

// LoadResampled loads filename like Load, scaling the picture to dim with
// a Catmull-Rom filter.
func (img *Image[T]) LoadResampled(filename string, dim Vec2i) error {
	if dim.X <= 0 || dim.Y <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, dim.X, dim.Y)
	}
	codec, err := colorCodec[T]()
	if err != nil {
		return err
	}
	src, err := gg.LoadImage(filename)
	if err != nil {
		return fmt.Errorf("%w: load %s: %w", ErrIO, filename, err)
	}

	dst := image.NewNRGBA64(image.Rect(0, 0, dim.X, dim.Y))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	Logger().Debug("raster: loaded", "file", filename, "from", src.Bounds().Size(), "dim", dim)
	return img.fromNRGBA64(dst, codec)
}

func (img *Image[T]) fromNRGBA64(src *image.NRGBA64, codec ColorCodec[T]) error {
	b := src.Bounds()
	if err := img.Resize(Vec2i{b.Dx(), b.Dy()}); err != nil {
		return err
	}
	for y := 0; y < img.dim.Y; y++ {
		for x := 0; x < img.dim.X; x++ {
			img.base[img.index(x, y)] = codec.FromColor(src.NRGBA64At(b.Min.X+x, b.Min.Y+y))
		}
	}
	img.touch()
	return nil
}

// ToImage converts to a standard library image. T must implement
// ColorCodec.
func (img *Image[T]) ToImage() (image.Image, error) {
	if _, err := colorCodec[T](); err != nil {
		return nil, err
	}
	out := image.NewNRGBA64(image.Rect(0, 0, img.dim.X, img.dim.Y))
	for y := 0; y < img.dim.Y; y++ {
		for x := 0; x < img.dim.X; x++ {
			out.Set(x, y, any(img.base[img.index(x, y)]).(ColorCodec[T]).Color())
		}
	}
	return out, nil
}

// WriteJPG encodes the image as JPEG with the given quality (1-100).
func (img *Image[T]) WriteJPG(filename string, quality int) error {
	im, err := img.ToImage()
	if err != nil {
		return err
	}
	if err := gg.SaveJPG(filename, im, quality); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, filename, err)
	}
	Logger().Debug("raster: wrote jpg", "file", filename, "quality", quality)
	return nil
}

// WritePNG encodes the image as PNG.
func (img *Image[T]) WritePNG(filename string) error {
	im, err := img.ToImage()
	if err != nil {
		return err
	}
	if err := gg.SavePNG(filename, im); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, filename, err)
	}
	Logger().Debug("raster: wrote png", "file", filename)
	return nil
}

// WriteFile writes the image in the requested format. quality only
// applies to JPEG.
func (img *Image[T]) WriteFile(filename string, ft FileType, quality int) error {
	switch ft {
	case FileJPG:
		return img.WriteJPG(filename, quality)
	case FilePNG:
		return img.WritePNG(filename)
	case FileBinary:
		return img.WriteBinary(filename)
	}
	return fmt.Errorf("%w: file type %d", ErrUnsupportedFormat, ft)
}

// binaryHeader is the fixed size header of a binary dump. The dump is
// little-endian throughout: the header, then dim.X*dim.Y records of T in
// row-major order, no padding or compression.
type binaryHeader struct {
	X, Y int32
}

// WriteBinary dumps the raw pixels. T must have a fixed size in
// encoding/binary terms (no int, slices or pointers). Logical bounds and
// extend policy go to a JSON sidecar next to the dump.
func (img *Image[T]) WriteBinary(filename string) error {
	if _, err := recordSize[T](); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := img.writeBinary(f); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, filename, err)
	}
	if err := img.writeMetadata(filename); err != nil {
		return fmt.Errorf("%w: write metadata for %s: %w", ErrIO, filename, err)
	}
	Logger().Debug("raster: wrote binary", "file", filename, "dim", img.dim)
	return nil
}

// writeBinary writes the header and pixel records to w and closes it. A
// failed close is reported when the writes went through.
func (img *Image[T]) writeBinary(w io.WriteCloser) (err error) {
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(w)
	hdr := binaryHeader{X: int32(img.dim.X), Y: int32(img.dim.Y)}
	if err := binary.Write(bw, binary.LittleEndian, hdr); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, img.base); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadBinary replaces the image with a dump written by WriteBinary. A
// missing file, a bad header or a payload shorter than the header promises
// returns ErrIO and leaves the image unchanged.
func (img *Image[T]) ReadBinary(filename string) error {
	size, err := recordSize[T]()
	if err != nil {
		return err
	}
	f, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		_ = f.Close()
	}()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	r := bufio.NewReader(f)
	var hdr binaryHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("%w: read header of %s: %w", ErrIO, filename, err)
	}
	if hdr.X < 0 || hdr.Y < 0 {
		return fmt.Errorf("%w: %s: bad dimensions %dx%d", ErrIO, filename, hdr.X, hdr.Y)
	}
	n := int64(hdr.X) * int64(hdr.Y)
	if want := int64(binary.Size(hdr)) + n*int64(size); info.Size() < want {
		return fmt.Errorf("%w: %s truncated: %d bytes, want %d", ErrIO, filename, info.Size(), want)
	}

	base := make([]T, n)
	if err := binary.Read(r, binary.LittleEndian, base); err != nil {
		return fmt.Errorf("%w: read pixels of %s: %w", ErrIO, filename, err)
	}
	if n == 0 {
		hdr = binaryHeader{}
	}
	img.dim = Vec2i{int(hdr.X), int(hdr.Y)}
	img.base = base
	img.setBoxes(true)
	img.touch()
	img.readMetadata(filename)
	if img.mipMe {
		img.MipIt()
	} else {
		img.DeMip()
	}
	Logger().Debug("raster: read binary", "file", filename, "dim", img.dim)
	return nil
}

func colorCodec[T Pixel[T]]() (ColorCodec[T], error) {
	var z T
	c, ok := any(z).(ColorCodec[T])
	if !ok {
		return nil, fmt.Errorf("%w: %T has no colour codec", ErrUnsupportedFormat, z)
	}
	return c, nil
}

func recordSize[T Pixel[T]]() (int, error) {
	var z T
	n := binary.Size(z)
	if n <= 0 {
		return 0, fmt.Errorf("%w: %T has no fixed binary size", ErrUnsupportedFormat, z)
	}
	return n, nil
}
