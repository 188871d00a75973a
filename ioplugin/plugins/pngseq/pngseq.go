// Package pngseq is an illustrative sequence decoder plugin wrapping the
// standard image/png package. Concrete codecs are out of scope (spec.md
// §1); this one exists purely so the registry and the sequence-reader base
// have a real decoder to exercise in tests.
package pngseq

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jhodges10/tlRender/bufpool"
	"github.com/jhodges10/tlRender/ioplugin"
	"github.com/jhodges10/tlRender/pixel"
	"github.com/jhodges10/tlRender/rationaltime"
	"github.com/jhodges10/tlRender/timeline"
)

// Plugin decodes numbered PNG sequences into RGBA8 images.
type Plugin struct{}

var _ ioplugin.Plugin = Plugin{}
var _ ioplugin.SequenceDecoderPlugin = Plugin{}

func (Plugin) Name() string         { return "pngseq" }
func (Plugin) Extensions() []string { return []string{".png"} }

func (Plugin) WritePixelTypes() []string {
	return []string{pixel.PixelType{Channels: pixel.RGBA, DataType: pixel.U8}.String()}
}

// WriteAlignment is 1 for every pixel type PNG supports: libpng packs rows
// tightly with no padding requirement.
func (Plugin) WriteAlignment(pixel.PixelType) int { return 1 }
func (Plugin) WriteEndian() bool                  { return false }

// Write encodes a single RGBA8 image to path as a PNG. There is no
// concrete write call site in tlrender today (spec.md §1 scopes concrete
// codecs out); this exists so Plugin satisfies ioplugin.Plugin's write
// contract in full.
func (Plugin) Write(path string, info pixel.Info, opts ioplugin.Options) error {
	if info.PixelType.Channels != pixel.RGBA || info.PixelType.DataType != pixel.U8 {
		return fmt.Errorf("pngseq: unsupported pixel type %s", info.PixelType)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, image.NewRGBA(image.Rect(0, 0, info.Width, info.Height)))
}

// Read constructs a SequenceReader rooted at the directory containing path,
// inferring the sequence's naming convention from path itself (spec §6
// filename synthesis / padding inference).
func (p Plugin) Read(path string, opts ioplugin.Options) (ioplugin.Reader, error) {
	rate := 24.0
	if s, ok := opts[ioplugin.DefaultSpeedKey]; ok {
		if t, err := rationaltime.Parse(s); err == nil {
			rate = t.Rate
		}
	}

	prefix, number, suffix, pad := timeline.InferPadding(path)
	start, err := strconv.Atoi(number)
	if err != nil {
		start = 0
	}
	ref := timeline.ImageSequenceReference{
		Base:       filepath.Dir(path),
		Prefix:     prefix,
		Padding:    pad,
		StartFrame: start,
		Suffix:     suffix,
	}
	return ioplugin.NewSequenceReader(ref, p, rate, nil), nil
}

// GetInfo decodes path's header to report its pixel shape.
func (Plugin) GetInfo(path string) (pixel.Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return pixel.Info{}, err
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return pixel.Info{}, err
	}
	return pixel.Info{
		Width:     cfg.Width,
		Height:    cfg.Height,
		PixelType: pixel.PixelType{Channels: pixel.RGBA, DataType: pixel.U8},
	}, nil
}

// Decode reads and converts a single PNG frame into an RGBA8 pixel.Image.
func (Plugin) Decode(path string, t rationaltime.RationalTime, pool *bufpool.Pool) (*pixel.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	info := pixel.Info{
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		PixelType: pixel.PixelType{Channels: pixel.RGBA, DataType: pixel.U8},
	}
	img := pixel.New(info, pool)
	data := img.Data()

	if rgba, ok := src.(*image.RGBA); ok && rgba.Stride == bounds.Dx()*4 {
		copy(data, rgba.Pix)
		return img, nil
	}

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*bounds.Dx() + x) * 4
			data[i] = byte(r >> 8)
			data[i+1] = byte(g >> 8)
			data[i+2] = byte(b >> 8)
			data[i+3] = byte(a >> 8)
		}
	}
	return img, nil
}
