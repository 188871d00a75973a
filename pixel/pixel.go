// Package pixel holds the image/pixel data model shared by readers,
// the composer and the cache: ImageInfo, pixel/data type tags, layout, and
// the reference-counted Image itself.
package pixel

// Channels is the tagged variant over pixel channel layouts.
type Channels uint8

const (
	L Channels = iota
	LA
	RGB
	RGBA
	YUV420P // planar, handled specially: no per-channel DataType applies
)

func (c Channels) String() string {
	switch c {
	case L:
		return "L"
	case LA:
		return "LA"
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	case YUV420P:
		return "YUV_420P"
	default:
		return "Unknown"
	}
}

// DataType is the tagged variant over per-channel sample types.
type DataType uint8

const (
	U8 DataType = iota
	U16
	F16
	F32
)

func (d DataType) String() string {
	switch d {
	case U8:
		return "U8"
	case U16:
		return "U16"
	case F16:
		return "F16"
	case F32:
		return "F32"
	default:
		return "Unknown"
	}
}

// BytesPerSample returns the size of a single channel sample, 0 for an
// unknown DataType. YUV420P is a Channels value, not a DataType; it is
// handled by PixelType.BytesPerPixel directly.
func (d DataType) BytesPerSample() int {
	switch d {
	case U8:
		return 1
	case U16, F16:
		return 2
	case F32:
		return 4
	default:
		return 0
	}
}

// PixelType is the full tagged variant: Channels x DataType, plus the
// special-cased YUV_420P planar format.
type PixelType struct {
	Channels Channels
	DataType DataType
}

// YUV420PType is the sentinel PixelType for planar YUV 4:2:0 data; DataType
// is meaningless for it.
var YUV420PType = PixelType{Channels: YUV420P}

// IsYUV420P reports whether this pixel type is the planar YUV variant.
func (p PixelType) IsYUV420P() bool { return p.Channels == YUV420P }

// ChannelCount returns the number of interleaved channels, 0 for YUV420P.
func (p PixelType) ChannelCount() int {
	switch p.Channels {
	case L:
		return 1
	case LA:
		return 2
	case RGB:
		return 3
	case RGBA:
		return 4
	default:
		return 0
	}
}

// BytesPerPixel returns the interleaved pixel stride in bytes; for
// YUV420P it returns 1 (the luma plane's per-sample size), since planar
// layouts don't have a single meaningful "pixel" stride.
func (p PixelType) BytesPerPixel() int {
	if p.IsYUV420P() {
		return 1
	}
	return p.ChannelCount() * p.DataType.BytesPerSample()
}

func (p PixelType) String() string {
	if p.IsYUV420P() {
		return "YUV_420P"
	}
	return p.Channels.String() + "_" + p.DataType.String()
}

// Layout describes row alignment and byte order of the packed buffer.
type Layout struct {
	Alignment int // row start alignment in bytes, e.g. 1 or 4
	BigEndian bool
}

// Info describes the shape of decoded pixel data, independent of the
// bytes themselves.
type Info struct {
	Width     int
	Height    int
	PixelType PixelType
	Layout    Layout
}

// Equal reports whether two Infos describe identical pixel layouts.
func (a Info) Equal(b Info) bool {
	return a.Width == b.Width && a.Height == b.Height &&
		a.PixelType == b.PixelType && a.Layout == b.Layout
}

// DataByteCount returns the expected size in bytes of a buffer matching
// this Info, honoring row alignment. For YUV420P it accounts for the
// half-resolution chroma planes.
func (i Info) DataByteCount() int {
	if i.PixelType.IsYUV420P() {
		lumaRow := alignUp(i.Width, i.Layout.Alignment)
		chromaW := (i.Width + 1) / 2
		chromaH := (i.Height + 1) / 2
		chromaRow := alignUp(chromaW, i.Layout.Alignment)
		return lumaRow*i.Height + 2*chromaRow*chromaH
	}
	rowBytes := alignUp(i.Width*i.PixelType.BytesPerPixel(), i.Layout.Alignment)
	return rowBytes * i.Height
}

func alignUp(v, alignment int) int {
	if alignment <= 1 {
		return v
	}
	rem := v % alignment
	if rem == 0 {
		return v
	}
	return v + (alignment - rem)
}
