package pixel

import "testing"

func TestInfoEqual(t *testing.T) {
	a := Info{Width: 1920, Height: 1080, PixelType: PixelType{Channels: RGBA, DataType: U8}, Layout: Layout{Alignment: 1}}
	b := a
	if !a.Equal(b) {
		t.Fatal("expected identical Info to be equal")
	}
	b.Height = 1081
	if a.Equal(b) {
		t.Fatal("expected differing height to break equality")
	}
}

func TestDataByteCountRGBA8(t *testing.T) {
	info := Info{Width: 4, Height: 2, PixelType: PixelType{Channels: RGBA, DataType: U8}, Layout: Layout{Alignment: 1}}
	if got, want := info.DataByteCount(), 4*4*2; got != want {
		t.Fatalf("DataByteCount = %d, want %d", got, want)
	}
}

func TestDataByteCountAlignment(t *testing.T) {
	info := Info{Width: 3, Height: 1, PixelType: PixelType{Channels: L, DataType: U8}, Layout: Layout{Alignment: 4}}
	if got, want := info.DataByteCount(), 4; got != want {
		t.Fatalf("DataByteCount = %d, want %d (row padded to alignment)", got, want)
	}
}

func TestDataByteCountYUV420P(t *testing.T) {
	info := Info{Width: 4, Height: 4, PixelType: YUV420PType, Layout: Layout{Alignment: 1}}
	// luma: 4*4=16, chroma: 2 planes of 2x2=4 each -> 16+8=24
	if got, want := info.DataByteCount(), 24; got != want {
		t.Fatalf("DataByteCount = %d, want %d", got, want)
	}
}

func TestPixelTypeBytesPerPixel(t *testing.T) {
	cases := []struct {
		pt   PixelType
		want int
	}{
		{PixelType{Channels: L, DataType: U8}, 1},
		{PixelType{Channels: RGBA, DataType: U8}, 4},
		{PixelType{Channels: RGB, DataType: U16}, 6},
		{PixelType{Channels: RGBA, DataType: F32}, 16},
		{YUV420PType, 1},
	}
	for _, c := range cases {
		if got := c.pt.BytesPerPixel(); got != c.want {
			t.Fatalf("%v.BytesPerPixel() = %d, want %d", c.pt, got, c.want)
		}
	}
}
