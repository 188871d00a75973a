package pixel

import "testing"

func smallInfo() Info {
	return Info{Width: 2, Height: 2, PixelType: PixelType{Channels: RGBA, DataType: U8}, Layout: Layout{Alignment: 1}}
}

func TestImageRetainReleaseKeepsDataUntilLastRelease(t *testing.T) {
	img := New(smallInfo(), nil)
	retained := img.Retain()
	img.Release() // first release, still retained once more
	if retained.Data() == nil {
		t.Fatal("expected data to remain available while still retained")
	}
	retained.Release()
}

func TestImageEqualIsIdentityNotValue(t *testing.T) {
	a := New(smallInfo(), nil)
	b := New(smallInfo(), nil)
	if a.Equal(b) {
		t.Fatal("two distinct images with identical info should not be Equal")
	}
	if !a.Equal(a) {
		t.Fatal("an image should equal itself")
	}
}

func TestImageTags(t *testing.T) {
	img := New(smallInfo(), nil)
	if img.Tags() != nil {
		t.Fatal("expected nil tags on fresh image")
	}
	img.SetTag("colorspace", "sRGB")
	if img.Tags()["colorspace"] != "sRGB" {
		t.Fatal("expected tag to be retrievable")
	}
}

func TestNilImageReleaseIsSafe(t *testing.T) {
	var img *Image
	img.Release() // must not panic
}
