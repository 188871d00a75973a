package timeline

import "testing"

func TestSynthesizePathS4(t *testing.T) {
	// S4: input "/a/b_0001.png", request time 42 -> "/a/b_0042.png"
	prefix, _, suffix, pad := InferPadding("/a/b_0001.png")
	got := SynthesizePath("/a", prefix, pad, 42, suffix)
	if want := "/a/b_0042.png"; got != want {
		t.Fatalf("SynthesizePath = %q, want %q", got, want)
	}
}

func TestInferPaddingNoLeadingZero(t *testing.T) {
	_, _, _, pad := InferPadding("clip123.dpx")
	if pad != 0 {
		t.Fatalf("pad = %d, want 0 for a number not starting with '0'", pad)
	}
}

func TestInferPaddingLeadingZero(t *testing.T) {
	_, number, _, pad := InferPadding("render_00042.exr")
	if pad != len(number) {
		t.Fatalf("pad = %d, want %d (length of number component)", pad, len(number))
	}
}

func TestSynthesizePathNoPadding(t *testing.T) {
	got := SynthesizePath("/dir", "frame", 0, 7, ".jpg")
	if want := "/dir/frame7.jpg"; got != want {
		t.Fatalf("SynthesizePath = %q, want %q", got, want)
	}
}
