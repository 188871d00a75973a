// Package tlrender is the optional presentation adapter that turns a
// composed Frame into something drawable on screen. The timeline tree, I/O
// plugins, composer and player are imported from their own packages; this
// package does not re-export them.
package tlrender

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jhodges10/tlRender/compose"
	"github.com/jhodges10/tlRender/logging"
	"github.com/jhodges10/tlRender/pixel"
)

// FrameToImage flattens a composed Frame's layers into a single
// *ebiten.Image, bottom track first, blending each layer's dissolve
// transition (if any) between ImageA and ImageB. A layer with no image at
// all (a Gap, or a reader that could not resolve a frame, spec §7) is
// simply skipped, leaving whatever was already drawn beneath it.
//
// Only RGBA/U8 layers are supported; a layer in any other pixel type is
// skipped with a warning; on-screen color management is out of scope.
func FrameToImage(frame *compose.Frame) *ebiten.Image {
	if frame == nil || len(frame.Layers) == 0 {
		return nil
	}

	var out *ebiten.Image
	for _, layer := range frame.Layers {
		layerImg := renderLayer(layer)
		if layerImg == nil {
			continue
		}
		if out == nil {
			b := layerImg.Bounds()
			out = ebiten.NewImage(b.Dx(), b.Dy())
		}
		out.DrawImage(layerImg, nil)
	}
	return out
}

func renderLayer(layer compose.FrameLayer) *ebiten.Image {
	imgA := toEbiten(layer.ImageA)
	if imgA == nil {
		return nil
	}
	if layer.ImageB == nil {
		return imgA
	}
	imgB := toEbiten(layer.ImageB)
	if imgB == nil {
		return imgA
	}
	return dissolve(imgA, imgB, layer.TransitionValue)
}

// dissolve composites b over a at alpha (0 = all a, 1 = all b), matching
// the transition_value convention of spec §4.4.
func dissolve(a, b *ebiten.Image, alpha float64) *ebiten.Image {
	b2 := a.Bounds()
	out := ebiten.NewImage(b2.Dx(), b2.Dy())
	out.DrawImage(a, nil)
	var opts ebiten.DrawImageOptions
	opts.ColorScale.ScaleAlpha(float32(alpha))
	out.DrawImage(b, &opts)
	return out
}

func toEbiten(img *pixel.Image) *ebiten.Image {
	if img == nil {
		return nil
	}
	info := img.Info()
	if info.PixelType.Channels != pixel.RGBA || info.PixelType.DataType != pixel.U8 {
		logging.Warnf("tlrender: FrameToImage skipping non-RGBA_U8 layer (%s)", info.PixelType)
		return nil
	}
	out := ebiten.NewImage(info.Width, info.Height)
	out.WritePixels(rowsToRGBA(img))
	return out
}

// rowsToRGBA strips the Info.Layout row alignment, returning a tightly
// packed RGBA buffer of the size ebiten.Image.WritePixels expects.
func rowsToRGBA(img *pixel.Image) []byte {
	info := img.Info()
	data := img.Data()
	tightStride := info.Width * 4
	alignedStride := tightStride
	if info.Layout.Alignment > 1 {
		rem := tightStride % info.Layout.Alignment
		if rem != 0 {
			alignedStride += info.Layout.Alignment - rem
		}
	}
	if alignedStride == tightStride {
		return data
	}
	out := make([]byte, tightStride*info.Height)
	for y := 0; y < info.Height; y++ {
		copy(out[y*tightStride:(y+1)*tightStride], data[y*alignedStride:y*alignedStride+tightStride])
	}
	return out
}

// Draw draws frame into viewport, scaling with [ebiten.Filter] to take as
// much space as possible while preserving aspect ratio. If there's extra
// space, the frame is centered; no black bars are drawn, so whatever was
// already on the viewport's background remains visible.
//
// Common usage:
//
//	frame := p.FrameSubject.Get() // p is a *player.Player
//	tlrender.Draw(screen, frame)
func Draw(viewport *ebiten.Image, frame *compose.Frame) {
	img := FrameToImage(frame)
	if img == nil {
		return
	}
	geom, filter := CalcProjection(viewport, img)
	var opts ebiten.DrawImageOptions
	opts.GeoM = geom
	opts.Filter = filter
	viewport.DrawImage(img, &opts)
}

// CalcProjection returns the GeoM and recommended ebiten.Filter to project
// frame into viewport. If you don't need the specific parameters, see
// [Draw] instead.
func CalcProjection(viewport, frame *ebiten.Image) (ebiten.GeoM, ebiten.Filter) {
	frameBounds := frame.Bounds()
	viewBounds := viewport.Bounds()
	vwWidth, vwHeight := viewBounds.Dx(), viewBounds.Dy()
	frWidth, frHeight := frameBounds.Dx(), frameBounds.Dy()

	tx, ty := float64(viewBounds.Min.X), float64(viewBounds.Min.Y)

	var geom ebiten.GeoM
	var filter ebiten.Filter = ebiten.FilterLinear
	wf, hf := float64(vwWidth)/float64(frWidth), float64(vwHeight)/float64(frHeight)
	sf := wf
	if hf < wf {
		sf = hf
	}
	if sf == 1.0 {
		offx := (float64(vwWidth) - float64(frWidth)) / 2
		offy := (float64(vwHeight) - float64(frHeight)) / 2
		geom.Translate(tx+offx, ty+offy)
	} else {
		sfrWidth := float64(frWidth) * sf
		sfrHeight := float64(frHeight) * sf
		geom.Scale(sf, sf)
		geom.Translate(tx+(float64(vwWidth)-sfrWidth)/2, ty+(float64(vwHeight)-sfrHeight)/2)
	}
	return geom, filter
}
