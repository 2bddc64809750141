package render

import (
	"image"
	"image/color"
	"image/draw"
)

// CardOptions frames an exported drawing with a margin and a soft shadow.
type CardOptions struct {
	Margin     int
	Blur       int
	Offset     image.Point
	Opacity    float64
	Background color.RGBA
}

// DefaultCard is the frame used for shared exports.
func DefaultCard() CardOptions {
	return CardOptions{
		Margin:     32,
		Blur:       12,
		Offset:     image.Pt(8, 8),
		Opacity:    0.5,
		Background: color.RGBA{255, 255, 255, 255},
	}
}

// Card draws img centred on a margin-padded background with a blurred drop
// shadow under it. Zero opacity draws no shadow.
func Card(img image.Image, o CardOptions) *image.RGBA {
	src := img.Bounds()
	if o.Margin < 0 {
		o.Margin = 0
	}
	out := image.NewRGBA(image.Rect(0, 0, src.Dx()+2*o.Margin, src.Dy()+2*o.Margin))
	draw.Draw(out, out.Bounds(), image.NewUniform(o.Background), image.Point{}, draw.Src)
	place := image.Rect(o.Margin, o.Margin, o.Margin+src.Dx(), o.Margin+src.Dy())

	if o.Opacity > 0 && !src.Empty() {
		if o.Opacity > 1 {
			o.Opacity = 1
		}
		mask := image.NewGray(out.Bounds())
		solid := place.Add(o.Offset).Intersect(mask.Bounds())
		draw.Draw(mask, solid, image.NewUniform(color.Gray{Y: 255}), image.Point{}, draw.Src)
		mask = boxBlur(mask, o.Blur)
		shade := image.NewUniform(color.RGBA{A: uint8(o.Opacity*255 + 0.5)})
		draw.DrawMask(out, out.Bounds(), shade, image.Point{}, mask, image.Point{}, draw.Over)
	}
	draw.Draw(out, place, img, src.Min, draw.Over)
	return out
}

// boxBlur runs a horizontal then vertical running-sum box filter.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		return src
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	tmp := image.NewGray(src.Bounds())
	dst := image.NewGray(src.Bounds())
	pass := func(n int, get func(int) uint8, set func(int, uint8)) {
		prefix := make([]int, n+1)
		for i := 0; i < n; i++ {
			prefix[i+1] = prefix[i] + int(get(i))
		}
		for i := 0; i < n; i++ {
			lo, hi := max(i-radius, 0), min(i+radius, n-1)
			set(i, uint8((prefix[hi+1]-prefix[lo])/(hi-lo+1)))
		}
	}
	for y := 0; y < h; y++ {
		row := y * src.Stride
		pass(w, func(x int) uint8 { return src.Pix[row+x] }, func(x int, v uint8) { tmp.Pix[row+x] = v })
	}
	for x := 0; x < w; x++ {
		pass(h, func(y int) uint8 { return tmp.Pix[y*tmp.Stride+x] }, func(y int, v uint8) { dst.Pix[y*dst.Stride+x] = v })
	}
	return dst
}
