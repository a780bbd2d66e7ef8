package chart

import (
	"fmt"
	"html"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// placeholder draws a blank canvas with the chart title and the no-data text.
func (r *Renderer) placeholder(w io.Writer, title string, format Format) error {
	if format == FormatSVG {
		return r.placeholderSVG(w, title)
	}

	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Gray{Y: 0x40}),
		Face: basicfont.Face7x13,
	}
	centered(d, title, r.Width, r.Height/2-20)
	d.Src = image.NewUniform(color.Gray{Y: 0x80})
	centered(d, r.NoDataText, r.Width, r.Height/2+10)

	return png.Encode(w, img)
}

func centered(d *font.Drawer, text string, width, y int) {
	if text == "" {
		return
	}
	x := (fixed.I(width) - d.MeasureString(text)) / 2
	if x < 0 {
		x = 0
	}
	d.Dot = fixed.Point26_6{X: x, Y: fixed.I(y)}
	d.DrawString(text)
}

func (r *Renderer) placeholderSVG(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+
		`<rect width="100%%" height="100%%" fill="white"/>`+
		`<text x="50%%" y="%d" text-anchor="middle" font-family="sans-serif" font-size="16" fill="#404040">%s</text>`+
		`<text x="50%%" y="%d" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#808080">%s</text>`+
		`</svg>`,
		r.Width, r.Height,
		r.Height/2-20, html.EscapeString(title),
		r.Height/2+10, html.EscapeString(r.NoDataText))
	return err
}
