// Package render рисует результат анализа на растровом холсте.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/vector"

	"puzzle-bot/internal/domain/port"
)

// Style параметры обводки отметок
type Style struct {
	Color     color.NRGBA
	LineWidth float64
}

// DefaultStyle красная обводка толщиной 3 пикселя
var DefaultStyle = Style{Color: color.NRGBA{R: 255, A: 255}, LineWidth: 3}

// ParseStyle собирает стиль из hex-цвета ("#ff0000") и толщины линии
func ParseStyle(hex string, lineWidth float64) (Style, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Style{}, fmt.Errorf("parse stroke color %q: %w", hex, err)
	}
	if lineWidth <= 0 {
		return Style{}, fmt.Errorf("invalid line width %v", lineWidth)
	}

	r, g, b := c.Clamped().RGB255()
	return Style{Color: color.NRGBA{R: r, G: g, B: b, A: 255}, LineWidth: lineWidth}, nil
}

// Canvas растровая поверхность поверх image.NRGBA
type Canvas struct {
	img    *image.NRGBA
	style  Style
	raster *vector.Rasterizer
	encode imgio.Encoder
}

// NewCanvas создаёт прозрачный холст заданного размера
func NewCanvas(width, height int, style Style) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	return &Canvas{
		img:    imaging.New(width, height, color.Transparent),
		style:  style,
		raster: vector.NewRasterizer(0, 0),
		encode: imgio.PNGEncoder(),
	}, nil
}

// DrawImage рисует изображение в прямоугольнике, масштабируя при необходимости
func (c *Canvas) DrawImage(img image.Image, x, y, w, h int) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}

	src := img
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		src = imaging.Resize(img, w, h, imaging.Lanczos)
	}
	c.img = imaging.Overlay(c.img, src, image.Pt(x, y), 1.0)
}

// StrokeCircle обводит окружность со сглаживанием краёв.
// Обводка заливается как кольцо: внешняя и внутренняя окружности
// с противоположным направлением обхода.
func (c *Canvas) StrokeCircle(cx, cy, r float64) {
	half := c.style.LineWidth / 2
	outer, inner := r+half, max(r-half, 0)

	area := image.Rect(
		int(math.Floor(cx-outer-1)), int(math.Floor(cy-outer-1)),
		int(math.Ceil(cx+outer+1)), int(math.Ceil(cy+outer+1)),
	).Intersect(c.img.Bounds())
	if area.Empty() {
		return
	}

	// Растеризатор работает в координатах области
	ox, oy := cx-float64(area.Min.X), cy-float64(area.Min.Y)
	c.raster.Reset(area.Dx(), area.Dy())
	circlePath(c.raster, ox, oy, outer, 1)
	if inner > 0 {
		circlePath(c.raster, ox, oy, inner, -1)
	}
	c.raster.Draw(c.img, area, image.NewUniform(c.style.Color), image.Point{})
}

// kappa смещение контрольных точек кубической кривой для четверти окружности
const kappa = 0.5522847498

// circlePath добавляет окружность из четырёх кубических кривых.
// dir задаёт направление обхода: 1 или -1.
func circlePath(z *vector.Rasterizer, cx, cy, r, dir float64) {
	k := kappa * r
	cube := func(x1, y1, x2, y2, x3, y3 float64) {
		z.CubeTo(float32(x1), float32(y1), float32(x2), float32(y2), float32(x3), float32(y3))
	}

	z.MoveTo(float32(cx+r), float32(cy))
	cube(cx+r, cy+dir*k, cx+k, cy+dir*r, cx, cy+dir*r)
	cube(cx-k, cy+dir*r, cx-r, cy+dir*k, cx-r, cy)
	cube(cx-r, cy-dir*k, cx-k, cy-dir*r, cx, cy-dir*r)
	cube(cx+k, cy-dir*r, cx+r, cy-dir*k, cx+r, cy)
	z.ClosePath()
}

// Encode возвращает холст в PNG
func (c *Canvas) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.encode(&buf, c.img); err != nil {
		return nil, fmt.Errorf("encode canvas: %w", err)
	}
	return buf.Bytes(), nil
}

// Image возвращает текущее содержимое холста
func (c *Canvas) Image() image.Image {
	return c.img
}

// Factory создаёт растровые холсты с общим стилем
type Factory struct {
	Style Style
}

// NewFactory создаёт фабрику холстов
func NewFactory(style Style) *Factory {
	return &Factory{Style: style}
}

// NewSurface создаёт холст заданного размера
func (f *Factory) NewSurface(width, height int) (port.Surface, error) {
	canvas, err := NewCanvas(width, height, f.Style)
	if err != nil {
		return nil, errors.Join(errors.New("create surface"), err)
	}
	return canvas, nil
}

// Проверка реализации интерфейса
var (
	_ port.Surface        = (*Canvas)(nil)
	_ port.SurfaceFactory = (*Factory)(nil)
)
