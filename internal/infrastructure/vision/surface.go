//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"puzzle-bot/internal/domain/port"
)

// MatSurface поверхность поверх gocv.Mat.
// Encode освобождает матрицу, после него поверхность не используется.
type MatSurface struct {
	mat       gocv.Mat
	color     color.RGBA
	thickness int
}

// DrawImage копирует изображение в область матрицы.
func (s *MatSurface) DrawImage(img image.Image, x, y, w, h int) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return
	}
	defer func() { src.Close() }()

	if src.Cols() != w || src.Rows() != h {
		resized := gocv.NewMat()
		gocv.Resize(src, &resized, image.Pt(w, h), 0, 0, gocv.InterpolationArea)
		src.Close()
		src = resized
	}

	rect := image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, s.mat.Cols(), s.mat.Rows()))
	if rect.Empty() || rect.Dx() != w || rect.Dy() != h {
		return
	}

	region := s.mat.Region(rect)
	defer region.Close()
	src.CopyTo(&region)
}

// StrokeCircle рисует окружность средствами OpenCV.
func (s *MatSurface) StrokeCircle(x, y, r float64) {
	gocv.Circle(&s.mat, image.Pt(int(x), int(y)), int(r), s.color, s.thickness)
}

// Encode кодирует матрицу в PNG и освобождает её.
func (s *MatSurface) Encode() ([]byte, error) {
	defer s.mat.Close()

	if s.mat.Empty() {
		return nil, errors.New("empty image")
	}

	buf, err := gocv.IMEncode(gocv.PNGFileExt, s.mat)
	if err != nil {
		return nil, fmt.Errorf("encode surface: %w", err)
	}
	defer buf.Close()

	return append([]byte(nil), buf.GetBytes()...), nil
}

// MatSurfaceFactory создаёт поверхности gocv
type MatSurfaceFactory struct {
	color     color.RGBA
	thickness int
}

// NewMatSurfaceFactory создаёт фабрику с цветом и толщиной обводки.
func NewMatSurfaceFactory(stroke color.NRGBA, lineWidth float64) (*MatSurfaceFactory, error) {
	thickness := int(lineWidth + 0.5)
	if thickness < 1 {
		thickness = 1
	}
	return &MatSurfaceFactory{
		color:     color.RGBA{R: stroke.R, G: stroke.G, B: stroke.B, A: 255},
		thickness: thickness,
	}, nil
}

// NewSurface создаёт чёрную матрицу BGR нужного размера.
func (f *MatSurfaceFactory) NewSurface(width, height int) (port.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	return &MatSurface{
		mat:       gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3),
		color:     f.color,
		thickness: f.thickness,
	}, nil
}

// Проверка реализации интерфейса
var _ port.SurfaceFactory = (*MatSurfaceFactory)(nil)
