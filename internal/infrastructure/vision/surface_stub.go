//go:build !gocv
// +build !gocv

package vision

import (
	"errors"
	"image/color"

	"puzzle-bot/internal/domain/port"
)

// MatSurfaceFactory фабрика-заглушка (без OpenCV).
type MatSurfaceFactory struct{}

// NewMatSurfaceFactory возвращает ошибку, если сборка без тега gocv.
func NewMatSurfaceFactory(stroke color.NRGBA, lineWidth float64) (*MatSurfaceFactory, error) {
	_ = stroke
	_ = lineWidth
	return nil, errors.New("gocv build tag is not enabled")
}

// NewSurface возвращает ошибку, если сборка без тега gocv.
func (f *MatSurfaceFactory) NewSurface(width, height int) (port.Surface, error) {
	_ = width
	_ = height
	return nil, errors.New("gocv build tag is not enabled")
}
