package app

import (
	"fmt"

	"puzzle-bot/internal/domain/entity"
	"puzzle-bot/internal/domain/port"
)

// Renderer рисует исходное изображение и отметки на поверхности
type Renderer struct {
	codec    port.ImageCodec
	surfaces port.SurfaceFactory
}

// NewRenderer создаёт рендерер результата
func NewRenderer(codec port.ImageCodec, surfaces port.SurfaceFactory) *Renderer {
	return &Renderer{codec: codec, surfaces: surfaces}
}

// Render рисует изображение в родном разрешении, обводит каждую отметку
// и возвращает PNG.
func (r *Renderer) Render(img *entity.CapturedImage, result *entity.AnalysisResult) ([]byte, error) {
	src, err := r.codec.Decode(img)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	surface, err := r.surfaces.NewSurface(w, h)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	surface.DrawImage(src, 0, 0, w, h)
	for _, m := range result.Markers {
		surface.StrokeCircle(m.X, m.Y, m.Radius)
	}

	return surface.Encode()
}
