package port

import "image"

// Surface поверхность для отрисовки результата
type Surface interface {
	// DrawImage рисует изображение в прямоугольнике (x, y, w, h)
	DrawImage(img image.Image, x, y, w, h int)

	// StrokeCircle обводит окружность с центром (x, y) и радиусом r
	StrokeCircle(x, y, r float64)

	// Encode возвращает содержимое поверхности в PNG
	Encode() ([]byte, error)
}

// SurfaceFactory создаёт поверхности нужного размера
type SurfaceFactory interface {
	NewSurface(width, height int) (Surface, error)
}
