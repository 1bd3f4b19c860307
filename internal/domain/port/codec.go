package port

import (
	"image"

	"puzzle-bot/internal/domain/entity"
)

// ImageCodec превращает байты и кадры в CapturedImage и обратно
type ImageCodec interface {
	// FromUpload проверяет и декодирует загруженный файл
	FromUpload(data []byte) (*entity.CapturedImage, error)

	// FromSnapshot кодирует кадр камеры в PNG
	FromSnapshot(img image.Image) (*entity.CapturedImage, error)

	// Decode раскодирует CapturedImage для отрисовки
	Decode(img *entity.CapturedImage) (image.Image, error)
}
