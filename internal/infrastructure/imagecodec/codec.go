// Package imagecodec превращает загрузки и кадры камеры в entity.CapturedImage.
package imagecodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp" // Telegram отдаёт стикеры и часть документов в WebP

	"puzzle-bot/internal/domain/entity"
	"puzzle-bot/internal/domain/port"
)

const snapshotMimeType = "image/png"

// MaxPixels предел площади изображения, которое кодек согласен раскодировать
const MaxPixels = 40_000_000

// Codec кодек изображений на imaging и bild
type Codec struct {
	encode imgio.Encoder
}

// New создаёт кодек, который сохраняет кадры в PNG
func New() *Codec {
	return &Codec{encode: imgio.PNGEncoder()}
}

// FromUpload проверяет загруженный файл и возвращает его как CapturedImage.
// Любая ошибка оборачивает entity.ErrImageDecodeFailure.
func (c *Codec) FromUpload(data []byte) (*entity.CapturedImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", entity.ErrImageDecodeFailure)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, fmt.Errorf("%w: unsupported content type %s", entity.ErrImageDecodeFailure, mime.String())
	}

	img, err := decode(data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &entity.CapturedImage{
		MimeType: mime.String(),
		Data:     data,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Source:   entity.SourceUpload,
	}, nil
}

// FromSnapshot кодирует кадр камеры в PNG в родном разрешении
func (c *Codec) FromSnapshot(img image.Image) (*entity.CapturedImage, error) {
	if img == nil {
		return nil, errors.New("empty snapshot")
	}

	var buf bytes.Buffer
	if err := c.encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	bounds := img.Bounds()
	return &entity.CapturedImage{
		MimeType: snapshotMimeType,
		Data:     buf.Bytes(),
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Source:   entity.SourceCamera,
	}, nil
}

// Decode раскодирует CapturedImage с учётом EXIF-ориентации
func (c *Codec) Decode(img *entity.CapturedImage) (image.Image, error) {
	if img == nil {
		return nil, entity.ErrNoImageProvided
	}
	return decode(img.Data)
}

func decode(data []byte) (image.Image, error) {
	// Заголовок читается до раскодирования: размеры из него определяют объём памяти
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrImageDecodeFailure, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxPixels/cfg.Height {
		return nil, fmt.Errorf("%w: image too large %dx%d", entity.ErrImageDecodeFailure, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrImageDecodeFailure, err)
	}
	return img, nil
}

// Проверка реализации интерфейса
var _ port.ImageCodec = (*Codec)(nil)
