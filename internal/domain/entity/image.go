package entity

import (
	"encoding/base64"
	"image"
)

// ImageSource откуда пришло изображение
type ImageSource string

const (
	SourceCamera ImageSource = "camera" // Снимок с камеры
	SourceUpload ImageSource = "upload" // Загруженный файл
)

// CapturedImage единственное активное изображение сессии
type CapturedImage struct {
	MimeType string      // MIME-тип закодированных данных
	Data     []byte      // закодированное изображение
	Width    int         // ширина в пикселях
	Height   int         // высота в пикселях
	Source   ImageSource // камера или загрузка
}

// DataURI возвращает изображение в виде data URI.
func (c *CapturedImage) DataURI() string {
	return "data:" + c.MimeType + ";base64," + base64.StdEncoding.EncodeToString(c.Data)
}

// Bounds возвращает прямоугольник изображения в пикселях.
func (c *CapturedImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

// CameraSession активный поток камеры.
// Существует только пока камера в состоянии Streaming.
type CameraSession interface {
	// Snapshot снимает текущий кадр в родном разрешении
	Snapshot() (image.Image, error)

	// Stop освобождает устройство
	Stop() error
}
