//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"puzzle-bot/internal/domain/entity"
	"puzzle-bot/internal/domain/port"
)

// GoCVCamera камера-заглушка (без OpenCV).
type GoCVCamera struct {
	Device       int
	WarmupFrames int
}

// NewGoCVCamera создаёт камеру-заглушку.
func NewGoCVCamera(device int) *GoCVCamera {
	return &GoCVCamera{Device: device, WarmupFrames: 3}
}

// RequestStream возвращает ошибку, если сборка без тега gocv.
func (c *GoCVCamera) RequestStream(ctx context.Context) (entity.CameraSession, error) {
	_ = ctx
	return nil, errors.New("gocv build tag is not enabled")
}

// Проверка реализации интерфейса
var _ port.Camera = (*GoCVCamera)(nil)
