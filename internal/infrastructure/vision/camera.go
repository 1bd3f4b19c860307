//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"puzzle-bot/internal/domain/entity"
	"puzzle-bot/internal/domain/port"
)

// GoCVCamera камера OpenCV по номеру устройства
type GoCVCamera struct {
	Device int
	// WarmupFrames сколько кадров пропустить перед снимком,
	// у многих веб-камер первые кадры тёмные
	WarmupFrames int
}

// NewGoCVCamera создаёт камеру для устройства с указанным номером.
func NewGoCVCamera(device int) *GoCVCamera {
	return &GoCVCamera{Device: device, WarmupFrames: 3}
}

// RequestStream открывает устройство и возвращает активный поток.
func (c *GoCVCamera) RequestStream(ctx context.Context) (entity.CameraSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vc, err := gocv.VideoCaptureDevice(c.Device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", c.Device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("camera %d is not available", c.Device)
	}

	return &gocvStream{vc: vc, warmup: c.WarmupFrames}, nil
}

type gocvStream struct {
	mu     sync.Mutex
	vc     *gocv.VideoCapture
	warmup int
}

// Snapshot читает текущий кадр в родном разрешении устройства.
func (s *gocvStream) Snapshot() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vc == nil {
		return nil, errors.New("camera stream is stopped")
	}
	if s.warmup > 0 {
		s.vc.Grab(s.warmup)
		s.warmup = 0
	}

	frame := gocv.NewMat()
	defer frame.Close()

	if ok := s.vc.Read(&frame); !ok || frame.Empty() {
		return nil, errors.New("failed to read frame")
	}

	return frame.ToImage()
}

// Stop закрывает устройство. Повторный вызов ничего не делает.
func (s *gocvStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vc == nil {
		return nil
	}
	err := s.vc.Close()
	s.vc = nil
	return err
}

// Проверка реализации интерфейса
var _ port.Camera = (*GoCVCamera)(nil)
