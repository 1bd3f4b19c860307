package port

import (
	"context"

	"puzzle-bot/internal/domain/entity"
)

// Camera интерфейс устройства захвата
type Camera interface {
	// RequestStream открывает поток камеры.
	// Ошибка означает отказ в доступе или отсутствие устройства.
	RequestStream(ctx context.Context) (entity.CameraSession, error)
}
