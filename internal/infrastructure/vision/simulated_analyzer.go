package vision

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"puzzle-bot/internal/domain/entity"
	"puzzle-bot/internal/domain/port"
)

// Значения по умолчанию для симуляции анализа.
const (
	DefaultAnalysisDelay = 2 * time.Second
	DefaultMarkerCount   = 5
	DefaultMarkerRadius  = 20.0
)

// SimulatedAnalyzer заглушка анализатора: ждёт фиксированную задержку
// и расставляет отметки случайно по всему изображению.
// Здесь должен появиться вызов настоящего сервиса анализа.
type SimulatedAnalyzer struct {
	Delay  time.Duration
	Count  int
	Radius float64
}

// NewSimulatedAnalyzer создаёт анализатор с параметрами по умолчанию.
func NewSimulatedAnalyzer() *SimulatedAnalyzer {
	return &SimulatedAnalyzer{
		Delay:  DefaultAnalysisDelay,
		Count:  DefaultMarkerCount,
		Radius: DefaultMarkerRadius,
	}
}

// Analyze ждёт задержку и возвращает случайные отметки.
func (a *SimulatedAnalyzer) Analyze(ctx context.Context, img *entity.CapturedImage) (*entity.AnalysisResult, error) {
	if img == nil {
		return nil, entity.ErrNoImageProvided
	}

	timer := time.NewTimer(a.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	markers := make([]entity.Marker, 0, a.Count)
	for i := 0; i < a.Count; i++ {
		markers = append(markers, entity.Marker{
			X:      rand.Float64() * float64(img.Width),
			Y:      rand.Float64() * float64(img.Height),
			Radius: a.Radius,
		})
	}

	return &entity.AnalysisResult{
		ID:      uuid.NewString(),
		Width:   img.Width,
		Height:  img.Height,
		Markers: markers,
	}, nil
}

// Проверка реализации интерфейса
var _ port.PuzzleAnalyzer = (*SimulatedAnalyzer)(nil)
