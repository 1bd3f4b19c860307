package port

import (
	"context"

	"puzzle-bot/internal/domain/entity"
)

// ResultDescriber интерфейс описателя результата анализа
type ResultDescriber interface {
	// Describe генерирует текстовое описание найденных отметок
	Describe(ctx context.Context, result *entity.AnalysisResult) (entity.Details, error)
}
