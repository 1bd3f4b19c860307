package port

import (
	"context"

	"puzzle-bot/internal/domain/entity"
)

// PuzzleAnalyzer интерфейс анализатора пазла
type PuzzleAnalyzer interface {
	// Analyze анализирует изображение и возвращает отметки с описанием
	Analyze(ctx context.Context, img *entity.CapturedImage) (*entity.AnalysisResult, error)
}
