package vision

import (
	"context"

	"puzzle-bot/internal/domain/entity"
	"puzzle-bot/internal/domain/port"
)

const (
	resultHeading    = "Puzzle Analysis Complete"
	resultSummary    = "The highlighted areas show where puzzle pieces should be placed."
	resultDisclaimer = "Note: This is a demonstration. A real implementation would require:"
)

var resultNotes = []string{
	"Integration with a computer vision library such as OpenCV",
	"A trained model specific to puzzle solving",
	"More processing power than a chat bot demo usually gets for complex puzzles",
}

// DemoDescriber описывает результат фиксированным демонстрационным текстом
type DemoDescriber struct{}

// NewDemoDescriber создаёт описатель
func NewDemoDescriber() *DemoDescriber {
	return &DemoDescriber{}
}

// Describe возвращает текст результата
func (d *DemoDescriber) Describe(ctx context.Context, result *entity.AnalysisResult) (entity.Details, error) {
	_ = ctx
	_ = result

	notes := make([]string, len(resultNotes))
	copy(notes, resultNotes)

	return entity.Details{
		Heading:    resultHeading,
		Summary:    resultSummary,
		Disclaimer: resultDisclaimer,
		Notes:      notes,
	}, nil
}

// Проверка реализации интерфейса
var _ port.ResultDescriber = (*DemoDescriber)(nil)
