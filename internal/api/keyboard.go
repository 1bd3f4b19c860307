package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"puzzle-bot/internal/domain/entity"
)

// Данные callback-кнопок.
const (
	callbackCamera  = "camera"
	callbackStop    = "stop"
	callbackAnalyze = "analyze"
)

const buttonStop = "Stop"
const buttonAnalyze = "Analyze"

// buildKeyboard собирает клавиатуру из текущего состояния кнопок.
// Выключенную кнопку анализа Telegram показать не может, поэтому её просто нет.
func buildKeyboard(cameraLabel string, analyzeEnabled bool) tgbotapi.InlineKeyboardMarkup {
	cameraRow := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📷 "+cameraLabel, callbackCamera),
	)
	if cameraLabel == entity.LabelCapture {
		cameraRow = append(cameraRow, tgbotapi.NewInlineKeyboardButtonData("⏹ "+buttonStop, callbackStop))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{cameraRow}
	if analyzeEnabled {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧩 "+buttonAnalyze, callbackAnalyze),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// formatDetails превращает текст результата в подпись к фото
func formatDetails(d entity.Details) string {
	var b strings.Builder
	b.WriteString("✅ ")
	b.WriteString(d.Heading)

	if d.Summary != "" {
		b.WriteString("\n\n")
		b.WriteString(d.Summary)
	}
	if d.Disclaimer != "" {
		b.WriteString("\n\n")
		b.WriteString(d.Disclaimer)
	}
	for _, note := range d.Notes {
		b.WriteString("\n• ")
		b.WriteString(note)
	}

	return b.String()
}

// fileName подбирает имя файла для отправки по MIME-типу
func fileName(base, mime string) string {
	switch mime {
	case "image/jpeg":
		return base + ".jpg"
	case "image/gif":
		return base + ".gif"
	case "image/webp":
		return base + ".webp"
	default:
		return base + ".png"
	}
}
