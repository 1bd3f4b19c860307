package port

import "puzzle-bot/internal/domain/entity"

// View интерфейс отображения рабочего процесса пользователю
type View interface {
	// SetCameraButton меняет подпись кнопки камеры
	SetCameraButton(label string)

	// ShowPreview показывает или скрывает живое превью
	ShowPreview(visible bool)

	// ShowImage показывает текущий снимок
	ShowImage(img *entity.CapturedImage)

	// SetAnalyzeEnabled включает или выключает кнопку анализа
	SetAnalyzeEnabled(enabled bool)

	// ShowProcessing показывает или скрывает индикатор обработки
	ShowProcessing(visible bool)

	// ShowResults выводит отрисованный результат и текст
	ShowResults(rendered []byte, details entity.Details)

	// Alert блокирующее уведомление об ошибке
	Alert(message string)
}
