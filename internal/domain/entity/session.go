package entity

// Session состояние рабочего процесса одного чата
type Session struct {
	ChatID         int64           // Telegram Chat ID
	Camera         CameraState     // Текущее состояние камеры
	Stream         CameraSession   // Активный поток, только в Streaming
	Image          *CapturedImage  // Текущее изображение
	AnalyzeEnabled bool            // Доступна ли кнопка анализа
	Processing     bool            // Показан ли индикатор обработки
	LastResult     *AnalysisResult // Последний результат анализа
}

// NewSession создаёт сессию с начальным состоянием
func NewSession(chatID int64) *Session {
	return &Session{
		ChatID: chatID,
		Camera: CameraIdle,
	}
}

// SetImage заменяет текущее изображение и открывает анализ
func (s *Session) SetImage(img *CapturedImage) {
	s.Image = img
	s.AnalyzeEnabled = true
}

// HasImage сообщает, есть ли изображение для анализа
func (s *Session) HasImage() bool {
	return s.Image != nil
}
