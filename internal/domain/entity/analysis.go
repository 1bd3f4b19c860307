package entity

// Marker отметка на изображении: центр и радиус круга
type Marker struct {
	X      float64 // координата X центра
	Y      float64 // координата Y центра
	Radius float64 // радиус в пикселях
}

// Details текстовая часть результата для вывода пользователю
type Details struct {
	Heading    string   // заголовок
	Summary    string   // краткое описание
	Disclaimer string   // пояснение к списку заметок
	Notes      []string // дополнительные пункты
}

// AnalysisResult итог анализа пазла.
// Сейчас отметки синтетические и не зависят от содержимого изображения.
type AnalysisResult struct {
	ID      string   // идентификатор прогона
	Width   int      // ширина исходного изображения
	Height  int      // высота исходного изображения
	Markers []Marker // куда ставить детали
	Details Details  // текст для пользователя
}
