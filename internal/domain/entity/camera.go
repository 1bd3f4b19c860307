package entity

// CameraState состояние жизненного цикла камеры
type CameraState string

const (
	CameraIdle      CameraState = "idle"      // Потока нет, кнопка "Take Picture"
	CameraStreaming CameraState = "streaming" // Поток активен, кнопка "Capture"
	CameraCaptured  CameraState = "captured"  // Поток освобождён, показан снимок
)

// CameraAction действие пользователя или результат запроса к камере
type CameraAction string

const (
	ActionPress   CameraAction = "press"   // Нажатие кнопки камеры (старт или снимок)
	ActionStop    CameraAction = "stop"    // Явная остановка без снимка
	ActionGranted CameraAction = "granted" // Камера выдала поток
	ActionDenied  CameraAction = "denied"  // В доступе к камере отказано
)

// Effect побочный эффект перехода, который исполняет контроллер
type Effect string

const (
	EffectRequestStream Effect = "request_stream"
	EffectShowPreview   Effect = "show_preview"
	EffectHidePreview   Effect = "hide_preview"
	EffectLabelCapture  Effect = "label_capture"
	EffectLabelStart    Effect = "label_start"
	EffectNotifyDenied  Effect = "notify_denied"
	EffectSnapshot      Effect = "snapshot"
	EffectReleaseStream Effect = "release_stream"
	EffectShowImage     Effect = "show_image"
	EffectEnableAnalyze Effect = "enable_analyze"
)

// Подписи кнопки камеры.
const (
	LabelStart   = "Take Picture"
	LabelCapture = "Capture"
)

// NextCamera вычисляет следующее состояние камеры и эффекты перехода.
// Функция чистая: никаких обращений к устройству здесь нет.
func NextCamera(state CameraState, action CameraAction) (CameraState, []Effect) {
	switch state {
	case CameraIdle, CameraCaptured:
		switch action {
		case ActionPress:
			return state, []Effect{EffectRequestStream}
		case ActionGranted:
			return CameraStreaming, []Effect{EffectShowPreview, EffectLabelCapture}
		case ActionDenied:
			return state, []Effect{EffectNotifyDenied}
		}

	case CameraStreaming:
		switch action {
		case ActionPress:
			return CameraCaptured, []Effect{
				EffectSnapshot,
				EffectReleaseStream,
				EffectHidePreview,
				EffectShowImage,
				EffectEnableAnalyze,
				EffectLabelStart,
			}
		case ActionStop:
			return CameraIdle, []Effect{EffectReleaseStream, EffectHidePreview, EffectLabelStart}
		}
	}

	return state, nil
}

// ButtonLabel возвращает подпись кнопки камеры для состояния.
func (s CameraState) ButtonLabel() string {
	if s == CameraStreaming {
		return LabelCapture
	}
	return LabelStart
}
