package telegram

import (
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"puzzle-bot/internal/domain/entity"
	"puzzle-bot/internal/domain/port"
)

const (
	msgPreview       = "📹 Camera is live. Press Capture to take a picture or Stop to turn it off."
	msgCameraStopped = "⏹ Camera stopped."
	msgImageReady    = "🖼 Image ready. Press Analyze to find where the pieces go."
	msgAnalyzing     = "⏳ Analyzing the puzzle..."
)

// sender отправляет и удаляет сообщения в Telegram
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// outgoing сообщение в очереди; sent получает отправленное сообщение
type outgoing struct {
	build func(markup tgbotapi.InlineKeyboardMarkup) tgbotapi.Chattable
	sent  func(msg tgbotapi.Message)
}

// chatView отображение рабочего процесса в одном чате.
// Изменения копятся и уходят одним пакетом в flush, клавиатура
// прикрепляется к последнему сообщению. Alert и ShowResults отправляются сразу.
type chatView struct {
	mu     sync.Mutex
	api    sender
	chatID int64
	logger *slog.Logger

	cameraLabel    string
	analyzeEnabled bool
	previewClosing bool
	pending        []*outgoing

	processing   *outgoing // индикатор, ещё не отправленный
	processingID int       // индикатор, уже отправленный
}

func newChatView(api sender, chatID int64, logger *slog.Logger) *chatView {
	return &chatView{
		api:         api,
		chatID:      chatID,
		logger:      logger,
		cameraLabel: entity.LabelStart,
	}
}

func (v *chatView) SetCameraButton(label string) {
	v.mu.Lock()
	v.cameraLabel = label
	v.mu.Unlock()
}

func (v *chatView) ShowPreview(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.previewClosing = !visible
	if visible {
		v.queueText(msgPreview)
	}
}

func (v *chatView) ShowImage(img *entity.CapturedImage) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.previewClosing = false
	v.queuePhoto(fileName("puzzle", img.MimeType), img.Data, msgImageReady)
}

func (v *chatView) SetAnalyzeEnabled(enabled bool) {
	v.mu.Lock()
	v.analyzeEnabled = enabled
	v.mu.Unlock()
}

func (v *chatView) ShowProcessing(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if visible {
		v.processing = &outgoing{
			build: v.textMessage(msgAnalyzing),
			sent:  func(msg tgbotapi.Message) { v.processingID = msg.MessageID },
		}
		v.pending = append(v.pending, v.processing)
		return
	}
	v.hideProcessingLocked()
}

// hideProcessingLocked убирает индикатор из очереди или удаляет его из чата
func (v *chatView) hideProcessingLocked() {
	if v.processing != nil {
		for i, item := range v.pending {
			if item == v.processing {
				v.pending = append(v.pending[:i], v.pending[i+1:]...)
				break
			}
		}
		v.processing = nil
	}
	if v.processingID == 0 {
		return
	}

	if _, err := v.api.Request(tgbotapi.NewDeleteMessage(v.chatID, v.processingID)); err != nil {
		v.logger.Warn("failed to delete message", "chat_id", v.chatID, "message_id", v.processingID, "error", err)
	}
	v.processingID = 0
}

func (v *chatView) ShowResults(rendered []byte, details entity.Details) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.queuePhoto("analysis.png", rendered, formatDetails(details))
	v.flushLocked()
}

func (v *chatView) Alert(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.queueText("⚠️ " + message)
	v.flushLocked()
}

// say добавляет произвольный текст в очередь
func (v *chatView) say(text string) {
	v.mu.Lock()
	v.queueText(text)
	v.mu.Unlock()
}

// flush отправляет накопленные сообщения
func (v *chatView) flush() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.flushLocked()
}

func (v *chatView) flushLocked() {
	if v.previewClosing {
		v.previewClosing = false
		v.pending = append([]*outgoing{{build: v.textMessage(msgCameraStopped)}}, v.pending...)
	}
	if len(v.pending) == 0 {
		return
	}

	keyboard := buildKeyboard(v.cameraLabel, v.analyzeEnabled)
	for i, item := range v.pending {
		var markup tgbotapi.InlineKeyboardMarkup
		if i == len(v.pending)-1 {
			markup = keyboard
		}
		msg, err := v.api.Send(item.build(markup))
		if err != nil {
			v.logger.Error("failed to send message", "chat_id", v.chatID, "error", err)
			continue
		}
		if item.sent != nil {
			item.sent(msg)
		}
	}
	v.pending = nil
	v.processing = nil
}

func (v *chatView) queueText(text string) {
	v.pending = append(v.pending, &outgoing{build: v.textMessage(text)})
}

func (v *chatView) textMessage(text string) func(tgbotapi.InlineKeyboardMarkup) tgbotapi.Chattable {
	return func(markup tgbotapi.InlineKeyboardMarkup) tgbotapi.Chattable {
		msg := tgbotapi.NewMessage(v.chatID, text)
		if markup.InlineKeyboard != nil {
			msg.ReplyMarkup = markup
		}
		return msg
	}
}

func (v *chatView) queuePhoto(name string, data []byte, caption string) {
	v.pending = append(v.pending, &outgoing{build: func(markup tgbotapi.InlineKeyboardMarkup) tgbotapi.Chattable {
		photo := tgbotapi.NewPhoto(v.chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
		photo.Caption = caption
		if markup.InlineKeyboard != nil {
			photo.ReplyMarkup = markup
		}
		return photo
	}})
}

// Проверка реализации интерфейса
var _ port.View = (*chatView)(nil)
