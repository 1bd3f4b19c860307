package telegram

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "puzzle-bot/internal/application"
	"puzzle-bot/internal/domain/entity"
)

const (
	msgStart = `👋 Hi! I help you figure out where puzzle pieces go.

📷 Take a picture with the camera or 📎 send me a photo of the puzzle, then press Analyze.

📋 Commands:
/camera — start the camera or capture a picture
/stop — turn the camera off
/analyze — analyze the current image
/help — help`

	msgHelp = `ℹ️ How it works:

1️⃣ Press Take Picture to start the camera, then Capture
   or just send a photo or an image file
2️⃣ Press Analyze
3️⃣ You get the picture with the highlighted spots and a short note

💡 Tips:
• Shoot in good light
• Keep the whole puzzle in the frame`

	msgSendPhoto          = "📸 Please send a photo of the puzzle or press Take Picture."
	msgUnknownCommand     = "❓ Unknown command. Use /help for help."
	msgAnalyzeUnavailable = "⏳ This image is already analyzed or being analyzed. Capture or upload a new one."
	msgCameraNotRunning   = "📷 The camera is not running. Press Take Picture to start it."
)

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	client    sender
	workflows *app.WorkflowService
	logger    *slog.Logger

	mu    sync.Mutex
	views map[int64]*chatView
}

// NewBot создаёт нового бота
func NewBot(api *tgbotapi.BotAPI, workflows *app.WorkflowService, logger *slog.Logger) *Bot {
	logger.Info("authorized on account", "username", api.Self.UserName)

	b := newBot(api, workflows, logger)
	b.api = api
	return b
}

func newBot(client sender, workflows *app.WorkflowService, logger *slog.Logger) *Bot {
	return &Bot{
		client:    client,
		workflows: workflows,
		logger:    logger.With("component", "telegram"),
		views:     make(map[int64]*chatView),
	}
}

// Run запускает основной цикл обработки обновлений до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate обрабатывает входящее обновление
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	ctrl, view, err := b.controller(ctx, msg.Chat.ID)
	if err != nil {
		b.logger.Error("failed to get workflow", "chat_id", msg.Chat.ID, "error", err)
		return
	}
	defer view.flush()

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg.Command(), ctrl, view)
		return
	}

	// Обработка фото и картинок, присланных файлом
	if ref, ok := imageRef(msg); ok {
		b.report(view, "upload", ctrl.Upload(ctx, ref))
		return
	}

	// Текстовое сообщение (не команда)
	view.say(msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, command string, ctrl *app.Controller, view *chatView) {
	switch command {
	case "start":
		view.say(msgStart)
	case "help":
		view.say(msgHelp)
	case callbackCamera:
		b.report(view, "camera", ctrl.Press(ctx))
	case callbackStop:
		if ctrl.Session().Camera != entity.CameraStreaming {
			view.say(msgCameraNotRunning)
			return
		}
		b.report(view, "stop", ctrl.Stop(ctx))
	case callbackAnalyze:
		b.report(view, "analyze", ctrl.Analyze(ctx))
	default:
		view.say(msgUnknownCommand)
	}
}

// handleCallback обрабатывает нажатия inline-кнопок
func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := b.client.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Warn("failed to answer callback", "error", err)
	}

	msg := query.Message
	if msg == nil {
		return
	}

	ctrl, view, err := b.controller(ctx, msg.Chat.ID)
	if err != nil {
		b.logger.Error("failed to get workflow", "chat_id", msg.Chat.ID, "error", err)
		return
	}
	defer view.flush()

	b.handleCommand(ctx, query.Data, ctrl, view)
}

// controller возвращает контроллер и отображение чата
func (b *Bot) controller(ctx context.Context, chatID int64) (*app.Controller, *chatView, error) {
	b.mu.Lock()
	view, ok := b.views[chatID]
	if !ok {
		view = newChatView(b.client, chatID, b.logger)
		b.views[chatID] = view
	}
	b.mu.Unlock()

	ctrl, err := b.workflows.Controller(ctx, chatID, view)
	if err != nil {
		return nil, nil, err
	}
	return ctrl, view, nil
}

// report логирует ошибку действия; пользователь уже получил уведомление от контроллера
func (b *Bot) report(view *chatView, action string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, entity.ErrAnalyzeDisabled):
		view.say(msgAnalyzeUnavailable)
	default:
		b.logger.Warn("action failed", "chat_id", view.chatID, "action", action, "error", err)
	}
}

// imageRef возвращает FileID изображения из сообщения
func imageRef(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		// Берём файл с максимальным разрешением
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}
