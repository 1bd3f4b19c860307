package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"puzzle-bot/internal/domain/port"
)

// maxFileSize лимит Telegram Bot API на скачивание файлов
const maxFileSize = 20 << 20

type fileGetter interface {
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
}

// FileDownloader скачивает присланные пользователем файлы
type FileDownloader struct {
	api    fileGetter
	client *http.Client
	link   func(file tgbotapi.File) string
}

// NewFileDownloader создаёт загрузчик файлов для бота
func NewFileDownloader(api *tgbotapi.BotAPI) *FileDownloader {
	return &FileDownloader{
		api:    api,
		client: http.DefaultClient,
		link:   func(file tgbotapi.File) string { return file.Link(api.Token) },
	}
}

// ReadFile скачивает файл из Telegram по FileID
func (d *FileDownloader) ReadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := d.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.link(file), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("file is larger than %d bytes", maxFileSize)
	}

	return data, nil
}

// Проверка реализации интерфейса
var _ port.FileReader = (*FileDownloader)(nil)
