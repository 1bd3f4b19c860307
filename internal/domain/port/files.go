package port

import "context"

// FileReader читает выбранный пользователем файл
type FileReader interface {
	// ReadFile возвращает содержимое файла по ссылке
	ReadFile(ctx context.Context, ref string) ([]byte, error)
}
