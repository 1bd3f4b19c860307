package telegram

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	app "puzzle-bot/internal/application"
	"puzzle-bot/internal/domain/entity"
	"puzzle-bot/internal/infrastructure/imagecodec"
	"puzzle-bot/internal/infrastructure/render"
	"puzzle-bot/internal/infrastructure/storage"
	"puzzle-bot/internal/infrastructure/vision"
)

type fakeClient struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	answered []string
	deleted  []int
}

func (c *fakeClient) Send(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return tgbotapi.Message{MessageID: len(c.sent)}, nil
}

func (c *fakeClient) Request(msg tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch m := msg.(type) {
	case tgbotapi.CallbackConfig:
		c.answered = append(c.answered, m.CallbackQueryID)
	case tgbotapi.DeleteMessageConfig:
		c.deleted = append(c.deleted, m.MessageID)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (c *fakeClient) texts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, msg := range c.sent {
		switch m := msg.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, m.Text)
		case tgbotapi.PhotoConfig:
			out = append(out, "photo:"+m.Caption)
		}
	}
	return out
}

type deniedCamera struct{}

func (deniedCamera) RequestStream(ctx context.Context) (entity.CameraSession, error) {
	return nil, errors.New("no device")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeFiles map[string][]byte

func (f fakeFiles) ReadFile(ctx context.Context, ref string) ([]byte, error) {
	data, ok := f[ref]
	if !ok {
		return nil, errors.New("file not found")
	}
	return data, nil
}

func puzzlePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newTestBot(client *fakeClient) *Bot {
	return newTestBotWithFiles(client, fakeFiles{})
}

func newTestBotWithFiles(client *fakeClient, files fakeFiles) *Bot {
	codec := imagecodec.New()
	workflows := app.NewWorkflowService(app.Deps{
		Sessions:  storage.NewMemorySessionRepository(),
		Camera:    deniedCamera{},
		Files:     files,
		Codec:     codec,
		Analyzer:  &vision.SimulatedAnalyzer{Delay: 50 * time.Millisecond, Count: 5, Radius: 20},
		Describer: vision.NewDemoDescriber(),
		Renderer:  app.NewRenderer(codec, render.NewFactory(render.DefaultStyle)),
		Logger:    discardLogger(),
	})
	return newBot(client, workflows, discardLogger())
}

func command(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}}
}

func TestBuildKeyboard(t *testing.T) {
	kb := buildKeyboard(entity.LabelStart, false)
	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 1)
	require.Equal(t, "📷 Take Picture", kb.InlineKeyboard[0][0].Text)
	require.Equal(t, callbackCamera, *kb.InlineKeyboard[0][0].CallbackData)

	kb = buildKeyboard(entity.LabelCapture, true)
	require.Len(t, kb.InlineKeyboard, 2)
	require.Len(t, kb.InlineKeyboard[0], 2)
	require.Equal(t, callbackStop, *kb.InlineKeyboard[0][1].CallbackData)
	require.Equal(t, callbackAnalyze, *kb.InlineKeyboard[1][0].CallbackData)
}

func TestFormatDetails(t *testing.T) {
	text := formatDetails(entity.Details{
		Heading:    "Puzzle Analysis Complete",
		Summary:    "Summary.",
		Disclaimer: "Note:",
		Notes:      []string{"one", "two"},
	})
	require.Equal(t, "✅ Puzzle Analysis Complete\n\nSummary.\n\nNote:\n• one\n• two", text)
}

func TestImageRef(t *testing.T) {
	ref, ok := imageRef(&tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}}})
	require.True(t, ok)
	require.Equal(t, "large", ref)

	ref, ok = imageRef(&tgbotapi.Message{Document: &tgbotapi.Document{FileID: "doc", MimeType: "image/webp"}})
	require.True(t, ok)
	require.Equal(t, "doc", ref)

	_, ok = imageRef(&tgbotapi.Message{Document: &tgbotapi.Document{FileID: "pdf", MimeType: "application/pdf"}})
	require.False(t, ok)
}

func TestChatView_FlushAttachesKeyboardToLastMessage(t *testing.T) {
	client := &fakeClient{}
	view := newChatView(client, 1, discardLogger())

	view.ShowPreview(true)
	view.SetCameraButton(entity.LabelCapture)
	view.say("extra")
	view.flush()

	require.Len(t, client.sent, 2)
	first := client.sent[0].(tgbotapi.MessageConfig)
	last := client.sent[1].(tgbotapi.MessageConfig)
	require.Equal(t, msgPreview, first.Text)
	require.Nil(t, first.ReplyMarkup)

	kb := last.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.Equal(t, "📷 Capture", kb.InlineKeyboard[0][0].Text)

	view.flush()
	require.Len(t, client.sent, 2)
}

func TestChatView_StopAnnouncesCameraStopped(t *testing.T) {
	client := &fakeClient{}
	view := newChatView(client, 1, discardLogger())

	view.ShowPreview(false)
	view.SetCameraButton(entity.LabelStart)
	view.flush()

	require.Equal(t, []string{msgCameraStopped}, client.texts())
}

func TestChatView_CaptureSendsPhotoOnly(t *testing.T) {
	client := &fakeClient{}
	view := newChatView(client, 1, discardLogger())

	view.ShowPreview(false)
	view.ShowImage(&entity.CapturedImage{MimeType: "image/png", Data: []byte{1}})
	view.SetAnalyzeEnabled(true)
	view.flush()

	require.Equal(t, []string{"photo:" + msgImageReady}, client.texts())
	photo := client.sent[0].(tgbotapi.PhotoConfig)
	kb := photo.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.Len(t, kb.InlineKeyboard, 2)
}

func TestBot_CameraDenied(t *testing.T) {
	client := &fakeClient{}
	bot := newTestBot(client)

	bot.handleUpdate(context.Background(), command(5, "/camera"))

	require.Len(t, client.sent, 1)
	require.Contains(t, client.texts()[0], "Could not access the camera")
}

func TestBot_AnalyzeCallbackWithoutImage(t *testing.T) {
	client := &fakeClient{}
	bot := newTestBot(client)

	bot.handleUpdate(context.Background(), tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		Data:    callbackAnalyze,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 5}},
	}})

	require.Equal(t, []string{"cb-1"}, client.answered)
	require.Equal(t, []string{"⚠️ Please capture or upload an image first."}, client.texts())
}

func TestBot_TextAndUnknownCommand(t *testing.T) {
	client := &fakeClient{}
	bot := newTestBot(client)
	ctx := context.Background()

	bot.handleUpdate(ctx, tgbotapi.Update{Message: &tgbotapi.Message{Text: "hello", Chat: &tgbotapi.Chat{ID: 5}}})
	bot.handleUpdate(ctx, command(5, "/dance"))
	bot.handleUpdate(ctx, command(5, "/start"))

	require.Equal(t, []string{msgSendPhoto, msgUnknownCommand, msgStart}, client.texts())
}

func TestChatView_ProcessingIndicatorIsDeleted(t *testing.T) {
	client := &fakeClient{}
	view := newChatView(client, 1, discardLogger())

	view.ShowProcessing(true)
	view.flush()
	require.Equal(t, []string{msgAnalyzing}, client.texts())

	view.ShowProcessing(false)
	require.Equal(t, []int{1}, client.deleted)

	// Повторное скрытие ничего не удаляет
	view.ShowProcessing(false)
	require.Equal(t, []int{1}, client.deleted)
}

func TestChatView_ProcessingIndicatorDroppedBeforeFlush(t *testing.T) {
	client := &fakeClient{}
	view := newChatView(client, 1, discardLogger())

	view.ShowProcessing(true)
	view.ShowProcessing(false)
	view.flush()

	require.Empty(t, client.sent)
	require.Empty(t, client.deleted)
}

func TestBot_StopWhenCameraIdle(t *testing.T) {
	client := &fakeClient{}
	bot := newTestBot(client)

	bot.handleUpdate(context.Background(), command(5, "/stop"))

	require.Equal(t, []string{msgCameraNotRunning}, client.texts())
}

func TestBot_UploadAnalyzeAndResults(t *testing.T) {
	client := &fakeClient{}
	bot := newTestBotWithFiles(client, fakeFiles{"large": puzzlePNG(t, 32, 24)})
	ctx := context.Background()

	bot.handleUpdate(ctx, tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:  &tgbotapi.Chat{ID: 7},
		Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}},
	}})

	require.Equal(t, []string{"photo:" + msgImageReady}, client.texts())
	preview := client.sent[0].(tgbotapi.PhotoConfig)
	require.Len(t, preview.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup).InlineKeyboard, 2)

	bot.handleUpdate(ctx, tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-analyze",
		Data:    callbackAnalyze,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 7}},
	}})
	bot.workflows.Wait()

	texts := client.texts()
	require.Len(t, texts, 3)
	require.Equal(t, msgAnalyzing, texts[1])
	require.Contains(t, texts[2], "✅ Puzzle Analysis Complete")
	require.Equal(t, []string{"cb-analyze"}, client.answered)
	// Индикатор обработки удалён после результата
	require.Equal(t, []int{2}, client.deleted)

	result := client.sent[2].(tgbotapi.PhotoConfig)
	kb := result.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.Len(t, kb.InlineKeyboard, 1)
	require.Equal(t, callbackCamera, *kb.InlineKeyboard[0][0].CallbackData)

	file := result.File.(tgbotapi.FileBytes)
	cfg, err := png.DecodeConfig(bytes.NewReader(file.Bytes))
	require.NoError(t, err)
	require.Equal(t, 32, cfg.Width)
	require.Equal(t, 24, cfg.Height)
}

type fakeGetter struct {
	err error
}

func (g fakeGetter) GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error) {
	if g.err != nil {
		return tgbotapi.File{}, g.err
	}
	return tgbotapi.File{FileID: config.FileID, FilePath: "photos/" + config.FileID}, nil
}

func TestFileDownloader_ReadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/photos/abc" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	d := &FileDownloader{
		api:    fakeGetter{},
		client: srv.Client(),
		link:   func(file tgbotapi.File) string { return srv.URL + "/" + file.FilePath },
	}

	data, err := d.ReadFile(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, []byte("image-bytes"), data)

	_, err = d.ReadFile(context.Background(), "missing")
	require.ErrorContains(t, err, "unexpected status")

	d.api = fakeGetter{err: errors.New("bad file id")}
	_, err = d.ReadFile(context.Background(), "abc")
	require.ErrorContains(t, err, "get file")
}
