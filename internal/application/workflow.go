package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"puzzle-bot/internal/domain/entity"
	"puzzle-bot/internal/domain/port"
)

// Тексты блокирующих уведомлений.
const (
	msgCameraDenied   = "Could not access the camera. Please check permissions or try uploading an image instead."
	msgCaptureFailed  = "Could not capture a picture from the camera. Please try again or upload an image instead."
	msgNoImage        = "Please capture or upload an image first."
	msgDecodeFailed   = "Could not read that image. Please try a different file."
	msgAnalysisFailed = "Puzzle analysis failed. Please try again."
)

// Deps зависимости контроллера рабочего процесса
type Deps struct {
	Sessions  port.SessionRepository
	Camera    port.Camera
	Files     port.FileReader
	Codec     port.ImageCodec
	Analyzer  port.PuzzleAnalyzer
	Describer port.ResultDescriber
	Renderer  *Renderer
	Logger    *slog.Logger
}

// Controller управляет захватом, загрузкой и анализом для одной сессии.
// Все переходы сериализуются мьютексом, в отдельной горутине
// выполняется только анализ.
type Controller struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	session *entity.Session
	view    port.View
	deps    Deps
	logger  *slog.Logger
}

// NewController создаёт контроллер поверх сессии и её отображения
func NewController(session *entity.Session, view port.View, deps Deps) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		session: session,
		view:    view,
		deps:    deps,
		logger:  logger.With("component", "workflow", "chat_id", session.ChatID),
	}
}

// Press нажатие кнопки камеры: старт потока или снимок, в зависимости от состояния
func (c *Controller) Press(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.dispatch(ctx, entity.ActionPress)
	c.save(ctx)
	return err
}

// Stop останавливает поток без снимка
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.dispatch(ctx, entity.ActionStop)
	c.save(ctx)
	return err
}

// Upload читает файл, проверяет его и делает текущим изображением.
// Состояние камеры не меняется.
func (c *Controller) Upload(ctx context.Context, ref string) error {
	img, err := c.readUpload(ctx, ref)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.Warn("upload rejected", "error", err)
		c.view.Alert(msgDecodeFailed)
		return err
	}

	c.session.SetImage(img)
	c.view.ShowImage(img)
	c.view.SetAnalyzeEnabled(true)
	c.logger.Info("image uploaded", "mime", img.MimeType, "width", img.Width, "height", img.Height)

	c.save(ctx)
	return nil
}

// Analyze запускает анализ текущего изображения.
// Результат приходит асинхронно через View; отменить анализ нельзя.
func (c *Controller) Analyze(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.session.HasImage() {
		c.view.Alert(msgNoImage)
		return entity.ErrNoImageProvided
	}
	if !c.session.AnalyzeEnabled || c.session.Processing {
		return entity.ErrAnalyzeDisabled
	}

	c.session.AnalyzeEnabled = false
	c.session.Processing = true
	c.view.SetAnalyzeEnabled(false)
	c.view.ShowProcessing(true)
	c.save(ctx)

	img := c.session.Image
	c.wg.Add(1)
	go c.runAnalysis(context.WithoutCancel(ctx), img)

	return nil
}

// Session возвращает копию текущей сессии, снятую под мьютексом
func (c *Controller) Session() entity.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.session
}

// Wait ждёт завершения запущенного анализа
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close дожидается анализа и освобождает камеру, если поток открыт
func (c *Controller) Close() error {
	c.wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Camera != entity.CameraStreaming {
		return nil
	}
	err := c.releaseStream()
	c.session.Camera = entity.CameraIdle
	return err
}

// dispatch применяет действие к машине состояний камеры и исполняет эффекты
func (c *Controller) dispatch(ctx context.Context, action entity.CameraAction) error {
	prev := c.session.Camera
	next, effects := entity.NextCamera(prev, action)
	c.session.Camera = next
	c.logger.Debug("camera transition", "action", action, "from", prev, "to", next)

	var captured *entity.CapturedImage
	for _, effect := range effects {
		switch effect {
		case entity.EffectRequestStream:
			if err := c.requestStream(ctx); err != nil {
				return err
			}
		case entity.EffectShowPreview:
			c.view.ShowPreview(true)
		case entity.EffectHidePreview:
			c.view.ShowPreview(false)
		case entity.EffectLabelCapture:
			c.view.SetCameraButton(entity.LabelCapture)
		case entity.EffectLabelStart:
			c.view.SetCameraButton(entity.LabelStart)
		case entity.EffectNotifyDenied:
			c.view.Alert(msgCameraDenied)
		case entity.EffectSnapshot:
			img, err := c.snapshot()
			if err != nil {
				c.abortCapture()
				return err
			}
			captured = img
		case entity.EffectReleaseStream:
			if err := c.releaseStream(); err != nil {
				c.logger.Warn("failed to release camera", "error", err)
			}
		case entity.EffectShowImage:
			c.session.Image = captured
			c.view.ShowImage(captured)
		case entity.EffectEnableAnalyze:
			c.session.AnalyzeEnabled = true
			c.view.SetAnalyzeEnabled(true)
		}
	}

	return nil
}

func (c *Controller) requestStream(ctx context.Context) error {
	stream, err := c.deps.Camera.RequestStream(ctx)
	if err != nil {
		c.logger.Warn("camera access denied", "error", err)
		_ = c.dispatch(ctx, entity.ActionDenied)
		return fmt.Errorf("%w: %v", entity.ErrCameraAccessDenied, err)
	}

	c.session.Stream = stream
	c.logger.Info("camera stream started")
	return c.dispatch(ctx, entity.ActionGranted)
}

func (c *Controller) snapshot() (*entity.CapturedImage, error) {
	if c.session.Stream == nil {
		return nil, errors.New("camera stream is not active")
	}

	frame, err := c.session.Stream.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	img, err := c.deps.Codec.FromSnapshot(frame)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	c.logger.Info("picture captured", "width", img.Width, "height", img.Height)
	return img, nil
}

// abortCapture освобождает поток после неудачного снимка и возвращает камеру в Idle
func (c *Controller) abortCapture() {
	if err := c.releaseStream(); err != nil {
		c.logger.Warn("failed to release camera", "error", err)
	}
	c.session.Camera = entity.CameraIdle
	c.view.ShowPreview(false)
	c.view.SetCameraButton(entity.LabelStart)
	c.view.Alert(msgCaptureFailed)
}

func (c *Controller) releaseStream() error {
	stream := c.session.Stream
	c.session.Stream = nil
	if stream == nil {
		return nil
	}
	return stream.Stop()
}

func (c *Controller) readUpload(ctx context.Context, ref string) (*entity.CapturedImage, error) {
	data, err := c.deps.Files.ReadFile(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: read file: %v", entity.ErrImageDecodeFailure, err)
	}
	return c.deps.Codec.FromUpload(data)
}

func (c *Controller) runAnalysis(ctx context.Context, img *entity.CapturedImage) {
	defer c.wg.Done()

	result, rendered, err := c.analyze(ctx, img)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.Processing = false
	c.view.ShowProcessing(false)

	if err != nil {
		c.logger.Error("analysis failed", "error", err)
		c.session.AnalyzeEnabled = c.session.HasImage()
		c.view.SetAnalyzeEnabled(c.session.AnalyzeEnabled)
		c.view.Alert(msgAnalysisFailed)
		c.save(ctx)
		return
	}

	c.session.LastResult = result
	c.view.ShowResults(rendered, result.Details)
	c.logger.Info("analysis complete", "analysis_id", result.ID, "markers", len(result.Markers))
	c.save(ctx)
}

func (c *Controller) analyze(ctx context.Context, img *entity.CapturedImage) (*entity.AnalysisResult, []byte, error) {
	result, err := c.deps.Analyzer.Analyze(ctx, img)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", entity.ErrAnalysisFailed, err)
	}

	if c.deps.Describer != nil {
		details, err := c.deps.Describer.Describe(ctx, result)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: describe: %v", entity.ErrAnalysisFailed, err)
		}
		result.Details = details
	}

	rendered, err := c.deps.Renderer.Render(img, result)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", entity.ErrAnalysisFailed, err)
	}

	return result, rendered, nil
}

func (c *Controller) save(ctx context.Context) {
	if c.deps.Sessions == nil {
		return
	}
	if err := c.deps.Sessions.Save(ctx, c.session); err != nil {
		c.logger.Error("failed to save session", "error", err)
	}
}
