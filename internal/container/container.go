package container

import (
	"fmt"
	"log/slog"

	"puzzle-bot/config"
	app "puzzle-bot/internal/application"
	"puzzle-bot/internal/domain/port"
	"puzzle-bot/internal/infrastructure/imagecodec"
	"puzzle-bot/internal/infrastructure/render"
	"puzzle-bot/internal/infrastructure/storage"
	"puzzle-bot/internal/infrastructure/vision"
)

type Container struct {
	Workflows *app.WorkflowService
}

func New(cfg *config.Config, files port.FileReader, logger *slog.Logger) (*Container, error) {
	style, err := render.ParseStyle(cfg.MarkerColor, cfg.MarkerWidth)
	if err != nil {
		return nil, err
	}

	surfaces, err := newSurfaceFactory(cfg.RenderBackend, style)
	if err != nil {
		return nil, err
	}

	codec := imagecodec.New()
	analyzer := &vision.SimulatedAnalyzer{
		Delay:  cfg.AnalysisDelay,
		Count:  cfg.MarkerCount,
		Radius: cfg.MarkerRadius,
	}

	workflows := app.NewWorkflowService(app.Deps{
		Sessions:  storage.NewMemorySessionRepository(),
		Camera:    vision.NewGoCVCamera(cfg.CameraDevice),
		Files:     files,
		Codec:     codec,
		Analyzer:  analyzer,
		Describer: vision.NewDemoDescriber(),
		Renderer:  app.NewRenderer(codec, surfaces),
		Logger:    logger,
	})

	return &Container{Workflows: workflows}, nil
}

func newSurfaceFactory(backend string, style render.Style) (port.SurfaceFactory, error) {
	switch backend {
	case config.BackendRaster:
		return render.NewFactory(style), nil
	case config.BackendGoCV:
		factory, err := vision.NewMatSurfaceFactory(style.Color, style.LineWidth)
		if err != nil {
			return nil, fmt.Errorf("gocv render backend: %w", err)
		}
		return factory, nil
	default:
		return nil, fmt.Errorf("unknown render backend %q", backend)
	}
}
