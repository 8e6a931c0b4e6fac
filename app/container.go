package app

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/soocke/lumacam-go/config"
	"github.com/soocke/lumacam-go/domain/capture"
	"github.com/soocke/lumacam-go/domain/still"
	"github.com/soocke/lumacam-go/pipeline"
	"github.com/soocke/lumacam-go/ui/model"
	"github.com/soocke/lumacam-go/ui/presenter"
	"github.com/soocke/lumacam-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config    *config.Config
	Logger    *slog.Logger
	SessionID string

	Pipeline *pipeline.Pipeline
	Still    *still.Sink
	Analysis *model.AnalysisModel

	RootView *view.RootView
	UI       view.UI

	// Presenters
	AnalysisPresenter  *presenter.AnalysisPresenter
	PreviewPresenter   *presenter.PreviewPresenter
	ShootPresenter     *presenter.ShootPresenter
	LuminancePresenter *presenter.LuminancePresenter
	Loop               *presenter.Loop
}

// BuildContainer constructs all components. Nothing is started and no widget
// is created; the presenters are bound to the view but the view is built by
// the app.
func BuildContainer(cfg *config.Config, logger *slog.Logger, src capture.Source) *AppContainer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	logger = logger.With("session", id)

	c := &AppContainer{Config: cfg, Logger: logger, SessionID: id}
	c.Pipeline = pipeline.NewPipeline(cfg, logger, src)
	c.Still = still.NewSink(cfg.OutputDir, cfg.JPEGQuality(), logger)
	c.Analysis = &model.AnalysisModel{}

	c.RootView = view.NewRootView(logger)
	c.UI = c.RootView

	c.AnalysisPresenter = presenter.NewAnalysisPresenter(c.Analysis, c.Pipeline, c.UI)
	c.PreviewPresenter = presenter.NewPreviewPresenter(c.Pipeline.Capture, c.UI, cfg.DisplayRotation)
	c.ShootPresenter = presenter.NewShootPresenter(c.Pipeline.Capture, c.Still, c.UI, logger)
	c.LuminancePresenter = presenter.NewLuminancePresenter(c.Pipeline.Luminance, c.Analysis, c.UI)
	return c
}
